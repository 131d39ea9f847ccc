package config

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"

	"github.com/haasonsaas/aiscan/pkg/shared/files"
)

// DefaultConfigName is the configuration file looked up in the working directory.
const DefaultConfigName = ".aiscan.yml"

// ValidateConfigPath checks that the given path points at a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes a YAML file into the given structure.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the configuration file at configPath, falling back to
// defaults when the file does not exist. Keys absent from the file keep
// their default values.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigName
	}

	cfg := DefaultConfig()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	if err := LoadYAML(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}
	return cfg, nil
}

// Save writes the configuration to the given path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %q: %w", path, err)
	}
	return nil
}

// InitConfig writes a default configuration file into dir and, when a
// .gitignore is already present, registers the report artifacts in it.
func InitConfig(dir string) error {
	configPath := filepath.Join(dir, DefaultConfigName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	if err := DefaultConfig().Save(configPath); err != nil {
		return err
	}

	gitignorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		entries := []string{"# AI Risk Scanner", "ai_inventory.json", "ai_audit_report.json"}
		if err := files.AppendLinesOnce(gitignorePath, "ai_inventory.json", entries); err != nil {
			return err
		}
	}

	return nil
}
