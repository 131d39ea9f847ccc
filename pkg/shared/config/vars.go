package config

import "time"

type Config struct {
	Logger     Logger      `yaml:"logger"`
	HttpClient HttpClient  `yaml:"http_client"`
	Limits     Limits      `yaml:"limits"`
	Scan       ScanConfig  `yaml:"scan"`
	Audit      AuditConfig `yaml:"audit"`
}

type Logger struct {
	Level string `yaml:"level"`
}

type HttpClient struct {
	Debug            bool            `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TlsClientConfig  TlsClientConfig `yaml:"tls_client_config"`
}

type TlsClientConfig struct {
	Verify bool `yaml:"verify"`
}

// Limits holds the optional budget ceilings for the LLM-assisted audit.
// A nil ceiling means unbounded.
type Limits struct {
	MaxTokens   *int     `yaml:"max_tokens"`
	MaxRequests *int     `yaml:"max_requests"`
	MaxUSD      *float64 `yaml:"max_usd"`
}

// ScanConfig controls file-tree traversal.
type ScanConfig struct {
	ExcludePatterns []string `yaml:"exclude_patterns"`
	IncludeHidden   bool     `yaml:"include_hidden"`
	MaxFileSizeMB   int      `yaml:"max_file_size_mb"`
	Threads         int      `yaml:"threads"`
}

// AuditConfig controls the optional LLM review pass.
type AuditConfig struct {
	LLMModel       string       `yaml:"llm_model"`
	Temperature    float32      `yaml:"temperature"`
	EnableLLMAudit bool         `yaml:"enable_llm_audit"`
	CustomRules    []CustomRule `yaml:"custom_rules"`
}

// CustomRule is a user-supplied lexical rule evaluated alongside the
// built-in static heuristics.
type CustomRule struct {
	ID       string `yaml:"id"`
	Pattern  string `yaml:"pattern"`
	Severity string `yaml:"severity"`
	Message  string `yaml:"message"`
}

func intPtr(v int) *int             { return &v }
func float64Ptr(v float64) *float64 { return &v }

// DefaultConfig returns the configuration used when no .aiscan.yml exists.
func DefaultConfig() *Config {
	return &Config{
		Logger: Logger{Level: "info"},
		HttpClient: HttpClient{
			RetryCount:       3,
			RetryWaitTime:    5 * time.Second,
			RetryMaxWaitTime: 30 * time.Second,
			Timeout:          60 * time.Second,
			TlsClientConfig:  TlsClientConfig{Verify: true},
		},
		Limits: Limits{
			MaxTokens:   intPtr(50000),
			MaxRequests: intPtr(100),
			MaxUSD:      float64Ptr(20.0),
		},
		Scan: ScanConfig{
			ExcludePatterns: []string{
				"node_modules/**",
				"venv/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
			},
			IncludeHidden: false,
			MaxFileSizeMB: 10,
		},
		Audit: AuditConfig{
			LLMModel:       "gpt-4o",
			Temperature:    0.1,
			EnableLLMAudit: true,
		},
	}
}
