package scan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haasonsaas/aiscan/internal/parser"
	"github.com/haasonsaas/aiscan/internal/scanner"
	"github.com/haasonsaas/aiscan/pkg/shared/config"
	"github.com/haasonsaas/aiscan/pkg/shared/logger"
)

// RunOptionsScan holds the arguments of the scan command.
type RunOptionsScan struct {
	OutputPath string
	Threads    int
}

// Global variables for configuration and command arguments
var (
	AppConfig   *config.Config
	scanOptions RunOptionsScan

	exampleScanUsage = `  # Scan the current directory and print a summary
  aiscan scan .

  # Scan a project and save the inventory as JSON
  aiscan scan /path/to/project --output ai_inventory.json

  # Scan with a fixed worker count
  aiscan scan /path/to/project --threads 4`
)

// ScanCmd represents the command for the scan command.
var ScanCmd = &cobra.Command{
	Use:                   "scan [path] [--output/-o PATH] [--threads N]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleScanUsage,
	Short:                 "Inventory AI/LLM API usage in a source tree",
	RunE:                  runScanCommand,
}

// Init initializes the global configuration variable and sets the long
// description for the ScanCmd command.
func Init(cfg *config.Config) {
	AppConfig = cfg
	ScanCmd.Long = generateLongDescription()
}

// generateLongDescription generates the long description dynamically with the
// list of structurally matched languages.
func generateLongDescription() string {
	exts := parser.SupportedExtensions()
	sort.Strings(exts)
	return fmt.Sprintf(`Inventory AI/LLM API usage in a source tree.

Files with these extensions get structural matching on top of the lexical
pattern table:
  %s`, strings.Join(exts, ", "))
}

func runScanCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-scan")

	path, err := validateScanArgs(&scanOptions, args)
	if err != nil {
		log.Error("invalid scan arguments", "error", err)
		return fmt.Errorf("invalid scan arguments: %w", err)
	}

	if scanOptions.Threads > 0 {
		AppConfig.Scan.Threads = scanOptions.Threads
	}

	s, err := scanner.New(AppConfig, log)
	if err != nil {
		log.Error("failed to initialize scanner", "error", err)
		return err
	}

	inv, err := s.ScanDirectory(path)
	if err != nil {
		log.Error("scan failed", "error", err)
		return err
	}

	log.Info("scan completed", "files", inv.FilesScanned, "calls", len(inv.Calls), "duration_ms", inv.ScanDurationMs)

	if scanOptions.OutputPath != "" {
		if err := inv.SaveToFile(scanOptions.OutputPath); err != nil {
			log.Error("failed to write inventory", "error", err)
			return err
		}
		log.Info("inventory saved to file", "path", scanOptions.OutputPath)
		return nil
	}

	printScanSummary(inv)
	return nil
}

func init() {
	ScanCmd.Flags().StringVarP(&scanOptions.OutputPath, "output", "o", "", "Path to the output file where the inventory will be saved as JSON.")
	ScanCmd.Flags().IntVar(&scanOptions.Threads, "threads", 0, "Number of scan workers (defaults to the number of CPUs).")
	ScanCmd.Flags().BoolP("help", "h", false, "Show help for the scan command.")
}
