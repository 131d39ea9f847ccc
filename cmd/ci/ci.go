package ci

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haasonsaas/aiscan/internal/audit"
	"github.com/haasonsaas/aiscan/internal/budget"
	"github.com/haasonsaas/aiscan/internal/report"
	"github.com/haasonsaas/aiscan/internal/scanner"
	"github.com/haasonsaas/aiscan/pkg/shared/config"
	"github.com/haasonsaas/aiscan/pkg/shared/errors"
	"github.com/haasonsaas/aiscan/pkg/shared/files"
	"github.com/haasonsaas/aiscan/pkg/shared/logger"
)

// RunOptionsCi holds the arguments of the ci command.
type RunOptionsCi struct {
	OutputPath string
}

// Global variables for configuration and command arguments
var (
	AppConfig *config.Config
	ciOptions RunOptionsCi

	exampleCiUsage = `  # Gate a pipeline on the current directory
  aiscan ci .

  # Gate a pipeline and also save the verdict to a file
  aiscan ci /path/to/project --output ci_report.json`
)

// CiCmd represents the command for the ci command.
var CiCmd = &cobra.Command{
	Use:                   "ci [path] [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleCiUsage,
	Short:                 "Scan, audit and emit a machine-readable pipeline verdict",
	Long: `Runs a scan and audit, prints the verdict as JSON on stdout, and exits with
code 1 when critical or high severity findings are present, or 137 when the
budget has been exceeded.`,
	RunE: runCiCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runCiCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-ci")

	path, err := validateCiArgs(args)
	if err != nil {
		log.Error("invalid ci arguments", "error", err)
		return fmt.Errorf("invalid ci arguments: %w", err)
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

	b := budget.FromConfig(AppConfig)

	var analyzer audit.Analyzer
	if AppConfig.Audit.EnableLLMAudit {
		a, err := audit.NewAnalyzer(AppConfig, log)
		if err != nil {
			log.Warn("llm review disabled", "error", err)
		} else {
			analyzer = a
		}
	}

	auditor := audit.NewSecurityAuditor(b, analyzer, AppConfig, log)
	result, err := auditor.Audit(cmd.Context(), inv, AppConfig)
	if err != nil {
		log.Error("audit failed", "error", err)
		return err
	}

	ciReport := report.GenerateCI(inv, result, b.Snapshot())

	data, err := json.MarshalIndent(ciReport, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling the ci report: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))

	if ciOptions.OutputPath != "" {
		if err := files.WriteJSONFile(ciOptions.OutputPath, data); err != nil {
			log.Error("failed to write ci report", "error", err)
			return err
		}
		log.Info("ci report saved to file", "path", ciOptions.OutputPath)
	}

	if ciReport.ExitCode != 0 {
		return errors.NewExitCodeError(ciReport.ExitCode, "pipeline gate failed")
	}
	return nil
}

func init() {
	CiCmd.Flags().StringVarP(&ciOptions.OutputPath, "output", "o", "", "Path to the output file where the verdict will also be saved.")
	CiCmd.Flags().BoolP("help", "h", false, "Show help for the ci command.")
}
