package audit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haasonsaas/aiscan/internal/audit"
	"github.com/haasonsaas/aiscan/internal/budget"
	"github.com/haasonsaas/aiscan/internal/inventory"
	"github.com/haasonsaas/aiscan/internal/report"
	"github.com/haasonsaas/aiscan/internal/scanner"
	"github.com/haasonsaas/aiscan/pkg/shared/config"
	"github.com/haasonsaas/aiscan/pkg/shared/logger"
)

// RunOptionsAudit holds the arguments of the audit command.
type RunOptionsAudit struct {
	OutputPath string
	Format     string
	NoLLM      bool
}

// Global variables for configuration and command arguments
var (
	AppConfig    *config.Config
	auditOptions RunOptionsAudit

	exampleAuditUsage = `  # Audit the current directory and print findings
  aiscan audit .

  # Audit a project and save the full report as JSON
  aiscan audit /path/to/project --output ai_audit_report.json

  # Export findings as SARIF for code-scanning integrations
  aiscan audit /path/to/project --output findings.sarif --format sarif

  # Run the deterministic rules only, skipping the LLM review
  aiscan audit /path/to/project --no-llm`
)

// AuditCmd represents the command for the audit command.
var AuditCmd = &cobra.Command{
	Use:                   "audit [path] [--output/-o PATH] [--format json|sarif] [--no-llm]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAuditUsage,
	Short:                 "Audit AI/LLM usage for security issues",
	RunE:                  runAuditCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runAuditCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-audit")

	path, err := validateAuditArgs(&auditOptions, args)
	if err != nil {
		log.Error("invalid audit arguments", "error", err)
		return fmt.Errorf("invalid audit arguments: %w", err)
	}

	if auditOptions.NoLLM {
		AppConfig.Audit.EnableLLMAudit = false
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
	log.Info("scan completed", "files", inv.FilesScanned, "calls", len(inv.Calls))

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

	if auditOptions.OutputPath != "" {
		if auditOptions.Format == "sarif" {
			if err := report.SaveSarif(result, auditOptions.OutputPath); err != nil {
				log.Error("failed to write SARIF report", "error", err)
				return err
			}
		} else {
			rep := report.Generate(inv, result)
			if err := rep.SaveToFile(auditOptions.OutputPath); err != nil {
				log.Error("failed to write report", "error", err)
				return err
			}
		}
		log.Info("report saved to file", "path", auditOptions.OutputPath)
		return nil
	}

	printAuditResult(inv, result, b.Snapshot())
	return nil
}

// printAuditResult prints findings and budget usage in a human-readable form.
func printAuditResult(inv *inventory.Inventory, result *audit.Result, status budget.Status) {
	fmt.Printf("Audited %d AI/LLM calls across %d files\n", len(inv.Calls), inv.FilesScanned)
	fmt.Printf("Findings: %d (critical: %d, high: %d, medium: %d, low: %d)\n",
		result.Summary.TotalFindings, result.Summary.Critical, result.Summary.High,
		result.Summary.Medium, result.Summary.Low)

	for _, f := range result.Findings {
		fmt.Printf("  [%s] %s %s:%d %s\n", f.Severity, f.ID, f.File, f.Line, f.Description)
	}

	if status.UsedTokens > 0 || status.UsedUSD > 0 {
		fmt.Printf("Budget: %d tokens, %d requests, $%.4f used\n",
			status.UsedTokens, status.UsedRequests, status.UsedUSD)
	}
}

func init() {
	AuditCmd.Flags().StringVarP(&auditOptions.OutputPath, "output", "o", "", "Path to the output file where the report will be saved.")
	AuditCmd.Flags().StringVar(&auditOptions.Format, "format", "json", "Report format: json or sarif.")
	AuditCmd.Flags().BoolVar(&auditOptions.NoLLM, "no-llm", false, "Disable the LLM review pass, keeping deterministic rules only.")
	AuditCmd.Flags().BoolP("help", "h", false, "Show help for the audit command.")
}
