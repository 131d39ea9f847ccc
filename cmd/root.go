package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	auditcmd "github.com/haasonsaas/aiscan/cmd/audit"
	"github.com/haasonsaas/aiscan/cmd/ci"
	"github.com/haasonsaas/aiscan/cmd/initcfg"
	"github.com/haasonsaas/aiscan/cmd/scan"
	"github.com/haasonsaas/aiscan/cmd/version"
	"github.com/haasonsaas/aiscan/pkg/shared/config"
	"github.com/haasonsaas/aiscan/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "aiscan [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Aiscan is a security scanner for AI/LLM usage in codebases.",
		Long: `Aiscan inventories AI/LLM API usage across a source tree with structural and
lexical matching, then audits the inventory with deterministic security rules
and an optional budget-gated LLM review.`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .aiscan.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(scan.ScanCmd)
	rootCmd.AddCommand(auditcmd.AuditCmd)
	rootCmd.AddCommand(ci.CiCmd)
	rootCmd.AddCommand(initcfg.InitCmd)
}

// Execute runs the root command and maps errors onto process exit codes.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		var exitErr *errors.ExitCodeError
		if stderrors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}

	scan.Init(AppConfig)
	auditcmd.Init(AppConfig)
	ci.Init(AppConfig)
}
