package initcfg

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/haasonsaas/aiscan/pkg/shared/config"
)

var exampleInitUsage = `  # Create a default .aiscan.yml in the current directory
  aiscan init

  # Create a default .aiscan.yml in a specific directory
  aiscan init /path/to/project`

// InitCmd represents the command for the init command.
var InitCmd = &cobra.Command{
	Use:                   "init [path]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleInitUsage,
	Short:                 "Create a default configuration file",
	Args:                  cobra.MaximumNArgs(1),
	RunE:                  runInitCommand,
}

func runInitCommand(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	if err := config.InitConfig(dir); err != nil {
		return fmt.Errorf("failed to create configuration: %w", err)
	}

	fmt.Printf("Created %s\n", filepath.Join(dir, config.DefaultConfigName))
	return nil
}
