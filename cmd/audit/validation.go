package audit

import (
	"fmt"
	"os"

	"github.com/haasonsaas/aiscan/pkg/shared/files"
)

// validateAuditArgs validates the arguments of the audit command and resolves
// the target directory.
func validateAuditArgs(options *RunOptionsAudit, args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("expected at most one path argument, got %d", len(args))
	}

	if options.Format != "json" && options.Format != "sarif" {
		return "", fmt.Errorf("unsupported format %q, expected json or sarif", options.Format)
	}
	if options.Format == "sarif" && options.OutputPath == "" {
		return "", fmt.Errorf("--format sarif requires --output")
	}

	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	expanded, err := files.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path %q: %w", path, err)
	}

	info, err := os.Stat(expanded)
	if err != nil {
		return "", fmt.Errorf("cannot access %q: %w", expanded, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("'%s' is not a directory", expanded)
	}

	return expanded, nil
}
