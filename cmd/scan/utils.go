package scan

import (
	"fmt"

	"github.com/haasonsaas/aiscan/internal/inventory"
)

// printScanSummary prints a human-readable digest of the scan result.
func printScanSummary(inv *inventory.Inventory) {
	fmt.Printf("Scanned %d files (%d lines) in %dms\n", inv.FilesScanned, inv.TotalLines, inv.ScanDurationMs)
	fmt.Printf("Found %d AI/LLM calls\n", len(inv.Calls))

	top := inv.TopWrappers()
	if len(top) == 0 {
		return
	}

	fmt.Println("Top wrappers:")
	limit := len(top)
	if limit > 10 {
		limit = 10
	}
	for _, wc := range top[:limit] {
		fmt.Printf("  %s: %d\n", wc.Wrapper, wc.Count)
	}
}
