package inventory

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/haasonsaas/aiscan/pkg/shared/files"
)

// Call is one detected AI/LLM invocation site, keyed by (file, line, column).
// Both matchers produce Calls; after normalization the record is immutable.
type Call struct {
	File    string                 `json:"file"`
	Line    int                    `json:"line"`
	Column  int                    `json:"column"`
	Wrapper string                 `json:"wrapper"`
	Model   string                 `json:"model,omitempty"`
	Params  map[string]interface{} `json:"params"`
	Context string                 `json:"context"`
}

// Inventory is the aggregate result of one scan invocation.
type Inventory struct {
	Calls          []Call `json:"ai_calls"`
	FilesScanned   int    `json:"files_scanned"`
	TotalLines     int    `json:"total_lines"`
	ScanDurationMs int64  `json:"scan_duration_ms"`
}

// WrapperCount pairs a wrapper identifier with its number of occurrences.
type WrapperCount struct {
	Wrapper string
	Count   int
}

// SaveToFile writes the inventory as pretty-printed JSON.
func (inv *Inventory) SaveToFile(path string) error {
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	return files.WriteJSONFile(path, data)
}

// TopWrappers returns wrapper usage counts sorted by frequency, most used first.
func (inv *Inventory) TopWrappers() []WrapperCount {
	counts := make(map[string]int)
	for _, call := range inv.Calls {
		counts[call.Wrapper]++
	}

	result := make([]WrapperCount, 0, len(counts))
	for wrapper, count := range counts {
		result = append(result, WrapperCount{Wrapper: wrapper, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Wrapper < result[j].Wrapper
	})
	return result
}

// Normalize sorts calls by (file, line, column) and collapses duplicate keys,
// keeping the first-seen record. The operation is idempotent, so it is safe
// to run per file and again over a whole inventory.
func Normalize(calls []Call) []Call {
	sort.SliceStable(calls, func(i, j int) bool {
		if calls[i].File != calls[j].File {
			return calls[i].File < calls[j].File
		}
		if calls[i].Line != calls[j].Line {
			return calls[i].Line < calls[j].Line
		}
		return calls[i].Column < calls[j].Column
	})

	deduped := calls[:0]
	for _, call := range calls {
		if n := len(deduped); n > 0 {
			last := deduped[n-1]
			if last.File == call.File && last.Line == call.Line && last.Column == call.Column {
				continue
			}
		}
		deduped = append(deduped, call)
	}
	return deduped
}
