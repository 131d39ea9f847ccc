package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/haasonsaas/aiscan/internal/audit"
	"github.com/haasonsaas/aiscan/internal/budget"
	"github.com/haasonsaas/aiscan/internal/inventory"
	"github.com/haasonsaas/aiscan/pkg/shared/files"
)

// ToolVersion is stamped into report metadata; overridable at build time.
var ToolVersion = "0.1.0"

// Report is the full audit report consumed by humans and dashboards.
type Report struct {
	Metadata         Metadata         `json:"metadata"`
	InventorySummary InventorySummary `json:"inventory_summary"`
	SecuritySummary  SecuritySummary  `json:"security_summary"`
	Findings         []Finding        `json:"findings"`
	Recommendations  []string         `json:"recommendations"`
}

type Metadata struct {
	Version        string    `json:"version"`
	GeneratedAt    time.Time `json:"generated_at"`
	ScanDurationMs int64     `json:"scan_duration_ms"`
	ToolVersion    string    `json:"tool_version"`
}

type InventorySummary struct {
	TotalAICalls   int          `json:"total_ai_calls"`
	UniqueWrappers []string     `json:"unique_wrappers"`
	FilesWithAI    int          `json:"files_with_ai"`
	MostUsedModels []ModelUsage `json:"most_used_models"`
}

type ModelUsage struct {
	Model string `json:"model"`
	Count int    `json:"count"`
}

type SecuritySummary struct {
	TotalFindings int      `json:"total_findings"`
	Critical      int      `json:"critical"`
	High          int      `json:"high"`
	Medium        int      `json:"medium"`
	Low           int      `json:"low"`
	TopIssues     []string `json:"top_issues"`
}

// Finding is the report-facing projection of an audit finding.
type Finding struct {
	ID          string `json:"id"`
	Severity    string `json:"severity"`
	File        string `json:"file"`
	Line        int    `json:"line"`
	IssueType   string `json:"issue_type"`
	Description string `json:"description"`
	Fix         string `json:"fix"`
}

// CiReport is the machine-readable gate verdict for CI pipelines.
type CiReport struct {
	Passed   bool        `json:"passed"`
	ExitCode int         `json:"exit_code"`
	Summary  CiSummary   `json:"summary"`
	Failures []CiFailure `json:"failures"`
}

type CiSummary struct {
	FilesScanned   int           `json:"files_scanned"`
	AICallsFound   int           `json:"ai_calls_found"`
	SecurityIssues int           `json:"security_issues"`
	BudgetStatus   budget.Status `json:"budget_status"`
}

type CiFailure struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

// SaveToFile writes the report as pretty-printed JSON.
func (r *Report) SaveToFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return files.WriteJSONFile(path, data)
}

// Generate builds the full report from a scan and its audit result.
func Generate(inv *inventory.Inventory, result *audit.Result) *Report {
	wrapperCounts := make(map[string]int)
	modelCounts := make(map[string]int)
	filesWithAI := make(map[string]bool)

	for _, call := range inv.Calls {
		wrapperCounts[call.Wrapper]++
		if call.Model != "" {
			modelCounts[call.Model]++
		}
		filesWithAI[call.File] = true
	}

	uniqueWrappers := make([]string, 0, len(wrapperCounts))
	for wrapper := range wrapperCounts {
		uniqueWrappers = append(uniqueWrappers, wrapper)
	}
	sort.Strings(uniqueWrappers)

	modelUsage := make([]ModelUsage, 0, len(modelCounts))
	for model, count := range modelCounts {
		modelUsage = append(modelUsage, ModelUsage{Model: model, Count: count})
	}
	sort.Slice(modelUsage, func(i, j int) bool {
		if modelUsage[i].Count != modelUsage[j].Count {
			return modelUsage[i].Count > modelUsage[j].Count
		}
		return modelUsage[i].Model < modelUsage[j].Model
	})

	findings := make([]Finding, 0, len(result.Findings))
	for _, f := range result.Findings {
		findings = append(findings, Finding{
			ID:          f.ID,
			Severity:    string(f.Severity),
			File:        f.File,
			Line:        f.Line,
			IssueType:   string(f.IssueType),
			Description: f.Description,
			Fix:         f.Fix,
		})
	}

	return &Report{
		Metadata: Metadata{
			Version:        "1.0.0",
			GeneratedAt:    time.Now().UTC(),
			ScanDurationMs: inv.ScanDurationMs,
			ToolVersion:    ToolVersion,
		},
		InventorySummary: InventorySummary{
			TotalAICalls:   len(inv.Calls),
			UniqueWrappers: uniqueWrappers,
			FilesWithAI:    len(filesWithAI),
			MostUsedModels: modelUsage,
		},
		SecuritySummary: SecuritySummary{
			TotalFindings: result.Summary.TotalFindings,
			Critical:      result.Summary.Critical,
			High:          result.Summary.High,
			Medium:        result.Summary.Medium,
			Low:           result.Summary.Low,
			TopIssues:     topIssues(result),
		},
		Findings:        findings,
		Recommendations: recommendations(inv, result),
	}
}

// GenerateCI builds the CI gate verdict. Exit code 1 flags critical/high
// findings, 137 flags a breached budget.
func GenerateCI(inv *inventory.Inventory, result *audit.Result, budgetStatus budget.Status) *CiReport {
	hasCriticalIssues := result.HasHighSeverity()

	var failures []CiFailure
	if hasCriticalIssues {
		failures = append(failures, CiFailure{
			Reason: "Critical security issues found",
			Details: fmt.Sprintf("%d critical/high severity findings",
				result.Summary.Critical+result.Summary.High),
		})
	}
	if budgetStatus.Exceeded {
		failures = append(failures, CiFailure{
			Reason:  "Budget exceeded",
			Details: "Token or cost limits have been exceeded",
		})
	}

	exitCode := 0
	switch {
	case hasCriticalIssues:
		exitCode = 1
	case budgetStatus.Exceeded:
		exitCode = 137
	}

	return &CiReport{
		Passed:   len(failures) == 0,
		ExitCode: exitCode,
		Summary: CiSummary{
			FilesScanned:   inv.FilesScanned,
			AICallsFound:   len(inv.Calls),
			SecurityIssues: result.Summary.TotalFindings,
			BudgetStatus:   budgetStatus,
		},
		Failures: failures,
	}
}

func topIssues(result *audit.Result) []string {
	seen := make(map[string]bool)
	var issues []string
	for _, f := range result.Findings {
		issue := string(f.IssueType)
		if seen[issue] {
			continue
		}
		seen[issue] = true
		issues = append(issues, issue)
		if len(issues) == 5 {
			break
		}
	}
	return issues
}

func recommendations(inv *inventory.Inventory, result *audit.Result) []string {
	var recs []string

	hasIssue := func(issueType audit.IssueType) bool {
		for _, f := range result.Findings {
			if f.IssueType == issueType {
				return true
			}
		}
		return false
	}

	if hasIssue(audit.IssueAPIKeyExposure) {
		recs = append(recs, "Use environment variables or a secrets management service for API keys")
	}
	if hasIssue(audit.IssueMissingInputValidation) {
		recs = append(recs, "Implement input validation and sanitization for all user inputs to AI models")
	}

	expensiveModels := 0
	for _, call := range inv.Calls {
		if call.Model == "" {
			continue
		}
		if strings.Contains(call.Model, "gpt-4") || strings.Contains(call.Model, "claude") {
			expensiveModels++
		}
	}
	if expensiveModels > 10 {
		recs = append(recs, "Consider using cheaper models for non-critical tasks to reduce costs")
	}

	if len(inv.Calls) > 50 {
		recs = append(recs, "Implement centralized AI call management and monitoring")
	}

	if result.Summary.TotalFindings == 0 {
		recs = append(recs, "Great job! Continue to monitor AI usage and stay updated on security best practices")
	}

	return recs
}
