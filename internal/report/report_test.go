package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haasonsaas/aiscan/internal/audit"
	"github.com/haasonsaas/aiscan/internal/budget"
	"github.com/haasonsaas/aiscan/internal/inventory"
)

func testAuditResult() *audit.Result {
	findings := []audit.SecurityFinding{
		{ID: "STATIC-001-a.py:3", Severity: audit.SeverityHigh, File: "a.py", Line: 3, IssueType: audit.IssueAPIKeyExposure, Description: "hardcoded key"},
		{ID: "STATIC-002-a.py:9", Severity: audit.SeverityMedium, File: "a.py", Line: 9, IssueType: audit.IssueMissingInputValidation, Description: "no validation"},
	}
	return &audit.Result{
		Findings: findings,
		Summary:  audit.Summary{TotalFindings: 2, High: 1, Medium: 1},
	}
}

func testReportInventory() *inventory.Inventory {
	return &inventory.Inventory{
		Calls: []inventory.Call{
			{File: "a.py", Line: 3, Wrapper: "openai_config"},
			{File: "a.py", Line: 9, Wrapper: "client.chat", Model: "gpt-4"},
			{File: "b.py", Line: 1, Wrapper: "client.chat", Model: "gpt-4"},
		},
		FilesScanned:   5,
		TotalLines:     120,
		ScanDurationMs: 42,
	}
}

func TestGenerate(t *testing.T) {
	rep := Generate(testReportInventory(), testAuditResult())

	assert.Equal(t, ToolVersion, rep.Metadata.ToolVersion)
	assert.Equal(t, int64(42), rep.Metadata.ScanDurationMs)

	assert.Equal(t, 3, rep.InventorySummary.TotalAICalls)
	assert.Equal(t, 2, rep.InventorySummary.FilesWithAI)
	assert.Equal(t, []string{"client.chat", "openai_config"}, rep.InventorySummary.UniqueWrappers)
	require.Len(t, rep.InventorySummary.MostUsedModels, 1)
	assert.Equal(t, ModelUsage{Model: "gpt-4", Count: 2}, rep.InventorySummary.MostUsedModels[0])

	assert.Equal(t, 2, rep.SecuritySummary.TotalFindings)
	assert.Equal(t, 1, rep.SecuritySummary.High)
	assert.Equal(t, []string{"ApiKeyExposure", "MissingInputValidation"}, rep.SecuritySummary.TopIssues)

	require.Len(t, rep.Findings, 2)
	assert.Equal(t, "STATIC-001-a.py:3", rep.Findings[0].ID)
	assert.Equal(t, "high", rep.Findings[0].Severity)

	assert.Contains(t, rep.Recommendations, "Use environment variables or a secrets management service for API keys")
	assert.Contains(t, rep.Recommendations, "Implement input validation and sanitization for all user inputs to AI models")
}

func TestGenerateCleanResult(t *testing.T) {
	rep := Generate(&inventory.Inventory{FilesScanned: 1}, &audit.Result{})

	assert.Equal(t, 0, rep.SecuritySummary.TotalFindings)
	require.Len(t, rep.Recommendations, 1)
	assert.Contains(t, rep.Recommendations[0], "Great job")
}

func TestGenerateCIPasses(t *testing.T) {
	ci := GenerateCI(testReportInventory(), &audit.Result{}, budget.Status{})

	assert.True(t, ci.Passed)
	assert.Equal(t, 0, ci.ExitCode)
	assert.Empty(t, ci.Failures)
	assert.Equal(t, 5, ci.Summary.FilesScanned)
	assert.Equal(t, 3, ci.Summary.AICallsFound)
}

func TestGenerateCIHighSeverityGate(t *testing.T) {
	ci := GenerateCI(testReportInventory(), testAuditResult(), budget.Status{})

	assert.False(t, ci.Passed)
	assert.Equal(t, 1, ci.ExitCode)
	require.Len(t, ci.Failures, 1)
	assert.Equal(t, "Critical security issues found", ci.Failures[0].Reason)
}

func TestGenerateCIBudgetGate(t *testing.T) {
	ci := GenerateCI(testReportInventory(), &audit.Result{}, budget.Status{Exceeded: true})

	assert.False(t, ci.Passed)
	assert.Equal(t, 137, ci.ExitCode)
	require.Len(t, ci.Failures, 1)
	assert.Equal(t, "Budget exceeded", ci.Failures[0].Reason)
}

func TestGenerateCISeverityOutranksBudget(t *testing.T) {
	ci := GenerateCI(testReportInventory(), testAuditResult(), budget.Status{Exceeded: true})

	assert.False(t, ci.Passed)
	assert.Equal(t, 1, ci.ExitCode)
	assert.Len(t, ci.Failures, 2)
}

func TestToSarif(t *testing.T) {
	sarifReport, err := ToSarif(testAuditResult())
	require.NoError(t, err)

	require.Len(t, sarifReport.Runs, 1)
	run := sarifReport.Runs[0]
	assert.Len(t, run.Results, 2)

	require.NotNil(t, run.Results[0].Level)
	assert.Equal(t, "error", *run.Results[0].Level)
	require.NotNil(t, run.Results[1].Level)
	assert.Equal(t, "warning", *run.Results[1].Level)
}
