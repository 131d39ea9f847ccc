package report

import (
	"fmt"
	"os"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/haasonsaas/aiscan/internal/audit"
)

// ToSarif converts an audit result into a SARIF 2.1.0 report, one rule per
// issue type and one result per finding.
func ToSarif(result *audit.Result) (*sarif.Report, error) {
	sarifReport, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("aiscan", "https://github.com/haasonsaas/aiscan")
	for _, finding := range result.Findings {
		rule := run.AddRule(string(finding.IssueType)).
			WithDescription(finding.Description).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: toSarifLevel(finding.Severity),
			})

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(finding.File)).
				WithRegion(sarif.NewRegion().WithStartLine(finding.Line)),
		)

		sarifResult := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(finding.Description)).
			WithLevel(toSarifLevel(finding.Severity)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(sarifResult)
	}
	sarifReport.AddRun(run)

	return sarifReport, nil
}

// SaveSarif writes the audit result to path in SARIF format.
func SaveSarif(result *audit.Result, path string) error {
	sarifReport, err := ToSarif(result)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	defer func() { _ = file.Close() }()

	return sarifReport.PrettyWrite(file)
}

func toSarifLevel(severity audit.Severity) string {
	switch severity {
	case audit.SeverityCritical, audit.SeverityHigh:
		return "error"
	case audit.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}
