package audit

// Severity levels, totally ordered from Critical down to Info.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
	SeverityInfo:     4,
}

// IssueType is the closed taxonomy of security issues, covering the OWASP
// LLM Top 10 (2024) plus additional operational concerns.
type IssueType string

const (
	IssueLLM01PromptInjection          IssueType = "LLM01PromptInjection"
	IssueLLM02InsecureOutputHandling   IssueType = "LLM02InsecureOutputHandling"
	IssueLLM03TrainingDataPoisoning    IssueType = "LLM03TrainingDataPoisoning"
	IssueLLM04ModelDoS                 IssueType = "LLM04ModelDoS"
	IssueLLM05SupplyChainVulnerability IssueType = "LLM05SupplyChainVulnerabilities"
	IssueLLM06SensitiveInfoDisclosure  IssueType = "LLM06SensitiveInfoDisclosure"
	IssueLLM07InsecurePluginDesign     IssueType = "LLM07InsecurePluginDesign"
	IssueLLM08ExcessiveAgency          IssueType = "LLM08ExcessiveAgency"
	IssueLLM09Overreliance             IssueType = "LLM09Overreliance"
	IssueLLM10ModelTheft               IssueType = "LLM10ModelTheft"

	IssueAPIKeyExposure          IssueType = "ApiKeyExposure"
	IssueMissingInputValidation  IssueType = "MissingInputValidation"
	IssueUnrestrictedModelAccess IssueType = "UnrestrictedModelAccess"
	IssueMissingRateLimiting     IssueType = "MissingRateLimiting"
	IssueInsecureModelStorage    IssueType = "InsecureModelStorage"
	IssueCustomRule              IssueType = "CustomRule"
)

// SecurityFinding is one security issue tied to a location, with a stable id
// so repeated runs on unchanged code deduplicate.
type SecurityFinding struct {
	ID          string    `json:"id"`
	Severity    Severity  `json:"severity"`
	File        string    `json:"file"`
	Line        int       `json:"line"`
	IssueType   IssueType `json:"issue_type"`
	Description string    `json:"description"`
	Rationale   string    `json:"rationale"`
	Fix         string    `json:"fix"`
}

// Summary counts findings per severity.
type Summary struct {
	TotalFindings int `json:"total_findings"`
	Critical      int `json:"critical"`
	High          int `json:"high"`
	Medium        int `json:"medium"`
	Low           int `json:"low"`
	Info          int `json:"info"`
}

// Result is the immutable outcome of one audit: deduplicated findings sorted
// by (file, line, id) plus the severity summary.
type Result struct {
	Findings []SecurityFinding `json:"findings"`
	Summary  Summary           `json:"summary"`
}

// HasHighSeverity reports whether any critical or high finding exists.
func (r *Result) HasHighSeverity() bool {
	return r.Summary.Critical > 0 || r.Summary.High > 0
}

func summarize(findings []SecurityFinding) Summary {
	summary := Summary{TotalFindings: len(findings)}
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			summary.Critical++
		case SeverityHigh:
			summary.High++
		case SeverityMedium:
			summary.Medium++
		case SeverityLow:
			summary.Low++
		case SeverityInfo:
			summary.Info++
		}
	}
	return summary
}
