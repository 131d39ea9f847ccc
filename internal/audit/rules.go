package audit

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/haasonsaas/aiscan/internal/inventory"
	"github.com/haasonsaas/aiscan/pkg/shared/config"
)

// RuleEngine evaluates deterministic heuristics over an inventory. It is a
// pure function of its input and performs no I/O.
type RuleEngine struct {
	customRules []compiledCustomRule
}

type compiledCustomRule struct {
	config.CustomRule
	re *regexp.Regexp
}

// NewRuleEngine builds a rule engine, compiling any configured custom rules.
// Rules with invalid patterns are dropped with a warning.
func NewRuleEngine(rules []config.CustomRule, logger hclog.Logger) *RuleEngine {
	engine := &RuleEngine{}
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			if logger != nil {
				logger.Warn("ignoring custom rule with invalid pattern", "id", rule.ID, "error", err)
			}
			continue
		}
		engine.customRules = append(engine.customRules, compiledCustomRule{CustomRule: rule, re: re})
	}
	return engine
}

// Evaluate runs every heuristic against every call independently; all of
// them may fire for the same call.
func (e *RuleEngine) Evaluate(inv *inventory.Inventory) []SecurityFinding {
	var findings []SecurityFinding

	for _, call := range inv.Calls {
		if f, ok := checkAPIKeyExposure(call); ok {
			findings = append(findings, f)
		}
		if f, ok := checkMissingInputValidation(call); ok {
			findings = append(findings, f)
		}
		if f, ok := checkUnrestrictedModelAccess(call); ok {
			findings = append(findings, f)
		}
		findings = append(findings, e.evaluateCustomRules(call)...)
	}

	return findings
}

// checkAPIKeyExposure flags a context that mentions an API key without any
// environment-variable retrieval marker.
func checkAPIKeyExposure(call inventory.Call) (SecurityFinding, bool) {
	if !strings.Contains(call.Context, "api_key") && !strings.Contains(call.Context, "API_KEY") {
		return SecurityFinding{}, false
	}
	if strings.Contains(call.Context, "env") || strings.Contains(call.Context, "getenv") {
		return SecurityFinding{}, false
	}

	return SecurityFinding{
		ID:          fmt.Sprintf("STATIC-001-%s:%d", call.File, call.Line),
		Severity:    SeverityHigh,
		File:        call.File,
		Line:        call.Line,
		IssueType:   IssueAPIKeyExposure,
		Description: "Potential hardcoded API key detected",
		Rationale:   "API keys should be stored in environment variables or secure vaults, not in code",
		Fix:         "Move API key to environment variable or use a secrets management service",
	}, true
}

// checkMissingInputValidation flags chat/completion calls whose context lacks
// a validation or sanitization marker.
func checkMissingInputValidation(call inventory.Call) (SecurityFinding, bool) {
	if !strings.Contains(call.Wrapper, "chat") && !strings.Contains(call.Wrapper, "completion") {
		return SecurityFinding{}, false
	}
	if strings.Contains(call.Context, "validate") || strings.Contains(call.Context, "sanitize") {
		return SecurityFinding{}, false
	}

	return SecurityFinding{
		ID:          fmt.Sprintf("STATIC-002-%s:%d", call.File, call.Line),
		Severity:    SeverityMedium,
		File:        call.File,
		Line:        call.Line,
		IssueType:   IssueMissingInputValidation,
		Description: "AI call without apparent input validation",
		Rationale:   "User inputs to AI models should be validated to prevent prompt injection",
		Fix:         "Add input validation before passing to AI model",
	}, true
}

// checkUnrestrictedModelAccess flags expensive-model usage without a
// rate-limit or quota marker in the context.
func checkUnrestrictedModelAccess(call inventory.Call) (SecurityFinding, bool) {
	if !strings.Contains(call.Model, "gpt-4") && !strings.Contains(call.Model, "claude") {
		return SecurityFinding{}, false
	}
	if strings.Contains(call.Context, "limit") || strings.Contains(call.Context, "quota") {
		return SecurityFinding{}, false
	}

	return SecurityFinding{
		ID:          fmt.Sprintf("STATIC-003-%s:%d", call.File, call.Line),
		Severity:    SeverityMedium,
		File:        call.File,
		Line:        call.Line,
		IssueType:   IssueUnrestrictedModelAccess,
		Description: "Expensive model usage without rate limiting",
		Rationale:   "High-cost models should have usage limits to prevent abuse",
		Fix:         "Implement rate limiting or usage quotas for expensive model calls",
	}, true
}

func (e *RuleEngine) evaluateCustomRules(call inventory.Call) []SecurityFinding {
	var findings []SecurityFinding
	for _, rule := range e.customRules {
		if !rule.re.MatchString(call.Context) {
			continue
		}
		severity := Severity(strings.ToLower(rule.Severity))
		if _, ok := severityRank[severity]; !ok {
			severity = SeverityInfo
		}
		findings = append(findings, SecurityFinding{
			ID:          fmt.Sprintf("%s-%s:%d", rule.ID, call.File, call.Line),
			Severity:    severity,
			File:        call.File,
			Line:        call.Line,
			IssueType:   IssueCustomRule,
			Description: rule.Message,
			Rationale:   fmt.Sprintf("Matched custom rule %q", rule.ID),
			Fix:         "Review the flagged usage against the rule's intent",
		})
	}
	return findings
}
