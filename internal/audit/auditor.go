package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/haasonsaas/aiscan/internal/budget"
	"github.com/haasonsaas/aiscan/internal/inventory"
	"github.com/haasonsaas/aiscan/pkg/shared/config"
)

// SecurityAuditor coordinates the audit passes: static rules always run, the
// LLM pass runs only when the inventory is non-empty, the pass is enabled,
// and the budget allows it. A failed LLM pass degrades to static-only
// findings with a warning, never a failed audit.
type SecurityAuditor struct {
	rules    *RuleEngine
	budget   *budget.Budget
	counter  *budget.TokenCounter
	analyzer Analyzer
	logger   hclog.Logger
}

// NewSecurityAuditor wires the coordinator. A nil analyzer disables the LLM
// pass outright.
func NewSecurityAuditor(b *budget.Budget, analyzer Analyzer, cfg *config.Config, logger hclog.Logger) *SecurityAuditor {
	return &SecurityAuditor{
		rules:    NewRuleEngine(cfg.Audit.CustomRules, logger),
		budget:   b,
		counter:  budget.NewTokenCounter(),
		analyzer: analyzer,
		logger:   logger,
	}
}

// Audit evaluates the inventory and returns the merged, deduplicated result.
func (a *SecurityAuditor) Audit(ctx context.Context, inv *inventory.Inventory, cfg *config.Config) (*Result, error) {
	findings := a.rules.Evaluate(inv)

	if len(inv.Calls) > 0 && cfg.Audit.EnableLLMAudit && a.analyzer != nil {
		llmFindings, err := a.llmAnalysis(ctx, inv, cfg)
		if err != nil {
			a.logger.Warn("llm analysis failed, continuing with static findings", "error", err)
		} else {
			findings = append(findings, llmFindings...)
		}
	}

	findings = mergeFindings(findings)

	return &Result{
		Findings: findings,
		Summary:  summarize(findings),
	}, nil
}

// llmAnalysis estimates the request, reserves the budget, and only then
// invokes the external analyzer. The budget lock is never held across the
// network call.
func (a *SecurityAuditor) llmAnalysis(ctx context.Context, inv *inventory.Inventory, cfg *config.Config) ([]SecurityFinding, error) {
	inventoryJSON, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize inventory: %w", err)
	}
	prompt := securityPrompt(string(inventoryJSON))

	model := cfg.Audit.LLMModel
	promptTokens := a.counter.EstimateTokens(prompt, model)
	usage := budget.TokenUsage{
		PromptTokens:     promptTokens,
		CompletionTokens: promptTokens / 2,
		TotalTokens:      promptTokens + promptTokens/2,
	}
	estimatedCost := a.counter.EstimateCost(usage, model)

	if err := a.budget.Consume(usage.TotalTokens); err != nil {
		return nil, err
	}
	if err := a.budget.ConsumeCost(estimatedCost); err != nil {
		return nil, err
	}

	if remaining, ok := a.budget.RemainingTokens(); ok {
		a.logger.Info("remaining token budget", "tokens", remaining)
	}
	if remaining, ok := a.budget.RemainingUSD(); ok {
		a.logger.Info("remaining cost budget", "usd", fmt.Sprintf("%.2f", remaining))
	}

	return a.analyzer.Analyze(ctx, prompt)
}

// mergeFindings sorts by (file, line, id) and removes exact-key duplicates.
func mergeFindings(findings []SecurityFinding) []SecurityFinding {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].ID < findings[j].ID
	})

	deduped := findings[:0]
	for _, f := range findings {
		if n := len(deduped); n > 0 {
			last := deduped[n-1]
			if last.File == f.File && last.Line == f.Line && last.ID == f.ID {
				continue
			}
		}
		deduped = append(deduped, f)
	}
	return deduped
}
