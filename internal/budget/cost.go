package budget

import (
	"strings"
	"unicode/utf8"
)

// TokenUsage describes the token split of one estimated LLM request.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// modelPricing holds per-1K-token USD prices.
type modelPricing struct {
	input  float64
	output float64
}

// Pricing per 1K tokens, 2024 list prices. Estimates only, never
// billing-accurate.
var pricingTable = map[string]modelPricing{
	"gpt-4o":          {0.03, 0.06},
	"gpt-4":           {0.03, 0.06},
	"gpt-4o-mini":     {0.00015, 0.0006},
	"gpt-3.5-turbo":   {0.0005, 0.0015},
	"claude-3-opus":   {0.015, 0.075},
	"claude-3-sonnet": {0.003, 0.015},
	"claude-3-haiku":  {0.00025, 0.00125},
}

var defaultPricing = modelPricing{0.002, 0.002}

// TokenCounter estimates token counts and request costs for review models.
type TokenCounter struct{}

// NewTokenCounter creates a TokenCounter.
func NewTokenCounter() *TokenCounter {
	return &TokenCounter{}
}

// EstimateTokens approximates how many tokens the text encodes to. The
// heuristic blends rune count and word count, which tracks BPE tokenizers
// closely enough for budget gating.
func (c *TokenCounter) EstimateTokens(text, model string) int {
	runes := utf8.RuneCountInString(text)
	words := len(strings.Fields(text))

	// BPE output for English-heavy text sits between chars/4 and words*4/3.
	byRunes := runes / 4
	byWords := words * 4 / 3

	est := (byRunes + byWords) / 2
	if est < 1 && runes > 0 {
		est = 1
	}
	return est
}

// EstimateCost prices a token usage for the given model.
func (c *TokenCounter) EstimateCost(tokens TokenUsage, model string) float64 {
	pricing, ok := pricingTable[model]
	if !ok {
		pricing = defaultPricing
	}

	inputCost := float64(tokens.PromptTokens) / 1000.0 * pricing.input
	outputCost := float64(tokens.CompletionTokens) / 1000.0 * pricing.output
	return inputCost + outputCost
}
