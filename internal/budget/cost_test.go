package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	c := NewTokenCounter()

	assert.Equal(t, 0, c.EstimateTokens("", "gpt-4o"))
	assert.GreaterOrEqual(t, c.EstimateTokens("x", "gpt-4o"), 1)

	short := c.EstimateTokens("hello world", "gpt-4o")
	long := c.EstimateTokens("hello world this is a much longer sentence with many more words", "gpt-4o")
	assert.Greater(t, long, short)
}

func TestEstimateCost(t *testing.T) {
	c := NewTokenCounter()
	usage := TokenUsage{PromptTokens: 1000, CompletionTokens: 1000, TotalTokens: 2000}

	tests := []struct {
		model string
		want  float64
	}{
		{"gpt-4o", 0.09},
		{"gpt-4o-mini", 0.00075},
		{"claude-3-opus", 0.09},
		{"claude-3-haiku", 0.0015},
		{"some-unknown-model", 0.004},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.InDelta(t, tt.want, c.EstimateCost(usage, tt.model), 1e-9)
		})
	}
}
