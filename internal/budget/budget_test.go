package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haasonsaas/aiscan/pkg/shared/config"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestConsumeTokenCeiling(t *testing.T) {
	b := &Budget{maxTokens: intPtr(1000)}

	require.NoError(t, b.Consume(500))

	err := b.Consume(600)
	require.Error(t, err)
	var exceeded *ExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, "token", exceeded.Resource)

	// A refused call leaves the state unchanged.
	require.NoError(t, b.Consume(500))
	assert.True(t, b.IsExceeded())
}

func TestConsumeRequestCeilingTrailingCheck(t *testing.T) {
	b := &Budget{maxRequests: intPtr(2)}

	require.NoError(t, b.Consume(10))
	require.NoError(t, b.Consume(10))

	// The breaching request is committed before the check fires.
	err := b.Consume(10)
	require.Error(t, err)
	var exceeded *ExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, "request", exceeded.Resource)
	assert.Equal(t, 3, b.Snapshot().UsedRequests)
	assert.True(t, b.IsExceeded())
}

func TestConsumeCost(t *testing.T) {
	b := &Budget{maxUSD: floatPtr(1.0)}

	require.NoError(t, b.ConsumeCost(0.75))

	err := b.ConsumeCost(0.5)
	require.Error(t, err)
	var exceeded *ExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, "cost", exceeded.Resource)

	// State is unchanged after the refusal.
	assert.InDelta(t, 0.75, b.Snapshot().UsedUSD, 1e-9)
	require.NoError(t, b.ConsumeCost(0.25))
	assert.True(t, b.IsExceeded())
}

func TestUnboundedBudget(t *testing.T) {
	b := &Budget{}

	for i := 0; i < 100; i++ {
		require.NoError(t, b.Consume(1_000_000))
	}
	require.NoError(t, b.ConsumeCost(1e6))
	assert.False(t, b.IsExceeded())

	_, ok := b.RemainingTokens()
	assert.False(t, ok)
	_, ok2 := b.RemainingUSD()
	assert.False(t, ok2)
}

func TestRemaining(t *testing.T) {
	b := &Budget{maxTokens: intPtr(100), maxUSD: floatPtr(2.0)}

	require.NoError(t, b.Consume(40))
	require.NoError(t, b.ConsumeCost(0.5))

	tokens, ok := b.RemainingTokens()
	require.True(t, ok)
	assert.Equal(t, 60, tokens)

	usd, ok := b.RemainingUSD()
	require.True(t, ok)
	assert.InDelta(t, 1.5, usd, 1e-9)
}

func TestFromConfigDefaults(t *testing.T) {
	b := FromConfig(config.DefaultConfig())
	status := b.Snapshot()

	require.NotNil(t, status.MaxTokens)
	assert.Equal(t, 50000, *status.MaxTokens)
	require.NotNil(t, status.MaxRequests)
	assert.Equal(t, 100, *status.MaxRequests)
	require.NotNil(t, status.MaxUSD)
	assert.InDelta(t, 20.0, *status.MaxUSD, 1e-9)
	assert.False(t, status.Exceeded)
}
