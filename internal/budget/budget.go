package budget

import (
	"fmt"
	"sync"

	"github.com/haasonsaas/aiscan/pkg/shared/config"
)

// ExceededError reports a refused or breached budget ceiling.
type ExceededError struct {
	Resource string
	Detail   string
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("%s budget exceeded: %s", e.Resource, e.Detail)
}

// Budget tracks token, request and USD usage against optional ceilings.
// A nil ceiling means unbounded. It is the only shared mutable state on the
// audit path; every mutation happens inside one short critical section, and
// the lock is never held across an external LLM call.
type Budget struct {
	mu sync.Mutex

	maxTokens   *int
	maxRequests *int
	maxUSD      *float64

	usedTokens   int
	usedRequests int
	usedUSD      float64
}

// Status is a read-only snapshot of budget usage for display and reports.
type Status struct {
	UsedTokens   int      `json:"tokens_used"`
	MaxTokens    *int     `json:"tokens_limit"`
	UsedRequests int      `json:"requests_used"`
	MaxRequests  *int     `json:"requests_limit"`
	UsedUSD      float64  `json:"cost_usd"`
	MaxUSD       *float64 `json:"cost_limit"`
	Exceeded     bool     `json:"exceeded"`
}

// FromConfig builds a Budget from the configured limits.
func FromConfig(cfg *config.Config) *Budget {
	return &Budget{
		maxTokens:   cfg.Limits.MaxTokens,
		maxRequests: cfg.Limits.MaxRequests,
		maxUSD:      cfg.Limits.MaxUSD,
	}
}

// Consume reserves tokens for one request. The token ceiling is checked
// before committing, so a refused call leaves the state unchanged. The
// request counter is incremented after the commit and checked afterwards:
// the request that breaches the request ceiling is already paid for and
// still succeeds, while later calls are blocked through IsExceeded. That
// boundary behavior is deliberate.
func (b *Budget) Consume(tokens int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxTokens != nil && b.usedTokens+tokens > *b.maxTokens {
		return &ExceededError{
			Resource: "token",
			Detail:   fmt.Sprintf("%d + %d > %d", b.usedTokens, tokens, *b.maxTokens),
		}
	}

	b.usedTokens += tokens
	b.usedRequests++

	if b.maxRequests != nil && b.usedRequests > *b.maxRequests {
		return &ExceededError{
			Resource: "request",
			Detail:   fmt.Sprintf("%d > %d", b.usedRequests, *b.maxRequests),
		}
	}

	return nil
}

// ConsumeCost reserves USD cost, checking the ceiling before committing.
func (b *Budget) ConsumeCost(costUSD float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxUSD != nil && b.usedUSD+costUSD > *b.maxUSD {
		return &ExceededError{
			Resource: "cost",
			Detail:   fmt.Sprintf("$%.2f + $%.2f > $%.2f", b.usedUSD, costUSD, *b.maxUSD),
		}
	}

	b.usedUSD += costUSD
	return nil
}

// IsExceeded reports whether any configured ceiling has been reached.
func (b *Budget) IsExceeded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxTokens != nil && b.usedTokens >= *b.maxTokens {
		return true
	}
	if b.maxRequests != nil && b.usedRequests >= *b.maxRequests {
		return true
	}
	if b.maxUSD != nil && b.usedUSD >= *b.maxUSD {
		return true
	}
	return false
}

// RemainingTokens returns the unused token allowance. The second return is
// false when no token ceiling is configured.
func (b *Budget) RemainingTokens() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxTokens == nil {
		return 0, false
	}
	remaining := *b.maxTokens - b.usedTokens
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// RemainingUSD returns the unused cost allowance. The second return is false
// when no cost ceiling is configured.
func (b *Budget) RemainingUSD() (float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxUSD == nil {
		return 0, false
	}
	return *b.maxUSD - b.usedUSD, true
}

// Snapshot returns the current usage for status display.
func (b *Budget) Snapshot() Status {
	b.mu.Lock()
	usedTokens, usedRequests, usedUSD := b.usedTokens, b.usedRequests, b.usedUSD
	maxTokens, maxRequests, maxUSD := b.maxTokens, b.maxRequests, b.maxUSD
	b.mu.Unlock()

	return Status{
		UsedTokens:   usedTokens,
		MaxTokens:    maxTokens,
		UsedRequests: usedRequests,
		MaxRequests:  maxRequests,
		UsedUSD:      usedUSD,
		MaxUSD:       maxUSD,
		Exceeded:     b.IsExceeded(),
	}
}
