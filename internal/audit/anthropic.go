package audit

import (
	"context"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/haasonsaas/aiscan/pkg/shared/config"
	"github.com/haasonsaas/aiscan/pkg/shared/httpclient"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicAPIVersion  = "2023-06-01"

	// Upper bound for the review response, not a budget ceiling.
	anthropicMaxTokens = 4096
)

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float32            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// AnthropicAnalyzer reviews inventories with a Claude model over the
// Anthropic messages API.
type AnthropicAnalyzer struct {
	client      *resty.Client
	apiKey      string
	model       string
	temperature float32
}

// NewAnthropicAnalyzer builds the analyzer from the audit configuration. The
// API key comes from ANTHROPIC_API_KEY.
func NewAnthropicAnalyzer(cfg *config.Config, logger hclog.Logger) (*AnthropicAnalyzer, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}

	return &AnthropicAnalyzer{
		client:      httpclient.NewRestyClient(logger, cfg),
		apiKey:      apiKey,
		model:       cfg.Audit.LLMModel,
		temperature: cfg.Audit.Temperature,
	}, nil
}

// Analyze sends the prompt to the messages API and parses the returned JSON
// findings.
func (a *AnthropicAnalyzer) Analyze(ctx context.Context, prompt string) ([]SecurityFinding, error) {
	var result anthropicResponse

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", a.apiKey).
		SetHeader("anthropic-version", anthropicAPIVersion).
		SetHeader("content-type", "application/json").
		SetBody(anthropicRequest{
			Model:       a.model,
			MaxTokens:   anthropicMaxTokens,
			Temperature: a.temperature,
			Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(&result).
		SetError(&result).
		Post(anthropicMessagesURL)
	if err != nil {
		return nil, fmt.Errorf("messages request failed: %w", err)
	}

	if resp.IsError() {
		if result.Error != nil {
			return nil, fmt.Errorf("messages request failed: %s: %s", result.Error.Type, result.Error.Message)
		}
		return nil, fmt.Errorf("messages request failed with status %s", resp.Status())
	}
	if len(result.Content) == 0 {
		return nil, fmt.Errorf("messages response contained no content")
	}

	return parseFindings(result.Content[0].Text)
}
