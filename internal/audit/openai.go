package audit

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/haasonsaas/aiscan/pkg/shared/config"
)

// OpenAIAnalyzer reviews inventories with an OpenAI chat model.
type OpenAIAnalyzer struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIAnalyzer builds the analyzer from the audit configuration. The
// API key comes from OPENAI_API_KEY.
func NewOpenAIAnalyzer(cfg *config.Config) (*OpenAIAnalyzer, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	return &OpenAIAnalyzer{
		client:      openai.NewClient(apiKey),
		model:       cfg.Audit.LLMModel,
		temperature: cfg.Audit.Temperature,
	}, nil
}

// Analyze sends the prompt to the chat completions API and parses the
// returned JSON findings.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, prompt string) ([]SecurityFinding, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: a.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return parseFindings(resp.Choices[0].Message.Content)
}
