package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/haasonsaas/aiscan/pkg/shared/config"
)

// Analyzer reviews a rendered security prompt with an external LLM backend
// and returns its findings. Implementations own their transport details;
// failures are non-fatal to the audit.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) ([]SecurityFinding, error)
}

// NewAnalyzer selects a backend for the configured review model: Claude-class
// models go to the Anthropic API, everything else to the OpenAI API.
func NewAnalyzer(cfg *config.Config, logger hclog.Logger) (Analyzer, error) {
	if strings.HasPrefix(cfg.Audit.LLMModel, "claude") {
		analyzer, err := NewAnthropicAnalyzer(cfg, logger)
		if err != nil {
			return nil, err
		}
		return analyzer, nil
	}

	analyzer, err := NewOpenAIAnalyzer(cfg)
	if err != nil {
		return nil, err
	}
	return analyzer, nil
}

// parseFindings decodes the model's response into findings. Responses wrapped
// in markdown code fences are unwrapped first; findings without an id get a
// generated one so merge/dedup stays stable.
func parseFindings(content string) ([]SecurityFinding, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx >= 0 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
	}

	// Some models preface the array with prose; cut to the first bracket.
	if idx := strings.Index(content, "["); idx > 0 {
		content = content[idx:]
	}

	var findings []SecurityFinding
	if err := json.Unmarshal([]byte(content), &findings); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}

	for i := range findings {
		if findings[i].ID == "" {
			findings[i].ID = fmt.Sprintf("LLM-%s", uuid.NewString())
		}
		if _, ok := severityRank[findings[i].Severity]; !ok {
			findings[i].Severity = SeverityInfo
		}
	}
	return findings, nil
}
