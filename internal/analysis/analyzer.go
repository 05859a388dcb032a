package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aftersale/casepipe/internal/llm"
)

// Result summarizes a complaint: the raw model text plus, when the model
// cooperated, parsed key points and suggested next steps.
type Result struct {
	Model            string   `json:"model"`
	IssueDescription string   `json:"issue_description"`
	Analysis         string   `json:"analysis"`
	KeyPoints        []string `json:"key_points"`
	Steps            []string `json:"steps"`
}

type Analyzer struct {
	client  llm.ChatClient
	timeout time.Duration
	logger  *slog.Logger
}

func New(client llm.ChatClient, timeout time.Duration, logger *slog.Logger) *Analyzer {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{client: client, timeout: timeout, logger: logger}
}

// Analyze asks the model for key points and next steps. A JSON miss degrades
// to raw text only; a transport failure returns the error alongside a Result
// that still carries the description.
func (a *Analyzer) Analyze(ctx context.Context, issueDescription string) (Result, error) {
	result := Result{
		IssueDescription: issueDescription,
		KeyPoints:        []string{},
		Steps:            []string{},
	}
	if a.client == nil {
		return result, fmt.Errorf("no chat model configured")
	}
	result.Model = a.client.Model()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	system, user := llm.BuildAnalysisPrompts(issueDescription)
	content, err := a.client.Complete(ctx, llm.ChatRequest{
		SystemPrompt: system,
		UserPrompt:   user,
		ForceJSON:    true,
	})
	if err != nil {
		a.logger.Warn("analysis.failed", "error", err)
		return result, err
	}
	result.Analysis = content

	raw, err := llm.ExtractJSONObject(content)
	if err != nil {
		// keep the raw text, parsed fields stay empty
		a.logger.Warn("analysis.parse_miss", "error", err)
		return result, nil
	}
	var parsed struct {
		KeyPoints []string `json:"key_points"`
		Steps     []string `json:"steps"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		a.logger.Warn("analysis.parse_miss", "error", err)
		return result, nil
	}
	if parsed.KeyPoints != nil {
		result.KeyPoints = parsed.KeyPoints
	}
	if parsed.Steps != nil {
		result.Steps = parsed.Steps
	}
	return result, nil
}
