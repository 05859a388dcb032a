package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aftersale/casepipe/constants"
	"github.com/aftersale/casepipe/internal/llm"
)

// Result is the classification payload. On any boundary failure the caller
// still receives a well-formed value; Fallback marks that the model path did
// not produce it.
type Result struct {
	Category             constants.Category `json:"category"`
	Reason               string             `json:"reason"`
	RequiresManualReview bool               `json:"requires_manual_review"`
	ConfidenceScore      float64            `json:"confidence_score"`
	Keywords             []string           `json:"keywords"`
	Model                string             `json:"model_used,omitempty"`
	InputLength          int                `json:"input_length,omitempty"`

	Fallback bool `json:"-"`
}

type Classifier struct {
	client  llm.ChatClient // nil means no credentials configured
	timeout time.Duration
	logger  *slog.Logger
}

func New(client llm.ChatClient, timeout time.Duration, logger *slog.Logger) *Classifier {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{client: client, timeout: timeout, logger: logger}
}

// Classify categorizes a free-text complaint. Transport and parse failures
// are absorbed into the fallback shape; this never returns an error.
func (c *Classifier) Classify(ctx context.Context, issueDescription string) Result {
	if c.client == nil {
		return c.fallback(issueDescription, fmt.Errorf("no chat model configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	content, err := c.client.Complete(ctx, llm.ChatRequest{
		SystemPrompt: llm.BuildClassificationSystemPrompt(constants.AsStringSlice()),
		UserPrompt:   issueDescription,
		ForceJSON:    true,
	})
	if err != nil {
		return c.fallback(issueDescription, err)
	}

	raw, err := llm.ExtractJSONObject(content)
	if err != nil {
		return c.fallback(issueDescription, err)
	}
	if err := llm.ValidateJSONAgainstSchema(llm.BuildClassificationSchema(nil), raw); err != nil {
		return c.fallback(issueDescription, err)
	}

	var parsed struct {
		Category             string   `json:"category"`
		Reason               string   `json:"reason"`
		RequiresManualReview bool     `json:"requires_manual_review"`
		ConfidenceScore      float64  `json:"confidence_score"`
		Keywords             []string `json:"keywords"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return c.fallback(issueDescription, err)
	}

	category, known := constants.Canonicalize(parsed.Category)
	result := Result{
		Category:             category,
		Reason:               parsed.Reason,
		RequiresManualReview: parsed.RequiresManualReview || !known,
		ConfidenceScore:      parsed.ConfidenceScore,
		Keywords:             parsed.Keywords,
		Model:                c.client.Model(),
		InputLength:          len(issueDescription),
	}
	c.logger.Info("classify.ok",
		"category", result.Category,
		"confidence", result.ConfidenceScore,
		"manual_review", result.RequiresManualReview,
	)
	return result
}

func (c *Classifier) fallback(issueDescription string, cause error) Result {
	c.logger.Warn("classify.fallback", "error", cause)
	return Result{
		Category:             constants.Other,
		Reason:               fmt.Sprintf("Classification failed: %v", cause),
		RequiresManualReview: true,
		ConfidenceScore:      0.0,
		Keywords:             []string{},
		InputLength:          len(issueDescription),
		Fallback:             true,
	}
}
