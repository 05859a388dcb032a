package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/aftersale/casepipe/internal/llm"
)

// Client implements llm.ChatClient against Google Gemini. It serves as the
// alternate provider for the adjudicator's fallback tier.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  client.GenerativeModel(modelName),
		name:   modelName,
	}, nil
}

// Model reports the configured model identifier.
func (c *Client) Model() string { return c.name }

func (c *Client) Close() error { return c.client.Close() }

// Complete sends system and user prompts as a single text part. Gemini may
// still wrap JSON answers in markdown fences; callers recover with
// llm.ExtractJSONObject.
func (c *Client) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	prompt := req.SystemPrompt + "\n\n" + req.UserPrompt
	if req.ForceJSON {
		prompt += "\n\nRespond with a single JSON object and nothing else."
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}
