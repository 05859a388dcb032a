package llm

import "context"

// ChatRequest is a provider-neutral chat call: one system message, one user
// message, optionally constrained to a JSON object response.
type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	ForceJSON    bool
}

// ChatClient is the interface the classifier and adjudicator depend on.
// Implementations must respect ctx deadlines; transport, auth and rate-limit
// handling live behind this boundary.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
	// Model identifies the decision path in verdicts and logs.
	Model() string
}
