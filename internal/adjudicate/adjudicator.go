package adjudicate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aftersale/casepipe/internal/common"
	"github.com/aftersale/casepipe/internal/llm"
)

// Verdict is the eligibility determination. Model identifies which decision
// path produced it: a model identifier or ModelHeuristic.
type Verdict struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason"`
	Model    string `json:"model"`
}

// Outcome is one tier's result as data, so the fallback chain reads as a
// sequence rather than nested error handling.
type Outcome struct {
	Verdict Verdict
	Err     error
}

// Adjudicator runs the three-tier decision procedure: primary model, one
// retry against a designated fallback model, then the deterministic
// heuristic. Missing clients simply skip their tier.
type Adjudicator struct {
	primary  llm.ChatClient
	fallback llm.ChatClient
	policy   common.PolicyConfig
	timeout  time.Duration
	logger   *slog.Logger
}

func New(primary, fallback llm.ChatClient, policy common.PolicyConfig, timeout time.Duration, logger *slog.Logger) *Adjudicator {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adjudicator{
		primary:  primary,
		fallback: fallback,
		policy:   policy,
		timeout:  timeout,
		logger:   logger,
	}
}

// Adjudicate always produces a verdict; model-tier failures are absorbed into
// the chain, and the heuristic tier cannot fail.
func (a *Adjudicator) Adjudicate(ctx context.Context, ec Context) Verdict {
	ec = Backfill(ec)

	for _, client := range []llm.ChatClient{a.primary, a.fallback} {
		if client == nil {
			continue
		}
		out := a.tryModel(ctx, client, ec)
		if out.Err == nil {
			a.logger.Info("adjudicate.model.ok",
				"model", out.Verdict.Model,
				"eligible", out.Verdict.Eligible,
			)
			return out.Verdict
		}
		a.logger.Warn("adjudicate.model.failed", "model", client.Model(), "error", out.Err)
	}

	verdict := EvaluateHeuristic(ec, a.policy)
	a.logger.Info("adjudicate.heuristic", "eligible", verdict.Eligible)
	return verdict
}

func (a *Adjudicator) tryModel(ctx context.Context, client llm.ChatClient, ec Context) Outcome {
	ctxJSON, err := json.Marshal(ec)
	if err != nil {
		return Outcome{Err: fmt.Errorf("encode context: %w", err)}
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	content, err := client.Complete(callCtx, llm.ChatRequest{
		SystemPrompt: llm.BuildAdjudicationSystemPrompt(),
		UserPrompt:   llm.BuildAdjudicationUserPrompt(ctxJSON),
		ForceJSON:    true,
	})
	if err != nil {
		return Outcome{Err: err}
	}

	raw, err := llm.ExtractJSONObject(content)
	if err != nil {
		return Outcome{Err: err}
	}
	if err := llm.ValidateJSONAgainstSchema(llm.BuildVerdictSchema(), raw); err != nil {
		return Outcome{Err: err}
	}

	var parsed struct {
		Eligible bool   `json:"eligible"`
		Reason   string `json:"reason"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Outcome{Err: fmt.Errorf("decode verdict: %w", err)}
	}

	return Outcome{Verdict: Verdict{
		Eligible: parsed.Eligible,
		Reason:   parsed.Reason,
		Model:    client.Model(),
	}}
}
