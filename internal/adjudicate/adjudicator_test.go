package adjudicate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aftersale/casepipe/internal/common"
	"github.com/aftersale/casepipe/internal/llm"
)

type stubClient struct {
	content string
	err     error
	model   string
	calls   int
}

func (s *stubClient) Complete(_ context.Context, _ llm.ChatRequest) (string, error) {
	s.calls++
	return s.content, s.err
}

func (s *stubClient) Model() string { return s.model }

func newAdjudicator(primary, fallback llm.ChatClient) *Adjudicator {
	return New(primary, fallback, common.DefaultPolicyConfig(), time.Second, nil)
}

func TestAdjudicate_PrimaryModelWins(t *testing.T) {
	primary := &stubClient{content: `{"eligible": true, "reason": "Refundable meal purchase."}`, model: "gpt-4o-mini"}
	fallback := &stubClient{content: `{"eligible": false, "reason": "nope"}`, model: "fallback"}

	v := newAdjudicator(primary, fallback).Adjudicate(context.Background(), Context{Item: "team lunch"})

	assert.True(t, v.Eligible)
	assert.Equal(t, "gpt-4o-mini", v.Model)
	assert.Equal(t, 0, fallback.calls, "fallback tier must not run when primary succeeds")
}

func TestAdjudicate_FallbackModelOnPrimaryFailure(t *testing.T) {
	primary := &stubClient{err: errors.New("timeout"), model: "gpt-4o-mini"}
	fallback := &stubClient{content: "```json\n{\"eligible\": false, \"reason\": \"Excluded item.\"}\n```", model: "gemini-2.5-pro"}

	v := newAdjudicator(primary, fallback).Adjudicate(context.Background(), Context{Item: "red wine"})

	assert.False(t, v.Eligible)
	assert.Equal(t, "gemini-2.5-pro", v.Model)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestAdjudicate_HeuristicWhenBothModelsFail(t *testing.T) {
	primary := &stubClient{err: errors.New("boom"), model: "a"}
	fallback := &stubClient{content: "not json at all", model: "b"}

	v := newAdjudicator(primary, fallback).Adjudicate(context.Background(), Context{Item: "weekly grocery order"})

	assert.True(t, v.Eligible)
	assert.Equal(t, ModelHeuristic, v.Model)
}

func TestAdjudicate_MalformedVerdictFallsThrough(t *testing.T) {
	// wrong type for "eligible" fails schema validation
	primary := &stubClient{content: `{"eligible": "yes", "reason": "r"}`, model: "a"}

	v := newAdjudicator(primary, nil).Adjudicate(context.Background(), Context{Item: "mystery gadget"})
	assert.Equal(t, ModelHeuristic, v.Model)
	assert.False(t, v.Eligible)
}

func TestAdjudicate_NoCredentialsGoesStraightToHeuristic(t *testing.T) {
	v := newAdjudicator(nil, nil).Adjudicate(context.Background(), Context{Item: "restaurant dinner"})
	assert.True(t, v.Eligible)
	assert.Equal(t, ModelHeuristic, v.Model)
}

func TestBackfill_FromRawText(t *testing.T) {
	raw := "FRESH GROCER MARKET\nORGANIC APPLES\n$4.97\nTOTAL\n$12.34\n05/21/2023\nVISA"

	ec := Backfill(Context{RawText: raw})

	assert.Equal(t, "Organic Apples", ec.Item)
	require.NotNil(t, ec.Price)
	require.NotNil(t, ec.Price.Value)
	assert.Equal(t, 12.34, *ec.Price.Value)
	assert.Equal(t, "USD", ec.Price.Currency)
	require.NotNil(t, ec.Date)
	assert.Equal(t, "05/21/2023", ec.Date.Raw)
	assert.Equal(t, "2023-05-21", ec.Date.ISO)
	require.NotNil(t, ec.OCRConfidence)
	assert.Greater(t, *ec.OCRConfidence, 0.0)
}

func TestBackfill_SellerFallbackWhenNoItems(t *testing.T) {
	ec := Backfill(Context{RawText: "CORNER STORE\nTOTAL 9.99"})
	assert.Equal(t, "purchase at Corner Store", ec.Item)
}

func TestBackfill_NoOpWhenAlreadyPopulated(t *testing.T) {
	orig := Context{Item: "laptop", RawText: "TOTAL\n$999.00"}
	ec := Backfill(orig)
	assert.Equal(t, "laptop", ec.Item)
	assert.Nil(t, ec.Price, "populated contexts are not re-derived")
}

func TestBackfill_NoRawTextNoChange(t *testing.T) {
	ec := Backfill(Context{})
	assert.Empty(t, ec.Item)
	assert.Nil(t, ec.Price)
	assert.Nil(t, ec.Date)
}
