package adjudicate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aftersale/casepipe/internal/common"
)

func f64(v float64) *float64 { return &v }

func TestHeuristic_FoodEligible(t *testing.T) {
	v := EvaluateHeuristic(Context{Item: "organic apples from the grocery store"}, common.DefaultPolicyConfig())
	// "grocer" keyword fires
	assert.True(t, v.Eligible)
	assert.Equal(t, ModelHeuristic, v.Model)
	assert.Contains(t, v.Reason, "food or grocery")
}

func TestHeuristic_MealEligible(t *testing.T) {
	v := EvaluateHeuristic(Context{Item: "Family Meal Deal"}, common.DefaultPolicyConfig())
	assert.True(t, v.Eligible)
}

func TestHeuristic_AlcoholIneligible(t *testing.T) {
	v := EvaluateHeuristic(Context{Item: "red wine"}, common.DefaultPolicyConfig())
	assert.False(t, v.Eligible)
	assert.Contains(t, v.Reason, "alcohol or tobacco")
}

func TestHeuristic_AlcoholOverridesFood(t *testing.T) {
	// both rule sets fire; the later exclusion rule wins, both reasons remain
	v := EvaluateHeuristic(Context{Item: "restaurant wine pairing"}, common.DefaultPolicyConfig())
	assert.False(t, v.Eligible)
	assert.Contains(t, v.Reason, "food or grocery")
	assert.Contains(t, v.Reason, "alcohol or tobacco")
}

func TestHeuristic_AmountLimitOverrides(t *testing.T) {
	v := EvaluateHeuristic(Context{
		Item:  "groceries",
		Price: &Money{Currency: "USD", Value: f64(600)},
	}, common.DefaultPolicyConfig())
	assert.False(t, v.Eligible)
	assert.Contains(t, v.Reason, "food or grocery")
	assert.Contains(t, v.Reason, "approval limit")
}

func TestHeuristic_AmountAtLimitStillEligible(t *testing.T) {
	v := EvaluateHeuristic(Context{
		Item:  "groceries",
		Price: &Money{Currency: "USD", Value: f64(500)},
	}, common.DefaultPolicyConfig())
	assert.True(t, v.Eligible, "limit rule is strictly greater-than")
}

func TestHeuristic_DefaultDeny(t *testing.T) {
	v := EvaluateHeuristic(Context{Item: "mystery gadget"}, common.DefaultPolicyConfig())
	assert.False(t, v.Eligible)
	assert.Contains(t, v.Reason, "default policy")
	assert.Equal(t, ModelHeuristic, v.Model)
}

func TestHeuristic_EmptyContextStillVerdicts(t *testing.T) {
	v := EvaluateHeuristic(Context{}, common.DefaultPolicyConfig())
	assert.False(t, v.Eligible)
	assert.NotEmpty(t, v.Reason)
}

func TestHeuristic_ConfigurableLimit(t *testing.T) {
	policy := common.DefaultPolicyConfig()
	policy.AmountLimit = 50
	v := EvaluateHeuristic(Context{
		Item:  "team lunch meal",
		Price: &Money{Currency: "USD", Value: f64(60)},
	}, policy)
	assert.False(t, v.Eligible)
}
