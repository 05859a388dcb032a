package adjudicate

import (
	"strings"

	"github.com/aftersale/casepipe/internal/common"
)

// ModelHeuristic marks verdicts produced by the deterministic tier.
const ModelHeuristic = "heuristic"

// EvaluateHeuristic applies the deterministic policy rules in fixed order.
// Later rules can overturn earlier eligibility, but reasons from every fired
// rule stay in the final message. Always produces a verdict.
func EvaluateHeuristic(ec Context, policy common.PolicyConfig) Verdict {
	item := strings.ToLower(ec.Item)
	var reasons []string
	eligible := false
	matched := false

	if containsAnyKeyword(item, policy.EligibleKeywords) {
		eligible = true
		matched = true
		reasons = append(reasons, "Item appears to be a food or grocery purchase, which is refundable under policy.")
	}
	if containsAnyKeyword(item, policy.IneligibleKeywords) {
		eligible = false
		matched = true
		reasons = append(reasons, "Item appears to be an alcohol or tobacco purchase, which is excluded from refunds.")
	}
	if ec.Price != nil && ec.Price.Value != nil && *ec.Price.Value > policy.AmountLimit {
		eligible = false
		matched = true
		reasons = append(reasons, "Purchase total exceeds the automatic approval limit.")
	}
	if !matched {
		reasons = append(reasons, "Not eligible under the default policy.")
	}

	return Verdict{
		Eligible: eligible,
		Reason:   strings.Join(reasons, " "),
		Model:    ModelHeuristic,
	}
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
