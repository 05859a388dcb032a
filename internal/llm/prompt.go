package llm

import (
	"fmt"
	"strings"
)

// BuildClassificationSystemPrompt composes the system message for issue
// classification: fixed vocabulary, JSON-only output, manual-review rubric.
func BuildClassificationSystemPrompt(allowedCategories []string) string {
	var catLine string
	if len(allowedCategories) > 0 {
		catLine = "The 'category' MUST be exactly one of: " + strings.Join(allowedCategories, ", ") + ". " +
			"If uncertain, choose 'other'. "
	} else {
		catLine = "The 'category' must be a short lowercase snake_case label; if uncertain, use 'other'. "
	}

	parts := []string{
		"You are an e-commerce after-sales dispute classifier.",
		"Given a customer's issue description, return ONLY a compact JSON object with this structure and nothing else (no markdown):",
		`{"category": string, "reason": string, "requires_manual_review": boolean, "confidence_score": number, "keywords": [string]}`,
		catLine,
		"'reason' is one sentence explaining the choice.",
		"Set 'requires_manual_review' to true when the description is ambiguous, mentions legal action, or does not fit the vocabulary.",
		"'confidence_score' is your certainty in [0,1].",
		"'keywords' lists up to 5 salient terms from the description.",
	}
	return strings.Join(parts, " ")
}

// BuildAdjudicationSystemPrompt is the fixed refund-eligibility policy prompt.
func BuildAdjudicationSystemPrompt() string {
	parts := []string{
		"You are a refund eligibility adjudicator for an after-sales dispute system.",
		"Policy: everyday food, meal, grocery and restaurant purchases are refundable;",
		"alcohol, wine, beer and tobacco purchases are never refundable;",
		"purchases above 500 in the stated currency are not auto-refundable and must be declined;",
		"when the evidence is insufficient, decline.",
		"Return ONLY a compact JSON object and nothing else (no markdown):",
		`{"eligible": boolean, "reason": string}`,
		"'reason' is a short customer-readable rationale.",
	}
	return strings.Join(parts, " ")
}

// BuildAdjudicationUserPrompt serializes the adjudication context for the model.
func BuildAdjudicationUserPrompt(contextJSON []byte) string {
	var b strings.Builder
	b.WriteString("Case context (extracted from the purchase receipt):\n")
	b.Write(contextJSON)
	b.WriteString("\n\nDecide refund eligibility under the policy.")
	return b.String()
}

// BuildAnalysisPrompts composes the issue-summary prompts: key points plus
// up to three actionable next steps.
func BuildAnalysisPrompts(issueDescription string) (system, user string) {
	system = "You are an e-commerce after-sales dispute assistant. Based on the user's issue description, " +
		"provide a concise summary of the key points and actionable next-step suggestions."
	user = fmt.Sprintf(
		"Issue description:\n%s\n\n"+
			"Return ONLY a compact JSON object with the following structure and nothing else (no markdown):\n"+
			"{\n  \"key_points\": [string],\n  \"steps\": [string]\n}\n"+
			"- key_points: bullet points summarizing the core problems.\n"+
			"- steps: up to 3 actionable next steps.\n",
		issueDescription,
	)
	return system, user
}
