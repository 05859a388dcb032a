package llm

// BuildClassificationSchema returns a JSON-Schema (draft 2020-12 subset) for
// the issue-classification payload. We pass the shape to the model as prompt
// guidance and use the schema locally to validate what comes back.
func BuildClassificationSchema(allowedCategories []string) map[string]any {
	category := map[string]any{"type": "string", "minLength": 1}
	if len(allowedCategories) > 0 {
		category = map[string]any{"type": "string", "enum": allowedCategories}
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category":               category,
			"reason":                 map[string]any{"type": "string"},
			"requires_manual_review": map[string]any{"type": "boolean"},
			"confidence_score":       map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"keywords": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"category", "reason", "requires_manual_review", "confidence_score"},
	}
}

// BuildVerdictSchema returns the schema for the adjudication payload.
func BuildVerdictSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"eligible": map[string]any{"type": "boolean"},
			"reason":   map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"eligible", "reason"},
	}
}
