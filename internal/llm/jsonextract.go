package llm

import (
	"fmt"
	"strings"
)

// ExtractJSONObject recovers a JSON object from model output that may be
// wrapped in markdown code fences or surrounded by prose. It slices from the
// first '{' to the last '}' without validating the content.
func ExtractJSONObject(text string) ([]byte, error) {
	text = strings.TrimSpace(text)

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	end := strings.LastIndex(text, "}")
	if end == -1 || end < start {
		return nil, fmt.Errorf("invalid JSON object in response")
	}
	return []byte(text[start : end+1]), nil
}
