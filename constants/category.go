package constants

import (
	"strings"
)

// Category is an issue category assigned by the classifier.
type Category string

const (
	Delivery  Category = "delivery"
	Damaged   Category = "damaged"
	WrongItem Category = "wrong_item"
	Refund    Category = "refund"
	Warranty  Category = "warranty"
	Other     Category = "other"
)

var allCategories = []Category{
	Delivery,
	Damaged,
	WrongItem,
	Refund,
	Warranty,
	Other,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps free-form classifier output onto the fixed vocabulary.
// Unknown labels fall back to Other.
func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	// synonyms map
	synonyms := map[string]Category{
		"shipping":      Delivery,
		"late_delivery": Delivery,
		"not_delivered": Delivery,
		"lost_package":  Delivery,
		"broken":        Damaged,
		"defective":     Damaged,
		"damage":        Damaged,
		"wrong_product": WrongItem,
		"wrong_order":   WrongItem,
		"mismatch":      WrongItem,
		"return":        Refund,
		"chargeback":    Refund,
		"guarantee":     Warranty,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	for _, cat := range allCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}

	return Other, false
}
