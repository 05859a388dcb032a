package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/aftersale/casepipe/internal/common"
)

var (
	reCapsRun   = regexp.MustCompile(`[A-Z]{3,}`)
	reTCNumber  = regexp.MustCompile(`TC[#:\s]*([0-9]+)`)
	reTRNumber  = regexp.MustCompile(`TR[#:\s]*([0-9]+)`)
	reRefNumber = regexp.MustCompile(`REF[#:\s]*([A-Z0-9]+)`)
	reDate      = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
	rePayment   = regexp.MustCompile(`VISA|MASTERCARD|AMEX|PAYPAL|CASH|CARD`)
	reAmount    = regexp.MustCompile(`[0-9]+\.[0-9]{2}`)
	reBarePrice = regexp.MustCompile(`^\$?([0-9]+\.[0-9]{2})$`)
)

// ParseFields derives structured receipt fields from normalized lines using
// the default heuristic configuration.
func ParseFields(lines []string) ParsedReceipt {
	return ParseFieldsWithConfig(lines, common.DefaultExtractConfig())
}

// ParseFieldsWithConfig runs the per-field heuristics. Each field is extracted
// independently, first match wins, and a miss leaves the field unset with
// confidence 0. The item-list pass is a positional two-line heuristic tuned to
// specific receipt layouts; it does not generalize and is not meant to.
func ParseFieldsWithConfig(lines []string, cfg common.ExtractConfig) ParsedReceipt {
	result := ParsedReceipt{
		PurchaseTotal: Total{Currency: "USD"},
		Confidence: FieldConfidence{
			FieldSellerName:    0.0,
			FieldReceiptID:     0.0,
			FieldPurchaseDate:  0.0,
			FieldPurchaseTotal: 0.0,
			FieldItemList:      0.0,
			FieldPaymentMethod: 0.0,
		},
	}
	if len(lines) == 0 {
		return result
	}
	joined := strings.Join(lines, " ")

	// Seller name: first line with a decent run of capitals.
	for _, line := range lines {
		if reCapsRun.MatchString(line) {
			result.SellerName = titleCase(line)
			result.Confidence[FieldSellerName] = 1.0
			break
		}
	}

	// Receipt/order number: TC# then TR# then REF#.
	for _, re := range []*regexp.Regexp{reTCNumber, reTRNumber, reRefNumber} {
		if m := re.FindStringSubmatch(joined); m != nil {
			result.ReceiptID = m[1]
			result.Confidence[FieldReceiptID] = 0.95
			break
		}
	}

	// Purchase date: first D/M/YYYY-shaped token anywhere.
	if m := reDate.FindString(joined); m != "" {
		result.PurchaseDate = m
		result.Confidence[FieldPurchaseDate] = 0.95
	}

	// Payment method: fixed vocabulary, first line match.
	for _, line := range lines {
		if m := rePayment.FindString(line); m != "" {
			result.PaymentMethod = titleCase(m)
			result.Confidence[FieldPaymentMethod] = 1.0
			break
		}
	}

	// Purchase total: a TOTAL line (not SUBTOTAL); prefer the amount on the
	// following line, else the same line. First qualifying match stops the scan.
	for i, line := range lines {
		if !strings.Contains(line, "TOTAL") || strings.Contains(line, "SUBTOTAL") {
			continue
		}
		if i+1 < len(lines) {
			if m := reAmount.FindString(lines[i+1]); m != "" {
				v, _ := strconv.ParseFloat(m, 64)
				result.PurchaseTotal.Value = &v
				result.Confidence[FieldPurchaseTotal] = 0.95
				break
			}
		}
		if m := reAmount.FindString(line); m != "" {
			v, _ := strconv.ParseFloat(m, 64)
			result.PurchaseTotal.Value = &v
			result.Confidence[FieldPurchaseTotal] = 0.90
			break
		}
	}

	// Item list: description line immediately followed by a bare price line.
	for i, line := range lines {
		if containsAny(line, cfg.ExcludeWords) {
			continue
		}
		if i+1 >= len(lines) {
			continue
		}
		next := reBarePrice.FindStringSubmatch(lines[i+1])
		if next == nil || reBarePrice.MatchString(line) || len(line) < cfg.MinItemDescLen {
			continue
		}
		price, _ := strconv.ParseFloat(next[1], 64)
		result.ItemList = append(result.ItemList, Item{
			Description: titleCase(line),
			Price:       price,
		})
	}
	if len(result.ItemList) > 0 {
		result.Confidence[FieldItemList] = 0.85
	}

	return result
}

func containsAny(line string, words []string) bool {
	for _, w := range words {
		if strings.Contains(line, w) {
			return true
		}
	}
	return false
}

// titleCase upper-cases the first letter of each alphabetic run and
// lower-cases the rest, leaving digits and punctuation alone.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
