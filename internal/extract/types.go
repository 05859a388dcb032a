package extract

// Field names used as keys in FieldConfidence.
const (
	FieldSellerName    = "seller_name"
	FieldReceiptID     = "receipt_id"
	FieldPurchaseDate  = "purchase_date"
	FieldPurchaseTotal = "purchase_total"
	FieldItemList      = "item_list"
	FieldPaymentMethod = "payment_method"
)

// FieldConfidence maps a field name to extraction certainty in [0,1].
// A missing field is confidence 0, never an error.
type FieldConfidence map[string]float64

// Item is one line-item in document order. Duplicates allowed.
type Item struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Total is the purchase total. Currency defaults to USD when not detected;
// Value is nil when no amount was found.
type Total struct {
	Currency string   `json:"currency"`
	Value    *float64 `json:"value"`
}

// ParsedReceipt is the extraction result for one receipt.
//
// Invariant: every populated field has confidence > 0 in FieldConfidence,
// and every field with confidence 0 is unset.
type ParsedReceipt struct {
	SellerName    string          `json:"seller_name,omitempty"`
	ReceiptID     string          `json:"receipt_id,omitempty"`
	PurchaseDate  string          `json:"purchase_date,omitempty"` // raw matched form, not ISO
	PaymentMethod string          `json:"payment_method,omitempty"`
	PurchaseTotal Total           `json:"purchase_total"`
	ItemList      []Item          `json:"item_list"`
	Confidence    FieldConfidence `json:"field_confidence"`
}

// MeanConfidence averages the confidences of the fields that were actually
// extracted. ok is false when nothing was extracted at all.
func (r ParsedReceipt) MeanConfidence() (float64, bool) {
	var sum float64
	var n int
	for _, c := range r.Confidence {
		if c > 0 {
			sum += c
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
