package adjudicate

import (
	"fmt"
	"time"

	"github.com/aftersale/casepipe/internal/extract"
	"github.com/aftersale/casepipe/internal/ocr"
)

// Money is an amount with its currency. Value nil means unknown.
type Money struct {
	Currency string   `json:"currency"`
	Value    *float64 `json:"value"`
}

// DateRef carries the purchase date in whichever forms are known.
type DateRef struct {
	ISO string `json:"iso,omitempty"`
	Raw string `json:"raw,omitempty"`
}

// Context is the adjudication input. Item, Price and Date may be left empty
// when RawText is set; Backfill then derives them from a fresh extraction.
type Context struct {
	Item          string   `json:"item,omitempty"`
	Price         *Money   `json:"price,omitempty"`
	Date          *DateRef `json:"date,omitempty"`
	OCRConfidence *float64 `json:"ocr_confidence,omitempty"`
	RawText       string   `json:"-"`
}

// Backfill populates an underspecified context from its raw OCR text: first
// non-empty item description (else "purchase at {seller}"), the purchase
// total as price, the raw date string, and the mean field confidence.
// A context that already names item, price or date is returned unchanged.
func Backfill(ec Context) Context {
	if ec.Item != "" || ec.Price != nil || ec.Date != nil || ec.RawText == "" {
		return ec
	}

	receipt := extract.ParseFields(ocr.Normalize(ec.RawText))

	for _, item := range receipt.ItemList {
		if item.Description != "" {
			ec.Item = item.Description
			break
		}
	}
	if ec.Item == "" && receipt.SellerName != "" {
		ec.Item = fmt.Sprintf("purchase at %s", receipt.SellerName)
	}

	if receipt.PurchaseTotal.Value != nil {
		ec.Price = &Money{
			Currency: receipt.PurchaseTotal.Currency,
			Value:    receipt.PurchaseTotal.Value,
		}
	}

	if receipt.PurchaseDate != "" {
		ec.Date = &DateRef{Raw: receipt.PurchaseDate}
		if t, err := time.Parse("1/2/2006", receipt.PurchaseDate); err == nil {
			ec.Date.ISO = t.Format("2006-01-02")
		}
	}

	if mean, ok := receipt.MeanConfidence(); ok {
		ec.OCRConfidence = &mean
	}
	return ec
}
