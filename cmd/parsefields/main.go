package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aftersale/casepipe/internal/extract"
	"github.com/aftersale/casepipe/internal/ocr"
)

// Debugging surface for receipt layouts: dump what the heuristics see.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) != 2 {
		logger.Error("usage: parsefields <ocr-text-file>")
		os.Exit(2)
	}
	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Error("read file", "path", os.Args[1], "error", err)
		os.Exit(1)
	}

	receipt := extract.ParseFields(ocr.Normalize(string(raw)))

	fmt.Printf("Seller Name:    %s\n", orDash(receipt.SellerName))
	fmt.Printf("Receipt ID:     %s\n", orDash(receipt.ReceiptID))
	fmt.Printf("Purchase Date:  %s\n", orDash(receipt.PurchaseDate))
	fmt.Printf("Payment Method: %s\n", orDash(receipt.PaymentMethod))
	if receipt.PurchaseTotal.Value != nil {
		fmt.Printf("Total:          %s %.2f\n", receipt.PurchaseTotal.Currency, *receipt.PurchaseTotal.Value)
	} else {
		fmt.Printf("Total:          -\n")
	}
	fmt.Println("Items:")
	if len(receipt.ItemList) == 0 {
		fmt.Println("  (none found)")
	}
	for _, it := range receipt.ItemList {
		fmt.Printf("  - %-40s %.2f\n", it.Description, it.Price)
	}
	fmt.Println("Confidence:")
	for field, c := range receipt.Confidence {
		fmt.Printf("  %-16s %.2f\n", field, c)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
