package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/aftersale/casepipe/internal/pipeline"
)

// Service produces XLSX bytes for determination reports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildDeterminationsXLSX returns an XLSX workbook (as bytes) with one row
// per case determination.
func (s *Service) BuildDeterminationsXLSX(dets []pipeline.Determination) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Determinations"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIndex, _ := f.GetSheetIndex("Sheet1"); defIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Case ID",
		"Seller",
		"Receipt ID",
		"Purchase Date",
		"Total",
		"Currency",
		"Payment Method",
		"Issue Category",
		"Manual Review",
		"Eligible",
		"Rationale",
		"Decision Path",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, d := range dets {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, d.CaseID)
		write(2, d.Receipt.SellerName)
		write(3, d.Receipt.ReceiptID)
		write(4, d.Receipt.PurchaseDate)
		if d.Receipt.PurchaseTotal.Value != nil {
			write(5, *d.Receipt.PurchaseTotal.Value)
		} else {
			write(5, "")
		}
		write(6, d.Receipt.PurchaseTotal.Currency)
		write(7, d.Receipt.PaymentMethod)
		write(8, string(d.Classification.Category))
		write(9, d.Classification.RequiresManualReview)
		write(10, d.Eligibility.Eligible)
		write(11, d.Eligibility.Reason)
		write(12, d.Eligibility.Model)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.determinations.ok",
		"rows", len(dets),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
