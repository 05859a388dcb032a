package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aftersale/casepipe/constants"
	"github.com/aftersale/casepipe/internal/adjudicate"
	"github.com/aftersale/casepipe/internal/classify"
	"github.com/aftersale/casepipe/internal/extract"
	"github.com/aftersale/casepipe/internal/pipeline"
)

func TestBuildDeterminationsXLSX(t *testing.T) {
	total := 12.34
	dets := []pipeline.Determination{
		{
			CaseID: "case-1",
			Receipt: extract.ParsedReceipt{
				SellerName:    "Fresh Grocer Market",
				ReceiptID:     "12345678",
				PurchaseDate:  "05/21/2023",
				PaymentMethod: "Visa",
				PurchaseTotal: extract.Total{Currency: "USD", Value: &total},
			},
			Classification: classify.Result{
				Category:             constants.Damaged,
				RequiresManualReview: false,
			},
			Eligibility: adjudicate.Verdict{
				Eligible: true,
				Reason:   "Grocery purchase within limits.",
				Model:    "gpt-4o-mini",
			},
		},
		{
			CaseID: "case-2",
			Classification: classify.Result{
				Category:             constants.Other,
				RequiresManualReview: true,
			},
			Eligibility: adjudicate.Verdict{
				Eligible: false,
				Reason:   "Not eligible under the default policy.",
				Model:    adjudicate.ModelHeuristic,
			},
		},
	}

	data, err := NewService(nil).BuildDeterminationsXLSX(dets)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Determinations")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Case ID", rows[0][0])
	assert.Equal(t, "Decision Path", rows[0][11])

	assert.Equal(t, "case-1", rows[1][0])
	assert.Equal(t, "Fresh Grocer Market", rows[1][1])
	assert.Equal(t, "12345678", rows[1][2])
	assert.Equal(t, "12.34", rows[1][4])
	assert.Equal(t, "damaged", rows[1][7])
	assert.Equal(t, "TRUE", rows[1][9])
	assert.Equal(t, "gpt-4o-mini", rows[1][11])

	assert.Equal(t, "case-2", rows[2][0])
	assert.Equal(t, "other", rows[2][7])
	assert.Equal(t, adjudicate.ModelHeuristic, rows[2][11])
}

func TestBuildDeterminationsXLSX_Empty(t *testing.T) {
	data, err := NewService(nil).BuildDeterminationsXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Determinations")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header row only")
}
