package pipeline

import (
	"context"
	"log/slog"

	"github.com/aftersale/casepipe/constants"
	"github.com/aftersale/casepipe/internal/adjudicate"
	"github.com/aftersale/casepipe/internal/analysis"
	"github.com/aftersale/casepipe/internal/classify"
	"github.com/aftersale/casepipe/internal/extract"
	"github.com/aftersale/casepipe/internal/ocr"
	"github.com/aftersale/casepipe/internal/status"
)

// Determination is the full output for one case.
type Determination struct {
	CaseID         string                `json:"case_id"`
	Receipt        extract.ParsedReceipt `json:"receipt"`
	Classification classify.Result       `json:"classification"`
	Analysis       *analysis.Result      `json:"analysis,omitempty"`
	Eligibility    adjudicate.Verdict    `json:"eligibility"`
}

// Processor coordinates the per-case stages: normalize, extract, classify
// (and optionally analyze), adjudicate, while driving the status registry
// around the analysis sub-phase.
type Processor struct {
	Logger      *slog.Logger
	Registry    *status.Registry
	Classifier  *classify.Classifier
	Analyzer    *analysis.Analyzer // optional
	Adjudicator *adjudicate.Adjudicator
}

func NewProcessor(
	logger *slog.Logger,
	registry *status.Registry,
	classifier *classify.Classifier,
	analyzer *analysis.Analyzer,
	adjudicator *adjudicate.Adjudicator,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Logger:      logger,
		Registry:    registry,
		Classifier:  classifier,
		Analyzer:    analyzer,
		Adjudicator: adjudicator,
	}
}

// ProcessCase runs the pipeline for one case over its recognized receipt text
// and complaint. Stages execute strictly in order; every stage degrades
// rather than fails, so the only terminal signal is the analysis status.
func (p *Processor) ProcessCase(ctx context.Context, caseID, ocrText, issueDescription string) Determination {
	if !p.Registry.Exists(caseID) {
		p.Registry.InitCase(caseID)
	}
	p.Registry.StartAnalysis(caseID)

	lines := ocr.Normalize(ocrText)
	receipt := extract.ParseFields(lines)
	p.Logger.Info("pipeline.extract.ok",
		"case_id", caseID,
		"lines", len(lines),
		"items", len(receipt.ItemList),
		"seller", receipt.SellerName,
	)

	classification := p.Classifier.Classify(ctx, issueDescription)
	if !classification.Fallback {
		p.Registry.SetStatus(caseID, constants.CaseClassified)
	}
	p.Logger.Info("pipeline.classify.ok",
		"case_id", caseID,
		"category", classification.Category,
		"fallback", classification.Fallback,
	)

	var analyzed *analysis.Result
	if p.Analyzer != nil && issueDescription != "" {
		if res, err := p.Analyzer.Analyze(ctx, issueDescription); err == nil {
			analyzed = &res
			p.Registry.SetStatus(caseID, constants.CaseAnalyzed)
		} else {
			p.Logger.Warn("pipeline.analysis.skipped", "case_id", caseID, "error", err)
		}
	}

	verdict := p.Adjudicator.Adjudicate(ctx, p.buildContext(receipt, ocrText))
	p.Logger.Info("pipeline.adjudicate.ok",
		"case_id", caseID,
		"eligible", verdict.Eligible,
		"model", verdict.Model,
	)

	p.Registry.FinishAnalysis(caseID, !classification.Fallback)

	return Determination{
		CaseID:         caseID,
		Receipt:        receipt,
		Classification: classification,
		Analysis:       analyzed,
		Eligibility:    verdict,
	}
}

// buildContext seeds the adjudication input from the extraction that already
// ran; RawText stays attached so Backfill can recover anything still missing.
func (p *Processor) buildContext(receipt extract.ParsedReceipt, ocrText string) adjudicate.Context {
	ec := adjudicate.Context{RawText: ocrText}

	for _, item := range receipt.ItemList {
		if item.Description != "" {
			ec.Item = item.Description
			break
		}
	}
	if receipt.PurchaseTotal.Value != nil {
		ec.Price = &adjudicate.Money{
			Currency: receipt.PurchaseTotal.Currency,
			Value:    receipt.PurchaseTotal.Value,
		}
	}
	if receipt.PurchaseDate != "" {
		ec.Date = &adjudicate.DateRef{Raw: receipt.PurchaseDate}
	}
	if mean, ok := receipt.MeanConfidence(); ok {
		ec.OCRConfidence = &mean
	}
	return ec
}
