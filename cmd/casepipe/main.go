package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/aftersale/casepipe/internal/adjudicate"
	"github.com/aftersale/casepipe/internal/analysis"
	"github.com/aftersale/casepipe/internal/classify"
	"github.com/aftersale/casepipe/internal/common"
	"github.com/aftersale/casepipe/internal/export"
	"github.com/aftersale/casepipe/internal/llm"
	"github.com/aftersale/casepipe/internal/llm/gemini"
	"github.com/aftersale/casepipe/internal/llm/openai"
	"github.com/aftersale/casepipe/internal/pipeline"
	"github.com/aftersale/casepipe/internal/status"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 3 {
		logger.Error("usage: casepipe <ocr-text-file> <issue-description> [report.xlsx]")
		os.Exit(2)
	}
	ocrPath := os.Args[1]
	issueDescription := os.Args[2]

	raw, err := os.ReadFile(ocrPath)
	if err != nil {
		logger.Error("read ocr text", "path", ocrPath, "error", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	primary, fallback := buildClients(ctx, cfg, logger)

	registry := status.NewRegistry()
	processor := pipeline.NewProcessor(
		logger,
		registry,
		classify.New(primary, cfg.LLM.Timeout, logger),
		analysis.New(primary, cfg.LLM.Timeout, logger),
		adjudicate.New(primary, fallback, cfg.Policy, cfg.LLM.Timeout, logger),
	)

	caseID := uuid.New().String()
	registry.InitCase(caseID)

	det := processor.ProcessCase(ctx, caseID, string(raw), issueDescription)

	out := struct {
		pipeline.Determination
		Status status.Record `json:"case_status"`
	}{det, registry.ToResponse(caseID)}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode determination", "error", err)
		os.Exit(1)
	}

	if len(os.Args) >= 4 {
		svc := export.NewService(logger)
		xlsx, err := svc.BuildDeterminationsXLSX([]pipeline.Determination{det})
		if err != nil {
			logger.Error("build report", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(os.Args[3], xlsx, 0o644); err != nil {
			logger.Error("write report", "path", os.Args[3], "error", err)
			os.Exit(1)
		}
		logger.Info("report written", "path", os.Args[3])
	}
}

// buildClients wires the decision tiers from whatever credentials are
// configured. With no keys at all both tiers are nil and every component
// degrades to its deterministic path.
func buildClients(ctx context.Context, cfg *common.Config, logger *slog.Logger) (primary, fallback llm.ChatClient) {
	if cfg.LLM.APIKey != "" {
		primary = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		fallback = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.FallbackModel,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
	}
	if cfg.LLM.GeminiAPIKey != "" {
		g, err := gemini.NewClient(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel)
		if err != nil {
			logger.Warn("gemini client unavailable", "error", err)
		} else {
			// prefer a distinct provider for the fallback tier when available
			fallback = g
			if primary == nil {
				primary = g
			}
		}
	}
	return primary, fallback
}
