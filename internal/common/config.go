package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	LLM     LLMConfig
	Policy  PolicyConfig
	Extract ExtractConfig
}

// LLMConfig holds language-model configuration for both decision tiers.
type LLMConfig struct {
	Model         string // primary chat model
	FallbackModel string // retried once when the primary call fails
	APIKey        string
	BaseURL       string
	Temperature   float32
	Timeout       time.Duration

	GeminiAPIKey string // optional alternate provider for the fallback tier
	GeminiModel  string
}

// PolicyConfig surfaces the heuristic adjudication constants. The values are
// inherited business policy, not verified thresholds; treat as tunable.
type PolicyConfig struct {
	AmountLimit        float64
	EligibleKeywords   []string
	IneligibleKeywords []string
}

// ExtractConfig surfaces the item-list heuristic constants.
type ExtractConfig struct {
	MinItemDescLen int
	ExcludeWords   []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			FallbackModel: getEnv("OPENAI_FALLBACK_MODEL", "gpt-4o-mini"),
			APIKey:        getEnv("OPENAI_API_KEY", ""),
			BaseURL:       getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Temperature:   getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:       getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		},
		Policy:  DefaultPolicyConfig(),
		Extract: DefaultExtractConfig(),
	}
}

// DefaultPolicyConfig returns the heuristic rule set carried over from the
// original adjudication policy.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		AmountLimit:        getEnvAsFloat64("POLICY_AMOUNT_LIMIT", 500),
		EligibleKeywords:   getEnvAsList("POLICY_ELIGIBLE_KEYWORDS", []string{"food", "meal", "grocer", "restaurant"}),
		IneligibleKeywords: getEnvAsList("POLICY_INELIGIBLE_KEYWORDS", []string{"alcohol", "wine", "beer", "tobacco"}),
	}
}

// DefaultExtractConfig returns the item-list heuristic tuned for the receipt
// layouts the extractor was written against.
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{
		MinItemDescLen: getEnvAsInt("EXTRACT_MIN_ITEM_DESC_LEN", 5),
		ExcludeWords: []string{
			"WALMART", "SAVE MONEY", "LIVE BETTER", "TOTAL", "SUBTOTAL", "TAX", "TEND", "BALANCE",
			"APPROVAL", "ACCOUNT", "VISA", "MASTERCARD", "AMEX", "PAYPAL", "CASH", "CARD",
			"ST#", "OP#", "TE#", "TR#", "REF", "TRANS", "VALIDATION", "PAYMENT", "TERMINAL", "ITEMS SOLD",
			"TC#", "TC #", "CAMINO", "DURANGO", "MAR ", "JIM", "JAMES", "LOW PRICE", "EVERY DAY", "THANK YOU",
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

// Validate checks the loaded configuration for unusable values.
func (c *Config) Validate() error {
	if c.LLM.Model == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_MODEL is required", ErrInvalidInput)
	}
	if c.Policy.AmountLimit <= 0 {
		return NewAppError("CONFIG_ERROR", "POLICY_AMOUNT_LIMIT must be positive", ErrInvalidInput)
	}
	if c.Extract.MinItemDescLen <= 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_MIN_ITEM_DESC_LEN must be positive", ErrInvalidInput)
	}
	return nil
}
