package config

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type LLMConfig struct {
	Provider     string
	Endpoint     string
	APIKey       string
	APIKeyHeader string
	Model        string
	Temperature  float64
	Timeout      time.Duration
	MaxRetries   int
	GeminiAPIKey string
	GeminiModel  string
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		llmConfig = &LLMConfig{
			Provider:     getEnv("LLM_PROVIDER", ProviderOpenAI),
			Endpoint:     os.Getenv("LLM_ENDPOINT"),
			APIKey:       os.Getenv("LLM_API_KEY"),
			APIKeyHeader: getEnv("LLM_API_KEY_HEADER", "api-key"),
			Model:        os.Getenv("LLM_MODEL"),
			Temperature:  getEnvFloat("LLM_TEMPERATURE", 0.7),
			Timeout:      time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second,
			MaxRetries:   getEnvInt("LLM_MAX_RETRIES", 3),
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		}
	})
	return llmConfig
}

func (c *LLMConfig) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderOpenAI:
		if c.Endpoint == "" {
			errs = append(errs, errors.New("LLM_ENDPOINT not set"))
		}
		if c.APIKey == "" {
			errs = append(errs, errors.New("LLM_API_KEY not set"))
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, errors.New("LLM_MAX_RETRIES must not be negative"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("LLM_TIMEOUT_SECONDS must be positive"))
	}
	return errors.Join(errs...)
}
