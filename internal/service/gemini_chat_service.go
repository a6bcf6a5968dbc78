package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/resume-screener/internal/config"
	"google.golang.org/genai"
)

// geminiModels is the slice of *genai.Models used here.
type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiChatService struct {
	models      geminiModels
	model       string
	temperature float32
	timeout     time.Duration
}

func NewGeminiChatService(ctx context.Context, cfg *config.LLMConfig) (*GeminiChatService, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGeminiChatService(client.Models, cfg), nil
}

func newGeminiChatService(models geminiModels, cfg *config.LLMConfig) *GeminiChatService {
	return &GeminiChatService{
		models:      models,
		model:       cfg.GeminiModel,
		temperature: float32(cfg.Temperature),
		timeout:     cfg.Timeout,
	}
}

func (s *GeminiChatService) Complete(ctx context.Context, req ChatRequest) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(s.temperature),
	}
	if req.Structured {
		genConfig.ResponseMIMEType = "application/json"
	}

	result, err := s.models.GenerateContent(timeoutCtx, s.model, genai.Text(req.UserPrompt), genConfig)
	if err != nil {
		return "", err
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return text, nil
}
