package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fadilmartias/resume-screener/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenAIChatService talks to an OpenAI-compatible chat completions endpoint
// (Azure OpenAI deployments, OpenRouter, OpenAI itself).
type OpenAIChatService struct {
	client      *resty.Client
	endpoint    string
	model       string
	temperature float64
}

func NewOpenAIChatService(cfg *config.LLMConfig) *OpenAIChatService {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	if strings.EqualFold(cfg.APIKeyHeader, "Authorization") {
		client.SetAuthToken(cfg.APIKey)
	} else {
		client.SetHeader(cfg.APIKeyHeader, cfg.APIKey)
	}

	return &OpenAIChatService{
		client:      client,
		endpoint:    cfg.Endpoint,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

func (s *OpenAIChatService) Complete(ctx context.Context, req ChatRequest) (string, error) {
	payload := map[string]any{
		"messages": []map[string]string{
			{"role": "system", "content": req.SystemPrompt},
			{"role": "user", "content": req.UserPrompt},
		},
		"temperature": s.temperature,
	}
	if s.model != "" {
		payload["model"] = s.model
	}
	if req.Structured {
		payload["response_format"] = map[string]string{"type": "json_object"}
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(s.endpoint)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", &UpstreamError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	body := resp.String()
	if !gjson.Valid(body) {
		return "", errors.New("chat completion returned a malformed body")
	}
	content := gjson.Get(body, "choices.0.message.content")
	if !content.Exists() {
		return "", errors.New("chat completion returned no choices")
	}
	return content.String(), nil
}
