package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
)

type LLMServiceInterface interface {
	Call(ctx context.Context, systemPrompt, userPrompt string, structured bool) (string, error)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LLMService retries a ChatCompleter. Retry n waits n*BaseDelay, so the default
// schedule before attempts 2, 3 and 4 is 1s, 2s, 3s.
type LLMService struct {
	completer  ChatCompleter
	MaxRetries int
	BaseDelay  time.Duration
	sleep      SleepFunc
	log        *zap.Logger
}

func NewLLMService(completer ChatCompleter, maxRetries int, log *zap.Logger) *LLMService {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	return &LLMService{
		completer:  completer,
		MaxRetries: maxRetries,
		BaseDelay:  DefaultRetryDelay,
		sleep:      sleepContext,
		log:        log,
	}
}

// WithSleep replaces the clock used between attempts.
func (s *LLMService) WithSleep(sleep SleepFunc) *LLMService {
	s.sleep = sleep
	return s
}

// Call sends the prompts and returns the model's content. In structured mode the content
// is guaranteed to be a JSON object; anything else counts as a failed attempt.
func (s *LLMService) Call(ctx context.Context, systemPrompt, userPrompt string, structured bool) (string, error) {
	req := ChatRequest{SystemPrompt: systemPrompt, UserPrompt: userPrompt, Structured: structured}

	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * s.BaseDelay
			s.log.Warn("retrying model call",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", s.MaxRetries),
				zap.Duration("delay", delay),
				zap.Error(lastErr))
			if err := s.sleep(ctx, delay); err != nil {
				lastErr = fmt.Errorf("context done during retry: %w", err)
				break
			}
		}

		attempts++
		content, err := s.completer.Complete(ctx, req)
		if err == nil && structured {
			err = validateJSONObject(content)
		}
		if err == nil {
			return content, nil
		}
		lastErr = err
	}

	s.log.Error("model call failed", zap.Int("attempts", attempts), zap.Error(lastErr))
	return "", &apperror.ModelCallError{
		Message:  modelErrorMessage(lastErr),
		Attempts: attempts,
		Details:  modelErrorDetails(lastErr),
		Err:      lastErr,
	}
}

func validateJSONObject(content string) error {
	if !gjson.Valid(content) {
		return errors.New("model returned invalid JSON")
	}
	if !gjson.Parse(content).IsObject() {
		return errors.New("model returned JSON that is not an object")
	}
	return nil
}

// modelErrorMessage prefers the endpoint's structured error text over the transport error.
func modelErrorMessage(err error) string {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		if msg := upstream.Message(); msg != "" {
			return msg
		}
	}
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var apiErrValue genai.APIError
	if errors.As(err, &apiErrValue) && apiErrValue.Message != "" {
		return apiErrValue.Message
	}
	if err == nil || err.Error() == "" {
		return "Failed to analyze content"
	}
	return err.Error()
}

func modelErrorDetails(err error) any {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Details()
	}
	return nil
}
