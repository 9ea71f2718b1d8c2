package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tieubaoca/docqa-be/config"
)

// AIService is the external model: a summarizer and an extractive/generative
// question answerer over a caller-provided context.
type AIService interface {
	Summarize(ctx context.Context, text string) (string, error)
	Answer(ctx context.Context, question, passage string) (string, error)
}

// ModelError is returned by every AIService backend when the upstream call
// fails. StatusCode is zero when no HTTP status is known.
type ModelError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ModelError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the upstream signalled rate limiting or a
// server side failure.
func (e *ModelError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func isRetryable(err error) bool {
	var modelErr *ModelError
	if errors.As(err, &modelErr) {
		return modelErr.Retryable()
	}
	return false
}

// NewAIService builds the backend selected by cfg.Provider.
func NewAIService(ctx context.Context, cfg config.AIConfig) (AIService, error) {
	switch cfg.Provider {
	case "huggingface":
		return NewHuggingFaceService(cfg.BaseURL, cfg.APIKey, cfg.SummaryModel, cfg.QAModel), nil
	case "openai":
		return NewOpenAIService(cfg.BaseURL, cfg.APIKey, cfg.Model), nil
	case "gemini":
		return NewGeminiService(ctx, cfg.APIKeys, cfg.Model)
	case "ollama":
		return NewOllamaService(cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}
