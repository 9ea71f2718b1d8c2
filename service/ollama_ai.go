package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const providerOllama = "ollama"

// OllamaService talks to a local Ollama server through langchaingo.
type OllamaService struct {
	llm llms.Model
}

func NewOllamaService(serverURL, model string) (*OllamaService, error) {
	if model == "" {
		model = "llama3.2"
	}
	opts := []ollama.Option{ollama.WithModel(model)}
	if serverURL != "" {
		opts = append(opts, ollama.WithServerURL(serverURL))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return &OllamaService{llm: llm}, nil
}

func (s *OllamaService) Summarize(ctx context.Context, text string) (string, error) {
	return s.generate(ctx, "Summarize the following document in a few sentences.\n\n"+text)
}

func (s *OllamaService) Answer(ctx context.Context, question, passage string) (string, error) {
	prompt := fmt.Sprintf(
		"Use the provided context to answer the query. Keep the answer short.\n\nContext:\n%s\n\nQuery: %s",
		passage, question,
	)
	return s.generate(ctx, prompt)
}

func (s *OllamaService) generate(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt, llms.WithTemperature(0))
	if err != nil {
		return "", &ModelError{Provider: providerOllama, Err: err}
	}
	return strings.TrimSpace(out), nil
}
