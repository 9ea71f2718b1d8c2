package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const providerOpenAI = "openai"

var (
	SystemMessageDocumentAssistant = openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: "You answer questions using only the provided document excerpt. Keep answers short. If the excerpt does not contain the answer, say so.",
	}
	SystemMessageSummarizer = openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: "You summarize documents in a few sentences.",
	}
)

type OpenAIService struct {
	client *openai.Client
	model  string
}

func NewOpenAIService(baseURL string, apiKey, model string) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIService{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (s *OpenAIService) Summarize(ctx context.Context, text string) (string, error) {
	return s.complete(ctx, []openai.ChatCompletionMessage{
		SystemMessageSummarizer,
		{Role: openai.ChatMessageRoleUser, Content: text},
	})
}

func (s *OpenAIService) Answer(ctx context.Context, question, passage string) (string, error) {
	return s.complete(ctx, []openai.ChatCompletionMessage{
		SystemMessageDocumentAssistant,
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("Document excerpt:\n%s\n\nQuestion: %s", passage, question),
		},
	})
}

func (s *OpenAIService) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Messages: messages,
			Model:    s.model,
		},
	)
	if err != nil {
		return "", &ModelError{Provider: providerOpenAI, StatusCode: openAIStatusCode(err), Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &ModelError{Provider: providerOpenAI, Err: errors.New("no response generated")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func openAIStatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
