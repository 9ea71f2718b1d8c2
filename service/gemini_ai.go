package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const providerGemini = "gemini"

// GeminiService rotates through apiKeys when a call fails, retrying the
// call once on the next key.
type GeminiService struct {
	apiKeys    []string
	currentKey int
	current    *geminiClient
	newClient  func(ctx context.Context, apiKey string) (*geminiClient, error)
	mu         sync.Mutex
}

// geminiClient is the client for one API key. Once rotated out it is closed
// after every call that acquired it has released it.
type geminiClient struct {
	model    *genai.GenerativeModel
	closer   io.Closer
	inFlight sync.WaitGroup
}

func NewGeminiService(ctx context.Context, apiKeys []string, modelName string) (*GeminiService, error) {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return newGeminiService(ctx, apiKeys, func(ctx context.Context, apiKey string) (*geminiClient, error) {
		client, err := genai.NewClient(context.WithoutCancel(ctx), option.WithAPIKey(apiKey))
		if err != nil {
			return nil, err
		}
		return &geminiClient{model: client.GenerativeModel(modelName), closer: client}, nil
	})
}

func newGeminiService(ctx context.Context, apiKeys []string, newClient func(ctx context.Context, apiKey string) (*geminiClient, error)) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}
	client, err := newClient(ctx, apiKeys[0])
	if err != nil {
		return nil, err
	}
	return &GeminiService{
		apiKeys:   apiKeys,
		current:   client,
		newClient: newClient,
	}, nil
}

// acquire returns the current client. The caller must call inFlight.Done.
func (s *GeminiService) acquire() *geminiClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.inFlight.Add(1)
	return s.current
}

// rotateAPIKey moves to the next key unless failed has already been rotated
// out by a concurrent call.
func (s *GeminiService) rotateAPIKey(ctx context.Context, failed *geminiClient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != failed {
		return nil
	}

	next := (s.currentKey + 1) % len(s.apiKeys)
	client, err := s.newClient(ctx, s.apiKeys[next])
	if err != nil {
		return err
	}
	s.currentKey = next
	s.current = client
	go closeWhenIdle(failed)
	return nil
}

func closeWhenIdle(c *geminiClient) {
	c.inFlight.Wait()
	if err := c.closer.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close gemini client")
	}
}

func (s *GeminiService) Summarize(ctx context.Context, text string) (string, error) {
	return s.generate(ctx, "Summarize the following document in a few sentences.\n\n"+text)
}

func (s *GeminiService) Answer(ctx context.Context, question, passage string) (string, error) {
	prompt := fmt.Sprintf(
		"Answer the question using only the document excerpt. Keep the answer short.\n\nDocument excerpt:\n%s\n\nQuestion: %s",
		passage, question,
	)
	return s.generate(ctx, prompt)
}

func (s *GeminiService) call(ctx context.Context, prompt string) (*genai.GenerateContentResponse, *geminiClient, error) {
	client := s.acquire()
	defer client.inFlight.Done()
	resp, err := client.model.GenerateContent(ctx, genai.Text(prompt))
	return resp, client, err
}

func (s *GeminiService) generate(ctx context.Context, prompt string) (string, error) {
	resp, used, err := s.call(ctx, prompt)
	if err != nil && len(s.apiKeys) > 1 {
		log.Warn().Err(err).Msg("Gemini call failed, rotating API key")
		if rotateErr := s.rotateAPIKey(ctx, used); rotateErr != nil {
			return "", &ModelError{Provider: providerGemini, Err: rotateErr}
		}
		resp, _, err = s.call(ctx, prompt)
	}
	if err != nil {
		return "", &ModelError{Provider: providerGemini, StatusCode: geminiStatusCode(err), Err: err}
	}

	if len(resp.Candidates) == 0 {
		return "", &ModelError{Provider: providerGemini, Err: errors.New("no response generated")}
	}

	var content strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(content.String()), nil
}

// Close closes the current client once its in-flight calls finish.
func (s *GeminiService) Close() error {
	s.mu.Lock()
	client := s.current
	s.mu.Unlock()
	client.inFlight.Wait()
	return client.closer.Close()
}

func geminiStatusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
