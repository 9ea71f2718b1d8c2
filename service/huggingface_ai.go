package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	providerHuggingFace = "huggingface"

	DefaultHuggingFaceBaseURL = "https://api-inference.huggingface.co/models"
	DefaultSummaryModel       = "facebook/bart-large-cnn"
	DefaultQAModel            = "bert-large-uncased-whole-word-masking-finetuned-squad"
)

// HuggingFaceService calls the Hugging Face Inference API: one
// summarization model and one extractive question-answering model.
type HuggingFaceService struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	summaryModel string
	qaModel      string
}

func NewHuggingFaceService(baseURL, apiKey, summaryModel, qaModel string) *HuggingFaceService {
	if baseURL == "" {
		baseURL = DefaultHuggingFaceBaseURL
	}
	if summaryModel == "" {
		summaryModel = DefaultSummaryModel
	}
	if qaModel == "" {
		qaModel = DefaultQAModel
	}
	return &HuggingFaceService{
		client:       &http.Client{Timeout: 60 * time.Second},
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		apiKey:       apiKey,
		summaryModel: summaryModel,
		qaModel:      qaModel,
	}
}

type hfQAInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type hfQAResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

func (s *HuggingFaceService) Summarize(ctx context.Context, text string) (string, error) {
	var out []hfSummary
	if err := s.post(ctx, s.summaryModel, map[string]interface{}{"inputs": text}, &out); err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", nil
	}
	return out[0].SummaryText, nil
}

func (s *HuggingFaceService) Answer(ctx context.Context, question, passage string) (string, error) {
	var out hfQAResponse
	payload := map[string]interface{}{
		"inputs": hfQAInputs{Question: question, Context: passage},
	}
	if err := s.post(ctx, s.qaModel, payload, &out); err != nil {
		return "", err
	}
	return out.Answer, nil
}

func (s *HuggingFaceService) post(ctx context.Context, model string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/"+model, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &ModelError{Provider: providerHuggingFace, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ModelError{Provider: providerHuggingFace, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &ModelError{Provider: providerHuggingFace, StatusCode: resp.StatusCode, Err: errors.New(msg)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &ModelError{
			Provider:   providerHuggingFace,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("malformed response: %w", err),
		}
	}
	return nil
}
