package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tieubaoca/docqa-be/types"
)

var (
	ErrMissingQuestion = errors.New("question is required")
	ErrMissingContext  = errors.New("context or documentId is required")
	ErrAmbiguousSource = errors.New("provide either context or documentId, not both")
)

// ExtractionError marks a failure to read text out of an uploaded file. It
// aborts the whole request.
type ExtractionError struct {
	Field string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Field, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// TextExtractor turns uploaded file bytes into plain text. *PDFService is the
// production implementation.
type TextExtractor interface {
	ExtractText(content []byte) (string, error)
}

// QAService implements the upload, ask and bulk question answering flows on
// top of an AIService.
type QAService struct {
	ai               AIService
	extractor        TextExtractor
	documents        *DocumentService
	selector         *ContextSelector
	bulk             *BulkQAService
	summaryCharLimit int
}

func NewQAService(ai AIService, extractor TextExtractor, documents *DocumentService, selector *ContextSelector, summaryCharLimit int) *QAService {
	return &QAService{
		ai:               ai,
		extractor:        extractor,
		documents:        documents,
		selector:         selector,
		bulk:             NewBulkQAService(ai, selector),
		summaryCharLimit: summaryCharLimit,
	}
}

func (s *QAService) extract(field string, content []byte) (string, error) {
	text, err := s.extractor.ExtractText(content)
	if err != nil {
		return "", &ExtractionError{Field: field, Err: err}
	}
	return text, nil
}

// Summarize extracts the PDF, summarizes its leading summaryCharLimit
// characters and keeps the full text for follow-up questions.
func (s *QAService) Summarize(ctx context.Context, name string, content []byte) (*types.UploadResponse, error) {
	text, err := s.extract("file", content)
	if err != nil {
		return nil, err
	}

	summary, err := s.ai.Summarize(ctx, truncateRunes(text, s.summaryCharLimit))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(summary) == "" {
		summary = types.SummaryNotFound
	}

	resp := &types.UploadResponse{Summary: summary}
	if s.documents != nil {
		handle, expiresAt, err := s.documents.Store(ctx, name, text)
		if err != nil {
			// the summary is still useful without a handle
			log.Error().Err(err).Str("file", name).Msg("Failed to store document")
		} else {
			resp.DocumentID = handle
			resp.ExpiresAt = &expiresAt
		}
	}
	return resp, nil
}

// Ask answers one question. The document must be named explicitly, either
// as raw context or as a handle returned by Summarize.
func (s *QAService) Ask(ctx context.Context, req types.AskRequest) (string, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return "", ErrMissingQuestion
	}
	passage, err := s.resolveContext(ctx, req.Context, req.DocumentID)
	if err != nil {
		return "", err
	}

	answer, err := s.ai.Answer(ctx, question, s.selector.Select(passage, question))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		answer = types.AskAnswerNotFound
	}
	return answer, nil
}

func (s *QAService) resolveContext(ctx context.Context, raw, handle string) (string, error) {
	raw = strings.TrimSpace(raw)
	handle = strings.TrimSpace(handle)
	switch {
	case raw != "" && handle != "":
		return "", ErrAmbiguousSource
	case raw != "":
		return raw, nil
	case handle != "":
		if s.documents == nil {
			return "", ErrDocumentNotFound
		}
		return s.documents.Text(ctx, handle)
	default:
		return "", ErrMissingContext
	}
}

// BulkQA extracts both PDFs and answers every question of questionsPDF
// against contentPDF. Extraction failures abort; model failures do not.
func (s *QAService) BulkQA(ctx context.Context, contentPDF, questionsPDF []byte, onProgress ProgressHandler) (*types.BulkQAResponse, error) {
	content, err := s.extract("contentPdf", contentPDF)
	if err != nil {
		return nil, err
	}
	questions, err := s.extract("questionsPdf", questionsPDF)
	if err != nil {
		return nil, err
	}
	resp := s.bulk.Run(ctx, content, questions, onProgress)
	return &resp, nil
}

func (s *QAService) Documents() *DocumentService {
	return s.documents
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
