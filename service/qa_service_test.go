package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/types"
	"github.com/tieubaoca/docqa-be/utils"
)

func TestQAService_AskValidation(t *testing.T) {
	ai := &fakeAI{}
	svc := NewQAService(ai, textExtractor{}, newTestDocuments(), NewContextSelector(0), 3000)

	testCases := []struct {
		name string
		req  types.AskRequest
		want error
	}{
		{"missing question", types.AskRequest{Context: "text"}, ErrMissingQuestion},
		{"blank question", types.AskRequest{Context: "text", Question: "   "}, ErrMissingQuestion},
		{"missing context", types.AskRequest{Question: "why?"}, ErrMissingContext},
		{"both sources", types.AskRequest{Context: "text", DocumentID: "abc", Question: "why?"}, ErrAmbiguousSource},
		{"unknown handle", types.AskRequest{DocumentID: "abc", Question: "why?"}, ErrDocumentNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Ask(context.Background(), tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if ai.calls() != 0 {
		t.Fatalf("expected no model call on validation errors, got %d", ai.calls())
	}
}

func TestQAService_UploadThenAsk(t *testing.T) {
	ai := &fakeAI{
		answer: func(ctx context.Context, question, passage string) (string, error) {
			if !strings.Contains(passage, "Go was designed at Google") {
				return "", nil
			}
			return "Google", nil
		},
	}
	svc := NewQAService(ai, textExtractor{}, newTestDocuments(), NewContextSelector(0), 10)
	ctx := context.Background()

	upload, err := svc.Summarize(ctx, "go.pdf", []byte("Go was designed at Google in 2007."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upload.DocumentID == "" || upload.ExpiresAt == nil || upload.ExpiresAt.IsZero() {
		t.Fatalf("expected a document handle, got %+v", upload)
	}
	if ai.texts[0] != "Go was des" {
		t.Fatalf("expected summary input truncated to 10 characters, got %q", ai.texts[0])
	}

	answer, err := svc.Ask(ctx, types.AskRequest{DocumentID: upload.DocumentID, Question: "Who designed Go?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Google" {
		t.Fatalf("expected Google, got %q", answer)
	}

	answer, err = svc.Ask(ctx, types.AskRequest{Context: "unrelated", Question: "Who designed Go?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != types.AskAnswerNotFound {
		t.Fatalf("expected not found answer, got %q", answer)
	}
}

func TestQAService_SummaryFallback(t *testing.T) {
	ai := &fakeAI{
		summarize: func(ctx context.Context, text string) (string, error) {
			return "", nil
		},
	}
	svc := NewQAService(ai, textExtractor{}, nil, NewContextSelector(0), 0)

	resp, err := svc.Summarize(context.Background(), "a.pdf", []byte("text"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Summary != types.SummaryNotFound || resp.DocumentID != "" || resp.ExpiresAt != nil {
		t.Fatalf("unexpected response %+v", resp)
	}
}

type failingRepo struct {
	repository.DocumentRepo
}

func (failingRepo) SaveDocument(ctx context.Context, doc *types.Document) error {
	return errors.New("disk full")
}

func TestQAService_SummarizeWithoutStore(t *testing.T) {
	documents := NewDocumentService(failingRepo{}, utils.NewDocumentTokenSigner("secret"), time.Hour)
	svc := NewQAService(&fakeAI{}, textExtractor{}, documents, NewContextSelector(0), 0)

	resp, err := svc.Summarize(context.Background(), "a.pdf", []byte("text"))
	if err != nil {
		t.Fatalf("expected summary despite store failure, got %v", err)
	}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to encode response: %v", err)
	}
	if strings.Contains(string(data), "expiresAt") || strings.Contains(string(data), "documentId") {
		t.Fatalf("expected no handle fields, got %s", data)
	}
}

func TestQAService_BulkQAExtractionFailure(t *testing.T) {
	ai := &fakeAI{}
	svc := NewQAService(ai, textExtractor{err: ErrInvalidPDF}, nil, NewContextSelector(0), 0)

	_, err := svc.BulkQA(context.Background(), []byte("a"), []byte("b"), nil)
	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) || extractErr.Field != "contentPdf" {
		t.Fatalf("expected extraction error for contentPdf, got %v", err)
	}
	if !errors.Is(err, ErrInvalidPDF) {
		t.Fatalf("expected wrapped ErrInvalidPDF, got %v", err)
	}
	if ai.calls() != 0 {
		t.Fatalf("expected no model calls, got %d", ai.calls())
	}
}

func TestTruncateRunes(t *testing.T) {
	testCases := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 3, "hel"},
		{"hello", 10, "hello"},
		{"héllo", 2, "hé"},
		{"hello", 0, "hello"},
	}
	for _, tc := range testCases {
		if got := truncateRunes(tc.in, tc.limit); got != tc.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}
