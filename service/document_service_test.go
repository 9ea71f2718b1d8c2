package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/utils"
)

func newTestDocuments() *DocumentService {
	return NewDocumentService(repository.NewMemoryDocumentRepo(), utils.NewDocumentTokenSigner("test-secret"), time.Hour)
}

func TestDocumentService_StoreAndText(t *testing.T) {
	docs := newTestDocuments()
	ctx := context.Background()

	handle, expiresAt, err := docs.Store(ctx, "report.pdf", "full text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handle == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("unexpected handle %q expiring %v", handle, expiresAt)
	}

	text, err := docs.Text(ctx, handle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "full text" {
		t.Fatalf("expected stored text, got %q", text)
	}

	if err := docs.Delete(ctx, handle); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if _, err := docs.Text(ctx, handle); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound after delete, got %v", err)
	}
	if err := docs.Delete(ctx, handle); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound on second delete, got %v", err)
	}
}

func TestDocumentService_RejectsForeignHandles(t *testing.T) {
	docs := newTestDocuments()
	ctx := context.Background()

	other := utils.NewDocumentTokenSigner("another-secret")
	forged, err := other.Generate("some-id", time.Now(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, handle := range []string{"", "not-a-token", forged} {
		if _, err := docs.Text(ctx, handle); !errors.Is(err, ErrDocumentNotFound) {
			t.Errorf("handle %q: expected ErrDocumentNotFound, got %v", handle, err)
		}
	}
}

func TestDocumentService_ExpiredHandle(t *testing.T) {
	docs := newTestDocuments()
	docs.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	handle, _, err := docs.Store(context.Background(), "old.pdf", "old text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := docs.Text(context.Background(), handle); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected expired handle to be rejected, got %v", err)
	}
}
