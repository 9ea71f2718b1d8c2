package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tieubaoca/docqa-be/types"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentRepo stores extracted document text keyed by an explicit id.
// Get never returns a document whose ExpiresAt has passed.
type DocumentRepo interface {
	SaveDocument(ctx context.Context, doc *types.Document) error
	GetDocument(ctx context.Context, id string) (*types.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
	Close(ctx context.Context) error
}
