package repository

import (
	"context"
	"sync"
	"time"

	"github.com/tieubaoca/docqa-be/types"
)

type memoryDocumentRepo struct {
	mu   sync.RWMutex
	docs map[string]types.Document
	now  func() time.Time
}

func NewMemoryDocumentRepo() DocumentRepo {
	return &memoryDocumentRepo{
		docs: make(map[string]types.Document),
		now:  time.Now,
	}
}

func (r *memoryDocumentRepo) SaveDocument(ctx context.Context, doc *types.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = *doc
	return nil
}

func (r *memoryDocumentRepo) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	r.mu.RLock()
	doc, ok := r.docs[id]
	r.mu.RUnlock()
	if !ok || doc.Expired(r.now()) {
		return nil, ErrDocumentNotFound
	}
	return &doc, nil
}

func (r *memoryDocumentRepo) DeleteDocument(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return ErrDocumentNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *memoryDocumentRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, doc := range r.docs {
		if doc.Expired(now) {
			delete(r.docs, id)
			removed++
		}
	}
	return removed, nil
}

func (r *memoryDocumentRepo) Close(ctx context.Context) error {
	return nil
}
