package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/types"
	"github.com/tieubaoca/docqa-be/utils"
)

var ErrDocumentNotFound = errors.New("document not found or expired")

// DocumentService keeps extracted text for follow-up questions. Callers only
// ever see signed handles, never raw repository ids.
type DocumentService struct {
	repo   repository.DocumentRepo
	signer *utils.DocumentTokenSigner
	ttl    time.Duration
	now    func() time.Time
}

func NewDocumentService(repo repository.DocumentRepo, signer *utils.DocumentTokenSigner, ttl time.Duration) *DocumentService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &DocumentService{
		repo:   repo,
		signer: signer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Store saves text and returns the handle for it along with its expiry.
func (s *DocumentService) Store(ctx context.Context, name, text string) (string, time.Time, error) {
	now := s.now()
	doc := &types.Document{
		ID:        uuid.NewString(),
		Name:      name,
		Text:      text,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.SaveDocument(ctx, doc); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store document: %w", err)
	}
	handle, err := s.signer.Generate(doc.ID, now, doc.ExpiresAt)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign document handle: %w", err)
	}
	return handle, doc.ExpiresAt, nil
}

// Text resolves a handle to the stored text.
func (s *DocumentService) Text(ctx context.Context, handle string) (string, error) {
	id, err := s.signer.Parse(handle)
	if err != nil {
		return "", ErrDocumentNotFound
	}
	doc, err := s.repo.GetDocument(ctx, id)
	if errors.Is(err, repository.ErrDocumentNotFound) {
		return "", ErrDocumentNotFound
	}
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

func (s *DocumentService) Delete(ctx context.Context, handle string) error {
	id, err := s.signer.Parse(handle)
	if err != nil {
		return ErrDocumentNotFound
	}
	err = s.repo.DeleteDocument(ctx, id)
	if errors.Is(err, repository.ErrDocumentNotFound) {
		return ErrDocumentNotFound
	}
	return err
}

// RunSweeper removes expired documents every interval until ctx is done.
func (s *DocumentService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.repo.DeleteExpired(ctx, s.now())
			if err != nil {
				log.Error().Err(err).Msg("Failed to remove expired documents")
				continue
			}
			if removed > 0 {
				log.Debug().Int("removed", removed).Msg("Removed expired documents")
			}
		}
	}
}
