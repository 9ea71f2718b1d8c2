package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/tieubaoca/docqa-be/config"
	"github.com/tieubaoca/docqa-be/database"
	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/utils"
)

type app struct {
	qaService *service.QAService
	documents *service.DocumentService
	repo      repository.DocumentRepo
	backend   service.AIService
}

// newApp wires the model backend, pacing and, when withStore is set, the
// document store used for follow-up questions.
func newApp(ctx context.Context, cfg *config.Config, withStore bool) (*app, error) {
	backend, err := service.NewAIService(ctx, cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai service: %w", err)
	}
	ai := service.NewPacedAIService(backend, cfg.Pacing)

	a := &app{backend: backend}
	if withStore {
		repo, err := newDocumentRepo(ctx, cfg.Document)
		if err != nil {
			return nil, err
		}
		secret := cfg.Document.TokenSecret
		if secret == "" {
			secret, err = utils.RandomSecret()
			if err != nil {
				return nil, err
			}
			log.Warn().Msg("DOCUMENT_TOKEN_SECRET not set, document handles will not survive a restart")
		}
		a.repo = repo
		a.documents = service.NewDocumentService(repo, utils.NewDocumentTokenSigner(secret), cfg.Document.TTL)
	}

	a.qaService = service.NewQAService(
		ai,
		service.NewPDFService(),
		a.documents,
		service.NewContextSelector(cfg.Limits.ChunkWords),
		cfg.Limits.SummaryCharLimit,
	)
	log.Info().Str("provider", cfg.AI.Provider).Str("store", cfg.Document.Store).Msg("Services initialized")
	return a, nil
}

func (a *app) Close(ctx context.Context) {
	if closer, ok := a.backend.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close ai client")
		}
	}
	if a.repo == nil {
		return
	}
	if err := a.repo.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to close document store")
	}
}

func newDocumentRepo(ctx context.Context, cfg config.DocumentConfig) (repository.DocumentRepo, error) {
	switch cfg.Store {
	case "bolt":
		db, err := database.OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		return repository.NewBoltDocumentRepo(db), nil
	case "mongo":
		client, err := database.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return repository.NewMongoDocumentRepo(ctx, client.Database(cfg.MongoDB).Collection("documents"))
	default:
		return repository.NewMemoryDocumentRepo(), nil
	}
}
