package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/tieubaoca/docqa-be/config"
)

// PacedAIService wraps an AIService with a token bucket shared by every
// caller and a bounded exponential backoff on 429/5xx responses.
type PacedAIService struct {
	next           AIService
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
	retryMaxDelay  time.Duration
	requestTimeout time.Duration
	sleep          func(ctx context.Context, d time.Duration) error
}

func NewPacedAIService(next AIService, cfg config.PacingConfig) *PacedAIService {
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &PacedAIService{
		next:           next,
		limiter:        rate.NewLimiter(limit, burst),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		retryMaxDelay:  cfg.RetryMaxDelay,
		requestTimeout: cfg.RequestTimeout,
		sleep:          sleepContext,
	}
}

func (s *PacedAIService) Summarize(ctx context.Context, text string) (string, error) {
	return s.do(ctx, "summarize", func(ctx context.Context) (string, error) {
		return s.next.Summarize(ctx, text)
	})
}

func (s *PacedAIService) Answer(ctx context.Context, question, passage string) (string, error) {
	return s.do(ctx, "answer", func(ctx context.Context) (string, error) {
		return s.next.Answer(ctx, question, passage)
	})
}

func (s *PacedAIService) do(ctx context.Context, op string, call func(ctx context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			delay := s.backoff(attempt)
			log.Warn().Err(lastErr).Str("op", op).Int("attempt", attempt).Dur("delay", delay).Msg("Retrying model call")
			if err := s.sleep(ctx, delay); err != nil {
				return "", err
			}
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}

		out, err := s.callWithTimeout(ctx, call)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !isRetryable(err) {
			break
		}
	}
	return "", lastErr
}

func (s *PacedAIService) callWithTimeout(ctx context.Context, call func(ctx context.Context) (string, error)) (string, error) {
	if s.requestTimeout <= 0 {
		return call(ctx)
	}
	callCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()
	return call(callCtx)
}

// backoff doubles retryBaseDelay per attempt, capped at retryMaxDelay.
func (s *PacedAIService) backoff(attempt int) time.Duration {
	delay := s.retryBaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if s.retryMaxDelay > 0 && delay >= s.retryMaxDelay {
			return s.retryMaxDelay
		}
	}
	if s.retryMaxDelay > 0 && delay > s.retryMaxDelay {
		return s.retryMaxDelay
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
