package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/log"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/models"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/survey"
)

// SurveyService validates and stores submissions and serves the admin views
// over the record store.
type SurveyService struct {
	repo  ResponseRepository
	cache *StatsCache
	now   func() time.Time

	// stale is set when a write could not retire the cached snapshot
	stale atomic.Bool
}

// NewSurveyService wires the record store and an optional statistics cache.
func NewSurveyService(repo ResponseRepository, cache *StatsCache) *SurveyService {
	return &SurveyService{repo: repo, cache: cache, now: time.Now}
}

// Submit validates sub and appends it to the store. A rejected submission
// never reaches the store.
func (s *SurveyService) Submit(ctx context.Context, sub survey.Submission) (*models.SurveyResponse, error) {
	now := s.now()
	resp, err := survey.Validate(sub, now)
	if err != nil {
		return nil, err
	}
	resp.CreatedAt = now.UTC()
	resp.UpdatedAt = resp.CreatedAt

	if err := s.repo.Insert(ctx, &resp); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	log.WithFields(log.Fields{
		"id":        resp.ID.Hex(),
		"seguridad": resp.SeguridadGeneral,
	}).Info("survey response stored")
	return &resp, nil
}

// List returns every stored response, oldest first.
func (s *SurveyService) List(ctx context.Context) ([]models.SurveyResponse, error) {
	return s.repo.FindAll(ctx)
}

// DeleteAll empties the store and reports how many records went.
func (s *SurveyService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	log.Warnf("deleted %d survey responses", n)
	return n, nil
}

// Statistics aggregates the whole store. Cache failures degrade to a
// recomputation.
func (s *SurveyService) Statistics(ctx context.Context) (survey.Snapshot, error) {
	var version int64
	cacheErr := s.retryInvalidate(ctx)
	if cacheErr == nil {
		version, cacheErr = s.cache.Version(ctx)
	}
	if cacheErr != nil {
		log.WithError(cacheErr).Warn("stats cache unavailable")
	} else if snap, ok, err := s.cache.Get(ctx, version); err != nil {
		log.WithError(err).Warn("stats cache read failed")
	} else if ok {
		return snap, nil
	}

	var t survey.Tally
	err := s.repo.Each(ctx, func(r models.SurveyResponse) error {
		t.Add(r)
		return nil
	})
	if err != nil {
		return survey.Snapshot{}, err
	}
	snap := t.Snapshot()

	// stored under the version read before the scan; a write since then
	// has already moved readers to a newer key
	if cacheErr == nil {
		if err := s.cache.Set(ctx, version, snap); err != nil {
			log.WithError(err).Warn("stats cache write failed")
		}
	}
	return snap, nil
}

var errStaleCache = errors.New("cached statistics predate a write")

func (s *SurveyService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.stale.Store(true)
		log.WithError(err).Warn("stats cache invalidation failed")
	}
}

// retryInvalidate finishes an invalidation a write could not complete. Until
// it succeeds the cache must be bypassed.
func (s *SurveyService) retryInvalidate(ctx context.Context) error {
	if !s.stale.Swap(false) {
		return nil
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.stale.Store(true)
		return fmt.Errorf("%w: %w", errStaleCache, err)
	}
	return nil
}
