package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akinalp/filmorate/models"
	"github.com/akinalp/filmorate/pkg/cache"
	"github.com/akinalp/filmorate/repository"

	log "github.com/sirupsen/logrus"
)

const referenceKeyPrefix = "ref:"

// ReferenceService serves the fixed genre and rating tables through a
// read-through cache.
type ReferenceService interface {
	ListGenres(ctx context.Context) ([]models.Genre, error)
	GetGenre(ctx context.Context, id int64) (*models.Genre, error)
	ListMpa(ctx context.Context) ([]models.Mpa, error)
	GetMpa(ctx context.Context, id int64) (*models.Mpa, error)
	// Invalidate drops cached entries, e.g. after a migration changed the seed.
	Invalidate(ctx context.Context) error
}

type referenceService struct {
	store repository.Store
	cache cache.Store
}

// NewReferenceService creates the reference data service.
func NewReferenceService(store repository.Store, c cache.Store) ReferenceService {
	return &referenceService{store: store, cache: c}
}

func (s *referenceService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return readThrough(ctx, s.cache, referenceKeyPrefix+"genres", func() ([]models.Genre, error) {
		return s.store.Repos().Genres.List(ctx)
	})
}

func (s *referenceService) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	return readThrough(ctx, s.cache, fmt.Sprintf("%sgenres:%d", referenceKeyPrefix, id), func() (*models.Genre, error) {
		return s.store.Repos().Genres.GetByID(ctx, id)
	})
}

func (s *referenceService) ListMpa(ctx context.Context) ([]models.Mpa, error) {
	return readThrough(ctx, s.cache, referenceKeyPrefix+"mpa", func() ([]models.Mpa, error) {
		return s.store.Repos().Mpa.List(ctx)
	})
}

func (s *referenceService) GetMpa(ctx context.Context, id int64) (*models.Mpa, error) {
	return readThrough(ctx, s.cache, fmt.Sprintf("%smpa:%d", referenceKeyPrefix, id), func() (*models.Mpa, error) {
		return s.store.Repos().Mpa.GetByID(ctx, id)
	})
}

func (s *referenceService) Invalidate(ctx context.Context) error {
	return s.cache.DeletePrefix(ctx, referenceKeyPrefix)
}

// readThrough serves key from c, loading and storing it on a miss.
// Cache failures are logged and fall through to load; errors from load
// are never cached.
func readThrough[T any](ctx context.Context, c cache.Store, key string, load func() (T, error)) (T, error) {
	logger := log.WithFields(log.Fields{"component": "reference", "key": key})

	raw, ok, err := c.Get(ctx, key)
	if err != nil {
		logger.WithError(err).Warn("cache read failed")
	}
	if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		logger.Warn("discarding undecodable cache entry")
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	if raw, err := json.Marshal(v); err == nil {
		if err := c.Set(ctx, key, raw); err != nil {
			logger.WithError(err).Warn("cache write failed")
		}
	}
	return v, nil
}
