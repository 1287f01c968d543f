package services

import (
	"context"
	"fmt"

	"github.com/akinalp/filmorate/models"
	"github.com/akinalp/filmorate/pkg"
	"github.com/akinalp/filmorate/repository"
)

// DefaultPopularCount is used when a popular-films request gives no count.
const DefaultPopularCount = 10

// FilmService manages the catalogue and user likes.
type FilmService interface {
	Create(ctx context.Context, film *models.Film) (*models.Film, error)
	Update(ctx context.Context, film *models.Film) (*models.Film, error)
	GetByID(ctx context.Context, id int64) (*models.Film, error)
	List(ctx context.Context) ([]models.Film, error)
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	// MostLiked ranks by like count, then by ascending film ID.
	MostLiked(ctx context.Context, count int) ([]models.Film, error)
}

type filmService struct {
	store repository.Store
}

// NewFilmService creates the film service.
func NewFilmService(store repository.Store) FilmService {
	return &filmService{store: store}
}

func (s *filmService) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := film.Validate(); err != nil {
		return nil, err
	}
	if film.ID != 0 {
		return nil, fmt.Errorf("%w: film id must be empty on create", pkg.ErrConflictingID)
	}

	return s.save(ctx, film, func(r *repository.Repositories) error {
		return r.Films.Create(ctx, film)
	})
}

func (s *filmService) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := film.Validate(); err != nil {
		return nil, err
	}

	return s.save(ctx, film, func(r *repository.Repositories) error {
		return r.Films.Update(ctx, film)
	})
}

// save checks the referenced rating and genres, runs write and reloads the
// film so the response carries resolved names.
func (s *filmService) save(ctx context.Context, film *models.Film, write func(r *repository.Repositories) error) (*models.Film, error) {
	var saved *models.Film
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		if err := checkReferences(ctx, r, film); err != nil {
			return err
		}
		if err := write(r); err != nil {
			return err
		}

		var err error
		saved, err = r.Films.GetByID(ctx, film.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func checkReferences(ctx context.Context, r *repository.Repositories, film *models.Film) error {
	if id := film.MpaID(); id != 0 {
		if _, err := r.Mpa.GetByID(ctx, id); err != nil {
			return err
		}
	}
	for _, id := range film.GenreIDs() {
		if _, err := r.Genres.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *filmService) GetByID(ctx context.Context, id int64) (*models.Film, error) {
	return s.store.Repos().Films.GetByID(ctx, id)
}

func (s *filmService) List(ctx context.Context) ([]models.Film, error) {
	return s.store.Repos().Films.List(ctx)
}

func (s *filmService) AddLike(ctx context.Context, filmID, userID int64) error {
	return s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		if err := requireFilmAndUser(ctx, r, filmID, userID); err != nil {
			return err
		}
		return r.Likes.Add(ctx, filmID, userID)
	})
}

func (s *filmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	return s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		if err := requireFilmAndUser(ctx, r, filmID, userID); err != nil {
			return err
		}
		return r.Likes.Remove(ctx, filmID, userID)
	})
}

func (s *filmService) MostLiked(ctx context.Context, count int) ([]models.Film, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", pkg.ErrInvalidArgument, count)
	}
	return s.store.Repos().Films.MostLiked(ctx, count)
}

func requireFilmAndUser(ctx context.Context, r *repository.Repositories, filmID, userID int64) error {
	ok, err := r.Films.Exists(ctx, filmID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: film %d", pkg.ErrNotFound, filmID)
	}
	return requireUsers(ctx, r.Users, userID)
}
