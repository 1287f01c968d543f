package repository

import (
	"context"

	"github.com/akinalp/filmorate/models"
)

// FilmRepository persists films together with their genre links.
// Returned films always carry the resolved rating and genre names,
// with genres ordered by ID.
type FilmRepository interface {
	// Create inserts the film and its genre links and sets the generated ID.
	Create(ctx context.Context, film *models.Film) error
	// Update overwrites the film and replaces its genre links.
	// Missing ID yields pkg.ErrNotFound.
	Update(ctx context.Context, film *models.Film) error
	GetByID(ctx context.Context, id int64) (*models.Film, error)
	List(ctx context.Context) ([]models.Film, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// MostLiked returns up to limit films ordered by like count descending,
	// ties broken by ascending ID. Films without likes are included.
	MostLiked(ctx context.Context, limit int) ([]models.Film, error)
	DeleteAll(ctx context.Context) error
}

// LikeRepository persists the (film, user) like relation.
type LikeRepository interface {
	// Add records a like. An existing like yields pkg.ErrNotAllowed.
	Add(ctx context.Context, filmID, userID int64) error
	// Remove deletes the like if present.
	Remove(ctx context.Context, filmID, userID int64) error
	Exists(ctx context.Context, filmID, userID int64) (bool, error)
	CountByFilm(ctx context.Context, filmID int64) (int, error)
	DeleteAll(ctx context.Context) error
}
