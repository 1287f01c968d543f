package repository

import (
	"context"

	"github.com/akinalp/filmorate/models"
)

// GenreRepository reads the fixed genres table.
type GenreRepository interface {
	List(ctx context.Context) ([]models.Genre, error)
	GetByID(ctx context.Context, id int64) (*models.Genre, error)
}

// MpaRepository reads the fixed content_rating table.
type MpaRepository interface {
	List(ctx context.Context) ([]models.Mpa, error)
	GetByID(ctx context.Context, id int64) (*models.Mpa, error)
}
