package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/filmorate/database"
	"github.com/akinalp/filmorate/models"
	"github.com/akinalp/filmorate/pkg"
)

type sqlGenreRepo struct {
	db database.TxQuerier
}

// NewSQLGenreRepo returns the SQL implementation of GenreRepository.
func NewSQLGenreRepo(db database.TxQuerier) GenreRepository {
	return &sqlGenreRepo{db: db}
}

func (r *sqlGenreRepo) List(ctx context.Context) ([]models.Genre, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	genres := []models.Genre{}
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}

	return genres, rows.Err()
}

func (r *sqlGenreRepo) GetByID(ctx context.Context, id int64) (*models.Genre, error) {
	var g models.Genre
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM genres WHERE id = ?`, id).Scan(&g.ID, &g.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: genre %d", pkg.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}
	return &g, nil
}

type sqlMpaRepo struct {
	db database.TxQuerier
}

// NewSQLMpaRepo returns the SQL implementation of MpaRepository.
func NewSQLMpaRepo(db database.TxQuerier) MpaRepository {
	return &sqlMpaRepo{db: db}
}

func (r *sqlMpaRepo) List(ctx context.Context) ([]models.Mpa, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM content_rating ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list mpa: %w", err)
	}
	defer rows.Close()

	ratings := []models.Mpa{}
	for rows.Next() {
		var m models.Mpa
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan mpa: %w", err)
		}
		ratings = append(ratings, m)
	}

	return ratings, rows.Err()
}

func (r *sqlMpaRepo) GetByID(ctx context.Context, id int64) (*models.Mpa, error) {
	var m models.Mpa
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM content_rating WHERE id = ?`, id).Scan(&m.ID, &m.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: mpa %d", pkg.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mpa: %w", err)
	}
	return &m, nil
}
