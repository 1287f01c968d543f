package repository

import (
	"context"
	"fmt"

	"github.com/akinalp/filmorate/database"
	"github.com/akinalp/filmorate/pkg"
)

type sqlLikeRepo struct {
	db database.TxQuerier
}

// NewSQLLikeRepo returns the SQL implementation of LikeRepository.
func NewSQLLikeRepo(db database.TxQuerier) LikeRepository {
	return &sqlLikeRepo{db: db}
}

func (r *sqlLikeRepo) Add(ctx context.Context, filmID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO likes (film_id, user_id) VALUES (?, ?)`, filmID, userID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: user %d already likes film %d", pkg.ErrNotAllowed, userID, filmID)
		}
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: film %d or user %d", pkg.ErrNotFound, filmID, userID)
		}
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

func (r *sqlLikeRepo) Remove(ctx context.Context, filmID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE film_id = ? AND user_id = ?`, filmID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

func (r *sqlLikeRepo) Exists(ctx context.Context, filmID, userID int64) (bool, error) {
	return exists(ctx, r.db, `SELECT 1 FROM likes WHERE film_id = ? AND user_id = ?`, filmID, userID)
}

func (r *sqlLikeRepo) CountByFilm(ctx context.Context, filmID int64) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes WHERE film_id = ?`, filmID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (r *sqlLikeRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM likes`); err != nil {
		return fmt.Errorf("failed to delete likes: %w", err)
	}
	return nil
}
