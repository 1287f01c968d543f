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

type sqlFriendshipRepo struct {
	db database.TxQuerier
}

// NewSQLFriendshipRepo returns the SQL implementation of FriendshipRepository.
func NewSQLFriendshipRepo(db database.TxQuerier) FriendshipRepository {
	return &sqlFriendshipRepo{db: db}
}

func (r *sqlFriendshipRepo) Create(ctx context.Context, f *models.Friendship) error {
	query := `INSERT INTO friends (user_id, friend_id, confirmed) VALUES (?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, f.UserID, f.FriendID, f.Confirmed); err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: friend request from %d to %d already exists", pkg.ErrNotAllowed, f.UserID, f.FriendID)
		}
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %d or %d", pkg.ErrNotFound, f.UserID, f.FriendID)
		}
		return fmt.Errorf("failed to create friendship: %w", err)
	}

	return nil
}

func (r *sqlFriendshipRepo) GetByPair(ctx context.Context, a, b int64) (*models.Friendship, error) {
	query := `
		SELECT user_id, friend_id, confirmed
		FROM friends
		WHERE (user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)
		ORDER BY confirmed DESC
		LIMIT 1`

	var f models.Friendship
	err := r.db.QueryRowContext(ctx, query, a, b, b, a).Scan(&f.UserID, &f.FriendID, &f.Confirmed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: friendship between %d and %d", pkg.ErrNotFound, a, b)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friendship: %w", err)
	}

	return &f, nil
}

func (r *sqlFriendshipRepo) Confirm(ctx context.Context, requesterID, targetID int64) error {
	query := `
		UPDATE friends SET confirmed = TRUE
		WHERE user_id = ? AND friend_id = ? AND confirmed = FALSE`

	result, err := r.db.ExecContext(ctx, query, requesterID, targetID)
	if err != nil {
		return fmt.Errorf("failed to confirm friendship: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: no pending request from %d to %d", pkg.ErrNotFound, requesterID, targetID)
	}

	return nil
}

func (r *sqlFriendshipRepo) DeleteByPair(ctx context.Context, a, b int64) error {
	query := `
		DELETE FROM friends
		WHERE (user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)`

	if _, err := r.db.ExecContext(ctx, query, a, b, b, a); err != nil {
		return fmt.Errorf("failed to delete friendship: %w", err)
	}
	return nil
}

func (r *sqlFriendshipRepo) ListFriends(ctx context.Context, userID int64) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.id IN (
			SELECT friend_id FROM friends WHERE user_id = ?
			UNION
			SELECT user_id FROM friends WHERE friend_id = ? AND confirmed = TRUE
		)
		ORDER BY u.id`

	return queryUsers(ctx, r.db, query, userID, userID)
}

func (r *sqlFriendshipRepo) ListIncoming(ctx context.Context, userID int64) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN friends f ON f.user_id = u.id
		WHERE f.friend_id = ? AND f.confirmed = FALSE
		ORDER BY u.id`

	return queryUsers(ctx, r.db, query, userID)
}

func (r *sqlFriendshipRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM friends`); err != nil {
		return fmt.Errorf("failed to delete friendships: %w", err)
	}
	return nil
}
