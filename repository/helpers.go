package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/filmorate/database"
	"github.com/akinalp/filmorate/models"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// exists runs a "SELECT 1 ..." query and reports whether it matched a row.
func exists(ctx context.Context, db database.TxQuerier, query string, args ...any) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return true, nil
}

// nullableDate maps an absent date to SQL NULL.
func nullableDate(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// nullableID maps the zero ID to SQL NULL.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// int64Args converts IDs to query arguments.
func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
