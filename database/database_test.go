package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), DialectSQLite, filepath.Join(t.TempDir(), "filmorate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDialect_Rebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		in      string
		want    string
	}{
		{"sqlite untouched", DialectSQLite, "SELECT * FROM users WHERE id = ?", "SELECT * FROM users WHERE id = ?"},
		{"postgres single", DialectPostgres, "SELECT * FROM users WHERE id = ?", "SELECT * FROM users WHERE id = $1"},
		{"postgres many", DialectPostgres, "UPDATE friends SET confirmed = ? WHERE user_id = ? AND friend_id = ?",
			"UPDATE friends SET confirmed = $1 WHERE user_id = $2 AND friend_id = $3"},
		{"postgres no params", DialectPostgres, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.Rebind(tt.in))
		})
	}
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("Postgres")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, d)

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", Placeholders(0))
	assert.Equal(t, "?", Placeholders(1))
	assert.Equal(t, "?, ?, ?", Placeholders(3))
}

func TestOpen_SeedsReferenceData(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	var mpaCount, genreCount int
	require.NoError(t, db.Querier().QueryRowContext(ctx, "SELECT COUNT(*) FROM content_rating").Scan(&mpaCount))
	require.NoError(t, db.Querier().QueryRowContext(ctx, "SELECT COUNT(*) FROM genres").Scan(&genreCount))
	assert.Equal(t, 5, mpaCount)
	assert.Equal(t, 6, genreCount)
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filmorate.db")

	first, err := Open(context.Background(), DialectSQLite, path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(context.Background(), DialectSQLite, path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestMigrator_Version(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filmorate.db")
	db, err := Open(context.Background(), DialectSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	m, err := NewMigrator(DialectSQLite, path)
	require.NoError(t, err)
	defer m.Close()

	v, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), v)
	assert.False(t, dirty)
}

func TestWithTx_CommitAndRollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := WithTx(ctx, db, func(q TxQuerier) error {
		_, err := q.ExecContext(ctx, "INSERT INTO users (email, login, name) VALUES (?, ?, ?)", "a@b.c", "a", "a")
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = WithTx(ctx, db, func(q TxQuerier) error {
		if _, err := q.ExecContext(ctx, "INSERT INTO users (email, login, name) VALUES (?, ?, ?)", "x@y.z", "x", "x"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, db.Querier().QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = WithTx(ctx, db, func(q TxQuerier) error {
			_, _ = q.ExecContext(ctx, "INSERT INTO users (email, login, name) VALUES (?, ?, ?)", "a@b.c", "a", "a")
			panic("unexpected")
		})
	})

	var count int
	require.NoError(t, db.Querier().QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestIsUniqueViolation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	q := db.Querier()

	_, err := q.ExecContext(ctx, "INSERT INTO users (email, login, name) VALUES (?, ?, ?)", "a@b.c", "a", "a")
	require.NoError(t, err)
	_, err = q.ExecContext(ctx, "INSERT INTO users (email, login, name) VALUES (?, ?, ?)", "a@b.c", "b", "b")
	require.Error(t, err)

	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
}

func TestIsForeignKeyViolation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Querier().ExecContext(ctx, "INSERT INTO likes (film_id, user_id) VALUES (?, ?)", 42, 42)
	require.Error(t, err)

	assert.True(t, IsForeignKeyViolation(err))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(errors.New("other")))
}
