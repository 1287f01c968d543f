// Package database opens the relational store, applies migrations and
// provides the transaction helper used by the services.
//
// Two dialects are supported: SQLite through the pure-Go modernc driver and
// PostgreSQL through lib/pq. Repositories always write "?" placeholders; the
// querier returned by this package rebinds them for PostgreSQL.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// DB wraps the connection pool together with its dialect.
type DB struct {
	Conn    *sql.DB
	Dialect Dialect
}

// Open connects to the store, pings it and applies pending migrations.
// dsn is a file path for SQLite and a connection URL for PostgreSQL.
func Open(ctx context.Context, dialect Dialect, dsn string) (*DB, error) {
	conn, err := openConn(dialect, dsn)
	if err != nil {
		return nil, err
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrator, err := NewMigrator(dialect, dsn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.WithField("dialect", dialect).Info("database connected and migrations applied")
	return &DB{Conn: conn, Dialect: dialect}, nil
}

// Close releases the connection pool.
func (db *DB) Close() error {
	return db.Conn.Close()
}

// Querier returns a non-transactional querier bound to the dialect.
func (db *DB) Querier() TxQuerier {
	return bind(db.Conn, db.Dialect)
}

func openConn(dialect Dialect, dsn string) (*sql.DB, error) {
	switch dialect {
	case DialectSQLite:
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		conn, err := sql.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		// SQLite has a single writer; one connection keeps transactions from
		// failing with SQLITE_BUSY when a read lock is upgraded.
		conn.SetMaxOpenConns(1)
		return conn, nil

	case DialectPostgres:
		conn, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return conn, nil

	default:
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}
}

func sqliteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}
