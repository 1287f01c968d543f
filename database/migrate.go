package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
)

// EmbeddedMigrations holds one directory of versioned SQL files per dialect.
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var EmbeddedMigrations embed.FS

// Migrator applies the embedded migrations with golang-migrate.
// It owns a dedicated connection that Close releases.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator opens a migration session against dsn.
func NewMigrator(dialect Dialect, dsn string) (*Migrator, error) {
	conn, err := openConn(dialect, dsn)
	if err != nil {
		return nil, err
	}

	driver, err := migrationDriver(dialect, conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to init migration driver: %w", err)
	}

	src, err := iofs.New(EmbeddedMigrations, "migrations/"+string(dialect))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dialect), driver)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	m.Log = migrateLogger{}

	return &Migrator{m: m}, nil
}

func migrationDriver(dialect Dialect, conn *sql.DB) (migratedb.Driver, error) {
	switch dialect {
	case DialectSQLite:
		return sqlite.WithInstance(conn, &sqlite.Config{})
	case DialectPostgres:
		return postgres.WithInstance(conn, &postgres.Config{})
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}
}

// Up applies every pending migration. Being current is not an error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Down rolls back n migrations.
func (mg *Migrator) Down(n int) error {
	if n < 1 {
		return fmt.Errorf("down: steps must be positive, got %d", n)
	}
	if err := mg.m.Steps(-n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Version reports the applied version and whether the last run failed midway.
// A fresh database reports version 0.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Force sets the version without running anything, clearing the dirty flag.
func (mg *Migrator) Force(version int) error {
	return mg.m.Force(version)
}

// Close releases the source and the migration connection.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...any) {
	log.WithField("component", "migrate").Infof(format, v...)
}

func (migrateLogger) Verbose() bool { return false }
