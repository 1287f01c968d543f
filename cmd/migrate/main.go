// Command migrate manages the schema of the configured database outside the
// server process. It reads the same environment as the server.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/akinalp/filmorate/config"
	"github.com/akinalp/filmorate/database"
	"github.com/akinalp/filmorate/pkg/logger"

	log "github.com/sirupsen/logrus"
)

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if err := logger.Setup(cfg.Log.Level, "text"); err != nil {
		log.WithError(err).Fatal("failed to configure logging")
	}

	dialect, err := database.ParseDialect(cfg.Database.Driver)
	if err != nil {
		log.WithError(err).Fatal("invalid database driver")
	}

	m, err := database.NewMigrator(dialect, cfg.Database.DSN())
	if err != nil {
		log.WithError(err).Fatal("migration init failed")
	}
	defer m.Close()

	if err := run(m, args); err != nil {
		m.Close()
		log.WithError(err).Fatalf("%s failed", args[0])
	}
}

func run(m *database.Migrator, args []string) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil {
			return err
		}
		log.Info("migrations: up completed")

	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid steps argument %q", args[1])
			}
			steps = n
		}
		if err := m.Down(steps); err != nil {
			return err
		}
		log.WithField("steps", steps).Info("migrations: down completed")

	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version: %d  dirty: %v\n", v, dirty)

	case "force":
		if len(args) < 2 {
			return fmt.Errorf("version argument required")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[1])
		}
		if err := m.Force(v); err != nil {
			return err
		}
		log.WithField("version", v).Info("migrations: forced")

	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate <command> [args]

Commands:
  up           Apply all pending migrations
  down [N]     Roll back N migrations (default: 1)
  version      Print the current migration version
  force V      Set the version without migrating, clearing the dirty flag

Environment: DATABASE_DRIVER, DATABASE_PATH, DATABASE_URL`)
}
