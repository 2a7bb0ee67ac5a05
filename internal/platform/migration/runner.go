// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package migration applies the SQL files under data/migrations with golang-migrate.

The API server runs [Up] at startup; readlogctl exposes both [Up] and [Down].
*/
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers the "pgx5" scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Runner wraps a configured migrator.
type Runner struct {
	migrator *migrate.Migrate
	logger   *slog.Logger
}

/*
New opens a migrator for the given database and migrations directory.

Parameters:
  - dsn: postgres:// or postgresql:// URL (rewritten to pgx5://)
  - migrationsPath: filesystem directory holding NNNNNN_name.{up,down}.sql
  - logger: receives migration events

Returns:
  - *Runner: must be closed by the caller
  - error: if the source or database cannot be opened
*/
func New(dsn, migrationsPath string, logger *slog.Logger) (*Runner, error) {
	migrator, err := migrate.New("file://"+migrationsPath, ToPgx5DSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	migrator.Log = &migrateLogger{logger: logger}

	return &Runner{migrator: migrator, logger: logger}, nil
}

// Close releases the migration source and database handles.
func (runner *Runner) Close() {
	sourceErr, dbErr := runner.migrator.Close()
	if sourceErr != nil {
		runner.logger.Error("migration_source_close_failed", slog.Any("error", sourceErr))
	}
	if dbErr != nil {
		runner.logger.Error("migration_db_close_failed", slog.Any("error", dbErr))
	}
}

// Up applies every pending migration. An up-to-date database is not an error.
func (runner *Runner) Up() error {
	from, err := runner.version()
	if err != nil {
		return err
	}

	runner.logger.Info("migration_started", slog.Uint64("current_version", uint64(from)))

	if err := runner.migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			runner.logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	to, _, _ := runner.migrator.Version()
	runner.logger.Info("migration_successful",
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

// Down rolls back the given number of migrations.
func (runner *Runner) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("migration: steps must be positive, got %d", steps)
	}

	if _, err := runner.version(); err != nil {
		return err
	}

	if err := runner.migrator.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migration: down failed: %w", err)
	}

	runner.logger.Info("migration_rolled_back", slog.Int("steps", steps))
	return nil
}

// version returns the current schema version and refuses to continue on a dirty database.
func (runner *Runner) version() (uint, error) {
	current, dirty, err := runner.migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("migration: failed to get current version: %w", err)
	}
	if dirty {
		return 0, fmt.Errorf("migration: database is dirty at version %d (manual intervention required)", current)
	}
	return current, nil
}

// RunUp is the one-shot form used by the API server at startup.
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	runner, err := New(dsn, migrationsPath, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	return runner.Up()
}

// ToPgx5DSN rewrites a postgres:// or postgresql:// URL to the pgx5:// scheme.
func ToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, found := strings.CutPrefix(dsn, prefix); found {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *migrateLogger) Verbose() bool { return false }
