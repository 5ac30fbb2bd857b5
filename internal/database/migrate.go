package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratedatabase "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

// MigrationsTable records the applied schema version.
const MigrationsTable = "schema_migrations"

// MigrationResult is the schema version before and after a migration run.
// Version 0 means no migration has been applied.
type MigrationResult struct {
	From uint
	To   uint
}

func (r MigrationResult) Changed() bool {
	return r.From != r.To
}

// Migrate applies the pending up migrations under dir of fsys.
// Files follow golang-migrate naming: <version>_<title>.up.sql.
func Migrate(ctx context.Context, db *sqlx.DB, fsys fs.FS, dir string) (MigrationResult, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("db.Conn() > %w", err)
	}
	driver, err := migratemysql.WithConnection(ctx, conn, &migratemysql.Config{
		MigrationsTable: MigrationsTable,
	})
	if err != nil {
		_ = conn.Close()
		return MigrationResult{}, fmt.Errorf("migratemysql.WithConnection() > %w", err)
	}
	return migrateUp(ctx, fsys, dir, "mysql", driver, slog.Default())
}

func migrateUp(ctx context.Context, fsys fs.FS, dir, databaseName string, driver migratedatabase.Driver, logger *slog.Logger) (MigrationResult, error) {
	source, err := iofs.New(fsys, dir)
	if err != nil {
		_ = driver.Close()
		return MigrationResult{}, fmt.Errorf("iofs.New(%s) > %w", dir, err)
	}
	m, err := migrate.NewWithInstance("iofs", source, databaseName, driver)
	if err != nil {
		_ = source.Close()
		_ = driver.Close()
		return MigrationResult{}, fmt.Errorf("migrate.NewWithInstance() > %w", err)
	}
	m.Log = migrateLogger{logger: logger}
	defer func() {
		if sourceErr, databaseErr := m.Close(); sourceErr != nil || databaseErr != nil {
			logger.Warn("failed to close migrator",
				slog.Any("source_error", sourceErr),
				slog.Any("database_error", databaseErr),
			)
		}
	}()

	from, err := schemaVersion(m)
	if err != nil {
		return MigrationResult{}, err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			m.GracefulStop <- true
		case <-done:
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return MigrationResult{From: from, To: from}, fmt.Errorf("m.Up() > %w", err)
	}
	to, err := schemaVersion(m)
	if err != nil {
		return MigrationResult{From: from, To: from}, err
	}
	if from != to {
		logger.Info("migrated schema", slog.Uint64("from", uint64(from)), slog.Uint64("to", uint64(to)))
	}
	return MigrationResult{From: from, To: to}, nil
}

func schemaVersion(m *migrate.Migrate) (uint, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("m.Version() > %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty: repair it and reset %s before migrating", version, MigrationsTable)
	}
	return version, nil
}

type migrateLogger struct {
	logger *slog.Logger
}

// golang-migrate reports each applied file through its verbose log.
func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
