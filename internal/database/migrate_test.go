package database

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/golang-migrate/migrate/v4/database/stub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/kotoba/schemas"
)

func newStubDriver(t *testing.T) *stub.Stub {
	t.Helper()
	driver, err := stub.WithInstance(nil, &stub.Config{})
	require.NoError(t, err)
	return driver.(*stub.Stub)
}

func TestMigrateUp(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/001_create_table.up.sql":   {Data: []byte("CREATE TABLE answer_logs (id BIGINT)")},
		"migrations/001_create_table.down.sql": {Data: []byte("DROP TABLE answer_logs")},
		"migrations/002_add_index.up.sql":      {Data: []byte("CREATE INDEX idx ON answer_logs (headword)")},
		"migrations/002_add_index.down.sql":    {Data: []byte("DROP INDEX idx ON answer_logs")},
	}

	tests := []struct {
		name         string
		setup        func(driver *stub.Stub)
		want         MigrationResult
		wantSequence []string
		wantErr      string
	}{
		{
			name:         "applies pending migrations in order",
			want:         MigrationResult{From: 0, To: 2},
			wantSequence: []string{"CREATE TABLE answer_logs (id BIGINT)", "CREATE INDEX idx ON answer_logs (headword)"},
		},
		{
			name: "applies only the newer migrations",
			setup: func(driver *stub.Stub) {
				driver.CurrentVersion = 1
			},
			want:         MigrationResult{From: 1, To: 2},
			wantSequence: []string{"CREATE INDEX idx ON answer_logs (headword)"},
		},
		{
			name: "nothing pending",
			setup: func(driver *stub.Stub) {
				driver.CurrentVersion = 2
			},
			want: MigrationResult{From: 2, To: 2},
		},
		{
			name: "dirty schema is not migrated",
			setup: func(driver *stub.Stub) {
				driver.CurrentVersion = 1
				driver.IsDirty = true
			},
			wantErr: "schema version 1 is dirty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := newStubDriver(t)
			if tt.setup != nil {
				tt.setup(driver)
			}

			got, err := migrateUp(context.Background(), fsys, "migrations", "stub", driver, slog.Default())
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Empty(t, driver.MigrationSequence)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.From != tt.want.To, got.Changed())
			if len(tt.wantSequence) == 0 {
				assert.Empty(t, driver.MigrationSequence)
			} else {
				assert.Equal(t, tt.wantSequence, driver.MigrationSequence)
			}
		})
	}
}

func TestMigrateUp_MissingDirectory(t *testing.T) {
	_, err := migrateUp(context.Background(), fstest.MapFS{}, "migrations", "stub", newStubDriver(t), slog.Default())
	assert.ErrorContains(t, err, "iofs.New(migrations)")
}

func TestMigrateUp_LogsAppliedMigrations(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := migrateUp(context.Background(), schemas.Migrations, schemas.MigrationsDir, "stub", newStubDriver(t), logger)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "create_answer_logs")
	assert.Contains(t, buf.String(), "to=1")
}

func TestMigrateUp_AnswerLogsSchema(t *testing.T) {
	driver := newStubDriver(t)

	got, err := migrateUp(context.Background(), schemas.Migrations, schemas.MigrationsDir, "stub", driver, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, MigrationResult{From: 0, To: 1}, got)

	require.Len(t, driver.MigrationSequence, 1)
	ddl := driver.MigrationSequence[0]
	assert.True(t, strings.HasPrefix(ddl, "CREATE TABLE answer_logs"))
	// every column written by the scoreboard repository exists
	for _, column := range []string{"session_id", "dictionary_id", "headword", "answer", "correct", "matched_form", "answered_at"} {
		assert.Contains(t, ddl, column+" ")
	}
	assert.Contains(t, ddl, "COLLATE=utf8mb4_bin")

	// a second run against the same schema version is a no-op
	again, err := migrateUp(context.Background(), schemas.Migrations, schemas.MigrationsDir, "stub", driver, slog.Default())
	require.NoError(t, err)
	assert.False(t, again.Changed())
	assert.Len(t, driver.MigrationSequence, 1)
}
