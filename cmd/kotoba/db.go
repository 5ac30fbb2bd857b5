package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/kotoba/internal/database"
	"github.com/at-ishikawa/kotoba/schemas"
)

func newDBCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "db",
		Short: "Answer log database commands",
	}
	command.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply the pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled {
				return errors.New("database.enabled is false in the configuration")
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			result, err := database.Migrate(cmd.Context(), db, schemas.Migrations, schemas.MigrationsDir)
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			if !result.Changed() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No pending migrations (version %d)\n", result.To)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Migrated schema from version %d to %d\n", result.From, result.To)
			return nil
		},
	})
	return command
}
