package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/templui/goalnote/internal/config"
	"github.com/templui/goalnote/internal/db"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations for the configured DB_DRIVER",
	}

	cmd.AddCommand(
		migrateSubCmd("up", "Apply all pending migrations", db.RunMigrations),
		migrateSubCmd("down", "Roll back the most recent migration", db.MigrateDown),
		migrateSubCmd("status", "Show migration status", db.MigrationStatus),
	)
	return cmd
}

func migrateSubCmd(use, short string, fn func(*sql.DB, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()

			err = fn(database.DB, cfg.DBDriver)
			if err != nil {
				return fmt.Errorf("migrate %s: %w", use, err)
			}
			return nil
		},
	}
}
