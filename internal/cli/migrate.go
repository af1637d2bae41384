package cli

import (
	"fmt"

	"catalog-api/internal/database"
	"catalog-api/migrations"

	"github.com/spf13/cobra"
)

func newMigrateCommand(e *env) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := e.open()
				if err != nil {
					return err
				}
				return database.RunMigrations(db.DB(), migrations.FS, ".", e.logger)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := e.open()
				if err != nil {
					return err
				}
				if err := database.RollbackMigration(db.DB(), migrations.FS, "."); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Rolled back 1 migration")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := e.open()
				if err != nil {
					return err
				}
				return database.GetMigrationStatus(db.DB(), migrations.FS, ".")
			},
		},
	)

	return migrateCmd
}
