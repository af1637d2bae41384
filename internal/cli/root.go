// Package cli implements catalogctl, the operator command line for the catalog database.
package cli

import (
	"fmt"

	"catalog-api/internal/config"
	"catalog-api/internal/database"
	"catalog-api/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is the state shared by subcommands once the root command has prepared it
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     database.Service
}

// open connects to the configured database
func (e *env) open() (database.Service, error) {
	if e.db != nil {
		return e.db, nil
	}

	db, err := database.New(e.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	e.db = db
	return db, nil
}

func (e *env) close() {
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			e.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}
	e.logger.Sync()
}

// NewRootCommand builds the catalogctl command tree
func NewRootCommand() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Operate the catalog database",
		Long:         "catalogctl applies schema migrations, creates users and inspects products, including inactive ones.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e.cfg = config.Load()

			log, err := logger.New(e.cfg.Server.Env)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			e.logger = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.close()
		},
	}

	rootCmd.AddCommand(
		newMigrateCommand(e),
		newCreateUserCommand(e),
		newProductsCommand(e),
	)

	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCommand().Execute()
}
