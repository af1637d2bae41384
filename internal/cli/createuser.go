package cli

import (
	"fmt"

	"catalog-api/internal/repository"
	"catalog-api/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCreateUserCommand(e *env) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "createuser",
		Short: "Create a user allowed to modify the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := e.open()
			if err != nil {
				return err
			}

			users := service.NewUserService(repository.NewUserRepository(db.DB()), e.cfg.JWT.Secret, e.cfg.JWT.AccessTTL())
			return createUser(cmd, users, username, email, password, e.logger)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&email, "email", "", "contact address")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")

	return cmd
}

func createUser(cmd *cobra.Command, users service.UserService, username, email, password string, logger *zap.Logger) error {
	user, err := users.Register(cmd.Context(), username, email, password)
	if err != nil {
		return fmt.Errorf("failed to create user %q: %w", username, err)
	}

	logger.Info("User created", zap.String("user_id", user.ID.String()), zap.String("username", user.Username))
	fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Username, user.ID)
	return nil
}
