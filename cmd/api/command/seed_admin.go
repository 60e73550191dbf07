package command

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Fan-Karwanta/motour-server-101/internal/service"
)

var (
	seedUsername string
	seedPassword string
	seedRole     string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create a dashboard administrator",
	Long: `Create a dashboard administrator unless one with the same username
exists. Flags default to ADMIN_SEED_USERNAME, ADMIN_SEED_PASSWORD and
ADMIN_SEED_ROLE.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		username, password, role := seedUsername, seedPassword, seedRole
		if username == "" {
			username = rt.cfg.AdminSeedUsername
		}
		if password == "" {
			password = rt.cfg.AdminSeedPassword
		}
		if role == "" {
			role = rt.cfg.AdminSeedRole
		}
		if username == "" || password == "" {
			return errors.New("username and password are required")
		}
		return seedAdmin(cmd.Context(), rt.log, rt.buildServices().adminAuth, username, password, role)
	},
}

func seedAdmin(ctx context.Context, log logrus.FieldLogger, auth *service.AdminAuthService, username, password, role string) error {
	admin, created, err := auth.Seed(ctx, username, password, role)
	if err != nil {
		return err
	}
	entry := log.WithFields(logrus.Fields{"username": admin.Username, "role": admin.Role})
	if created {
		entry.Info("admin user created")
	} else {
		entry.Info("admin user already exists")
	}
	return nil
}

func init() {
	seedAdminCmd.Flags().StringVarP(&seedUsername, "username", "u", "", "admin username")
	seedAdminCmd.Flags().StringVarP(&seedPassword, "password", "p", "", "admin password")
	seedAdminCmd.Flags().StringVarP(&seedRole, "role", "r", "", "admin or superadmin")
	rootCmd.AddCommand(seedAdminCmd)
}
