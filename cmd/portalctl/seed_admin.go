package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mmdatafocus/portal_backend/models"
	"github.com/spf13/cobra"
)

var (
	adminEmail    string
	adminPassword string
	adminName     string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create an administrator account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminPassword == "" {
			adminPassword = os.Getenv("ADMIN_PASSWORD")
		}
		if strings.TrimSpace(adminEmail) == "" || len(adminPassword) < 8 {
			return errors.New("--email and a --password of at least 8 characters are required")
		}

		users := models.NewUserRepository(db)
		user, err := users.Create(cmd.Context(), &models.NewUser{
			Email:    adminEmail,
			Name:     adminName,
			Password: adminPassword,
			Role:     models.UserRoleAdmin,
		})
		if errors.Is(err, models.ErrDuplicateEmail) {
			fmt.Fprintf(os.Stderr, "User %s already exists; nothing to do\n", adminEmail)
			return nil
		}
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		fmt.Printf("Created admin %s (%s)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email (required)")
	seedAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password; falls back to ADMIN_PASSWORD")
	seedAdminCmd.Flags().StringVar(&adminName, "name", "Administrator", "display name")
}
