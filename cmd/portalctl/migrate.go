package main

import (
	"fmt"

	"github.com/mmdatafocus/portal_backend/models"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the portal tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := models.MigrateTable(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Println("Migration complete")
		return nil
	},
}
