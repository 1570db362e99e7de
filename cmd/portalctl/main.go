// portalctl runs one-off operations against the portal database: schema
// migration, admin bootstrap, content seeding and document regeneration.
package main

import (
	"fmt"
	"os"

	"github.com/mmdatafocus/portal_backend/config"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	db *gorm.DB
)

var rootCmd = &cobra.Command{
	Use:           "portalctl",
	Short:         "Operations CLI for the client portal backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ConnectDatabase(); err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		db = config.GetDB()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db == nil {
			return
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedAdminCmd)
	rootCmd.AddCommand(seedContentCmd)
	rootCmd.AddCommand(regenerateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
