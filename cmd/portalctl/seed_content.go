package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mmdatafocus/portal_backend/content"
	"github.com/mmdatafocus/portal_backend/models"
	"github.com/spf13/cobra"
)

var (
	contentFile     string
	contentDefaults bool
)

var seedContentCmd = &cobra.Command{
	Use:   "seed-content",
	Short: "Upsert page content from a TOML file or the built-in defaults",
	Long: `Upsert page content. The file maps pages to element values:

  [pages.book_consultation_page]
  hero_title = "Book a Consultation"

With --defaults the built-in consultation page copy is written instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows []models.PageContent
		switch {
		case contentDefaults:
			rows = content.FallbackSeed(content.BookConsultationPage)
		case contentFile != "":
			data, err := os.ReadFile(contentFile)
			if err != nil {
				return fmt.Errorf("read %s: %w", contentFile, err)
			}
			rows, err = content.ParseSeed(string(data))
			if err != nil {
				return err
			}
		default:
			return errors.New("one of --file or --defaults is required")
		}

		if err := models.NewContentRepository(db).Upsert(cmd.Context(), rows); err != nil {
			return fmt.Errorf("upsert content: %w", err)
		}
		fmt.Printf("Upserted %d content elements\n", len(rows))
		return nil
	},
}

func init() {
	seedContentCmd.Flags().StringVarP(&contentFile, "file", "f", "", "TOML content file")
	seedContentCmd.Flags().BoolVar(&contentDefaults, "defaults", false, "seed the built-in consultation page copy")
}
