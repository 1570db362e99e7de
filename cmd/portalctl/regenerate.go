package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mmdatafocus/portal_backend/app"
	"github.com/mmdatafocus/portal_backend/config"
	"github.com/mmdatafocus/portal_backend/documents"
	"github.com/mmdatafocus/portal_backend/models"
	"github.com/spf13/cobra"
)

var regenerateKind string

var regenerateCmd = &cobra.Command{
	Use:   "regenerate <id>...",
	Short: "Re-render and re-upload documents for contracts or invoices",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a := app.New(ctx, db, config.GetLogger())
		defer a.Close()

		failed := 0
		for _, raw := range args {
			id, err := strconv.Atoi(raw)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", raw)
			}

			var url string
			switch regenerateKind {
			case "contract":
				url, err = regenerate[models.Contract](cmd, a.Contracts, id, a.ContractPipeline.Generate)
			case "invoice":
				url, err = regenerate[models.Invoice](cmd, a.Invoices, id, a.InvoicePipeline.Generate)
			default:
				return fmt.Errorf("unknown --kind %q (want contract or invoice)", regenerateKind)
			}
			if err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "Error regenerating %s %d: %v\n", regenerateKind, id, err)
				continue
			}
			fmt.Printf("%s %d -> %s\n", regenerateKind, id, url)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d documents failed", failed, len(args))
		}
		return nil
	},
}

type generateFunc func(ctx context.Context, rec models.OwnedRecord) (*documents.Result, error)

type byIDFinder[E any] interface {
	FindByID(ctx context.Context, id int) (*E, error)
}

func regenerate[E models.OwnedRecord](cmd *cobra.Command, repo byIDFinder[E], id int, generate generateFunc) (string, error) {
	rec, err := repo.FindByID(cmd.Context(), id)
	if err != nil {
		return "", err
	}
	res, err := generate(cmd.Context(), *rec)
	if err != nil {
		return "", err
	}
	return res.DocumentUrl, nil
}

func init() {
	regenerateCmd.Flags().StringVar(&regenerateKind, "kind", "contract", "record kind: contract or invoice")
}
