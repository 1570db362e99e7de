package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmdatafocus/portal_backend/config"
	"github.com/mmdatafocus/portal_backend/models"
	"github.com/mmdatafocus/portal_backend/utils"
	"github.com/sirupsen/logrus"
)

type Store interface {
	ListByPage(ctx context.Context, pageKey string) ([]models.PageContent, error)
}

// Resolver turns the page_contents rows of one page into an element map.
// It never writes.
type Resolver struct {
	store  Store
	logger *logrus.Logger
}

func NewResolver(store Store, logger *logrus.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// Resolve is ResolveWith in fail-open mode: a broken store yields an empty
// map (or the page's fallback) instead of an error.
func (r *Resolver) Resolve(ctx context.Context, pageKey string) (map[string]string, error) {
	return r.ResolveWith(ctx, pageKey, utils.FailOpen)
}

func (r *Resolver) ResolveWith(ctx context.Context, pageKey string, mode utils.FailureMode) (map[string]string, error) {
	pageKey = strings.TrimSpace(pageKey)
	if pageKey == "" {
		return nil, fmt.Errorf("%w: page key is required", utils.ErrInvalidArgument)
	}

	rows, err := r.store.ListByPage(ctx, pageKey)
	if err != nil {
		if mode == utils.FailClosed {
			return nil, fmt.Errorf("%w: %w", utils.ErrStore, err)
		}
		config.LogError(r.logger, "content", "ResolveWith", "list page content", map[string]interface{}{
			"page_key": pageKey,
			"mode":     mode.String(),
		}, err)
		rows = nil
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.ElementKey] = row.Value
	}
	if len(out) == 0 {
		if fb := Fallback(pageKey); fb != nil {
			return fb, nil
		}
	}
	return out, nil
}
