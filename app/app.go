// Package app wires repositories, services and infrastructure clients into
// the collaborators the HTTP server and portalctl use.
package app

import (
	"context"

	"github.com/mmdatafocus/portal_backend/access"
	"github.com/mmdatafocus/portal_backend/auth"
	"github.com/mmdatafocus/portal_backend/config"
	"github.com/mmdatafocus/portal_backend/consent"
	"github.com/mmdatafocus/portal_backend/content"
	"github.com/mmdatafocus/portal_backend/documents"
	"github.com/mmdatafocus/portal_backend/events"
	"github.com/mmdatafocus/portal_backend/handlers"
	"github.com/mmdatafocus/portal_backend/leads"
	"github.com/mmdatafocus/portal_backend/models"
	"github.com/mmdatafocus/portal_backend/storage"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type App struct {
	Contracts *models.OwnedRepository[models.Contract]
	Invoices  *models.OwnedRepository[models.Invoice]
	Users     *models.UserRepository
	Content   *models.ContentRepository

	ContractPipeline *documents.Pipeline
	InvoicePipeline  *documents.Pipeline

	Auth      *auth.Service
	Publisher events.Publisher
	Handlers  handlers.Dependencies
}

// New builds everything on db. Object storage and the event broker degrade
// rather than fail: documents then answer 500 and events are dropped.
func New(ctx context.Context, db *gorm.DB, logger *logrus.Logger) *App {
	a := &App{
		Contracts: models.NewOwnedRepository[models.Contract](db),
		Invoices:  models.NewOwnedRepository[models.Invoice](db, "Lines"),
		Users:     models.NewUserRepository(db),
		Content:   models.NewContentRepository(db),
		Publisher: events.NewFromEnv(ctx, logger),
	}

	store, err := storage.NewFromEnv(ctx)
	if err != nil {
		config.LogError(logger, "app", "New", "object storage", map[string]interface{}{"provider": storage.GetProvider()}, err)
		store = storage.Unavailable{Err: err}
	}

	opts := []documents.Option{documents.WithPublisher(a.Publisher)}
	if lc := config.GetRedisLock(); lc != nil {
		opts = append(opts, documents.WithLocker(documents.NewRedisLocker(lc)))
	}
	renderer := documents.NewPDFRenderer()
	a.ContractPipeline = documents.NewPipeline(renderer, store, a.Contracts, logger, opts...)
	a.InvoicePipeline = documents.NewPipeline(renderer, store, a.Invoices, logger, opts...)

	a.Auth = auth.NewService(a.Users, auth.RedisSessions{}, logger)
	a.Handlers = handlers.Dependencies{
		Content:           content.NewResolver(a.Content, logger),
		Auth:              a.Auth,
		Consent:           consent.NewRecorder(models.NewConsentRepository(db), logger),
		Leads:             leads.NewService(models.NewLeadRepository(db), a.Publisher, logger),
		ContractGuard:     access.NewGuard[models.Contract](a.Contracts),
		InvoiceGuard:      access.NewGuard[models.Invoice](a.Invoices),
		Contracts:         a.Contracts,
		Invoices:          a.Invoices,
		ContractDocuments: a.ContractPipeline,
		InvoiceDocuments:  a.InvoicePipeline,
	}
	return a
}

func (a *App) Close() {
	if a.Publisher != nil {
		_ = a.Publisher.Close()
	}
}
