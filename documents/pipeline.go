package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/mmdatafocus/portal_backend/config"
	"github.com/mmdatafocus/portal_backend/events"
	"github.com/mmdatafocus/portal_backend/models"
	"github.com/mmdatafocus/portal_backend/storage"
	"github.com/mmdatafocus/portal_backend/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	contentTypePDF = "application/pdf"
	lockTTL        = 30 * time.Second
)

// WriteBack records the newest artifact URL on the source record, scoped by
// id and owner.
type WriteBack interface {
	SetDocumentUrl(ctx context.Context, id int, ownerID string, url string, at time.Time) error
}

type Result struct {
	DocumentUrl string `json:"document_url"`
	ObjectKey   string `json:"-"`
}

// Pipeline renders a record, uploads the PDF and then points the record at it.
// The record is only touched after the upload succeeded. Concurrent runs for
// one record are last-write-wins; the optional lock narrows that window but is
// not relied on.
type Pipeline struct {
	renderer  Renderer
	store     storage.ObjectStore
	writeBack WriteBack
	logger    *logrus.Logger

	locker    Locker
	publisher events.Publisher
	tracer    trace.Tracer
	now       func() time.Time
}

type Option func(*Pipeline)

func WithLocker(l Locker) Option {
	return func(p *Pipeline) { p.locker = l }
}

func WithPublisher(pub events.Publisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

func NewPipeline(renderer Renderer, store storage.ObjectStore, writeBack WriteBack, logger *logrus.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		renderer:  renderer,
		store:     store,
		writeBack: writeBack,
		logger:    logger,
		tracer:    otel.Tracer("portal-backend"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Generate(ctx context.Context, rec models.OwnedRecord) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "documents.Generate", trace.WithAttributes(
		attribute.String("document.category", rec.DocumentCategory()),
		attribute.Int("document.resource_id", rec.GetID()),
	))
	defer span.End()

	res, err := p.generate(ctx, rec)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, utils.PublicMessage(err))
	}
	return res, err
}

func (p *Pipeline) generate(ctx context.Context, rec models.OwnedRecord) (*Result, error) {
	logFields := map[string]interface{}{
		"category":    rec.DocumentCategory(),
		"resource_id": rec.GetID(),
		"owner_id":    rec.GetOwnerId(),
	}

	if p.locker != nil {
		release, err := p.locker.Obtain(ctx, lockKey(rec), lockTTL)
		if err != nil {
			p.logger.WithFields(logFields).WithError(err).Warn("document lock not obtained; continuing")
		} else {
			defer release()
		}
	}

	at := p.now()
	pdf, err := p.renderer.Render(ctx, DocumentFor(rec, at))
	if err != nil {
		config.LogError(p.logger, "documents", "Generate", "render", logFields, err)
		return nil, fmt.Errorf("%w: %w", utils.ErrRender, err)
	}

	key := ObjectKey(rec, at)
	logFields["object_key"] = key
	put, err := p.store.Put(ctx, key, pdf, storage.PutOptions{
		Access:      storage.AccessPublic,
		ContentType: contentTypePDF,
	})
	if err != nil {
		config.LogError(p.logger, "documents", "Generate", "upload", logFields, err)
		return nil, fmt.Errorf("%w: %w", utils.ErrStorage, err)
	}

	if err := p.writeBack.SetDocumentUrl(ctx, rec.GetID(), rec.GetOwnerId(), put.URL, at); err != nil {
		// The blob is already public; rerunning generation repoints the record.
		logFields["orphaned_object"] = key
		config.LogError(p.logger, "documents", "Generate", "write back document url", logFields, err)
		return nil, fmt.Errorf("%w: write back: %v", utils.ErrStore, err)
	}

	events.Emit(ctx, p.publisher, p.logger, events.EventDocumentGenerated, events.DocumentGenerated{
		Category:    rec.DocumentCategory(),
		ResourceId:  rec.GetID(),
		OwnerId:     rec.GetOwnerId(),
		ObjectKey:   key,
		DocumentUrl: put.URL,
	})
	return &Result{DocumentUrl: put.URL, ObjectKey: key}, nil
}
