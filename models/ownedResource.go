package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmdatafocus/portal_backend/utils"
	"gorm.io/gorm"
)

// DocumentField is one labelled line of a rendered document.
type DocumentField struct {
	Label string
	Value string
}

// OwnedRecord is implemented by records that belong to exactly one client and
// can have a generated document attached.
type OwnedRecord interface {
	GetID() int
	GetOwnerId() string
	// GetNumber is the human document number; may be empty.
	GetNumber() string
	GetDocumentUrl() *string
	// DocumentCategory is the storage folder, e.g. "contracts".
	DocumentCategory() string
	DocumentTitle() string
	DocumentFields() []DocumentField
}

// OwnedRepository reads and writes owned records of type E (Contract, Invoice).
// Every owner-scoped statement uses a single "id = ? AND owner_id = ?"
// predicate so a foreign record and a missing one look the same.
type OwnedRepository[E any] struct {
	db       *gorm.DB
	preloads []string
}

func NewOwnedRepository[E any](db *gorm.DB, preloads ...string) *OwnedRepository[E] {
	return &OwnedRepository[E]{db: db, preloads: preloads}
}

func (r *OwnedRepository[E]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

// FindOwned fetches id only if it belongs to ownerID.
func (r *OwnedRepository[E]) FindOwned(ctx context.Context, id int, ownerID string) (*E, error) {
	var rec E
	err := r.query(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Take(&rec).Error
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &rec, nil
}

// FindByID fetches id regardless of owner (administrative access).
func (r *OwnedRepository[E]) FindByID(ctx context.Context, id int) (*E, error) {
	var rec E
	if err := r.query(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		return nil, mapStoreError(err)
	}
	return &rec, nil
}

// ListOwned returns ownerID's records, newest first.
func (r *OwnedRepository[E]) ListOwned(ctx context.Context, ownerID string) ([]E, error) {
	var recs []E
	if err := r.query(ctx).Where("owner_id = ?", ownerID).Order("id DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrStore, err)
	}
	return recs, nil
}

// SetDocumentUrl points the record at its latest generated artifact.
func (r *OwnedRepository[E]) SetDocumentUrl(ctx context.Context, id int, ownerID string, url string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(new(E)).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"document_url": url,
			"updated_at":   at,
		})
	if res.Error != nil {
		return fmt.Errorf("%w: %w", utils.ErrStore, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func mapStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrNotFound
	}
	return fmt.Errorf("%w: %w", utils.ErrStore, err)
}
