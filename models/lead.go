package models

import (
	"context"
	"fmt"
	"time"

	"github.com/mmdatafocus/portal_backend/utils"
	"gorm.io/gorm"
)

type Lead struct {
	LeadId    string     `gorm:"primaryKey;size:32" json:"lead_id"`
	Name      string     `gorm:"size:200;not null" json:"name"`
	Email     string     `gorm:"size:191;not null;index" json:"email"`
	Phone     string     `gorm:"size:32" json:"phone"`
	Company   string     `gorm:"size:200" json:"company"`
	Service   string     `gorm:"size:100" json:"service"`
	Message   string     `gorm:"type:text" json:"message"`
	Source    string     `gorm:"size:100" json:"source"`
	Status    LeadStatus `gorm:"type:enum('new','contacted','qualified','converted');default:new;index" json:"status"`
	Notes     string     `gorm:"type:text" json:"notes"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// LeadFilter narrows admin listings. A zero value lists everything.
type LeadFilter struct {
	Status *LeadStatus
}

// LeadPatch carries the fields an admin may change; nil fields are untouched.
type LeadPatch struct {
	Status *LeadStatus
	Notes  *string
}

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *Lead) error {
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return fmt.Errorf("%w: %w", utils.ErrStore, err)
	}
	return nil
}

func (r *LeadRepository) filtered(ctx context.Context, filter LeadFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&Lead{})
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	return q
}

// List returns one page of leads, newest first, plus the total match count.
func (r *LeadRepository) List(ctx context.Context, filter LeadFilter, page, limit int) ([]Lead, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %w", utils.ErrStore, err)
	}
	var leads []Lead
	err := r.filtered(ctx, filter).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&leads).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", utils.ErrStore, err)
	}
	return leads, total, nil
}

// All returns every matching lead, newest first. Used by the export.
func (r *LeadRepository) All(ctx context.Context, filter LeadFilter) ([]Lead, error) {
	var leads []Lead
	if err := r.filtered(ctx, filter).Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrStore, err)
	}
	return leads, nil
}

func (r *LeadRepository) Get(ctx context.Context, leadId string) (*Lead, error) {
	var lead Lead
	if err := r.db.WithContext(ctx).Where("lead_id = ?", leadId).Take(&lead).Error; err != nil {
		return nil, mapStoreError(err)
	}
	return &lead, nil
}

// Update applies patch; concurrent updates are last-write-wins.
func (r *LeadRepository) Update(ctx context.Context, leadId string, patch LeadPatch) (*Lead, error) {
	updates := map[string]interface{}{}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&Lead{}).Where("lead_id = ?", leadId).Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("%w: %w", utils.ErrStore, res.Error)
		}
	}
	return r.Get(ctx, leadId)
}
