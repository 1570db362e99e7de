package models

import (
	"context"
	"fmt"
	"time"

	"github.com/mmdatafocus/portal_backend/utils"
	"gorm.io/gorm"
)

// ConsentRecord is an immutable snapshot of a visitor's cookie choices.
type ConsentRecord struct {
	ConsentId          string    `gorm:"primaryKey;size:36" json:"consent_id"`
	UserId             *string   `gorm:"size:36;index" json:"user_id"`
	SessionFingerprint string    `gorm:"size:100;not null;index" json:"session_fingerprint"`
	IpAddress          string    `gorm:"size:64" json:"ip_address"`
	UserAgent          string    `gorm:"size:512" json:"user_agent"`
	Necessary          bool      `gorm:"not null;default:true" json:"necessary"`
	Functional         bool      `gorm:"not null;default:false" json:"functional"`
	Analytics          bool      `gorm:"not null;default:false" json:"analytics"`
	Marketing          bool      `gorm:"not null;default:false" json:"marketing"`
	Preferences        *string   `gorm:"type:json" json:"preferences"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ConsentRecord) TableName() string {
	return "consent_records"
}

type ConsentRepository struct {
	db *gorm.DB
}

func NewConsentRepository(db *gorm.DB) *ConsentRepository {
	return &ConsentRepository{db: db}
}

// Insert writes exactly one row; records are never updated.
func (r *ConsentRepository) Insert(ctx context.Context, rec *ConsentRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("%w: %w", utils.ErrStore, err)
	}
	return nil
}
