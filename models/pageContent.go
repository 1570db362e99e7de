package models

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PageContent is one editable text element on a marketing page.
type PageContent struct {
	ID         int       `gorm:"primary_key" json:"id"`
	PageKey    string    `gorm:"size:100;not null;uniqueIndex:idx_page_element" json:"page_key"`
	ElementKey string    `gorm:"size:100;not null;uniqueIndex:idx_page_element" json:"element_key"`
	Value      string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PageContent) TableName() string {
	return "page_contents"
}

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// ListByPage returns the raw rows for pageKey, oldest first so later rows win
// when folded.
func (r *ContentRepository) ListByPage(ctx context.Context, pageKey string) ([]PageContent, error) {
	var rows []PageContent
	err := r.db.WithContext(ctx).
		Where("page_key = ?", pageKey).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// Upsert inserts entries, replacing the value of existing (page, element) pairs.
func (r *ContentRepository) Upsert(ctx context.Context, entries []PageContent) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "page_key"}, {Name: "element_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entries).Error
}
