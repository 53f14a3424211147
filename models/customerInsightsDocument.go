package models

import (
	"context"
	"time"

	"bitbucket.org/trellisadvisory/planning_backend/config"
)

// CustomerInsightsDocument is create-only: uploads accumulate and there is
// no delete endpoint for them.
type CustomerInsightsDocument struct {
	ID               int       `gorm:"primary_key;autoIncrement" json:"id"`
	EngagementId     string    `gorm:"index;size:36;not null" json:"engagement_id"`
	FilePath         string    `gorm:"size:512;not null" json:"file_path"`
	OriginalFileName string    `gorm:"size:255;not null" json:"original_file_name"`
	MimeType         string    `gorm:"size:127" json:"mime_type"`
	ThumbnailPath    string    `gorm:"size:512" json:"thumbnail_path"`
	UploadedAt       time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func CreateCustomerInsightsDocument(ctx context.Context, doc *CustomerInsightsDocument) error {
	db := config.GetDB()
	return db.WithContext(ctx).Create(doc).Error
}

func ListCustomerInsightsDocuments(ctx context.Context, engagementId string) ([]*CustomerInsightsDocument, error) {
	var docs []*CustomerInsightsDocument
	db := config.GetDB()
	err := db.WithContext(ctx).
		Where("engagement_id = ?", engagementId).
		Order("uploaded_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func CountCustomerInsightsDocuments(ctx context.Context, engagementId string) (int64, error) {
	var count int64
	db := config.GetDB()
	err := db.WithContext(ctx).Model(&CustomerInsightsDocument{}).
		Where("engagement_id = ?", engagementId).
		Count(&count).Error
	return count, err
}
