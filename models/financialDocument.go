package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"bitbucket.org/trellisadvisory/planning_backend/config"
	"bitbucket.org/trellisadvisory/planning_backend/utils"
)

// DocumentMeta describes what a financial upload claims to contain.
// CoversYears uses FY end years: a 3-year pack ending FY 2026 covers
// [2024, 2025, 2026].
type DocumentMeta struct {
	PeriodKey            string     `json:"period_key,omitempty"`
	PeriodLabel          string     `json:"period_label,omitempty"`
	PeriodType           PeriodType `json:"period_type,omitempty"`
	DocRole              DocRole    `json:"doc_role,omitempty"`
	IncludesComparatives bool       `json:"includes_comparatives,omitempty"`
	Notes                string     `json:"notes,omitempty"`
	CoversYears          IntList    `json:"covers_years,omitempty"`
}

func (m DocumentMeta) Value() (driver.Value, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (m *DocumentMeta) Scan(value interface{}) error {
	if value == nil {
		*m = DocumentMeta{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into DocumentMeta", value)
	}
	if len(data) == 0 {
		*m = DocumentMeta{}
		return nil
	}
	return json.Unmarshal(data, m)
}

type FinancialDocument struct {
	ID               int          `gorm:"primary_key;autoIncrement" json:"id"`
	EngagementId     string       `gorm:"index;size:36;not null" json:"engagement_id"`
	DocType          string       `gorm:"size:100" json:"doc_type"`
	FilePath         string       `gorm:"size:512;not null" json:"file_path"`
	OriginalFileName string       `gorm:"size:255;not null" json:"original_file_name"`
	MimeType         string       `gorm:"size:127" json:"mime_type"`
	UploadedAt       time.Time    `gorm:"autoCreateTime" json:"uploaded_at"`
	Meta             DocumentMeta `gorm:"type:json" json:"meta"`
}

func CreateFinancialDocument(ctx context.Context, doc *FinancialDocument) error {
	db := config.GetDB()
	return db.WithContext(ctx).Create(doc).Error
}

func ListFinancialDocuments(ctx context.Context, engagementId string) ([]*FinancialDocument, error) {
	var docs []*FinancialDocument
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

func GetFinancialDocumentById(ctx context.Context, engagementId string, id int) (*FinancialDocument, error) {
	var doc FinancialDocument
	db := config.GetDB()
	result := db.WithContext(ctx).
		Where("engagement_id = ? AND id = ?", engagementId, id).
		Limit(1).Find(&doc)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, utils.ErrorRecordNotFound
	}
	return &doc, nil
}

// DeleteFinancialDocumentRow deletes the metadata row only. Storage removal
// happens first in the handler; the two steps are not transactional and a
// row can outlive its file when this delete fails.
func DeleteFinancialDocumentRow(ctx context.Context, engagementId string, id int) error {
	db := config.GetDB()
	result := db.WithContext(ctx).
		Where("engagement_id = ? AND id = ?", engagementId, id).
		Delete(&FinancialDocument{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}

func CountFinancialDocuments(ctx context.Context, engagementId string) (int64, error) {
	var count int64
	db := config.GetDB()
	err := db.WithContext(ctx).Model(&FinancialDocument{}).
		Where("engagement_id = ?", engagementId).
		Count(&count).Error
	return count, err
}

// IndexDocumentsByPeriod buckets documents by their declared period key and
// by each FY end year listed in covers_years, for period-status derivation.
func IndexDocumentsByPeriod(docs []*FinancialDocument) (byKey map[string][]*FinancialDocument, byYear map[int][]*FinancialDocument) {
	byKey = make(map[string][]*FinancialDocument)
	byYear = make(map[int][]*FinancialDocument)
	for _, doc := range docs {
		if doc.Meta.PeriodKey != "" {
			byKey[doc.Meta.PeriodKey] = append(byKey[doc.Meta.PeriodKey], doc)
		}
		for _, year := range doc.Meta.CoversYears {
			byYear[year] = append(byYear[year], doc)
		}
	}
	return byKey, byYear
}
