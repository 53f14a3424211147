package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/trellisadvisory/planning_backend/config"
)

// StrategyNote is one captured idea inside a brainstorm domain.
type StrategyNote struct {
	Text      string            `json:"text"`
	SourceTag StrategySourceTag `json:"source_tag,omitempty"`
}

// DomainNotes holds one brainstorm domain's content: structured notes plus
// an optional free-text field. Keeping the shape explicit keeps the
// "is this domain non-empty" check well-defined.
type DomainNotes struct {
	Notes    []StrategyNote `json:"notes"`
	FreeText string         `json:"free_text,omitempty"`
}

func (n DomainNotes) IsEmpty() bool {
	return len(n.Notes) == 0 && strings.TrimSpace(n.FreeText) == ""
}

func (n DomainNotes) Value() (driver.Value, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (n *DomainNotes) Scan(value interface{}) error {
	if value == nil {
		*n = DomainNotes{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into DomainNotes", value)
	}
	if len(data) == 0 {
		*n = DomainNotes{}
		return nil
	}
	return json.Unmarshal(data, n)
}

// StrategyIdeation is the zero-or-one brainstorm record per engagement,
// saved as a whole (insert if absent, else update).
type StrategyIdeation struct {
	ID            int         `gorm:"primary_key;autoIncrement" json:"id"`
	EngagementId  string      `gorm:"uniqueIndex;size:36;not null" json:"engagement_id"`
	Anchors       StringList  `gorm:"type:json" json:"anchors"`
	GrowthMarket  DomainNotes `gorm:"type:json" json:"growth_market"`
	GrowthProduct DomainNotes `gorm:"type:json" json:"growth_product"`
	Operations    DomainNotes `gorm:"type:json" json:"operations"`
	People        DomainNotes `gorm:"type:json" json:"people"`
	Finance       DomainNotes `gorm:"type:json" json:"finance"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewStrategyIdeation struct {
	EngagementId  string      `json:"engagement_id" binding:"required"`
	Anchors       []string    `json:"anchors"`
	GrowthMarket  DomainNotes `json:"growth_market"`
	GrowthProduct DomainNotes `json:"growth_product"`
	Operations    DomainNotes `json:"operations"`
	People        DomainNotes `json:"people"`
	Finance       DomainNotes `json:"finance"`
}

// UpsertStrategyIdeation saves the record whole: insert when no row exists
// for the engagement, otherwise overwrite every content column.
func UpsertStrategyIdeation(ctx context.Context, input NewStrategyIdeation) (*StrategyIdeation, bool, error) {
	db := config.GetDB()

	var existing StrategyIdeation
	result := db.WithContext(ctx).
		Where("engagement_id = ?", input.EngagementId).
		Limit(1).Find(&existing)
	if result.Error != nil {
		return nil, false, result.Error
	}

	record := StrategyIdeation{
		EngagementId:  input.EngagementId,
		Anchors:       input.Anchors,
		GrowthMarket:  input.GrowthMarket,
		GrowthProduct: input.GrowthProduct,
		Operations:    input.Operations,
		People:        input.People,
		Finance:       input.Finance,
	}

	if result.RowsAffected == 0 {
		if err := db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, false, err
		}
		return &record, true, nil
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	err := db.WithContext(ctx).Model(&existing).
		Select("anchors", "growth_market", "growth_product", "operations", "people", "finance").
		Updates(&record).Error
	if err != nil {
		return nil, false, err
	}
	return &record, false, nil
}

// GetStrategyIdeation returns nil when no brainstorm has been saved yet.
func GetStrategyIdeation(ctx context.Context, engagementId string) (*StrategyIdeation, error) {
	var record StrategyIdeation
	db := config.GetDB()
	result := db.WithContext(ctx).
		Where("engagement_id = ?", engagementId).
		Limit(1).Find(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &record, nil
}
