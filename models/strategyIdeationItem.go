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

// SourceTagList stores a set of source tags in a MySQL json column.
type SourceTagList []StrategySourceTag

func (l SourceTagList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]StrategySourceTag(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *SourceTagList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SourceTagList", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// StrategyIdeationItem has a true row-level CRUD lifecycle, unlike the
// brainstorm record it sits next to.
type StrategyIdeationItem struct {
	ID           int            `gorm:"primary_key;autoIncrement" json:"id"`
	EngagementId string         `gorm:"index;size:36;not null" json:"engagement_id"`
	Theme        string         `gorm:"size:255;not null" json:"theme"`
	Description  string         `gorm:"type:text" json:"description"`
	Domain       StrategyDomain `gorm:"size:50;not null" json:"domain"`
	SourceTags   SourceTagList  `gorm:"type:json" json:"source_tags"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewStrategyIdeationItem struct {
	EngagementId string              `json:"engagement_id" binding:"required"`
	Theme        string              `json:"theme" binding:"required"`
	Description  string              `json:"description"`
	Domain       StrategyDomain      `json:"domain" binding:"required"`
	SourceTags   []StrategySourceTag `json:"source_tags"`
}

// UpdateStrategyIdeationItem carries pointer fields so absent keys leave
// the stored value untouched.
type UpdateStrategyIdeationItem struct {
	Theme       *string              `json:"theme"`
	Description *string              `json:"description"`
	Domain      *StrategyDomain      `json:"domain"`
	SourceTags  *[]StrategySourceTag `json:"source_tags"`
}

func (input UpdateStrategyIdeationItem) HasChanges() bool {
	return input.Theme != nil || input.Description != nil ||
		input.Domain != nil || input.SourceTags != nil
}

func CreateStrategyIdeationItem(ctx context.Context, input NewStrategyIdeationItem) (*StrategyIdeationItem, error) {
	item := StrategyIdeationItem{
		EngagementId: input.EngagementId,
		Theme:        input.Theme,
		Description:  input.Description,
		Domain:       input.Domain,
		SourceTags:   input.SourceTags,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func ListStrategyIdeationItems(ctx context.Context, engagementId string) ([]*StrategyIdeationItem, error) {
	var items []*StrategyIdeationItem
	db := config.GetDB()
	err := db.WithContext(ctx).
		Where("engagement_id = ?", engagementId).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func UpdateStrategyItem(ctx context.Context, engagementId string, id int, input UpdateStrategyIdeationItem) (*StrategyIdeationItem, error) {
	db := config.GetDB()

	var item StrategyIdeationItem
	result := db.WithContext(ctx).
		Where("engagement_id = ? AND id = ?", engagementId, id).
		Limit(1).Find(&item)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, utils.ErrorRecordNotFound
	}

	updates := map[string]interface{}{}
	if input.Theme != nil {
		updates["theme"] = *input.Theme
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Domain != nil {
		updates["domain"] = *input.Domain
	}
	if input.SourceTags != nil {
		updates["source_tags"] = SourceTagList(*input.SourceTags)
	}

	if err := db.WithContext(ctx).Model(&item).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func DeleteStrategyItem(ctx context.Context, engagementId string, id int) error {
	db := config.GetDB()
	result := db.WithContext(ctx).
		Where("engagement_id = ? AND id = ?", engagementId, id).
		Delete(&StrategyIdeationItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}
