package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/trellisadvisory/planning_backend/config"
	"gorm.io/gorm/clause"
)

// VisionAndGoals holds at most one row per engagement. Saves are whole-row
// upserts, last write wins.
type VisionAndGoals struct {
	ID              int        `gorm:"primary_key;autoIncrement" json:"id"`
	EngagementId    string     `gorm:"uniqueIndex;size:36;not null" json:"engagement_id"`
	Purpose         string     `gorm:"type:text" json:"purpose"`
	Bhag            string     `gorm:"type:text" json:"bhag"`
	PlayingRules    StringList `gorm:"type:json" json:"playing_rules"`
	ThreeYearVision string     `gorm:"type:text" json:"three_year_vision"`
	AnnualGoals     StringList `gorm:"type:json" json:"annual_goals"`
	CoreKpis        StringList `gorm:"type:json" json:"core_kpis"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewVisionAndGoals struct {
	EngagementId    string   `json:"engagement_id" binding:"required"`
	Purpose         string   `json:"purpose"`
	Bhag            string   `json:"bhag"`
	PlayingRules    []string `json:"playing_rules"`
	ThreeYearVision string   `json:"three_year_vision"`
	AnnualGoals     []string `json:"annual_goals"`
	CoreKpis        []string `json:"core_kpis"`
}

func UpsertVisionAndGoals(ctx context.Context, input NewVisionAndGoals) (*VisionAndGoals, error) {
	vision := VisionAndGoals{
		EngagementId:    input.EngagementId,
		Purpose:         input.Purpose,
		Bhag:            input.Bhag,
		PlayingRules:    input.PlayingRules,
		ThreeYearVision: input.ThreeYearVision,
		AnnualGoals:     input.AnnualGoals,
		CoreKpis:        input.CoreKpis,
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "engagement_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"purpose", "bhag", "playing_rules",
			"three_year_vision", "annual_goals", "core_kpis",
			"updated_at",
		}),
	}).Create(&vision).Error
	if err != nil {
		return nil, err
	}
	return &vision, nil
}

// GetVisionAndGoals returns nil (not an error) when no row exists yet;
// status derivation treats the missing row as not started.
func GetVisionAndGoals(ctx context.Context, engagementId string) (*VisionAndGoals, error) {
	var vision VisionAndGoals
	db := config.GetDB()
	result := db.WithContext(ctx).
		Where("engagement_id = ?", engagementId).
		Limit(1).Find(&vision)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &vision, nil
}

// VisionStatus counts non-empty fields among the six vision fields. A list
// field counts when it has at least one entry, a text field when its
// trimmed length is positive.
func VisionStatus(vision *VisionAndGoals) ModuleStatus {
	if vision == nil {
		return ModuleStatusNotStarted
	}

	nonEmpty := 0
	for _, text := range []string{vision.Purpose, vision.Bhag, vision.ThreeYearVision} {
		if strings.TrimSpace(text) != "" {
			nonEmpty++
		}
	}
	for _, list := range []StringList{vision.PlayingRules, vision.AnnualGoals, vision.CoreKpis} {
		if len(list) > 0 {
			nonEmpty++
		}
	}

	switch nonEmpty {
	case 0:
		return ModuleStatusNotStarted
	case 6:
		return ModuleStatusComplete
	default:
		return ModuleStatusInProgress
	}
}
