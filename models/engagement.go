package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/trellisadvisory/planning_backend/config"
	"bitbucket.org/trellisadvisory/planning_backend/utils"
	"github.com/google/uuid"
)

type Engagement struct {
	ID             uuid.UUID `gorm:"primary_key" json:"id"`
	CompanyName    string    `gorm:"index;size:255;not null" json:"company_name" binding:"required"`
	LeaderName     string    `gorm:"size:255" json:"leader_name"`
	EngagementName string    `gorm:"size:255" json:"engagement_name"`
	FyeMonth       int       `gorm:"not null;default:12" json:"fye_month"`
	FyeDay         int       `gorm:"not null;default:31" json:"fye_day"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewEngagement struct {
	CompanyName    string `json:"company_name" binding:"required"`
	LeaderName     string `json:"leader_name"`
	EngagementName string `json:"engagement_name"`
	FyeMonth       int    `json:"fye_month" binding:"omitempty,min=1,max=12"`
	FyeDay         int    `json:"fye_day" binding:"omitempty,min=1,max=31"`
}

const allEngagementsRedisKey = "AllEngagements"

func (engagement *Engagement) StoreRedis() error {
	return config.SetRedisObject("Engagement:"+fmt.Sprint(engagement.ID), engagement, 0)
}

func CreateEngagement(ctx context.Context, input NewEngagement) (*Engagement, error) {
	engagement := Engagement{
		ID:             uuid.New(),
		CompanyName:    strings.TrimSpace(input.CompanyName),
		LeaderName:     strings.TrimSpace(input.LeaderName),
		EngagementName: strings.TrimSpace(input.EngagementName),
		FyeMonth:       input.FyeMonth,
		FyeDay:         input.FyeDay,
	}
	// Calendar year end is the default fiscal year end.
	if engagement.FyeMonth == 0 {
		engagement.FyeMonth = 12
		engagement.FyeDay = 31
	}
	if engagement.FyeDay == 0 {
		engagement.FyeDay = 1
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&engagement).Error; err != nil {
		return nil, err
	}

	// Invalidate the cached list so new engagements show up immediately.
	if err := config.RemoveRedisKey(allEngagementsRedisKey); err != nil {
		return nil, err
	}
	return &engagement, nil
}

func ListEngagements(ctx context.Context) ([]*Engagement, error) {
	var engagements []*Engagement

	exists, err := config.GetRedisObject(allEngagementsRedisKey, &engagements)
	if err != nil {
		return nil, err
	}
	if exists {
		return engagements, nil
	}

	db := config.GetDB()
	ctx = utils.SetSkipEngagementScopeInContext(ctx, true)
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&engagements).Error; err != nil {
		return nil, err
	}

	if err := config.SetRedisObject(allEngagementsRedisKey, &engagements, 0); err != nil {
		return nil, err
	}
	return engagements, nil
}

// GetEngagementById fetches one engagement, redis first then db.
// Returns utils.ErrorRecordNotFound when the id does not exist.
func GetEngagementById(ctx context.Context, engagementId string) (*Engagement, error) {
	var engagement Engagement

	exists, err := config.GetRedisObject("Engagement:"+engagementId, &engagement)
	if err != nil {
		return nil, err
	}
	if exists {
		return &engagement, nil
	}

	db := config.GetDB()
	ctx = utils.SetSkipEngagementScopeInContext(ctx, true)
	result := db.WithContext(ctx).Where("id = ?", engagementId).Limit(1).Find(&engagement)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, utils.ErrorRecordNotFound
	}

	if err := engagement.StoreRedis(); err != nil {
		return nil, err
	}
	return &engagement, nil
}
