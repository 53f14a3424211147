package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/trellisadvisory/planning_backend/config"
)

// StartStopKeepResponse is append-only: participants keep adding rows and
// nothing in scope ever edits or removes one.
type StartStopKeepResponse struct {
	ID              int       `gorm:"primary_key;autoIncrement" json:"id"`
	EngagementId    string    `gorm:"index;size:36;not null" json:"engagement_id"`
	ParticipantName string    `gorm:"size:255;not null" json:"participant_name"`
	StartText       string    `gorm:"type:text" json:"start_text"`
	StopText        string    `gorm:"type:text" json:"stop_text"`
	KeepText        string    `gorm:"type:text" json:"keep_text"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewStartStopKeepResponse struct {
	EngagementId    string `json:"engagement_id" binding:"required"`
	ParticipantName string `json:"participant_name" binding:"required"`
	Start           string `json:"start"`
	Stop            string `json:"stop"`
	Keep            string `json:"keep"`
}

// HasContent reports whether at least one of the three blocks is non-blank.
func (input NewStartStopKeepResponse) HasContent() bool {
	return strings.TrimSpace(input.Start) != "" ||
		strings.TrimSpace(input.Stop) != "" ||
		strings.TrimSpace(input.Keep) != ""
}

func CreateStartStopKeepResponse(ctx context.Context, input NewStartStopKeepResponse) (*StartStopKeepResponse, error) {
	response := StartStopKeepResponse{
		EngagementId:    input.EngagementId,
		ParticipantName: strings.TrimSpace(input.ParticipantName),
		StartText:       input.Start,
		StopText:        input.Stop,
		KeepText:        input.Keep,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func CountStartStopKeepResponses(ctx context.Context, engagementId string) (int64, error) {
	var count int64
	db := config.GetDB()
	err := db.WithContext(ctx).Model(&StartStopKeepResponse{}).
		Where("engagement_id = ?", engagementId).
		Count(&count).Error
	return count, err
}

// ListStartStopKeepResponses returns rows oldest first, the order the
// export flattens them in.
func ListStartStopKeepResponses(ctx context.Context, engagementId string) ([]*StartStopKeepResponse, error) {
	var responses []*StartStopKeepResponse
	db := config.GetDB()
	err := db.WithContext(ctx).
		Where("engagement_id = ?", engagementId).
		Order("created_at ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}
