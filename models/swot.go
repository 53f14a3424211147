package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/trellisadvisory/planning_backend/config"
)

type SwotResponse struct {
	ID              int        `gorm:"primary_key;autoIncrement" json:"id"`
	EngagementId    string     `gorm:"index;size:36;not null" json:"engagement_id"`
	ParticipantName string     `gorm:"size:255" json:"participant_name"`
	Strengths       StringList `gorm:"type:json" json:"strengths"`
	Weaknesses      StringList `gorm:"type:json" json:"weaknesses"`
	Opportunities   StringList `gorm:"type:json" json:"opportunities"`
	Threats         StringList `gorm:"type:json" json:"threats"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

type NewSwotResponse struct {
	EngagementId    string   `json:"engagement_id" binding:"required"`
	ParticipantName string   `json:"participant_name"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Opportunities   []string `json:"opportunities"`
	Threats         []string `json:"threats"`
}

func CreateSwotResponse(ctx context.Context, input NewSwotResponse) (*SwotResponse, error) {
	response := SwotResponse{
		EngagementId:    input.EngagementId,
		ParticipantName: strings.TrimSpace(input.ParticipantName),
		Strengths:       input.Strengths,
		Weaknesses:      input.Weaknesses,
		Opportunities:   input.Opportunities,
		Threats:         input.Threats,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// ListSwotResponses returns rows in insertion order, the order the export
// flattens them in.
func ListSwotResponses(ctx context.Context, engagementId string) ([]*SwotResponse, error) {
	var responses []*SwotResponse
	db := config.GetDB()
	err := db.WithContext(ctx).
		Where("engagement_id = ?", engagementId).
		Order("id ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}
