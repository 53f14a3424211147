package models

import (
	"context"
	"strings"

	"bitbucket.org/trellisadvisory/planning_backend/utils"
)

// ReviewInput is the flattened SSK + SWOT material shown on the review
// screen before strategy ideation. Unlike the export, free-text blocks are
// split into individual bullet lines here.
type ReviewInput struct {
	Engagement    *Engagement `json:"engagement"`
	StartItems    []string    `json:"start_items"`
	StopItems     []string    `json:"stop_items"`
	KeepItems     []string    `json:"keep_items"`
	Strengths     []string    `json:"strengths"`
	Weaknesses    []string    `json:"weaknesses"`
	Opportunities []string    `json:"opportunities"`
	Threats       []string    `json:"threats"`
}

// LoadReviewInput gathers and flattens the engagement's SSK and SWOT rows.
// Returns utils.ErrorRecordNotFound when the engagement does not exist.
func LoadReviewInput(ctx context.Context, engagementId string) (*ReviewInput, error) {
	engagement, err := GetEngagementById(ctx, engagementId)
	if err != nil {
		return nil, err
	}

	sskRows, err := ListStartStopKeepResponses(ctx, engagementId)
	if err != nil {
		return nil, err
	}
	swotRows, err := ListSwotResponses(ctx, engagementId)
	if err != nil {
		return nil, err
	}

	review := ReviewInput{
		Engagement: engagement,
		StartItems: []string{},
		StopItems:  []string{},
		KeepItems:  []string{},
	}
	for _, row := range sskRows {
		review.StartItems = append(review.StartItems, utils.SplitBullets(row.StartText)...)
		review.StopItems = append(review.StopItems, utils.SplitBullets(row.StopText)...)
		review.KeepItems = append(review.KeepItems, utils.SplitBullets(row.KeepText)...)
	}

	review.Strengths = []string{}
	review.Weaknesses = []string{}
	review.Opportunities = []string{}
	review.Threats = []string{}
	for _, row := range swotRows {
		review.Strengths = append(review.Strengths, trimNonBlank(row.Strengths)...)
		review.Weaknesses = append(review.Weaknesses, trimNonBlank(row.Weaknesses)...)
		review.Opportunities = append(review.Opportunities, trimNonBlank(row.Opportunities)...)
		review.Threats = append(review.Threats, trimNonBlank(row.Threats)...)
	}

	return &review, nil
}

func trimNonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
