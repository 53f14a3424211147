package models

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/trellisadvisory/planning_backend/utils"
	"github.com/google/uuid"
)

type fakeDashboardStore struct {
	engagement    *Engagement
	engagementErr error
	vision        *VisionAndGoals
	visionErr     error
	swotRows      []*SwotResponse
	swotErr       error
	sskCount      int64
	sskErr        error
	brainstorm    *StrategyIdeation
	brainstormErr error
	strategyItems []*StrategyIdeationItem
	strategyErr   error
	financialDocs int64
	financialErr  error
	insightDocs   int64
	insightErr    error
}

func (s *fakeDashboardStore) GetEngagement(ctx context.Context, engagementId string) (*Engagement, error) {
	return s.engagement, s.engagementErr
}

func (s *fakeDashboardStore) GetVision(ctx context.Context, engagementId string) (*VisionAndGoals, error) {
	return s.vision, s.visionErr
}

func (s *fakeDashboardStore) ListSwot(ctx context.Context, engagementId string) ([]*SwotResponse, error) {
	return s.swotRows, s.swotErr
}

func (s *fakeDashboardStore) CountSsk(ctx context.Context, engagementId string) (int64, error) {
	return s.sskCount, s.sskErr
}

func (s *fakeDashboardStore) GetBrainstorm(ctx context.Context, engagementId string) (*StrategyIdeation, error) {
	return s.brainstorm, s.brainstormErr
}

func (s *fakeDashboardStore) ListStrategyItems(ctx context.Context, engagementId string) ([]*StrategyIdeationItem, error) {
	return s.strategyItems, s.strategyErr
}

func (s *fakeDashboardStore) CountFinancialDocs(ctx context.Context, engagementId string) (int64, error) {
	return s.financialDocs, s.financialErr
}

func (s *fakeDashboardStore) CountInsightDocs(ctx context.Context, engagementId string) (int64, error) {
	return s.insightDocs, s.insightErr
}

func testEngagement() *Engagement {
	return &Engagement{ID: uuid.New(), CompanyName: "Acme Pty Ltd", FyeMonth: 6, FyeDay: 30}
}

func TestLoadEngagementDashboardMissingEngagement(t *testing.T) {
	store := &fakeDashboardStore{engagementErr: utils.ErrorRecordNotFound}
	_, err := LoadEngagementDashboard(context.Background(), store, "missing")
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("err = %v, want ErrorRecordNotFound", err)
	}
}

func TestLoadEngagementDashboardEmptyEngagement(t *testing.T) {
	store := &fakeDashboardStore{engagement: testEngagement()}
	dashboard, err := LoadEngagementDashboard(context.Background(), store, "e1")
	if err != nil {
		t.Fatalf("LoadEngagementDashboard() error = %v", err)
	}

	want := ModuleStatuses{
		Vision:           ModuleStatusNotStarted,
		Swot:             ModuleStatusNotStarted,
		Ssk:              ModuleStatusNotStarted,
		CustomerInsights: ModuleStatusNotStarted,
		Financials:       ModuleStatusNotStarted,
		StrategyIdeation: ModuleStatusNotReady,
		Prioritisation:   ModuleStatusComingSoon,
		A3Plan:           ModuleStatusComingSoon,
	}
	if dashboard.Statuses != want {
		t.Errorf("statuses = %+v, want %+v", dashboard.Statuses, want)
	}
	if dashboard.HasBrainstorm {
		t.Error("HasBrainstorm = true for empty engagement")
	}
}

func TestLoadEngagementDashboardActiveEngagement(t *testing.T) {
	store := &fakeDashboardStore{
		engagement: testEngagement(),
		vision: &VisionAndGoals{
			Purpose:      "Grow sustainably",
			PlayingRules: StringList{"Be honest"},
		},
		swotRows:      []*SwotResponse{{Strengths: StringList{"Loyal customers"}}},
		sskCount:      4,
		financialDocs: 3,
		insightDocs:   1,
	}
	dashboard, err := LoadEngagementDashboard(context.Background(), store, "e1")
	if err != nil {
		t.Fatalf("LoadEngagementDashboard() error = %v", err)
	}

	statuses := dashboard.Statuses
	if statuses.Vision != ModuleStatusInProgress {
		t.Errorf("vision = %s", statuses.Vision)
	}
	if statuses.Swot != ModuleStatusInProgress {
		t.Errorf("swot = %s", statuses.Swot)
	}
	if statuses.Ssk != ModuleStatusInProgress {
		t.Errorf("ssk = %s", statuses.Ssk)
	}
	if statuses.Financials != ModuleStatusComplete {
		t.Errorf("financials = %s", statuses.Financials)
	}
	if statuses.CustomerInsights != ModuleStatusComplete {
		t.Errorf("customer insights = %s", statuses.CustomerInsights)
	}
	if statuses.StrategyIdeation != ModuleStatusAvailable {
		t.Errorf("strategy ideation = %s", statuses.StrategyIdeation)
	}
	if dashboard.SskResponseCount != 4 || dashboard.SwotResponseCount != 1 {
		t.Errorf("counts = %d/%d", dashboard.SskResponseCount, dashboard.SwotResponseCount)
	}
}

func TestLoadEngagementDashboardChildFailuresDegrade(t *testing.T) {
	boom := errors.New("connection reset")
	store := &fakeDashboardStore{
		engagement:   testEngagement(),
		visionErr:    boom,
		swotErr:      boom,
		sskErr:       boom,
		financialErr: boom,
		insightErr:   boom,
		strategyErr:  boom,
	}
	dashboard, err := LoadEngagementDashboard(context.Background(), store, "e1")
	if err != nil {
		t.Fatalf("child failures must not fail the dashboard: %v", err)
	}
	if dashboard.Statuses.Vision != ModuleStatusNotStarted {
		t.Errorf("vision after failed read = %s", dashboard.Statuses.Vision)
	}
	if dashboard.FinancialDocCount != 0 || dashboard.InsightDocCount != 0 {
		t.Errorf("counts after failed reads = %d/%d", dashboard.FinancialDocCount, dashboard.InsightDocCount)
	}
}

func TestLoadEngagementDashboardBrainstormWins(t *testing.T) {
	store := &fakeDashboardStore{
		engagement: testEngagement(),
		brainstorm: &StrategyIdeation{Anchors: StringList{"Customer first"}},
	}
	dashboard, err := LoadEngagementDashboard(context.Background(), store, "e1")
	if err != nil {
		t.Fatalf("LoadEngagementDashboard() error = %v", err)
	}
	if !dashboard.HasBrainstorm {
		t.Error("HasBrainstorm = false with saved brainstorm")
	}
	if dashboard.Statuses.StrategyIdeation != ModuleStatusComplete {
		t.Errorf("strategy ideation = %s, want %s", dashboard.Statuses.StrategyIdeation, ModuleStatusComplete)
	}
}
