package models

import (
	"context"
	"errors"

	"bitbucket.org/trellisadvisory/planning_backend/config"
	"bitbucket.org/trellisadvisory/planning_backend/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// DashboardStore abstracts the reads the dashboard fans out. The gorm
// implementation backs production; tests inject an in-memory fake.
type DashboardStore interface {
	GetEngagement(ctx context.Context, engagementId string) (*Engagement, error)
	GetVision(ctx context.Context, engagementId string) (*VisionAndGoals, error)
	ListSwot(ctx context.Context, engagementId string) ([]*SwotResponse, error)
	CountSsk(ctx context.Context, engagementId string) (int64, error)
	GetBrainstorm(ctx context.Context, engagementId string) (*StrategyIdeation, error)
	ListStrategyItems(ctx context.Context, engagementId string) ([]*StrategyIdeationItem, error)
	CountFinancialDocs(ctx context.Context, engagementId string) (int64, error)
	CountInsightDocs(ctx context.Context, engagementId string) (int64, error)
}

type GormDashboardStore struct{}

func (GormDashboardStore) GetEngagement(ctx context.Context, engagementId string) (*Engagement, error) {
	return GetEngagementById(ctx, engagementId)
}

func (GormDashboardStore) GetVision(ctx context.Context, engagementId string) (*VisionAndGoals, error) {
	return GetVisionAndGoals(ctx, engagementId)
}

func (GormDashboardStore) ListSwot(ctx context.Context, engagementId string) ([]*SwotResponse, error) {
	return ListSwotResponses(ctx, engagementId)
}

func (GormDashboardStore) CountSsk(ctx context.Context, engagementId string) (int64, error) {
	return CountStartStopKeepResponses(ctx, engagementId)
}

func (GormDashboardStore) GetBrainstorm(ctx context.Context, engagementId string) (*StrategyIdeation, error) {
	return GetStrategyIdeation(ctx, engagementId)
}

func (GormDashboardStore) ListStrategyItems(ctx context.Context, engagementId string) ([]*StrategyIdeationItem, error) {
	return ListStrategyIdeationItems(ctx, engagementId)
}

func (GormDashboardStore) CountFinancialDocs(ctx context.Context, engagementId string) (int64, error) {
	return CountFinancialDocuments(ctx, engagementId)
}

func (GormDashboardStore) CountInsightDocs(ctx context.Context, engagementId string) (int64, error) {
	return CountCustomerInsightsDocuments(ctx, engagementId)
}

type ModuleStatuses struct {
	Vision           ModuleStatus `json:"vision"`
	Swot             ModuleStatus `json:"swot"`
	Ssk              ModuleStatus `json:"ssk"`
	CustomerInsights ModuleStatus `json:"customer_insights"`
	Financials       ModuleStatus `json:"financials"`
	StrategyIdeation ModuleStatus `json:"strategy_ideation"`
	Prioritisation   ModuleStatus `json:"prioritisation"`
	A3Plan           ModuleStatus `json:"a3_plan"`
}

type EngagementDashboard struct {
	Engagement         *Engagement             `json:"engagement"`
	Statuses           ModuleStatuses          `json:"statuses"`
	Vision             *VisionAndGoals         `json:"vision"`
	StrategyItems      []*StrategyIdeationItem `json:"strategy_items"`
	SskResponseCount   int64                   `json:"ssk_response_count"`
	SwotResponseCount  int64                   `json:"swot_response_count"`
	FinancialDocCount  int64                   `json:"financial_doc_count"`
	InsightDocCount    int64                   `json:"insight_doc_count"`
	HasBrainstorm      bool                    `json:"has_brainstorm"`
}

// LoadEngagementDashboard fans out the child reads for one engagement and
// derives module statuses. A failed child read is logged and treated as
// absent data so the dashboard still renders; a missing engagement row is
// fatal and surfaces utils.ErrorRecordNotFound.
func LoadEngagementDashboard(ctx context.Context, store DashboardStore, engagementId string) (*EngagementDashboard, error) {
	tracer := otel.Tracer("planning_backend")
	ctx, span := tracer.Start(ctx, "dashboard.load")
	span.SetAttributes(attribute.String("engagement.id", engagementId))
	defer span.End()

	engagement, err := store.GetEngagement(ctx, engagementId)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, err
		}
		config.LogError(config.GetLogger(), "models", "LoadEngagementDashboard", "fetching engagement", engagementId, err)
		return nil, err
	}

	var (
		vision        *VisionAndGoals
		swotRows      []*SwotResponse
		sskCount      int64
		brainstorm    *StrategyIdeation
		strategyItems []*StrategyIdeationItem
		financialDocs int64
		insightDocs   int64
	)

	logAbsent := func(funcName string, err error) {
		config.LogError(config.GetLogger(), "models", "LoadEngagementDashboard", funcName, engagementId, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := store.GetVision(gctx, engagementId)
		if err != nil {
			logAbsent("fetching vision", err)
			return nil
		}
		vision = v
		return nil
	})
	g.Go(func() error {
		rows, err := store.ListSwot(gctx, engagementId)
		if err != nil {
			logAbsent("fetching swot rows", err)
			return nil
		}
		swotRows = rows
		return nil
	})
	g.Go(func() error {
		count, err := store.CountSsk(gctx, engagementId)
		if err != nil {
			logAbsent("counting ssk responses", err)
			return nil
		}
		sskCount = count
		return nil
	})
	g.Go(func() error {
		record, err := store.GetBrainstorm(gctx, engagementId)
		if err != nil {
			logAbsent("fetching brainstorm", err)
			return nil
		}
		brainstorm = record
		return nil
	})
	g.Go(func() error {
		items, err := store.ListStrategyItems(gctx, engagementId)
		if err != nil {
			logAbsent("fetching strategy items", err)
			return nil
		}
		strategyItems = items
		return nil
	})
	g.Go(func() error {
		count, err := store.CountFinancialDocs(gctx, engagementId)
		if err != nil {
			logAbsent("counting financial documents", err)
			return nil
		}
		financialDocs = count
		return nil
	})
	g.Go(func() error {
		count, err := store.CountInsightDocs(gctx, engagementId)
		if err != nil {
			logAbsent("counting insight documents", err)
			return nil
		}
		insightDocs = count
		return nil
	})
	// Child reads never return errors (failures degrade to absent data),
	// so Wait only synchronizes.
	_ = g.Wait()

	visionStatus := VisionStatus(vision)
	swotStatus := SwotStatus(swotRows)
	sskStatus := SskStatus(int(sskCount))

	statuses := ModuleStatuses{
		Vision:           visionStatus,
		Swot:             swotStatus,
		Ssk:              sskStatus,
		CustomerInsights: CustomerInsightsStatus(int(insightDocs)),
		Financials:       FinancialsStatus(int(financialDocs)),
		StrategyIdeation: StrategyIdeationGate(brainstorm != nil, visionStatus, sskStatus, swotStatus),
		Prioritisation:   ModuleStatusComingSoon,
		A3Plan:           ModuleStatusComingSoon,
	}
	if config.PrioritisationEnabled() {
		statuses.Prioritisation = ModuleStatusNotStarted
	}
	if config.A3PlanEnabled() {
		statuses.A3Plan = ModuleStatusNotStarted
	}

	return &EngagementDashboard{
		Engagement:        engagement,
		Statuses:          statuses,
		Vision:            vision,
		StrategyItems:     strategyItems,
		SskResponseCount:  sskCount,
		SwotResponseCount: int64(len(swotRows)),
		FinancialDocCount: financialDocs,
		InsightDocCount:   insightDocs,
		HasBrainstorm:     brainstorm != nil,
	}, nil
}
