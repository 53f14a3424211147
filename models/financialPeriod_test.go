package models

import (
	"reflect"
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func periodKeys(periods []FinancialPeriod) []string {
	keys := make([]string, 0, len(periods))
	for _, p := range periods {
		keys = append(keys, p.Key)
	}
	return keys
}

func TestBuildFinancialPeriodsBeforeFYE(t *testing.T) {
	// June year end, observed in March: FY 2025 has not ended yet.
	periods := BuildFinancialPeriods(date(2025, time.March, 15), 6, 30)

	wantKeys := []string{"fy2024_full", "fy2023_full", "fy2022_full", "fy2025_ytd", "opening_balance_sheet"}
	if got := periodKeys(periods); !reflect.DeepEqual(got, wantKeys) {
		t.Fatalf("period keys = %v, want %v", got, wantKeys)
	}

	first := periods[0]
	if first.Label != "FY 2024 (full year)" {
		t.Errorf("full year label = %q", first.Label)
	}
	if first.Description != "Financial year ending 30 Jun 2024." {
		t.Errorf("full year description = %q", first.Description)
	}
	if first.Order != 1 || !first.IsRecommended {
		t.Errorf("full year order/recommended = %d/%v", first.Order, first.IsRecommended)
	}
	if first.EndYear == nil || *first.EndYear != 2024 {
		t.Errorf("full year EndYear = %v", first.EndYear)
	}

	ytd := periods[3]
	if ytd.Label != "FY 2025 (year-to-date)" || ytd.Order != 0 || ytd.Type != PeriodTypeYTD {
		t.Errorf("ytd period = %+v", ytd)
	}

	opening := periods[4]
	if opening.Label != "Opening Balance Sheet" || opening.EndYear != nil {
		t.Errorf("opening period = %+v", opening)
	}
	if opening.Description != "Balance Sheet at the start of the first financial year in this series (1 Jun 2021)." {
		t.Errorf("opening description = %q", opening.Description)
	}
	if opening.Order != 4 {
		t.Errorf("opening order = %d", opening.Order)
	}
}

func TestBuildFinancialPeriodsAfterFYE(t *testing.T) {
	// June year end, observed in August: FY 2025 has already closed.
	periods := BuildFinancialPeriods(date(2025, time.August, 1), 6, 30)

	wantKeys := []string{"fy2025_full", "fy2024_full", "fy2023_full", "fy2026_ytd", "opening_balance_sheet"}
	if got := periodKeys(periods); !reflect.DeepEqual(got, wantKeys) {
		t.Fatalf("period keys = %v, want %v", got, wantKeys)
	}

	opening := periods[4]
	if opening.Description != "Balance Sheet at the start of the first financial year in this series (1 Jun 2022)." {
		t.Errorf("opening description = %q", opening.Description)
	}
}

func TestBuildFinancialPeriodsOnFYEDay(t *testing.T) {
	// The year end day itself still belongs to the closing year.
	periods := BuildFinancialPeriods(date(2025, time.June, 30), 6, 30)
	if periods[3].Key != "fy2025_ytd" {
		t.Errorf("ytd key on fye day = %q", periods[3].Key)
	}
}

func TestBuildFinancialPeriodsDefaultsCalendarYear(t *testing.T) {
	periods := BuildFinancialPeriods(date(2025, time.March, 15), 0, 0)
	if periods[0].Key != "fy2024_full" {
		t.Errorf("default fye full year key = %q", periods[0].Key)
	}
	if periods[0].Description != "Financial year ending 31 Dec 2024." {
		t.Errorf("default fye description = %q", periods[0].Description)
	}
}

func TestBuildFinancialPeriodsDeterministic(t *testing.T) {
	now := date(2025, time.March, 15)
	a := BuildFinancialPeriods(now, 6, 30)
	b := BuildFinancialPeriods(now, 6, 30)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same inputs produced different period series")
	}
}

func intPtr(v int) *int { return &v }

func TestComputePeriodStatus(t *testing.T) {
	period := FinancialPeriod{Key: "fy2024_full", Type: PeriodTypeFullYear, EndYear: intPtr(2024)}

	pack := &FinancialDocument{ID: 1, Meta: DocumentMeta{PeriodKey: "fy2024_full", DocRole: DocRoleFinancialPack}}
	pnl := &FinancialDocument{ID: 2, Meta: DocumentMeta{PeriodKey: "fy2024_full", DocRole: DocRolePnl}}
	bs := &FinancialDocument{ID: 3, Meta: DocumentMeta{DocRole: DocRoleBalanceSheet, CoversYears: IntList{2024}}}
	other := &FinancialDocument{ID: 4, Meta: DocumentMeta{PeriodKey: "fy2024_full", DocRole: DocRoleOther}}

	tests := []struct {
		name      string
		forPeriod []*FinancialDocument
		byYear    map[int][]*FinancialDocument
		want      PeriodStatusSummary
	}{
		{
			name: "no documents",
			want: PeriodStatusSummary{Status: PeriodStatusMissing},
		},
		{
			name:      "pack alone completes",
			forPeriod: []*FinancialDocument{pack},
			want:      PeriodStatusSummary{Status: PeriodStatusComplete, HasPack: true, TotalDocs: 1},
		},
		{
			name:      "pnl plus covering balance sheet completes",
			forPeriod: []*FinancialDocument{pnl},
			byYear:    map[int][]*FinancialDocument{2024: {bs}},
			want:      PeriodStatusSummary{Status: PeriodStatusComplete, HasPnl: true, HasBs: true, TotalDocs: 2},
		},
		{
			name:      "pnl alone is partial",
			forPeriod: []*FinancialDocument{pnl},
			want:      PeriodStatusSummary{Status: PeriodStatusPartial, HasPnl: true, TotalDocs: 1},
		},
		{
			name:      "unknown role counts toward totals only",
			forPeriod: []*FinancialDocument{other},
			want:      PeriodStatusSummary{Status: PeriodStatusPartial, TotalDocs: 1},
		},
		{
			name:      "doc tagged with key and covering year counted once",
			forPeriod: []*FinancialDocument{pnl},
			byYear:    map[int][]*FinancialDocument{2024: {pnl, bs}},
			want:      PeriodStatusSummary{Status: PeriodStatusComplete, HasPnl: true, HasBs: true, TotalDocs: 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputePeriodStatus(period, tc.forPeriod, tc.byYear)
			if got != tc.want {
				t.Errorf("ComputePeriodStatus() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestComputePeriodStatusOpeningBalanceSheet(t *testing.T) {
	// No end year: only key-tagged docs count.
	period := FinancialPeriod{Key: "opening_balance_sheet", Type: PeriodTypeOpeningBS}
	byYear := map[int][]*FinancialDocument{
		2024: {{ID: 9, Meta: DocumentMeta{DocRole: DocRoleFinancialPack, CoversYears: IntList{2024}}}},
	}
	got := ComputePeriodStatus(period, nil, byYear)
	if got.Status != PeriodStatusMissing || got.TotalDocs != 0 {
		t.Errorf("opening period status = %+v", got)
	}
}

func TestComputeOverallReadiness(t *testing.T) {
	periods := BuildFinancialPeriods(date(2025, time.March, 15), 6, 30)

	complete := PeriodStatusSummary{Status: PeriodStatusComplete, HasPack: true, TotalDocs: 1}
	pnlOnly := PeriodStatusSummary{Status: PeriodStatusPartial, HasPnl: true, TotalDocs: 1}
	empty := PeriodStatusSummary{Status: PeriodStatusMissing}

	tests := []struct {
		name     string
		statuses map[string]PeriodStatusSummary
		want     OverallReadiness
	}{
		{
			name: "nothing uploaded",
			statuses: map[string]PeriodStatusSummary{
				"fy2024_full": empty, "fy2023_full": empty, "fy2022_full": empty,
				"fy2025_ytd": empty, "opening_balance_sheet": empty,
			},
			want: OverallReadiness{Label: "Not started", CompletedSlots: 0, TotalSlots: 8},
		},
		{
			name: "one pack and one pnl",
			statuses: map[string]PeriodStatusSummary{
				"fy2024_full": complete, "fy2023_full": pnlOnly, "fy2022_full": empty,
				"fy2025_ytd": empty, "opening_balance_sheet": empty,
			},
			want: OverallReadiness{Label: "In progress", CompletedSlots: 3, TotalSlots: 8},
		},
		{
			name: "everything covered",
			statuses: map[string]PeriodStatusSummary{
				"fy2024_full": complete, "fy2023_full": complete, "fy2022_full": complete,
				"fy2025_ytd": complete, "opening_balance_sheet": empty,
			},
			want: OverallReadiness{Label: "Complete", CompletedSlots: 8, TotalSlots: 8},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeOverallReadiness(periods, tc.statuses)
			if got != tc.want {
				t.Errorf("ComputeOverallReadiness() = %+v, want %+v", got, tc.want)
			}
		})
	}
}
