package models

import (
	"fmt"
	"time"
)

// FinancialPeriod is a synthetic value object regenerated on every read.
// It is never persisted; the same (now, fyeMonth, fyeDay) must always
// produce the same sequence.
type FinancialPeriod struct {
	Key           string     `json:"key"`
	Label         string     `json:"label"`
	Description   string     `json:"description"`
	Type          PeriodType `json:"type"`
	Order         int        `json:"order"`
	IsRecommended bool       `json:"is_recommended"`
	EndYear       *int       `json:"end_year"`
}

type PeriodStatusSummary struct {
	Status    PeriodStatus `json:"status"`
	HasPack   bool         `json:"has_pack"`
	HasPnl    bool         `json:"has_pnl"`
	HasBs     bool         `json:"has_bs"`
	TotalDocs int          `json:"total_docs"`
}

type OverallReadiness struct {
	Label          string `json:"label"`
	CompletedSlots int    `json:"completed_slots"`
	TotalSlots     int    `json:"total_slots"`
}

var shortMonthNames = []string{
	"", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// BuildFinancialPeriods computes the rolling reportable periods from the
// engagement's fiscal year end: the last three completed full years, the
// current year to date and a legacy opening balance sheet row. Periods are
// labelled by the year the fiscal year ENDS in (FY 2026 ends 30 Jun 2026
// for an Australian June year end). Pass zero fyeMonth to default to a
// calendar year end.
func BuildFinancialPeriods(now time.Time, fyeMonth, fyeDay int) []FinancialPeriod {
	if fyeMonth < 1 || fyeMonth > 12 {
		fyeMonth = 12
		fyeDay = 31
	}
	if fyeDay < 1 || fyeDay > 31 {
		fyeDay = 1
	}

	nowYear := now.Year()
	fyeThisYear := time.Date(nowYear, time.Month(fyeMonth), fyeDay, 23, 59, 59, 0, now.Location())

	// The current fiscal year is the one whose end date is next in the calendar.
	currentEndYear := nowYear
	if now.After(fyeThisYear) {
		currentEndYear = nowYear + 1
	}
	lastCompletedEndYear := currentEndYear - 1

	fullYearEnds := []int{
		lastCompletedEndYear,
		lastCompletedEndYear - 1,
		lastCompletedEndYear - 2,
	}

	periods := make([]FinancialPeriod, 0, len(fullYearEnds)+2)
	for i, endYear := range fullYearEnds {
		endYear := endYear
		periods = append(periods, FinancialPeriod{
			Key:           fmt.Sprintf("fy%d_full", endYear),
			Label:         fmt.Sprintf("FY %d (full year)", endYear),
			Description:   fmt.Sprintf("Financial year ending %d %s %d.", fyeDay, shortMonthNames[fyeMonth], endYear),
			Type:          PeriodTypeFullYear,
			Order:         i + 1,
			IsRecommended: true,
			EndYear:       &endYear,
		})
	}

	ytdEndYear := currentEndYear
	periods = append(periods, FinancialPeriod{
		Key:           fmt.Sprintf("fy%d_ytd", ytdEndYear),
		Label:         fmt.Sprintf("FY %d (year-to-date)", ytdEndYear),
		Description:   fmt.Sprintf("Current financial year to date (year ending %d %s %d).", fyeDay, shortMonthNames[fyeMonth], ytdEndYear),
		Type:          PeriodTypeYTD,
		Order:         0,
		IsRecommended: true,
		EndYear:       &ytdEndYear,
	})

	// Opening balance sheet at the start of the earliest full year in the
	// series. Legacy row: checklist rendering and readiness totals skip it.
	openingLabelYear := fullYearEnds[len(fullYearEnds)-1] - 1
	periods = append(periods, FinancialPeriod{
		Key:           "opening_balance_sheet",
		Label:         "Opening Balance Sheet",
		Description:   fmt.Sprintf("Balance Sheet at the start of the first financial year in this series (1 %s %d).", shortMonthNames[fyeMonth], openingLabelYear),
		Type:          PeriodTypeOpeningBS,
		Order:         len(fullYearEnds) + 1,
		IsRecommended: true,
	})

	return periods
}

// ComputePeriodStatus derives one period's checklist status. The combined
// document set is the docs explicitly tagged with the period key plus any
// docs whose covers_years includes the period's end year, deduplicated by
// document id. A doc with an unknown role still counts toward TotalDocs.
func ComputePeriodStatus(period FinancialPeriod, docsForPeriod []*FinancialDocument, docsCoveringYear map[int][]*FinancialDocument) PeriodStatusSummary {
	combined := make([]*FinancialDocument, 0, len(docsForPeriod))
	seen := make(map[int]bool, len(docsForPeriod))
	for _, doc := range docsForPeriod {
		combined = append(combined, doc)
		seen[doc.ID] = true
	}

	if period.EndYear != nil {
		for _, doc := range docsCoveringYear[*period.EndYear] {
			if !seen[doc.ID] {
				combined = append(combined, doc)
				seen[doc.ID] = true
			}
		}
	}

	summary := PeriodStatusSummary{TotalDocs: len(combined)}
	for _, doc := range combined {
		switch doc.Meta.DocRole {
		case DocRoleFinancialPack:
			summary.HasPack = true
		case DocRolePnl:
			summary.HasPnl = true
		case DocRoleBalanceSheet:
			summary.HasBs = true
		}
	}

	switch {
	case len(combined) == 0:
		summary.Status = PeriodStatusMissing
	case summary.HasPack || (summary.HasPnl && summary.HasBs):
		summary.Status = PeriodStatusComplete
	default:
		summary.Status = PeriodStatusPartial
	}
	return summary
}

// ComputeOverallReadiness aggregates period statuses into a single label.
// Each recommended non-opening period has two required statements, P&L and
// Balance Sheet, either satisfiable by a full financial pack.
func ComputeOverallReadiness(periods []FinancialPeriod, statuses map[string]PeriodStatusSummary) OverallReadiness {
	var total, completed int
	for _, period := range periods {
		if !period.IsRecommended || period.Type == PeriodTypeOpeningBS {
			continue
		}
		summary, ok := statuses[period.Key]
		if !ok {
			continue
		}
		total += 2
		if summary.HasPack || summary.HasPnl {
			completed++
		}
		if summary.HasPack || summary.HasBs {
			completed++
		}
	}

	readiness := OverallReadiness{CompletedSlots: completed, TotalSlots: total}
	switch {
	case completed == 0:
		readiness.Label = "Not started"
	case completed == total:
		readiness.Label = "Complete"
	default:
		readiness.Label = "In progress"
	}
	return readiness
}
