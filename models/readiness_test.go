package models

import "testing"

func TestVisionStatus(t *testing.T) {
	tests := []struct {
		name   string
		vision *VisionAndGoals
		want   ModuleStatus
	}{
		{"no record", nil, ModuleStatusNotStarted},
		{"empty record", &VisionAndGoals{}, ModuleStatusNotStarted},
		{"whitespace only", &VisionAndGoals{Purpose: "   "}, ModuleStatusNotStarted},
		{
			"three of six fields",
			&VisionAndGoals{
				Purpose:      "Grow sustainably",
				Bhag:         "Triple revenue by 2030",
				PlayingRules: StringList{"Be honest"},
			},
			ModuleStatusInProgress,
		},
		{
			"all six fields",
			&VisionAndGoals{
				Purpose:         "Grow sustainably",
				Bhag:            "Triple revenue by 2030",
				ThreeYearVision: "Market leader in NSW",
				PlayingRules:    StringList{"Be honest"},
				AnnualGoals:     StringList{"Open second site"},
				CoreKpis:        StringList{"Gross margin"},
			},
			ModuleStatusComplete,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := VisionStatus(tc.vision); got != tc.want {
				t.Errorf("VisionStatus() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestSwotStatus(t *testing.T) {
	tests := []struct {
		name string
		rows []*SwotResponse
		want ModuleStatus
	}{
		{"no rows", nil, ModuleStatusNotStarted},
		{"rows with no items", []*SwotResponse{{}}, ModuleStatusNotStarted},
		{
			"one quadrant",
			[]*SwotResponse{{Strengths: StringList{"Loyal customers"}}},
			ModuleStatusInProgress,
		},
		{
			"quadrants filled across rows",
			[]*SwotResponse{
				{Strengths: StringList{"Loyal customers"}, Weaknesses: StringList{"Key person risk"}},
				{Opportunities: StringList{"New region"}, Threats: StringList{"Price competition"}},
			},
			ModuleStatusComplete,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SwotStatus(tc.rows); got != tc.want {
				t.Errorf("SwotStatus() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestSskStatusNeverComplete(t *testing.T) {
	if got := SskStatus(0); got != ModuleStatusNotStarted {
		t.Errorf("SskStatus(0) = %s", got)
	}
	for _, count := range []int{1, 5, 500} {
		if got := SskStatus(count); got != ModuleStatusInProgress {
			t.Errorf("SskStatus(%d) = %s, want %s", count, got, ModuleStatusInProgress)
		}
	}
}

func TestCustomerInsightsStatus(t *testing.T) {
	if got := CustomerInsightsStatus(0); got != ModuleStatusNotStarted {
		t.Errorf("CustomerInsightsStatus(0) = %s", got)
	}
	if got := CustomerInsightsStatus(1); got != ModuleStatusComplete {
		t.Errorf("CustomerInsightsStatus(1) = %s", got)
	}
}

func TestFinancialsStatus(t *testing.T) {
	tests := []struct {
		count int
		want  ModuleStatus
	}{
		{0, ModuleStatusNotStarted},
		{1, ModuleStatusInProgress},
		{2, ModuleStatusInProgress},
		{3, ModuleStatusComplete},
		{10, ModuleStatusComplete},
	}
	for _, tc := range tests {
		if got := FinancialsStatus(tc.count); got != tc.want {
			t.Errorf("FinancialsStatus(%d) = %s, want %s", tc.count, got, tc.want)
		}
	}
}

func TestStrategyIdeationGate(t *testing.T) {
	tests := []struct {
		name          string
		hasBrainstorm bool
		vision        ModuleStatus
		ssk           ModuleStatus
		swot          ModuleStatus
		want          ModuleStatus
	}{
		{"nothing started", false, ModuleStatusNotStarted, ModuleStatusNotStarted, ModuleStatusNotStarted, ModuleStatusNotReady},
		{"vision only", false, ModuleStatusComplete, ModuleStatusNotStarted, ModuleStatusNotStarted, ModuleStatusNotReady},
		{"inputs without vision", false, ModuleStatusNotStarted, ModuleStatusInProgress, ModuleStatusComplete, ModuleStatusNotReady},
		{"vision plus ssk", false, ModuleStatusInProgress, ModuleStatusInProgress, ModuleStatusNotStarted, ModuleStatusAvailable},
		{"vision plus swot", false, ModuleStatusComplete, ModuleStatusNotStarted, ModuleStatusInProgress, ModuleStatusAvailable},
		{"brainstorm overrides everything", true, ModuleStatusNotStarted, ModuleStatusNotStarted, ModuleStatusNotStarted, ModuleStatusComplete},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := StrategyIdeationGate(tc.hasBrainstorm, tc.vision, tc.ssk, tc.swot)
			if got != tc.want {
				t.Errorf("StrategyIdeationGate() = %s, want %s", got, tc.want)
			}
		})
	}
}
