package models

import (
	"strings"
	"testing"
	"time"
)

func exportTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatal(err)
	}
	return parsed
}

func TestBuildSskSwotExportRowsEmitsVerbatimText(t *testing.T) {
	created := exportTime(t, "2025-03-01T10:00:00Z")
	sskRows := []*StartStopKeepResponse{
		{
			StartText:       "A\n\n B",
			StopText:        "   ",
			KeepText:        "C",
			ParticipantName: "Dana",
			CreatedAt:       created,
		},
	}

	records := BuildSskSwotExportRows("Acme Pty Ltd", sskRows, nil)
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	start := records[0]
	if start.Source != "SSK" || start.CategoryOrQuadrant != "start" {
		t.Errorf("first record = %+v", start)
	}
	// Multi-line text is one record, not one per line.
	if start.Description != "A\n\n B" {
		t.Errorf("start description = %q", start.Description)
	}
	if start.CreatedAt != "2025-03-01T10:00:00Z" {
		t.Errorf("created_at = %q", start.CreatedAt)
	}
	if records[1].CategoryOrQuadrant != "keep" || records[1].Description != "C" {
		t.Errorf("second record = %+v", records[1])
	}
}

func TestBuildSskSwotExportRowsFlattensSwotQuadrants(t *testing.T) {
	created := exportTime(t, "2025-03-02T09:30:00Z")
	swotRows := []*SwotResponse{
		{
			Strengths:       StringList{"Loyal customers", "  "},
			Weaknesses:      StringList{"Key person risk"},
			Opportunities:   StringList{},
			Threats:         StringList{"Price competition"},
			ParticipantName: "Lee",
			CreatedAt:       created,
		},
	}

	records := BuildSskSwotExportRows("Acme Pty Ltd", nil, swotRows)
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	wantQuadrants := []string{"strength", "weakness", "threat"}
	for i, record := range records {
		if record.Source != "SWOT" {
			t.Errorf("record %d source = %q", i, record.Source)
		}
		if record.CategoryOrQuadrant != wantQuadrants[i] {
			t.Errorf("record %d quadrant = %q, want %q", i, record.CategoryOrQuadrant, wantQuadrants[i])
		}
	}
}

func TestBuildSskSwotExportRowsSskBeforeSwot(t *testing.T) {
	created := exportTime(t, "2025-03-01T10:00:00Z")
	records := BuildSskSwotExportRows("Acme",
		[]*StartStopKeepResponse{{KeepText: "K", CreatedAt: created}},
		[]*SwotResponse{{Strengths: StringList{"S"}, CreatedAt: created}},
	)
	if len(records) != 2 || records[0].Source != "SSK" || records[1].Source != "SWOT" {
		t.Fatalf("records = %+v", records)
	}
}

func TestRenderExportCSV(t *testing.T) {
	records := []ExportRecord{
		{
			CompanyName:        "Acme Pty Ltd",
			Source:             "SSK",
			CategoryOrQuadrant: "start",
			Description:        `He said "hi"`,
			ParticipantName:    "Dana",
			CreatedAt:          "2025-03-01T10:00:00Z",
		},
	}

	got := RenderExportCSV(records)
	want := `"company_name","source","category_or_quadrant","description","participant_name","created_at"` +
		"\r\n" +
		`"Acme Pty Ltd","SSK","start","He said ""hi""","Dana","2025-03-01T10:00:00Z"`
	if got != want {
		t.Errorf("RenderExportCSV() = %q, want %q", got, want)
	}
}

func TestRenderExportCSVHeaderOnly(t *testing.T) {
	got := RenderExportCSV(nil)
	if strings.Contains(got, "\r\n") {
		t.Errorf("empty export should be the header row only, got %q", got)
	}
	if !strings.HasPrefix(got, `"company_name"`) {
		t.Errorf("header = %q", got)
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		company string
		want    string
	}{
		{"Acme Pty Ltd", "acme-pty-ltd"},
		{"  Café & Co!  ", "caf-co"},
		{"!!!", "ssk-swot-export"},
		{"", "ssk-swot-export"},
	}
	for _, tc := range tests {
		if got := ExportFilename(tc.company); got != tc.want {
			t.Errorf("ExportFilename(%q) = %q, want %q", tc.company, got, tc.want)
		}
	}
}
