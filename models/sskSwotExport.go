package models

import (
	"strings"
	"time"

	"bitbucket.org/trellisadvisory/planning_backend/utils"
)

// ExportRecord is one flattened SSK or SWOT entry for the combined export.
type ExportRecord struct {
	CompanyName        string
	Source             string
	CategoryOrQuadrant string
	Description        string
	ParticipantName    string
	CreatedAt          string
}

var exportHeader = []string{
	"company_name",
	"source",
	"category_or_quadrant",
	"description",
	"participant_name",
	"created_at",
}

// BuildSskSwotExportRows flattens SSK and SWOT rows into export records,
// one per non-blank text item. Blank or whitespace-only entries are dropped
// entirely; non-blank text is emitted verbatim, never split into sub-lines.
// Callers pass SSK rows ordered by creation time and SWOT rows in insertion
// order so the output is deterministic.
func BuildSskSwotExportRows(companyName string, sskRows []*StartStopKeepResponse, swotRows []*SwotResponse) []ExportRecord {
	records := make([]ExportRecord, 0, len(sskRows)*3)

	for _, row := range sskRows {
		created := row.CreatedAt.Format(time.RFC3339)
		for _, entry := range []struct {
			category string
			text     string
		}{
			{"start", row.StartText},
			{"stop", row.StopText},
			{"keep", row.KeepText},
		} {
			if strings.TrimSpace(entry.text) == "" {
				continue
			}
			records = append(records, ExportRecord{
				CompanyName:        companyName,
				Source:             "SSK",
				CategoryOrQuadrant: entry.category,
				Description:        entry.text,
				ParticipantName:    row.ParticipantName,
				CreatedAt:          created,
			})
		}
	}

	for _, row := range swotRows {
		created := row.CreatedAt.Format(time.RFC3339)
		for _, quadrant := range []struct {
			name  string
			items StringList
		}{
			{"strength", row.Strengths},
			{"weakness", row.Weaknesses},
			{"opportunity", row.Opportunities},
			{"threat", row.Threats},
		} {
			for _, desc := range quadrant.items {
				if strings.TrimSpace(desc) == "" {
					continue
				}
				records = append(records, ExportRecord{
					CompanyName:        companyName,
					Source:             "SWOT",
					CategoryOrQuadrant: quadrant.name,
					Description:        desc,
					ParticipantName:    row.ParticipantName,
					CreatedAt:          created,
				})
			}
		}
	}

	return records
}

// RenderExportCSV serializes export records with every field quoted
// (embedded quotes doubled), header included, records joined by CRLF.
// encoding/csv only quotes when it has to, so the quoting is done here.
func RenderExportCSV(records []ExportRecord) string {
	var b strings.Builder

	writeRow := func(fields []string) {
		for i, field := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
	}

	writeRow(ExportHeader())
	for _, record := range records {
		b.WriteString("\r\n")
		writeRow(record.Fields())
	}
	return b.String()
}

// ExportHeader returns the column names shared by the CSV and XLSX exports.
func ExportHeader() []string {
	return exportHeader
}

func (r ExportRecord) Fields() []string {
	return []string{
		r.CompanyName,
		r.Source,
		r.CategoryOrQuadrant,
		r.Description,
		r.ParticipantName,
		r.CreatedAt,
	}
}

// ExportFilename derives the download filename from the company name.
func ExportFilename(companyName string) string {
	return utils.Slugify(companyName, "ssk-swot-export")
}
