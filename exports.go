package main

import (
	"fmt"
	"net/http"

	"bitbucket.org/trellisadvisory/planning_backend/config"
	"bitbucket.org/trellisadvisory/planning_backend/models"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func loadExportRows(c *gin.Context) (string, []models.ExportRecord, bool) {
	engagementId := c.Param("id")
	engagement, ok := requireEngagement(c, engagementId)
	if !ok {
		return "", nil, false
	}

	ctx := c.Request.Context()
	sskRows, err := models.ListStartStopKeepResponses(ctx, engagementId)
	if err != nil {
		storeError(c, "loadExportRows", engagementId, err)
		return "", nil, false
	}
	swotRows, err := models.ListSwotResponses(ctx, engagementId)
	if err != nil {
		storeError(c, "loadExportRows", engagementId, err)
		return "", nil, false
	}

	records := models.BuildSskSwotExportRows(engagement.CompanyName, sskRows, swotRows)
	return engagement.CompanyName, records, true
}

// sskSwotExportCSVHandler streams every Start/Stop/Keep and SWOT entry for
// the engagement as a CSV attachment.
func sskSwotExportCSVHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyName, records, ok := loadExportRows(c)
		if !ok {
			return
		}

		filename := models.ExportFilename(companyName) + ".csv"
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(models.RenderExportCSV(records)))
	}
}

// sskSwotExportXLSXHandler serves the same rows as a spreadsheet.
func sskSwotExportXLSXHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyName, records, ok := loadExportRows(c)
		if !ok {
			return
		}

		file := excelize.NewFile()
		defer file.Close()

		sheet := file.GetSheetName(0)
		header := models.ExportHeader()
		headerRow := make([]interface{}, len(header))
		for i, col := range header {
			headerRow[i] = col
		}
		if err := file.SetSheetRow(sheet, "A1", &headerRow); err != nil {
			storeError(c, "sskSwotExportXLSXHandler", companyName, err)
			return
		}
		for i, record := range records {
			fields := record.Fields()
			row := make([]interface{}, len(fields))
			for j, field := range fields {
				row[j] = field
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				storeError(c, "sskSwotExportXLSXHandler", companyName, err)
				return
			}
			if err := file.SetSheetRow(sheet, cell, &row); err != nil {
				storeError(c, "sskSwotExportXLSXHandler", companyName, err)
				return
			}
		}

		buf, err := file.WriteToBuffer()
		if err != nil {
			config.LogError(config.GetLogger(), "api", "sskSwotExportXLSXHandler",
				"writing workbook", companyName, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
			return
		}

		filename := models.ExportFilename(companyName) + ".xlsx"
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}
