package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/trellisadvisory/planning_backend/config"
	"bitbucket.org/trellisadvisory/planning_backend/models"
	"bitbucket.org/trellisadvisory/planning_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// financialChecklistHandler returns the recommended period list for the
// engagement's financial year end together with per-period coverage and the
// overall readiness summary.
func financialChecklistHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		engagementId := c.Param("id")
		engagement, ok := requireEngagement(c, engagementId)
		if !ok {
			return
		}

		docs, err := models.ListFinancialDocuments(c.Request.Context(), engagementId)
		if err != nil {
			storeError(c, "financialChecklistHandler", engagementId, err)
			return
		}

		periods := models.BuildFinancialPeriods(time.Now(), engagement.FyeMonth, engagement.FyeDay)
		byKey, byYear := models.IndexDocumentsByPeriod(docs)

		statuses := make(map[string]models.PeriodStatusSummary, len(periods))
		for _, period := range periods {
			statuses[period.Key] = models.ComputePeriodStatus(period, byKey[period.Key], byYear)
		}

		c.JSON(http.StatusOK, gin.H{
			"periods":   periods,
			"documents": docs,
			"statuses":  statuses,
			"readiness": models.ComputeOverallReadiness(periods, statuses),
		})
	}
}

// createFinancialDocumentHandler takes the file inline (multipart form,
// meta as a JSON field) and runs the two-step flow: storage upload first,
// then the metadata row. An insert failure after a successful upload
// leaves the file orphaned in storage and surfaces the error. A client
// that already pushed the file through a signed upload URL sends the
// returned object key as file_path instead of the file itself.
func createFinancialDocumentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		engagementId := strings.TrimSpace(c.PostForm("engagement_id"))
		filePath := strings.TrimSpace(c.PostForm("file_path"))
		fileHeader, fileErr := c.FormFile("file")
		if engagementId == "" || (fileErr != nil && filePath == "") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "engagement_id and either file or file_path are required"})
			return
		}
		if fileHeader != nil && fileHeader.Size > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 20MB limit"})
			return
		}

		var meta models.DocumentMeta
		if raw := strings.TrimSpace(c.PostForm("meta")); raw != "" {
			if err := json.Unmarshal([]byte(raw), &meta); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "meta must be valid JSON"})
				return
			}
		}
		if meta.DocRole != "" && !meta.DocRole.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doc_role"})
			return
		}
		if _, ok := requireEngagement(c, engagementId); !ok {
			return
		}

		ctx := c.Request.Context()
		objectKey := filePath
		mimeType := strings.TrimSpace(c.PostForm("mime_type"))
		originalFileName := strings.TrimSpace(c.PostForm("original_file_name"))

		if fileHeader != nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
				return
			}
			defer file.Close()

			objectKey = path.Join(engagementId, "financials",
				fmt.Sprintf("%d-%s", time.Now().UnixMilli(), path.Base(fileHeader.Filename)))
			originalFileName = fileHeader.Filename

			mimeType, err = utils.UploadFileToGCS(ctx, objectKey, file)
			if err != nil {
				if errors.Is(err, utils.ErrorObjectAlreadyExists) {
					c.JSON(http.StatusConflict, gin.H{"error": "a file already exists at this path"})
					return
				}
				config.LogError(logger, "api", "createFinancialDocumentHandler", "uploading file", objectKey, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
				return
			}
		} else {
			// Signed-upload path: the object must already exist under this
			// engagement's prefix.
			objectKey = utils.ExtractObjectKeyFromURL(objectKey)
			if objectKey == "" || !strings.HasPrefix(objectKey, engagementId+"/") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file_path"})
				return
			}
			exists, err := utils.ObjectExistsInGCS(ctx, objectKey)
			if err != nil {
				config.LogError(logger, "api", "createFinancialDocumentHandler", "checking object", objectKey, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify uploaded file"})
				return
			}
			if !exists {
				c.JSON(http.StatusBadRequest, gin.H{"error": "no uploaded file found at file_path"})
				return
			}
			if originalFileName == "" {
				originalFileName = path.Base(objectKey)
			}
		}

		doc := models.FinancialDocument{
			EngagementId:     engagementId,
			DocType:          strings.TrimSpace(c.PostForm("doc_type")),
			FilePath:         objectKey,
			OriginalFileName: originalFileName,
			MimeType:         mimeType,
			Meta:             meta,
		}
		if err := models.CreateFinancialDocument(ctx, &doc); err != nil {
			// The uploaded file is now orphaned in storage; no compensating
			// delete here.
			config.LogError(logger, "api", "createFinancialDocumentHandler", "saving metadata row", objectKey, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save document metadata"})
			return
		}

		logger.WithFields(logrus.Fields{
			"engagement_id": engagementId,
			"file_path":     objectKey,
			"doc_role":      meta.DocRole,
		}).Info("[financials.upload]")

		c.JSON(http.StatusCreated, gin.H{"document": doc})
	}
}

// deleteFinancialDocumentHandler removes the stored file first, then the
// metadata row. A failure between the two leaves a row without a file; the
// next delete attempt clears it because a missing object is not an error.
func deleteFinancialDocumentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		engagementId := c.Query("engagement_id")
		idParam := c.Query("id")
		id, err := strconv.Atoi(idParam)
		if engagementId == "" || idParam == "" || err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "engagement_id and numeric id are required"})
			return
		}
		if _, ok := requireEngagement(c, engagementId); !ok {
			return
		}

		ctx := c.Request.Context()
		doc, err := models.GetFinancialDocumentById(ctx, engagementId, id)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
				return
			}
			storeError(c, "deleteFinancialDocumentHandler", engagementId, err)
			return
		}

		objectKey := utils.ExtractObjectKeyFromURL(doc.FilePath)
		if err := utils.DeleteObjectFromGCS(ctx, objectKey); err != nil {
			config.LogError(config.GetLogger(), "api", "deleteFinancialDocumentHandler",
				"removing stored file", objectKey, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove stored file"})
			return
		}

		if err := models.DeleteFinancialDocumentRow(ctx, engagementId, id); err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
				return
			}
			storeError(c, "deleteFinancialDocumentHandler", engagementId, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": true, "id": id})
	}
}
