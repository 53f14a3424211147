package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"bitbucket.org/trellisadvisory/planning_backend/config"
	"bitbucket.org/trellisadvisory/planning_backend/models"
	"bitbucket.org/trellisadvisory/planning_backend/utils"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type uploadSignRequest struct {
	EngagementId string `json:"engagement_id"`
	FileName     string `json:"file_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	Kind         string `json:"kind"`
}

type uploadSignResponse struct {
	UploadURL string            `json:"uploadUrl"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	ObjectKey string            `json:"objectKey"`
	AccessURL string            `json:"accessUrl"`
	ExpiresAt string            `json:"expiresAt"`
}

const maxUploadSizeBytes int64 = 20 * 1024 * 1024

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

var documentMimeTypes = map[string]bool{
	"application/pdf":          true,
	"application/msword":       true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
	"text/csv":   true,
	"image/jpeg": true,
	"image/png":  true,
}

// signUploadHandler mints a V4 signed PUT URL for a financial or insight
// document. The client uploads directly to storage and then registers the
// metadata row via POST /api/financials or /api/customer-insights.
func signUploadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		var req uploadSignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		if req.EngagementId == "" || req.FileName == "" || req.MimeType == "" || req.Size <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "engagement_id, file_name, mime_type and size are required"})
			return
		}
		if req.Size > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 20MB limit"})
			return
		}
		if !documentMimeTypes[req.MimeType] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
			return
		}
		if _, ok := requireEngagement(c, req.EngagementId); !ok {
			return
		}

		kind := sanitizeSegment(strings.ToLower(strings.TrimSpace(req.Kind)))
		if kind == "" {
			kind = "financials"
		}

		ext := strings.ToLower(filepath.Ext(req.FileName))
		if ext == "" {
			ext = extensionFromMimeType(req.MimeType)
		}
		if ext == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file extension is required"})
			return
		}

		if utils.GetStorageProvider() != utils.StorageProviderGCS {
			c.JSON(http.StatusBadRequest, gin.H{"error": "storage provider not supported"})
			return
		}
		objectKey := path.Join(req.EngagementId, kind, uuid.New().String()+ext)

		signed, err := utils.SignUpload(c.Request.Context(), objectKey, req.MimeType, 15*time.Minute)
		if err != nil {
			config.LogError(logger, "api", "signUploadHandler", "signing upload", objectKey, err)
			message := "failed to sign upload"
			if !strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
				message = fmt.Sprintf("failed to sign upload: %v", err)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": message})
			return
		}

		logger.WithFields(logrus.Fields{
			"engagement_id": req.EngagementId,
			"mime_type":     req.MimeType,
			"size":          req.Size,
			"object_key":    objectKey,
		}).Info("[upload.sign]")

		c.JSON(http.StatusOK, gin.H{
			"data": uploadSignResponse{
				UploadURL: signed.UploadURL,
				Method:    signed.Method,
				Headers:   signed.Headers,
				ObjectKey: signed.ObjectKey,
				AccessURL: signed.AccessURL,
				ExpiresAt: signed.ExpiresAt.UTC().Format(time.RFC3339),
			},
		})
	}
}

// signedDownloadHandler issues a time-limited GET URL for a stored object.
func signedDownloadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		objectKey := strings.TrimSpace(c.Query("key"))
		if objectKey == "" || strings.Contains(objectKey, "..") || strings.HasPrefix(objectKey, "/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key"})
			return
		}

		if utils.GetStorageProvider() != utils.StorageProviderGCS {
			c.JSON(http.StatusBadRequest, gin.H{"error": "storage provider not supported"})
			return
		}

		signed, err := utils.SignDownload(c.Request.Context(), objectKey, 15*time.Minute)
		if err != nil {
			config.LogError(config.GetLogger(), "api", "signedDownloadHandler", "signing download", objectKey, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign download"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"downloadUrl": signed.DownloadURL,
				"objectKey":   signed.ObjectKey,
				"expiresAt":   signed.ExpiresAt.UTC().Format(time.RFC3339),
			},
		})
	}
}

// createCustomerInsightHandler takes the file inline (multipart form) and
// runs the two-step flow: storage upload first, then the metadata row.
// When the insert fails after a successful upload the file stays orphaned
// in storage; the caller gets the error either way.
func createCustomerInsightHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		engagementId := strings.TrimSpace(c.PostForm("engagement_id"))
		fileHeader, err := c.FormFile("file")
		if engagementId == "" || err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "engagement_id and file are required"})
			return
		}
		if fileHeader.Size > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 20MB limit"})
			return
		}
		if _, ok := requireEngagement(c, engagementId); !ok {
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
			return
		}
		defer file.Close()

		objectKey := path.Join(engagementId, "customer-insights",
			fmt.Sprintf("%d-%s", time.Now().UnixMilli(), path.Base(fileHeader.Filename)))

		ctx := c.Request.Context()
		mimeType, err := utils.UploadFileToGCS(ctx, objectKey, file)
		if err != nil {
			if errors.Is(err, utils.ErrorObjectAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "a file already exists at this path"})
				return
			}
			config.LogError(logger, "api", "createCustomerInsightHandler", "uploading file", objectKey, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
			return
		}

		doc := models.CustomerInsightsDocument{
			EngagementId:     engagementId,
			FilePath:         objectKey,
			OriginalFileName: fileHeader.Filename,
			MimeType:         mimeType,
		}

		if imageMimeTypes[mimeType] {
			// Thumbnail failures are not fatal; the document is still usable.
			thumbnailKey, err := createThumbnail(ctx, objectKey)
			if err != nil {
				config.LogError(logger, "api", "createCustomerInsightHandler", "generating thumbnail", objectKey, err)
			} else {
				doc.ThumbnailPath = thumbnailKey
			}
		}

		if err := models.CreateCustomerInsightsDocument(ctx, &doc); err != nil {
			// The uploaded file is now orphaned in storage. Known gap: there
			// is no compensating delete here.
			config.LogError(logger, "api", "createCustomerInsightHandler", "saving metadata row", objectKey, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save document metadata"})
			return
		}

		logger.WithFields(logrus.Fields{
			"engagement_id": engagementId,
			"object_key":    objectKey,
		}).Info("[customer-insights.upload]")

		c.JSON(http.StatusCreated, gin.H{"document": doc})
	}
}

func listCustomerInsightsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		engagementId := c.Query("engagement_id")
		if engagementId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "engagement_id is required"})
			return
		}
		if _, ok := requireEngagement(c, engagementId); !ok {
			return
		}

		docs, err := models.ListCustomerInsightsDocuments(c.Request.Context(), engagementId)
		if err != nil {
			storeError(c, "listCustomerInsightsHandler", engagementId, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"documents": docs})
	}
}

func createThumbnail(ctx context.Context, objectKey string) (string, error) {
	client, err := utils.GetGCSClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	bucket := strings.TrimSpace(os.Getenv("GCS_BUCKET"))
	if bucket == "" {
		return "", errors.New("GCS_BUCKET is required")
	}

	reader, err := client.Bucket(bucket).Object(objectKey).NewReader(ctx)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxUploadSizeBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > maxUploadSizeBytes {
		return "", errors.New("file too large for thumbnail generation")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return "", err
	}

	thumbnailKey := thumbnailObjectKey(objectKey)
	if err := utils.UploadBytesToGCS(ctx, thumbnailKey, buf.Bytes(), "image/jpeg"); err != nil {
		return "", err
	}
	return thumbnailKey, nil
}

func thumbnailObjectKey(objectKey string) string {
	dir := path.Dir(objectKey)
	filename := path.Base(objectKey)
	return path.Join(dir, "thumbnails", filename)
}

func sanitizeSegment(input string) string {
	var out strings.Builder
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func extensionFromMimeType(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "application/pdf":
		return ".pdf"
	case "application/msword":
		return ".doc"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ".docx"
	case "application/vnd.ms-excel":
		return ".xls"
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return ".xlsx"
	case "text/csv":
		return ".csv"
	default:
		return ""
	}
}
