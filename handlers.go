package main

import (
	"errors"
	"net/http"
	"strconv"

	"bitbucket.org/trellisadvisory/planning_backend/config"
	"bitbucket.org/trellisadvisory/planning_backend/models"
	"bitbucket.org/trellisadvisory/planning_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON binds the request body and writes the 400 response itself when
// binding fails. Returns false when the handler should stop.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func storeError(c *gin.Context, funcName string, data interface{}, err error) {
	cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
	config.LogError(config.GetLogger(), "api", funcName, "store operation failed",
		map[string]interface{}{"data": data, "correlation_id": cid}, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func engagementNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "engagement not found"})
}

// requireEngagement resolves the engagement row and scopes the request
// context to it. Writes the 404/500 response itself on failure.
func requireEngagement(c *gin.Context, engagementId string) (*models.Engagement, bool) {
	ctx := utils.SetEngagementIdInContext(c.Request.Context(), engagementId)
	c.Request = c.Request.WithContext(ctx)

	engagement, err := models.GetEngagementById(ctx, engagementId)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			engagementNotFound(c)
		} else {
			storeError(c, "requireEngagement", engagementId, err)
		}
		return nil, false
	}
	return engagement, true
}

func createEngagementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewEngagement
		if !bindJSON(c, &input) {
			return
		}
		// binding:"required" accepts whitespace-only strings.
		if utils.IsBlank(input.CompanyName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "company_name is required"})
			return
		}

		engagement, err := models.CreateEngagement(c.Request.Context(), input)
		if err != nil {
			storeError(c, "createEngagementHandler", input.CompanyName, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"engagement": engagement})
	}
}

func listEngagementsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		engagements, err := models.ListEngagements(c.Request.Context())
		if err != nil {
			storeError(c, "listEngagementsHandler", nil, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"engagements": engagements})
	}
}

func engagementDashboardHandler() gin.HandlerFunc {
	store := models.GormDashboardStore{}
	return func(c *gin.Context) {
		engagementId := c.Param("id")
		ctx := utils.SetEngagementIdInContext(c.Request.Context(), engagementId)

		dashboard, err := models.LoadEngagementDashboard(ctx, store, engagementId)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				engagementNotFound(c)
				return
			}
			storeError(c, "engagementDashboardHandler", engagementId, err)
			return
		}
		c.JSON(http.StatusOK, dashboard)
	}
}

func reviewInputHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		engagementId := c.Param("id")
		ctx := utils.SetEngagementIdInContext(c.Request.Context(), engagementId)

		review, err := models.LoadReviewInput(ctx, engagementId)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				engagementNotFound(c)
				return
			}
			storeError(c, "reviewInputHandler", engagementId, err)
			return
		}
		c.JSON(http.StatusOK, review)
	}
}

func createStartStopKeepHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewStartStopKeepResponse
		if !bindJSON(c, &input) {
			return
		}
		if utils.IsBlank(input.ParticipantName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "participant_name is required"})
			return
		}
		if !input.HasContent() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "at least one of start, stop or keep must have content",
			})
			return
		}
		if _, ok := requireEngagement(c, input.EngagementId); !ok {
			return
		}

		response, err := models.CreateStartStopKeepResponse(c.Request.Context(), input)
		if err != nil {
			storeError(c, "createStartStopKeepHandler", input.EngagementId, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"response": response})
	}
}

func createSwotHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSwotResponse
		if !bindJSON(c, &input) {
			return
		}
		if _, ok := requireEngagement(c, input.EngagementId); !ok {
			return
		}

		response, err := models.CreateSwotResponse(c.Request.Context(), input)
		if err != nil {
			storeError(c, "createSwotHandler", input.EngagementId, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"response": response})
	}
}

func upsertVisionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewVisionAndGoals
		if !bindJSON(c, &input) {
			return
		}
		if _, ok := requireEngagement(c, input.EngagementId); !ok {
			return
		}

		vision, err := models.UpsertVisionAndGoals(c.Request.Context(), input)
		if err != nil {
			storeError(c, "upsertVisionHandler", input.EngagementId, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"vision": vision})
	}
}

func upsertStrategyIdeationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewStrategyIdeation
		if !bindJSON(c, &input) {
			return
		}
		if _, ok := requireEngagement(c, input.EngagementId); !ok {
			return
		}

		record, created, err := models.UpsertStrategyIdeation(c.Request.Context(), input)
		if err != nil {
			storeError(c, "upsertStrategyIdeationHandler", input.EngagementId, err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{"strategy_ideation": record})
	}
}

func listStrategyItemsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		engagementId := c.Query("engagement_id")
		if engagementId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "engagement_id is required"})
			return
		}
		if _, ok := requireEngagement(c, engagementId); !ok {
			return
		}

		items, err := models.ListStrategyIdeationItems(c.Request.Context(), engagementId)
		if err != nil {
			storeError(c, "listStrategyItemsHandler", engagementId, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func createStrategyItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewStrategyIdeationItem
		if !bindJSON(c, &input) {
			return
		}
		if utils.IsBlank(input.Theme) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "theme is required"})
			return
		}
		if !input.Domain.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid domain"})
			return
		}
		for _, tag := range input.SourceTags {
			if !tag.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid source tag"})
				return
			}
		}
		input.SourceTags = utils.UniqueSlice(input.SourceTags)
		if _, ok := requireEngagement(c, input.EngagementId); !ok {
			return
		}

		item, err := models.CreateStrategyIdeationItem(c.Request.Context(), input)
		if err != nil {
			storeError(c, "createStrategyItemHandler", input.EngagementId, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"item": item})
	}
}

func updateStrategyItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}
		engagementId := c.Query("engagement_id")
		if engagementId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "engagement_id is required"})
			return
		}

		var input models.UpdateStrategyIdeationItem
		if !bindJSON(c, &input) {
			return
		}
		if !input.HasChanges() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no valid fields to update"})
			return
		}
		if input.Domain != nil && !input.Domain.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid domain"})
			return
		}
		if input.SourceTags != nil {
			for _, tag := range *input.SourceTags {
				if !tag.IsValid() {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid source tag"})
					return
				}
			}
		}
		if _, ok := requireEngagement(c, engagementId); !ok {
			return
		}

		item, err := models.UpdateStrategyItem(c.Request.Context(), engagementId, id, input)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "strategy item not found"})
				return
			}
			storeError(c, "updateStrategyItemHandler", id, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}

func deleteStrategyItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}
		engagementId := c.Query("engagement_id")
		if engagementId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "engagement_id is required"})
			return
		}
		if _, ok := requireEngagement(c, engagementId); !ok {
			return
		}

		if err := models.DeleteStrategyItem(c.Request.Context(), engagementId, id); err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "strategy item not found"})
				return
			}
			storeError(c, "deleteStrategyItemHandler", id, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
