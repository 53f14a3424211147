package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newValidationTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.POST("/engagements", createEngagementHandler())
	api.POST("/start-stop-keep", createStartStopKeepHandler())
	api.POST("/strategy-ideation/items", createStrategyItemHandler())
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Required text fields must be rejected when blank after trimming, not
// just when absent: binding:"required" alone lets whitespace through.
func TestCreateHandlersRejectBlankRequiredFields(t *testing.T) {
	r := newValidationTestRouter()

	tests := []struct {
		name string
		path string
		body string
	}{
		{
			"engagement with whitespace company name",
			"/api/engagements",
			`{"company_name": "   "}`,
		},
		{
			"ssk with whitespace participant name",
			"/api/start-stop-keep",
			`{"engagement_id": "e1", "participant_name": "   ", "start": "weekly standups"}`,
		},
		{
			"strategy item with whitespace theme",
			"/api/strategy-ideation/items",
			`{"engagement_id": "e1", "theme": " \t ", "domain": "operations"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, r, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d; body %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}

func TestCreateHandlersRejectMissingRequiredFields(t *testing.T) {
	r := newValidationTestRouter()

	tests := []struct {
		name string
		path string
		body string
	}{
		{"engagement without company name", "/api/engagements", `{"leader_name": "Dana"}`},
		{"ssk without participant name", "/api/start-stop-keep", `{"engagement_id": "e1", "start": "x"}`},
		{"strategy item without theme", "/api/strategy-ideation/items", `{"engagement_id": "e1", "domain": "operations"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, r, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d; body %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}
