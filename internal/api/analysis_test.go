package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/healthlens/healthlens-be/internal/catalog"
	"github.com/healthlens/healthlens-be/internal/engine"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := catalog.Load([]catalog.DiseaseInfo{
		{
			ID:             1,
			Name:           "Flu",
			Description:    "A viral infection",
			Recommendation: "Rest and fluids",
			Symptoms:       []string{"fever", "cough", "fatigue"},
		},
		{
			ID:          2,
			Name:        "Cold",
			Description: "A mild infection",
			Symptoms:    []string{"cough", "sneezing"},
		},
	})
	if err != nil {
		t.Fatalf("fixture catalog load failed: %v", err)
	}

	handler := NewAnalysisHandler(engine.New(store), store)
	router := gin.New()
	router.POST("/api/analyze", handler.Analyze)
	router.GET("/api/conditions", handler.ListConditions)
	router.GET("/api/conditions/:id", handler.GetCondition)
	return router
}

func TestAnalyze_OK(t *testing.T) {
	router := setupRouter(t)

	body := `{"symptoms": "I have a fever and cough", "user_info": {"age": 30, "region": "zoneA", "has_chronic_conditions": false}}`
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	var resp engine.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("results = %v, want 2 entries", resp.Results)
	}
	if resp.Results[0].Condition != "Flu" {
		t.Errorf("top result = %q, want Flu", resp.Results[0].Condition)
	}
	if resp.UserRiskFactors.History != "average" {
		t.Errorf("history = %q, want average", resp.UserRiskFactors.History)
	}
	if resp.Urgency == "" || len(resp.NextSteps) == 0 {
		t.Errorf("urgency/next_steps missing: %q / %v", resp.Urgency, resp.NextSteps)
	}
}

func TestAnalyze_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "malformed json",
			body:    `{not json`,
			wantMsg: "Invalid request body",
		},
		{
			name:    "missing symptoms",
			body:    `{"user_info": {"age": 30, "region": "zoneA"}}`,
			wantMsg: "Invalid request body",
		},
		{
			name:    "unusable symptoms",
			body:    `{"symptoms": "...", "user_info": {"age": 30, "region": "zoneA"}}`,
			wantMsg: "No recognizable symptoms",
		},
		{
			name:    "negative age",
			body:    `{"symptoms": "fever", "user_info": {"age": -1, "region": "zoneA"}}`,
			wantMsg: "age must be non-negative",
		},
		{
			name:    "missing region",
			body:    `{"symptoms": "fever", "user_info": {"age": 30}}`,
			wantMsg: "region is required",
		},
	}

	router := setupRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body: %s)", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.wantMsg) {
				t.Errorf("body = %s, want it to mention %q", w.Body.String(), tt.wantMsg)
			}
		})
	}
}

func TestAnalyze_NoMatchIsOK(t *testing.T) {
	router := setupRouter(t)

	body := `{"symptoms": "broken toenail", "user_info": {"age": 30, "region": "zoneA"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (no match is not an error)", w.Code)
	}

	var resp engine.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("results = %v, want empty", resp.Results)
	}
	if resp.Urgency != "low" {
		t.Errorf("urgency = %q, want low", resp.Urgency)
	}
	if len(resp.NextSteps) == 0 {
		t.Error("next steps empty, want generic guidance")
	}
}

func TestListConditions(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/conditions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Conditions []map[string]interface{} `json:"conditions"`
		Count      int                      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Count != 2 || len(resp.Conditions) != 2 {
		t.Errorf("count = %d/%d, want 2", resp.Count, len(resp.Conditions))
	}
}

func TestGetCondition(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{name: "existing condition", path: "/api/conditions/1", wantCode: http.StatusOK},
		{name: "unknown condition", path: "/api/conditions/99", wantCode: http.StatusNotFound},
		{name: "non-integer id", path: "/api/conditions/abc", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}
