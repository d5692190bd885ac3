package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/healthlens/healthlens-be/internal/catalog"
	"github.com/healthlens/healthlens-be/internal/engine"
)

// AnalysisHandler handles symptom analysis API endpoints
type AnalysisHandler struct {
	engine *engine.Engine
	store  *catalog.Store
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(eng *engine.Engine, store *catalog.Store) *AnalysisHandler {
	return &AnalysisHandler{
		engine: eng,
		store:  store,
	}
}

// Analyze runs the symptom analysis pipeline for one request
// POST /api/analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req engine.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.engine.Analyze(req)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrEmptyInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No recognizable symptoms in input"})
		case errors.Is(err, engine.ErrInvalidProfile):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		}
		return
	}

	c.JSON(http.StatusOK, engine.ToAPI(result))
}

// ListConditions returns the catalog summary for reference screens
// GET /api/conditions
func (h *AnalysisHandler) ListConditions(c *gin.Context) {
	diseases := h.store.All()
	conditions := make([]gin.H, 0, len(diseases))
	for _, d := range diseases {
		conditions = append(conditions, gin.H{
			"id":            d.ID,
			"name":          d.Name,
			"description":   d.Description,
			"symptom_count": len(d.Symptoms),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"conditions": conditions,
		"count":      len(conditions),
	})
}

// GetCondition returns one full catalog entry
// GET /api/conditions/:id
func (h *AnalysisHandler) GetCondition(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Condition ID must be an integer"})
		return
	}

	disease, ok := h.store.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Condition not found"})
		return
	}

	c.JSON(http.StatusOK, disease)
}
