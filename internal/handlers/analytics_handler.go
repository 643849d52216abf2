package handlers

import (
	"net/http"

	"stayinalign/internal/services"
	"stayinalign/internal/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GET /api/stats/columns
func (ah *AnalyticsHandler) GetColumnStats(c *gin.Context) {
	columns, err := ah.analyticsService.GetColumnStats()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"columns": columns,
	})
}

// GET /api/stats/stages
func (ah *AnalyticsHandler) GetStageStats(c *gin.Context) {
	stages, err := ah.analyticsService.GetStageStats()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"stages": stages,
	})
}
