package handlers

import (
	"net/http"
	"strconv"

	"stayinalign/internal/models"
	"stayinalign/internal/services"
	"stayinalign/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HTTPHandler struct {
	decisionService    *services.DecisionService
	arenaService       *services.ArenaService
	leaderboardService *services.LeaderboardService
}

func NewHTTPHandler(decisionService *services.DecisionService, arenaService *services.ArenaService, leaderboardService *services.LeaderboardService) *HTTPHandler {
	return &HTTPHandler{
		decisionService:    decisionService,
		arenaService:       arenaService,
		leaderboardService: leaderboardService,
	}
}

// POST /api/play
func (h *HTTPHandler) Play(c *gin.Context) {
	var req models.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := h.decisionService.Play(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, resp)
}

// GET /api/agents
func (h *HTTPHandler) GetAgents(c *gin.Context) {
	agents := h.decisionService.Agents()
	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"agents": agents,
		"total":  len(agents),
	})
}

// POST /api/arena
func (h *HTTPHandler) PlayMatch(c *gin.Context) {
	var req models.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.arenaService.PlayMatch(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

// GET /api/arena/:id
func (h *HTTPHandler) GetMatch(c *gin.Context) {
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_GAME_ID", "Game id must be a UUID")
		return
	}

	result, err := h.arenaService.GetMatch(gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

// GET /api/leaderboard
func (h *HTTPHandler) GetLeaderboard(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "100")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 100
	}

	leaderboard := h.leaderboardService.GetLeaderboard(limit)
	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"leaderboard": leaderboard,
		"total":       len(leaderboard),
	})
}
