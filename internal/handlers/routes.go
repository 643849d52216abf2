package handlers

import "github.com/gin-gonic/gin"

type Handlers struct {
	HTTP      *HTTPHandler
	WS        *WSHandler
	Analytics *AnalyticsHandler
	Health    *HealthHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// WebSocket
	r.GET("/ws", h.WS.HandleWebSocket)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health.GetHealth)
		api.GET("/agents", h.HTTP.GetAgents)
		api.POST("/play", h.HTTP.Play)
		api.POST("/arena", h.HTTP.PlayMatch)
		api.GET("/arena/:id", h.HTTP.GetMatch)
		api.GET("/leaderboard", h.HTTP.GetLeaderboard)
		api.GET("/stats/columns", h.Analytics.GetColumnStats)
		api.GET("/stats/stages", h.Analytics.GetStageStats)
	}
}
