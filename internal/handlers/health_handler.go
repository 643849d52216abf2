package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping() error
}

type HealthHandler struct {
	db Pinger
	ws *WSHandler
}

// NewHealthHandler accepts a nil db when the service runs without Postgres.
func NewHealthHandler(db Pinger, ws *WSHandler) *HealthHandler {
	return &HealthHandler{db: db, ws: ws}
}

func (hh *HealthHandler) GetHealth(c *gin.Context) {
	body := gin.H{"status": "ok", "database": "disabled"}
	if hh.ws != nil {
		body["connections"] = hh.ws.ActiveConnections()
	}
	if hh.db == nil {
		c.JSON(http.StatusOK, body)
		return
	}
	if err := hh.db.Ping(); err != nil {
		body["status"], body["database"] = "unhealthy", "disconnected"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	body["database"] = "connected"
	c.JSON(http.StatusOK, body)
}
