package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"stayinalign/internal/models"
	"stayinalign/internal/services"
	"stayinalign/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler answers play-state messages with the agent's move over a
// websocket, one request at a time per connection.
type WSHandler struct {
	decisionService *services.DecisionService
	connections     map[string]*websocket.Conn
	connMutex       sync.RWMutex
}

func NewWSHandler(decisions *services.DecisionService) *WSHandler {
	return &WSHandler{
		decisionService: decisions,
		connections:     make(map[string]*websocket.Conn),
	}
}

func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	socketID := uuid.New().String()
	h.connMutex.Lock()
	h.connections[socketID] = conn
	h.connMutex.Unlock()
	logger.Log.Debug("Websocket connected", zap.String("socket_id", socketID))

	defer func() {
		h.connMutex.Lock()
		delete(h.connections, socketID)
		h.connMutex.Unlock()
		conn.Close()
		logger.Log.Debug("Websocket disconnected", zap.String("socket_id", socketID))
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var wsMsg models.WSMessage
		if err := json.Unmarshal(message, &wsMsg); err != nil {
			h.sendError(conn, "INVALID_MESSAGE", "Invalid message format")
			continue
		}

		switch wsMsg.Type {
		case models.WSPlayState:
			h.handlePlayState(conn, wsMsg.Payload)
		default:
			h.sendError(conn, "UNKNOWN_TYPE", "Unknown message type")
		}
	}
}

func (h *WSHandler) handlePlayState(conn *websocket.Conn, payload interface{}) {
	data, _ := json.Marshal(payload)
	var req models.PlayRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.sendError(conn, "INVALID_REQUEST", "Invalid play-state payload")
		return
	}

	resp, err := h.decisionService.Play(&req)
	if err != nil {
		status, code := errorStatus(err)
		h.sendError(conn, code, errorMessage(status, err))
		return
	}

	h.sendMessage(conn, models.WSMessage{Type: models.WSMove, Payload: resp})
}

func (h *WSHandler) ActiveConnections() int {
	h.connMutex.RLock()
	defer h.connMutex.RUnlock()
	return len(h.connections)
}

func (h *WSHandler) sendMessage(conn *websocket.Conn, msg models.WSMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		logger.Log.Error("Failed to send message", zap.Error(err))
	}
}

func (h *WSHandler) sendError(conn *websocket.Conn, code, message string) {
	h.sendMessage(conn, models.WSMessage{
		Type:    models.WSError,
		Payload: models.ErrorPayload{Message: message, Code: code},
	})
}
