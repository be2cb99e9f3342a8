package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler exposes the progress stream over websocket.
type Handler struct {
	hub    *ProgressHub
	logger *zap.Logger
}

// NewHandler creates the websocket handler.
func NewHandler(hub *ProgressHub, logger *zap.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// RegisterRoutes attaches the progress stream endpoint to the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws/progress/:id", h.Stream)
}

// Stream upgrades to a websocket subscribed to one request's progress.
func (h *Handler) Stream(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	if err := h.hub.Subscribe(c.Writer, c.Request, requestID); err != nil {
		h.logger.Error("failed to subscribe to progress stream", zap.Error(err))
	}
}
