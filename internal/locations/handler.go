package locations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes coordinate storage over HTTP.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates the HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes attaches location endpoints to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/users/:telegram_id/location", h.UpdateLocation)
	rg.GET("/users/:telegram_id/location", h.GetLocation)
}

// UpdateLocation stores a user's coordinates.
func (h *Handler) UpdateLocation(c *gin.Context) {
	telegramID, err := strconv.ParseInt(c.Param("telegram_id"), 10, 64)
	if err != nil || telegramID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram id"})
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	user, err := h.service.SaveLocation(c.Request.Context(), telegramID, req)
	if errors.Is(err, ErrInvalidCoordinates) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed to store location", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store location"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetLocation returns a user's stored coordinates.
func (h *Handler) GetLocation(c *gin.Context) {
	telegramID, err := strconv.ParseInt(c.Param("telegram_id"), 10, 64)
	if err != nil || telegramID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram id"})
		return
	}

	user, err := h.service.GetLocation(c.Request.Context(), telegramID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load location", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load location"})
		return
	}

	c.JSON(http.StatusOK, user)
}
