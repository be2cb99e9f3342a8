package recommend

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"agrosense/crop-advisor-backend/internal/catalog"
	"agrosense/crop-advisor-backend/pkg/geospatial"
)

// Handler exposes the recommendation pipeline over HTTP.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates the HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes attaches recommendation endpoints to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.Create)
	rg.GET("/recommendations", h.List)
	rg.GET("/recommendations/:id", h.Get)
	rg.GET("/crops", h.ListCrops)
}

// createRequest is the HTTP body for POST /recommendations; Boundary
// optionally carries a GeoJSON feature whose area replaces AreaHa.
type createRequest struct {
	Request
	Boundary json.RawMessage `json:"boundary,omitempty"`
}

// Create generates a recommendation for a coordinate.
func (h *Handler) Create(c *gin.Context) {
	var body createRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if body.Latitude < -90 || body.Latitude > 90 || body.Longitude < -180 || body.Longitude > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}

	if len(body.Boundary) > 0 {
		geometry, err := geospatial.ParseBoundary(body.Boundary)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid boundary: " + err.Error()})
			return
		}
		body.AreaHa = geospatial.AreaHectares(geometry)
	}

	rec, err := h.service.Generate(c.Request.Context(), body.Request)
	if err != nil {
		h.logger.Error("recommendation pipeline failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate recommendation: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// Get returns a stored recommendation by id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recommendation id"})
		return
	}

	rec, err := h.service.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recommendation not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load recommendation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recommendation"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// List returns recently generated recommendation records.
func (h *Handler) List(c *gin.Context) {
	records, err := h.service.ListRecent(c.Request.Context(), 20)
	if err != nil {
		h.logger.Error("failed to list recommendations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recommendations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": records})
}

// ListCrops returns the crop catalog.
func (h *Handler) ListCrops(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"crops": catalog.All()})
}
