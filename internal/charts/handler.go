package charts

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"agrosense/crop-advisor-backend/internal/recommend"
)

const ndviLookbackDays = 180

// Handler serves PNG charts for stored recommendations.
type Handler struct {
	service   *recommend.Service
	satellite recommend.SatelliteSource
	logger    *zap.Logger
}

// NewHandler creates the chart handler. satellite may be nil, in which
// case NDVI charts are unavailable.
func NewHandler(service *recommend.Service, satellite recommend.SatelliteSource, logger *zap.Logger) *Handler {
	return &Handler{service: service, satellite: satellite, logger: logger}
}

// RegisterRoutes attaches chart endpoints to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recommendations/:id/chart", h.Chart)
}

// Chart renders one chart for a recommendation. The ?type= query selects
// gdd, ndvi, or ratings; the default is ratings.
func (h *Handler) Chart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recommendation id"})
		return
	}

	rec, err := h.service.GetByID(c.Request.Context(), id)
	if errors.Is(err, recommend.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recommendation not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load recommendation for chart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recommendation"})
		return
	}

	switch c.DefaultQuery("type", "ratings") {
	case "ratings":
		c.Header("Content-Type", "image/png")
		err = RenderRatings(rec, c.Writer)
	case "gdd":
		if rec.Indices == nil || rec.Indices.GDD == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no degree day data for this recommendation"})
			return
		}
		c.Header("Content-Type", "image/png")
		err = RenderGDD(rec.Indices.GDD, c.Writer)
	case "ndvi":
		h.renderNDVI(c, rec)
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported chart type, use gdd, ndvi, or ratings"})
		return
	}

	if err != nil {
		h.logger.Error("failed to render chart", zap.Error(err))
	}
}

// renderNDVI re-fetches the observation series; the stored result keeps
// only the aggregated vegetation summary.
func (h *Handler) renderNDVI(c *gin.Context, rec *recommend.Recommendation) {
	if h.satellite == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "satellite data source is not configured"})
		return
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -ndviLookbackDays)
	observations, err := h.satellite.FetchNDVISeries(c.Request.Context(), rec.Latitude, rec.Longitude, start, end)
	if err != nil {
		h.logger.Error("failed to fetch ndvi series", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch ndvi series"})
		return
	}
	if len(observations) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no ndvi observations for this location"})
		return
	}

	c.Header("Content-Type", "image/png")
	if err := RenderNDVI(observations, c.Writer); err != nil {
		h.logger.Error("failed to render ndvi chart", zap.Error(err))
	}
}
