package export

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"agrosense/crop-advisor-backend/internal/recommend"
)

// Handler serves downloadable renditions of stored recommendations.
type Handler struct {
	service *recommend.Service
	logger  *zap.Logger
}

// NewHandler creates the export handler.
func NewHandler(service *recommend.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes attaches export endpoints to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recommendations/:id/export", h.Export)
}

// Export streams a recommendation as an Excel workbook or a PDF report.
// Format is selected with ?format=xlsx|pdf, defaulting to xlsx.
func (h *Handler) Export(c *gin.Context) {
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
		h.logger.Error("failed to load recommendation for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recommendation"})
		return
	}

	switch c.DefaultQuery("format", "xlsx") {
	case "xlsx":
		h.exportExcel(c, rec)
	case "pdf":
		h.exportPDF(c, rec)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format, use xlsx or pdf"})
	}
}

func (h *Handler) exportExcel(c *gin.Context, rec *recommend.Recommendation) {
	writer, err := NewExcelWriter()
	if err != nil {
		h.logger.Error("failed to prepare workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}
	defer writer.Close()

	filename := fmt.Sprintf("recommendation-%s.xlsx", rec.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := writer.Write(rec, c.Writer); err != nil {
		h.logger.Error("failed to stream workbook", zap.Error(err))
	}
}

func (h *Handler) exportPDF(c *gin.Context, rec *recommend.Recommendation) {
	filename := fmt.Sprintf("recommendation-%s.pdf", rec.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/pdf")

	if err := NewPDFWriter().Write(rec, c.Writer); err != nil {
		h.logger.Error("failed to stream pdf", zap.Error(err))
	}
}
