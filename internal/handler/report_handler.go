package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scanmark/attendance-api/internal/models"
	"github.com/scanmark/attendance-api/internal/service"
	appErrors "github.com/scanmark/attendance-api/pkg/errors"
	"github.com/scanmark/attendance-api/pkg/response"
)

// ReportHandler serves report downloads.
type ReportHandler struct {
	exports *service.ExportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(exports *service.ExportService) *ReportHandler {
	return &ReportHandler{exports: exports}
}

// Export godoc
// @Summary Download the attendance report
// @Tags Reports
// @Param format query string false "csv (default) or pdf"
// @Param date query string false "Filter to one day, YYYY-MM-DD"
// @Success 200
// @Router /reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	filter := models.ReportFilter{}
	if raw := c.Query("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD"))
			return
		}
		filter.Date = &day
	}

	file, err := h.exports.Render(c.Request.Context(), c.Query("format"), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename=`+file.Name)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
