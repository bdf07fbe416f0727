package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scanmark/attendance-api/internal/service"
	"github.com/scanmark/attendance-api/pkg/response"
)

// AttendanceHandler exposes the scan endpoint.
type AttendanceHandler struct {
	attendance *service.AttendanceService
	dashboard  *service.DashboardService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService, dashboard *service.DashboardService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, dashboard: dashboard}
}

// Mark godoc
// @Summary Record a scan for today
// @Tags Attendance
// @Accept x-www-form-urlencoded
// @Produce json
// @Param reg_no formData string true "Scanned registration number"
// @Success 200 {object} dto.MarkResponse
// @Router /attendance/mark [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	result, err := h.attendance.Mark(c.Request.Context(), c.PostForm("reg_no"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	// The scanning client consumes this shape directly, so it is not wrapped
	// in the envelope.
	c.JSON(http.StatusOK, result)
}
