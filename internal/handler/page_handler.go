package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scanmark/attendance-api/internal/middleware"
	"github.com/scanmark/attendance-api/internal/models"
	"github.com/scanmark/attendance-api/internal/service"
	"github.com/scanmark/attendance-api/pkg/response"
)

// PageHandler renders the HTML pages.
type PageHandler struct {
	dashboard  *service.DashboardService
	roster     *service.RosterService
	attendance *service.AttendanceService
	auth       *service.AuthService
}

// NewPageHandler constructs PageHandler.
func NewPageHandler(dashboard *service.DashboardService, roster *service.RosterService, attendance *service.AttendanceService, auth *service.AuthService) *PageHandler {
	return &PageHandler{dashboard: dashboard, roster: roster, attendance: attendance, auth: auth}
}

// Home renders the dashboard counters.
func (h *PageHandler) Home(c *gin.Context) {
	summary, _, err := h.dashboard.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"StudentCount":    summary.StudentCount,
		"TodayAttendance": summary.TodayAttendance,
		"Flash":           popFlash(c),
	})
}

// Students renders the roster, newest-created first.
func (h *PageHandler) Students(c *gin.Context) {
	students, err := h.roster.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.HTML(http.StatusOK, "students.html", gin.H{
		"Students": students,
		"Flash":    popFlash(c),
	})
}

// Reports renders attendance joined with students, newest scan first.
func (h *PageHandler) Reports(c *gin.Context) {
	rows, _, err := h.attendance.Report(c.Request.Context(), models.ReportFilter{})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.HTML(http.StatusOK, "reports.html", gin.H{
		"Rows":  rows,
		"Flash": popFlash(c),
	})
}

// Scanner renders the scanning page.
func (h *PageHandler) Scanner(c *gin.Context) {
	c.HTML(http.StatusOK, "scanner.html", gin.H{})
}

// Admin renders the admin page with the verified session state.
func (h *PageHandler) Admin(c *gin.Context) {
	c.HTML(http.StatusOK, "admin.html", gin.H{
		"IsAdmin": middleware.IsAdmin(c, h.auth),
		"Flash":   popFlash(c),
	})
}
