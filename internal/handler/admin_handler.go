package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scanmark/attendance-api/internal/models"
	"github.com/scanmark/attendance-api/internal/service"
	appErrors "github.com/scanmark/attendance-api/pkg/errors"
	"github.com/scanmark/attendance-api/pkg/response"
)

// AdminHandler manages the admin session and data-management actions.
type AdminHandler struct {
	auth      *service.AuthService
	admin     *service.AdminService
	dashboard *service.DashboardService
	logger    *zap.Logger
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(auth *service.AuthService, admin *service.AdminService, dashboard *service.DashboardService, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{auth: auth, admin: admin, dashboard: dashboard, logger: logger}
}

// Login godoc
// @Summary Authenticate the admin and start a session
// @Tags Admin
// @Accept x-www-form-urlencoded
// @Param email formData string true "Admin email"
// @Param password formData string true "Admin password"
// @Success 303
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		setFlash(c, "Invalid admin email or password")
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}

	token, err := h.auth.Login(req)
	if err != nil {
		setFlash(c, "Invalid admin email or password")
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}

	maxAge := int(h.auth.SessionTTL().Seconds())
	c.SetCookie(h.auth.CookieName(), token, maxAge, "/", "", false, true)
	setFlash(c, "Admin login successful")
	c.Redirect(http.StatusSeeOther, "/admin")
}

// Logout godoc
// @Summary End the admin session
// @Tags Admin
// @Success 303
// @Router /admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	c.SetCookie(h.auth.CookieName(), "", -1, "/", "", false, true)
	setFlash(c, "Admin logged out")
	c.Redirect(http.StatusSeeOther, "/admin")
}

// Delete godoc
// @Summary Bulk-delete attendance or all data
// @Tags Admin
// @Accept x-www-form-urlencoded
// @Param scope formData string true "attendance or all"
// @Success 303
// @Router /admin/delete [post]
func (h *AdminHandler) Delete(c *gin.Context) {
	message, err := h.admin.DeleteData(c.Request.Context(), c.PostForm("scope"))
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Code == appErrors.ErrValidation.Code {
			setFlash(c, appErr.Message)
			c.Redirect(http.StatusSeeOther, "/admin")
			return
		}
		response.Error(c, err)
		return
	}

	h.dashboard.Invalidate(c.Request.Context())
	setFlash(c, message)
	c.Redirect(http.StatusSeeOther, "/admin")
}
