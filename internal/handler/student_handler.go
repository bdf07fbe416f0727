package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scanmark/attendance-api/internal/service"
	appErrors "github.com/scanmark/attendance-api/pkg/errors"
	"github.com/scanmark/attendance-api/pkg/response"
	"github.com/scanmark/attendance-api/pkg/spreadsheet"
	"github.com/scanmark/attendance-api/pkg/storage"
)

// StudentHandler exposes roster ingestion and identifier image endpoints.
type StudentHandler struct {
	roster    *service.RosterService
	archive   *service.ArchiveService
	dashboard *service.DashboardService
	uploads   *storage.LocalStorage
	maxBytes  int64
	logger    *zap.Logger
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(roster *service.RosterService, archive *service.ArchiveService, dashboard *service.DashboardService, uploads *storage.LocalStorage, maxBytes int64, logger *zap.Logger) *StudentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentHandler{roster: roster, archive: archive, dashboard: dashboard, uploads: uploads, maxBytes: maxBytes, logger: logger}
}

// Upload godoc
// @Summary Ingest a roster spreadsheet
// @Tags Students
// @Accept mpfd
// @Param file formData file true "CSV or XLSX roster"
// @Success 303
// @Router /students/upload [post]
func (h *StudentHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "no file uploaded"))
		return
	}
	if !spreadsheet.SupportedExtension(file.Filename) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "only .xlsx and .csv files are allowed"))
		return
	}
	if h.maxBytes > 0 && file.Size > h.maxBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the %d byte limit", h.maxBytes)))
		return
	}

	// Spill to disk first so the CSV and XLSX readers share one path.
	src, err := file.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer src.Close() //nolint:errcheck

	tempName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	if _, err := h.uploads.SaveStream(tempName, src); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store upload"))
		return
	}
	defer func() {
		if err := h.uploads.Delete(tempName); err != nil {
			h.logger.Warn("failed to remove upload", zap.String("file", tempName), zap.Error(err))
		}
	}()

	summary, err := h.roster.Ingest(c.Request.Context(), h.uploads.Path(tempName))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.dashboard.Invalidate(c.Request.Context())
	setFlash(c, fmt.Sprintf("Upload complete: %d created, %d updated", summary.Created, summary.Updated))
	c.Redirect(http.StatusSeeOther, "/students")
}

// QRImage godoc
// @Summary Fetch one identifier image
// @Tags Students
// @Produce png
// @Param reg_no path string true "Registration number"
// @Success 200
// @Router /students/{reg_no}/qr [get]
func (h *StudentHandler) QRImage(c *gin.Context) {
	student, fullPath, err := h.roster.QRImage(c.Request.Context(), c.Param("reg_no"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.FileAttachment(fullPath, student.RegNo+".png")
}

// DownloadArchive godoc
// @Summary Download all identifier images as a zip
// @Tags Students
// @Produce application/zip
// @Success 200
// @Router /qrcodes/download [get]
func (h *StudentHandler) DownloadArchive(c *gin.Context) {
	data, err := h.archive.BuildZip(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename=student_qrcodes.zip`)
	c.Data(http.StatusOK, "application/zip", data)
}
