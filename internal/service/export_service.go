package service

import (
	"context"
	"fmt"
	"time"

	"github.com/scanmark/attendance-api/internal/models"
	appErrors "github.com/scanmark/attendance-api/pkg/errors"
	"github.com/scanmark/attendance-api/pkg/export"
)

// Export formats supported by the report download.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type exportAttendanceLister interface {
	ListReport(ctx context.Context, filter models.ReportFilter) ([]models.AttendanceRecord, int, error)
}

// ExportFile is a rendered report ready for download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportService renders the attendance report as CSV or PDF.
type ExportService struct {
	attendance exportAttendanceLister
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	now        func() time.Time
}

// NewExportService constructs the export service.
func NewExportService(attendance exportAttendanceLister) *ExportService {
	return &ExportService{
		attendance: attendance,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		now:        time.Now,
	}
}

// Render produces the report in the requested format.
func (s *ExportService) Render(ctx context.Context, format string, filter models.ReportFilter) (*ExportFile, error) {
	rows, _, err := s.attendance.ListReport(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}

	dataset := export.Dataset{
		Headers: []string{"Name", "Reg No", "Email", "Date", "Scan Time"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, []string{
			row.StudentName,
			row.RegNo,
			row.Email,
			row.Date.Format("2006-01-02"),
			row.ScanTime.Format(time.RFC3339),
		})
	}

	stamp := s.now().Format("20060102")
	switch format {
	case ExportFormatCSV, "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{
			Name:        fmt.Sprintf("attendance_report_%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case ExportFormatPDF:
		data, err := s.pdf.Render(dataset, "Attendance Report")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{
			Name:        fmt.Sprintf("attendance_report_%s.pdf", stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format, use csv or pdf")
	}
}
