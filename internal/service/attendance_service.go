package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scanmark/attendance-api/internal/dto"
	"github.com/scanmark/attendance-api/internal/models"
	appErrors "github.com/scanmark/attendance-api/pkg/errors"
)

type attendanceStudentFinder interface {
	FindByRegNo(ctx context.Context, regNo string) (*models.Student, error)
}

type attendanceRepository interface {
	Insert(ctx context.Context, record *models.Attendance) (bool, error)
	ListReport(ctx context.Context, filter models.ReportFilter) ([]models.AttendanceRecord, int, error)
}

// AttendanceService records scans and serves the attendance report.
type AttendanceService struct {
	students   attendanceStudentFinder
	attendance attendanceRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(students attendanceStudentFinder, attendance attendanceRepository, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{students: students, attendance: attendance, logger: logger, now: time.Now}
}

// Mark records today's attendance for a scanned registration number. A second
// scan on the same server-local day yields a duplicate result, not an error.
func (s *AttendanceService) Mark(ctx context.Context, regNo string) (*dto.MarkResponse, error) {
	regNo = strings.TrimSpace(regNo)
	if regNo == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "registration number is required")
	}

	student, err := s.students.FindByRegNo(ctx, regNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	now := s.now()
	record := &models.Attendance{
		StudentID: student.ID,
		ScanTime:  now,
		Date:      dateOf(now),
	}

	inserted, err := s.attendance.Insert(ctx, record)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}
	if !inserted {
		return &dto.MarkResponse{
			Status:  dto.MarkStatusDuplicate,
			Message: fmt.Sprintf("%s already marked today", student.Name),
		}, nil
	}

	s.logger.Info("attendance marked", zap.String("reg_no", student.RegNo), zap.Time("scan_time", record.ScanTime))
	return &dto.MarkResponse{
		Status:  dto.MarkStatusSuccess,
		Message: fmt.Sprintf("Attendance marked for %s", student.Name),
		Student: student.Name,
		RegNo:   student.RegNo,
		Time:    record.ScanTime.Format(time.RFC3339),
	}, nil
}

// Report lists scans joined with students, newest scan first.
func (s *AttendanceService) Report(ctx context.Context, filter models.ReportFilter) ([]models.AttendanceRecord, *models.Pagination, error) {
	rows, total, err := s.attendance.ListReport(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 100
	}
	return rows, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Today returns the current server-local calendar date.
func (s *AttendanceService) Today() time.Time {
	return dateOf(s.now())
}

// dateOf truncates a timestamp to its server-local calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
