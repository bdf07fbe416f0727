package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/scanmark/attendance-api/internal/dto"
	"github.com/scanmark/attendance-api/internal/models"
	appErrors "github.com/scanmark/attendance-api/pkg/errors"
)

type fakeAttendanceRepo struct {
	inserted  *models.Attendance
	duplicate bool
	rows      []models.AttendanceRecord
	total     int
}

func (f *fakeAttendanceRepo) Insert(ctx context.Context, record *models.Attendance) (bool, error) {
	f.inserted = record
	return !f.duplicate, nil
}

func (f *fakeAttendanceRepo) ListReport(ctx context.Context, filter models.ReportFilter) ([]models.AttendanceRecord, int, error) {
	return f.rows, f.total, nil
}

func newAttendanceFixture(duplicate bool) (*AttendanceService, *fakeAttendanceRepo) {
	students := &fakeStudentRepo{students: []models.Student{
		{ID: "stu-1", Name: "Alice", RegNo: "101", Email: "alice@example.com"},
	}}
	repo := &fakeAttendanceRepo{duplicate: duplicate}
	svc := NewAttendanceService(students, repo, nil)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 9, 30, 0, 0, time.Local)
	}
	return svc, repo
}

func TestMarkRecordsFirstScan(t *testing.T) {
	svc, repo := newAttendanceFixture(false)

	result, err := svc.Mark(context.Background(), " 101 ")
	require.NoError(t, err)
	require.Equal(t, dto.MarkStatusSuccess, result.Status)
	require.Equal(t, "Attendance marked for Alice", result.Message)
	require.Equal(t, "101", result.RegNo)
	require.NotEmpty(t, result.Time)

	require.Equal(t, "stu-1", repo.inserted.StudentID)
	require.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local), repo.inserted.Date)
}

func TestMarkSecondScanSameDayIsDuplicate(t *testing.T) {
	svc, _ := newAttendanceFixture(true)

	result, err := svc.Mark(context.Background(), "101")
	require.NoError(t, err)
	require.Equal(t, dto.MarkStatusDuplicate, result.Status)
	require.Equal(t, "Alice already marked today", result.Message)
	require.Empty(t, result.RegNo)
}

func TestMarkUnknownStudent(t *testing.T) {
	svc := NewAttendanceService(&fakeStudentRepo{}, &fakeAttendanceRepo{}, nil)

	_, err := svc.Mark(context.Background(), "999")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	require.Equal(t, "student not found", appErr.Message)
}

func TestMarkEmptyRegNo(t *testing.T) {
	svc := NewAttendanceService(&fakeStudentRepo{}, &fakeAttendanceRepo{}, nil)

	_, err := svc.Mark(context.Background(), "   ")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMarkPropagatesRepoErrors(t *testing.T) {
	svc := NewAttendanceService(&failingStudentFinder{}, &fakeAttendanceRepo{}, nil)

	_, err := svc.Mark(context.Background(), "101")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

type failingStudentFinder struct{}

func (failingStudentFinder) FindByRegNo(ctx context.Context, regNo string) (*models.Student, error) {
	return nil, sql.ErrConnDone
}

func TestReportDefaultsPagination(t *testing.T) {
	repo := &fakeAttendanceRepo{
		rows:  []models.AttendanceRecord{{StudentName: "Alice", RegNo: "101"}},
		total: 1,
	}
	svc := NewAttendanceService(&fakeStudentRepo{}, repo, nil)

	rows, pagination, err := svc.Report(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 1, pagination.Page)
	require.Equal(t, 100, pagination.PageSize)
	require.Equal(t, 1, pagination.TotalCount)
}
