package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/scanmark/attendance-api/internal/models"
	"github.com/scanmark/attendance-api/internal/service"
)

type stubStudentFinder struct {
	students map[string]models.Student
}

func (s *stubStudentFinder) FindByRegNo(ctx context.Context, regNo string) (*models.Student, error) {
	student, ok := s.students[regNo]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &student, nil
}

type stubAttendanceRepo struct {
	duplicate bool
}

func (s *stubAttendanceRepo) Insert(ctx context.Context, record *models.Attendance) (bool, error) {
	return !s.duplicate, nil
}

func (s *stubAttendanceRepo) ListReport(ctx context.Context, filter models.ReportFilter) ([]models.AttendanceRecord, int, error) {
	return nil, 0, nil
}

type stubCounters struct{}

func (stubCounters) Count(ctx context.Context) (int, error) { return 0, nil }

func (stubCounters) CountByDate(ctx context.Context, date time.Time) (int, error) { return 0, nil }

func newMarkRouter(duplicate bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	finder := &stubStudentFinder{students: map[string]models.Student{
		"101": {ID: "stu-1", Name: "Alice", RegNo: "101"},
	}}
	attendanceSvc := service.NewAttendanceService(finder, &stubAttendanceRepo{duplicate: duplicate}, nil)
	dashboardSvc := service.NewDashboardService(stubCounters{}, stubCounters{}, nil, nil, time.Minute)

	r := gin.New()
	r.POST("/attendance/mark", NewAttendanceHandler(attendanceSvc, dashboardSvc).Mark)
	return r
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestMarkEndpointSuccessShape(t *testing.T) {
	r := newMarkRouter(false)

	rec := postForm(t, r, "/attendance/mark", url.Values{"reg_no": {"101"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "success", payload["status"])
	require.Equal(t, "Attendance marked for Alice", payload["message"])
	require.Equal(t, "Alice", payload["student"])
	require.Equal(t, "101", payload["reg_no"])
	require.NotEmpty(t, payload["time"])
}

func TestMarkEndpointDuplicateShape(t *testing.T) {
	r := newMarkRouter(true)

	rec := postForm(t, r, "/attendance/mark", url.Values{"reg_no": {"101"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "duplicate", payload["status"])
	require.Equal(t, "Alice already marked today", payload["message"])
	// Optional fields are omitted on the duplicate path.
	_, hasStudent := payload["student"]
	require.False(t, hasStudent)
}

func TestMarkEndpointUnknownStudent(t *testing.T) {
	r := newMarkRouter(false)

	rec := postForm(t, r, "/attendance/mark", url.Values{"reg_no": {"999"}})
	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "student not found", envelope.Error.Message)
}

func TestMarkEndpointMissingRegNo(t *testing.T) {
	r := newMarkRouter(false)

	rec := postForm(t, r, "/attendance/mark", url.Values{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
