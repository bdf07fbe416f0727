package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/scanmark/attendance-api/internal/models"
)

func newAttendanceRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAttendanceRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendance")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("att-1"))

	record := &models.Attendance{
		StudentID: "stu-1",
		ScanTime:  time.Now(),
		Date:      time.Now().Truncate(24 * time.Hour),
	}
	inserted, err := repo.Insert(context.Background(), record)
	require.NoError(t, err)
	require.True(t, inserted)
	require.NotEmpty(t, record.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryInsertDuplicateReturnsFalse(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	// ON CONFLICT DO NOTHING yields zero rows from RETURNING.
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendance")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	inserted, err := repo.Insert(context.Background(), &models.Attendance{
		StudentID: "stu-1",
		ScanTime:  time.Now(),
		Date:      time.Now().Truncate(24 * time.Hour),
	})
	require.NoError(t, err)
	require.False(t, inserted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListReportWithDateFilter(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "student_id", "scan_time", "date", "student_name", "reg_no", "email"}).
		AddRow("att-1", "stu-1", day.Add(9*time.Hour), day, "Alice", "101", "alice@example.com")
	mock.ExpectQuery(regexp.QuoteMeta("JOIN students s ON s.id = a.student_id")).
		WithArgs(day).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM attendance a")).
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	records, total, err := repo.ListReport(context.Background(), models.ReportFilter{Date: &day})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, records, 1)
	require.Equal(t, "Alice", records[0].StudentName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCountByDate(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM attendance WHERE date = $1")).
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := repo.CountByDate(context.Background(), day)
	require.NoError(t, err)
	require.Equal(t, 7, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryDeleteAll(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendance")).
		WillReturnResult(sqlmock.NewResult(0, 5))

	require.NoError(t, repo.DeleteAll(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
