package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/scanmark/attendance-api/internal/models"
)

// AttendanceRepository handles persistence for attendance scans.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Insert records a scan unless one already exists for (student_id, date). It
// returns false without error on the duplicate, leaning on the unique
// constraint so two concurrent scans cannot both land.
func (r *AttendanceRepository) Insert(ctx context.Context, record *models.Attendance) (bool, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	const query = `INSERT INTO attendance (id, student_id, scan_time, date)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (student_id, date) DO NOTHING
        RETURNING id`
	var insertedID string
	err := r.db.QueryRowxContext(ctx, query, record.ID, record.StudentID, record.ScanTime, record.Date).Scan(&insertedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("insert attendance: %w", err)
	}
	return true, nil
}

// ListReport returns scans joined with their students, newest scan first.
func (r *AttendanceRepository) ListReport(ctx context.Context, filter models.ReportFilter) ([]models.AttendanceRecord, int, error) {
	where := "1=1"
	args := []interface{}{}
	if filter.Date != nil {
		where = "a.date = $1"
		args = append(args, *filter.Date)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 100
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT a.id, a.student_id, a.scan_time, a.date,
        s.name AS student_name, s.reg_no, s.email
        FROM attendance a
        JOIN students s ON s.id = a.student_id
        WHERE %s
        ORDER BY a.scan_time DESC
        LIMIT %d OFFSET %d`, where, size, offset)

	var rows []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list attendance report: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attendance a WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count attendance report: %w", err)
	}
	return rows, total, nil
}

// CountByDate returns the number of scans recorded for a calendar date.
func (r *AttendanceRepository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM attendance WHERE date = $1", date); err != nil {
		return 0, fmt.Errorf("count attendance by date: %w", err)
	}
	return total, nil
}

// DeleteAll clears the attendance table, leaving students intact.
func (r *AttendanceRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM attendance"); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}
