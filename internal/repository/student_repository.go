package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/scanmark/attendance-api/internal/models"
)

// ErrUniqueViolation marks a batch aborted by a reg_no/email uniqueness conflict.
var ErrUniqueViolation = errors.New("unique constraint violation")

const pqUniqueViolation = "23505"

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns all students, newest-created first.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, name, reg_no, email, qr_code_path, created_at
        FROM students ORDER BY created_at DESC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByRegNo fetches a student by exact registration number.
func (r *StudentRepository) FindByRegNo(ctx context.Context, regNo string) (*models.Student, error) {
	const query = `SELECT id, name, reg_no, email, qr_code_path, created_at
        FROM students WHERE reg_no = $1 LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, regNo); err != nil {
		return nil, err
	}
	return &student, nil
}

// Count returns the total roster size.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM students"); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return total, nil
}

// UpdateQRPath persists a regenerated identifier image path.
func (r *StudentRepository) UpdateQRPath(ctx context.Context, id, path string) error {
	const query = `UPDATE students SET qr_code_path = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, path); err != nil {
		return fmt.Errorf("update qr path: %w", err)
	}
	return nil
}

// UpsertBatch reconciles normalized roster rows against the students table in a
// single transaction: rows are processed in input order, matched by reg_no, and
// any uniqueness conflict (a reg_no or email colliding with a different
// student) rolls back the whole batch and returns ErrUniqueViolation.
func (r *StudentRepository) UpsertBatch(ctx context.Context, rows []models.StudentUpsert) (models.UpsertSummary, error) {
	summary := models.UpsertSummary{}
	if len(rows) == 0 {
		return summary, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("begin upsert batch: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback() //nolint:errcheck
		}
	}()

	const findQuery = `SELECT id FROM students WHERE reg_no = $1 LIMIT 1`
	const insertQuery = `INSERT INTO students (id, name, reg_no, email, qr_code_path, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`
	const updateQuery = `UPDATE students SET name = $2, email = $3, qr_code_path = $4 WHERE id = $1`

	for _, row := range rows {
		var existingID string
		err := tx.GetContext(ctx, &existingID, findQuery, row.RegNo)
		switch {
		case err == nil:
			if _, err := tx.ExecContext(ctx, updateQuery, existingID, row.Name, row.Email, row.QRCodePath); err != nil {
				return models.UpsertSummary{}, classifyBatchErr(err, "update student")
			}
			summary.Updated++
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.ExecContext(ctx, insertQuery, uuid.NewString(), row.Name, row.RegNo, row.Email, row.QRCodePath, time.Now().UTC()); err != nil {
				return models.UpsertSummary{}, classifyBatchErr(err, "insert student")
			}
			summary.Created++
		default:
			return models.UpsertSummary{}, fmt.Errorf("find student by reg_no: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.UpsertSummary{}, fmt.Errorf("commit upsert batch: %w", err)
	}
	committed = true
	return summary, nil
}

// PurgeAll removes every attendance row and then every student in one
// transaction. The attendance table is cleared first so the behavior does not
// depend on foreign-key cascade support.
func (r *StudentRepository) PurgeAll(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin purge: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback() //nolint:errcheck
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM attendance"); err != nil {
		return fmt.Errorf("purge attendance: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM students"); err != nil {
		return fmt.Errorf("purge students: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit purge: %w", err)
	}
	committed = true
	return nil
}

func classifyBatchErr(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
		return fmt.Errorf("%s: %w", op, ErrUniqueViolation)
	}
	return fmt.Errorf("%s: %w", op, err)
}
