package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// The attendance foreign key declares ON DELETE CASCADE so removing a student
// removes its scans even outside the explicit two-step admin delete.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		reg_no TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		qr_code_path TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		scan_time TIMESTAMPTZ NOT NULL,
		date DATE NOT NULL,
		CONSTRAINT uq_attendance_student_date UNIQUE (student_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_scan_time ON attendance (scan_time DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance (date)`,
}

// EnsureSchema creates the tables for simple deployments without a migration tool.
func EnsureSchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
