package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/scanmark/attendance-api/internal/models"
)

func newStudentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "reg_no", "email", "qr_code_path", "created_at"})
}

func TestStudentRepositoryListAndFind(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, reg_no, email, qr_code_path, created_at")).
		WillReturnRows(studentRows().
			AddRow("stu-1", "Alice", "101", "alice@example.com", "qrcodes/101.png", time.Now()).
			AddRow("stu-2", "Bob", "102", "bob@example.com", "qrcodes/102.png", time.Now()))

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, "101", students[0].RegNo)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE reg_no = $1")).
		WithArgs("102").
		WillReturnRows(studentRows().
			AddRow("stu-2", "Bob", "102", "bob@example.com", "qrcodes/102.png", time.Now()))

	student, err := repo.FindByRegNo(context.Background(), "102")
	require.NoError(t, err)
	require.Equal(t, "Bob", student.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpsertBatchCreatesAndUpdates(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectBegin()

	// Row one is new: the reg_no lookup misses and an insert follows.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM students WHERE reg_no = $1")).
		WithArgs("101").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Row two already exists and is updated in place.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM students WHERE reg_no = $1")).
		WithArgs("102").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("stu-2"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET name = $2")).
		WithArgs("stu-2", "Bob", "bob@example.com", "qrcodes/102.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	summary, err := repo.UpsertBatch(context.Background(), []models.StudentUpsert{
		{RosterRow: models.RosterRow{Name: "Alice", RegNo: "101", Email: "alice@example.com"}, QRCodePath: "qrcodes/101.png"},
		{RosterRow: models.RosterRow{Name: "Bob", RegNo: "102", Email: "bob@example.com"}, QRCodePath: "qrcodes/102.png"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Created)
	require.Equal(t, 1, summary.Updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpsertBatchRollsBackOnUniqueViolation(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM students WHERE reg_no = $1")).
		WithArgs("101").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.UpsertBatch(context.Background(), []models.StudentUpsert{
		{RosterRow: models.RosterRow{Name: "Alice", RegNo: "101", Email: "taken@example.com"}, QRCodePath: "qrcodes/101.png"},
	})
	require.ErrorIs(t, err, ErrUniqueViolation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpsertBatchEmptyInput(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	summary, err := repo.UpsertBatch(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, summary.Created)
	require.Zero(t, summary.Updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryPurgeAllDeletesBothTables(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendance")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.PurgeAll(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
