package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/scanmark/attendance-api/internal/models"
	"github.com/scanmark/attendance-api/internal/repository"
	appErrors "github.com/scanmark/attendance-api/pkg/errors"
	"github.com/scanmark/attendance-api/pkg/spreadsheet"
)

// Canonical roster columns, in the order reported for missing-column errors.
var expectedColumns = []string{"name", "reg_no", "email"}

// headerAliases maps common header spellings onto the canonical fields.
// Matching is case/whitespace-insensitive; headers resolving to nothing here
// and not already canonical are dropped.
var headerAliases = map[string]string{
	"name":                "name",
	"student_name":        "name",
	"full_name":           "name",
	"reg_no":              "reg_no",
	"regno":               "reg_no",
	"registration_number": "reg_no",
	"registration_no":     "reg_no",
	"registration":        "reg_no",
	"email":               "email",
	"email_address":       "email",
	"mail":                "email",
}

// emptyMarkers are cell values treated as empty after trimming, case-insensitively.
var emptyMarkers = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
	"null": {},
	"na":   {},
	"n/a":  {},
}

// floatRegNo matches the spreadsheet artifact where integer-like registration
// numbers are serialized with a trailing ".0".
var floatRegNo = regexp.MustCompile(`^\d+\.0$`)

var headerWhitespace = regexp.MustCompile(`\s+`)

type rosterStudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByRegNo(ctx context.Context, regNo string) (*models.Student, error)
	UpdateQRPath(ctx context.Context, id, path string) error
	UpsertBatch(ctx context.Context, rows []models.StudentUpsert) (models.UpsertSummary, error)
}

type identifierGenerator interface {
	Generate(regNo string) (string, error)
	ImagePath(regNo string) string
}

// RosterServiceConfig bounds ingestion.
type RosterServiceConfig struct {
	MaxRows int
}

// RosterService ingests spreadsheet uploads and reconciles them against the
// persisted roster.
type RosterService struct {
	repo   rosterStudentRepository
	qr     identifierGenerator
	logger *zap.Logger
	cfg    RosterServiceConfig
}

// NewRosterService constructs the roster service.
func NewRosterService(repo rosterStudentRepository, qr identifierGenerator, logger *zap.Logger, cfg RosterServiceConfig) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 5000
	}
	return &RosterService{repo: repo, qr: qr, logger: logger, cfg: cfg}
}

// Normalize turns a parsed table into validated roster rows. Rows with any
// empty canonical field are dropped silently; duplicated registration numbers
// keep the first occurrence in file order.
func (s *RosterService) Normalize(table *spreadsheet.Table) ([]models.RosterRow, error) {
	columns := resolveColumns(table.Headers)

	missing := make([]string, 0, len(expectedColumns))
	for _, col := range expectedColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	rows := make([]models.RosterRow, 0, len(table.Records))
	seen := make(map[string]struct{}, len(table.Records))
	for _, record := range table.Records {
		row := models.RosterRow{
			Name:  normalizeCell(table.Cell(record, columns["name"])),
			RegNo: normalizeRegNo(table.Cell(record, columns["reg_no"])),
			Email: strings.ToLower(normalizeCell(table.Cell(record, columns["email"]))),
		}
		if row.Name == "" || row.RegNo == "" || row.Email == "" {
			continue
		}
		if _, dup := seen[row.RegNo]; dup {
			continue
		}
		seen[row.RegNo] = struct{}{}
		rows = append(rows, row)
	}
	return rows, nil
}

// Ingest parses the uploaded file, normalizes it, generates identifier images
// and upserts the batch in one transaction. Returns created/updated counts.
func (s *RosterService) Ingest(ctx context.Context, filePath string) (models.UpsertSummary, error) {
	table, err := spreadsheet.Read(filePath)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrUnsupportedFormat) {
			return models.UpsertSummary{}, appErrors.Clone(appErrors.ErrValidation, "only .xlsx and .csv files are allowed")
		}
		return models.UpsertSummary{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not parse uploaded file")
	}

	if len(table.Records) > s.cfg.MaxRows {
		return models.UpsertSummary{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("upload exceeds the %d row limit", s.cfg.MaxRows))
	}

	rows, err := s.Normalize(table)
	if err != nil {
		return models.UpsertSummary{}, err
	}
	if len(rows) == 0 {
		return models.UpsertSummary{}, appErrors.Clone(appErrors.ErrValidation, "no valid student rows found in file")
	}

	upserts := make([]models.StudentUpsert, 0, len(rows))
	for _, row := range rows {
		qrPath, err := s.qr.Generate(row.RegNo)
		if err != nil {
			return models.UpsertSummary{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate identifier image")
		}
		upserts = append(upserts, models.StudentUpsert{RosterRow: row, QRCodePath: qrPath})
	}

	summary, err := s.repo.UpsertBatch(ctx, upserts)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return models.UpsertSummary{}, appErrors.Clone(appErrors.ErrConflict, "duplicate registration number or email in dataset")
		}
		return models.UpsertSummary{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save roster")
	}

	s.logger.Info("roster ingested", zap.Int("created", summary.Created), zap.Int("updated", summary.Updated))
	return summary, nil
}

// List returns the roster, newest first.
func (s *RosterService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// QRImage resolves the on-disk identifier image for a registration number,
// regenerating it when the stored file has gone missing.
func (s *RosterService) QRImage(ctx context.Context, regNo string) (*models.Student, string, error) {
	student, err := s.repo.FindByRegNo(ctx, strings.TrimSpace(regNo))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	fullPath := s.qr.ImagePath(student.RegNo)
	if _, err := os.Stat(fullPath); err != nil {
		relPath, genErr := s.qr.Generate(student.RegNo)
		if genErr != nil {
			return nil, "", appErrors.Wrap(genErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to regenerate identifier image")
		}
		if updErr := s.repo.UpdateQRPath(ctx, student.ID, relPath); updErr != nil {
			return nil, "", appErrors.Wrap(updErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist identifier path")
		}
		student.QRCodePath = relPath
	}

	return student, fullPath, nil
}

func resolveColumns(headers []string) map[string]int {
	columns := make(map[string]int, len(expectedColumns))
	for i, header := range headers {
		canonical := canonicalHeader(header)
		if canonical == "" {
			continue
		}
		// First occurrence wins when a file repeats a header.
		if _, ok := columns[canonical]; !ok {
			columns[canonical] = i
		}
	}
	return columns
}

func canonicalHeader(header string) string {
	safe := headerWhitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(header)), "_")
	return headerAliases[safe]
}

func normalizeCell(value string) string {
	text := strings.TrimSpace(value)
	if _, empty := emptyMarkers[strings.ToLower(text)]; empty {
		return ""
	}
	return text
}

func normalizeRegNo(value string) string {
	text := normalizeCell(value)
	if floatRegNo.MatchString(text) {
		return strings.TrimSuffix(text, ".0")
	}
	return text
}
