package service

import (
	"archive/zip"
	"bytes"
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/scanmark/attendance-api/internal/models"
	appErrors "github.com/scanmark/attendance-api/pkg/errors"
	qrimg "github.com/scanmark/attendance-api/pkg/qrcode"
)

type archiveStudentLister interface {
	List(ctx context.Context) ([]models.Student, error)
}

// ArchiveService bundles the current identifier images into one zip.
type ArchiveService struct {
	students archiveStudentLister
	qr       identifierGenerator
	logger   *zap.Logger
}

// NewArchiveService constructs the archive service.
func NewArchiveService(students archiveStudentLister, qr identifierGenerator, logger *zap.Logger) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveService{students: students, qr: qr, logger: logger}
}

// BuildZip returns an in-memory zip with one <reg_no>.png entry per student.
// Missing images are regenerated on the fly; students whose image still cannot
// be read are omitted rather than failing the whole archive.
func (s *ArchiveService) BuildZip(ctx context.Context) ([]byte, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}

	buf := &bytes.Buffer{}
	writer := zip.NewWriter(buf)

	for _, student := range students {
		imagePath := s.qr.ImagePath(student.RegNo)
		if _, err := os.Stat(imagePath); err != nil {
			if _, genErr := s.qr.Generate(student.RegNo); genErr != nil {
				s.logger.Warn("skipping student in archive", zap.String("reg_no", student.RegNo), zap.Error(genErr))
				continue
			}
		}
		data, err := os.ReadFile(imagePath)
		if err != nil {
			s.logger.Warn("skipping unreadable image", zap.String("reg_no", student.RegNo), zap.Error(err))
			continue
		}

		entry, err := writer.Create(qrimg.FileName(student.RegNo))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build archive")
		}
		if _, err := entry.Write(data); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build archive")
		}
	}

	if err := writer.Close(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to finalize archive")
	}
	return buf.Bytes(), nil
}
