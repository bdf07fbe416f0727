package service

import (
	"context"

	"go.uber.org/zap"

	appErrors "github.com/scanmark/attendance-api/pkg/errors"
)

// Delete scopes accepted by the admin data-management action.
const (
	DeleteScopeAttendance = "attendance"
	DeleteScopeAll        = "all"
)

type attendanceDeleter interface {
	DeleteAll(ctx context.Context) error
}

type rosterPurger interface {
	PurgeAll(ctx context.Context) error
}

// AdminService executes administrative bulk deletes.
type AdminService struct {
	attendance attendanceDeleter
	students   rosterPurger
	logger     *zap.Logger
}

// NewAdminService constructs the admin service.
func NewAdminService(attendance attendanceDeleter, students rosterPurger, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{attendance: attendance, students: students, logger: logger}
}

// DeleteData removes records for the requested scope and returns a summary
// message. Unrecognized scopes change nothing.
func (s *AdminService) DeleteData(ctx context.Context, scope string) (string, error) {
	switch scope {
	case DeleteScopeAttendance:
		if err := s.attendance.DeleteAll(ctx); err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attendance")
		}
		s.logger.Info("admin delete", zap.String("scope", scope))
		return "Attendance records deleted", nil
	case DeleteScopeAll:
		if err := s.students.PurgeAll(ctx); err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete students and attendance")
		}
		s.logger.Info("admin delete", zap.String("scope", scope))
		return "Students and attendance deleted", nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "invalid delete scope")
	}
}
