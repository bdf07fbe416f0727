package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/scanmark/attendance-api/internal/dto"
	appErrors "github.com/scanmark/attendance-api/pkg/errors"
)

type studentCounter interface {
	Count(ctx context.Context) (int, error)
}

type attendanceCounter interface {
	CountByDate(ctx context.Context, date time.Time) (int, error)
}

// DashboardService composes the landing-page counters with an optional
// cache-aside layer.
type DashboardService struct {
	students   studentCounter
	attendance attendanceCounter
	cache      *CacheService
	logger     *zap.Logger
	now        func() time.Time
	cacheTTL   time.Duration
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(students studentCounter, attendance attendanceCounter, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &DashboardService{
		students:   students,
		attendance: attendance,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
		cacheTTL:   cacheTTL,
	}
}

// Overview returns the dashboard counters and whether they came from cache.
func (s *DashboardService) Overview(ctx context.Context) (*dto.DashboardSummary, bool, error) {
	today := s.now()
	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	key := fmt.Sprintf("dashboard:overview:%s", date.Format("2006-01-02"))

	cached := &dto.DashboardSummary{}
	if hit, err := s.cache.Get(ctx, key, cached); err == nil && hit {
		return cached, true, nil
	}

	studentCount, err := s.students.Count(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	attendanceCount, err := s.attendance.CountByDate(ctx, date)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count attendance")
	}

	summary := &dto.DashboardSummary{
		StudentCount:    studentCount,
		TodayAttendance: attendanceCount,
		Date:            date.Format("2006-01-02"),
	}

	if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
	return summary, false, nil
}

// Invalidate drops cached counters after roster or attendance mutations.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "dashboard:*"); err != nil {
		s.logger.Warn("dashboard cache invalidate failed", zap.Error(err))
	}
}
