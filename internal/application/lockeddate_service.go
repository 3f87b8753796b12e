package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/schedule"
)

// LockedDateService manages the blocked booking calendar.
type LockedDateService struct {
	repo   schedule.LockedDateRepository
	logger *zap.Logger
}

// NewLockedDateService creates a new LockedDateService.
func NewLockedDateService(repo schedule.LockedDateRepository, logger *zap.Logger) *LockedDateService {
	return &LockedDateService{repo: repo, logger: logger}
}

// Lock blocks one calendar day for a service line.
func (s *LockedDateService) Lock(ctx context.Context, line domain.ServiceLine, rawDate, reason string) (*schedule.LockedDate, error) {
	date, err := ParseDate(rawDate)
	if err != nil {
		return nil, err
	}
	ld, err := schedule.NewLockedDate(line, date, reason)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, ld); err != nil {
		return nil, err
	}
	s.logger.Info("date locked",
		zap.String("service_line", string(line)),
		zap.String("date", ld.Date.Format("2006-01-02")),
	)
	return ld, nil
}

// LockRange blocks every day in [from, to] inclusive. Days already locked
// are skipped rather than failing the whole range.
func (s *LockedDateService) LockRange(ctx context.Context, line domain.ServiceLine, rawFrom, rawTo, reason string) ([]*schedule.LockedDate, error) {
	from, err := ParseDate(rawFrom)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(rawTo)
	if err != nil {
		return nil, err
	}
	from, to = schedule.Day(from), schedule.Day(to)
	if to.Before(from) {
		return nil, domain.NewValidationError("range end is before range start")
	}
	if to.Sub(from) > 365*24*time.Hour {
		return nil, domain.NewValidationError("range cannot exceed one year")
	}

	var created []*schedule.LockedDate
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		ld, err := schedule.NewLockedDate(line, day, reason)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Create(ctx, ld); err != nil {
			if domain.KindOf(err) == domain.KindConflict {
				continue
			}
			return nil, err
		}
		created = append(created, ld)
	}
	return created, nil
}

// Unlock removes a locked date by id.
func (s *LockedDateService) Unlock(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// List returns locked dates for a line; futureOnly hides past days.
func (s *LockedDateService) List(ctx context.Context, line domain.ServiceLine, futureOnly bool) ([]*schedule.LockedDate, error) {
	if !line.IsValid() {
		return nil, domain.NewValidationError("invalid service line")
	}
	return s.repo.List(ctx, line, futureOnly)
}

// IsLocked reports whether a day is blocked for a line.
func (s *LockedDateService) IsLocked(ctx context.Context, line domain.ServiceLine, rawDate string) (bool, error) {
	date, err := ParseDate(rawDate)
	if err != nil {
		return false, err
	}
	return s.repo.IsLocked(ctx, line, date)
}

// CleanupPast removes locked dates that are already behind us.
func (s *LockedDateService) CleanupPast(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeletePast(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("removed past locked dates", zap.Int64("count", removed))
	}
	return removed, nil
}
