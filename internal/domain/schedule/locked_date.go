// Package schedule holds calendar availability rules: dates an admin has
// blocked from accepting new bookings.
package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nordstad/booking-backend/internal/domain"
)

// LockedDate blocks one calendar day for one service line. Submissions for a
// locked date are rejected before any pricing or persistence work happens.
type LockedDate struct {
	ID          uuid.UUID          `json:"id"`
	ServiceLine domain.ServiceLine `json:"service_line"`
	Date        time.Time          `json:"date"`
	Reason      string             `json:"reason,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// NewLockedDate creates a locked date for a service line. The date is
// truncated to midnight UTC so matching is by calendar day.
func NewLockedDate(line domain.ServiceLine, date time.Time, reason string) (*LockedDate, error) {
	if !line.IsValid() {
		return nil, domain.NewValidationError("invalid service line")
	}
	if date.IsZero() {
		return nil, domain.NewValidationError("date is required")
	}
	day := Day(date)
	if day.Before(Day(time.Now().UTC())) {
		return nil, domain.NewValidationError("cannot lock a date in the past")
	}
	return &LockedDate{
		ID:          uuid.New(),
		ServiceLine: line,
		Date:        day,
		Reason:      reason,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Day truncates a timestamp to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LockedDateRepository stores blocked calendar days per service line.
type LockedDateRepository interface {
	// IsLocked reports whether the calendar day of date is blocked for line.
	IsLocked(ctx context.Context, line domain.ServiceLine, date time.Time) (bool, error)
	// Create persists a locked date; locking an already-locked day is a conflict.
	Create(ctx context.Context, ld *LockedDate) error
	// Delete unlocks a day by id.
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns locked dates for a line, optionally only from today onward.
	List(ctx context.Context, line domain.ServiceLine, futureOnly bool) ([]*LockedDate, error)
	// DeletePast removes locked dates before today and returns how many went.
	DeletePast(ctx context.Context) (int64, error)
}
