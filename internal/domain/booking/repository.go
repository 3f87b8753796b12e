package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nordstad/booking-backend/internal/domain"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByNumber retrieves a booking by service line and booking number.
	FindByNumber(ctx context.Context, line domain.ServiceLine, number int64) (*Booking, error)

	// FindDuplicate looks for an existing booking on the same service line
	// with the same normalized email and exact scheduled date. Returns
	// (nil, nil) when no duplicate exists.
	FindDuplicate(ctx context.Context, line domain.ServiceLine, email string, date time.Time) (*Booking, error)

	// List retrieves bookings for one service line with pagination, newest first.
	List(ctx context.Context, line domain.ServiceLine, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts per status for one service line.
	CountByStatus(ctx context.Context, line domain.ServiceLine) (map[string]int64, error)

	// Create persists a new booking, assigning the next booking number for
	// its service line atomically as part of the same transaction.
	Create(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking.
	Update(ctx context.Context, booking *Booking) error

	// Delete removes a booking permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}
