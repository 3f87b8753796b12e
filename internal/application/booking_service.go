package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/booking"
	"github.com/nordstad/booking-backend/internal/domain/schedule"
	"github.com/nordstad/booking-backend/internal/notify"
)

// BookingService orchestrates the booking lifecycle: submission with
// server-side pricing, status transitions, and the admin surface.
type BookingService struct {
	bookings    booking.BookingRepository
	lockedDates schedule.LockedDateRepository
	quotes      *QuoteService
	discounts   *DiscountService
	notifier    notify.Notifier
	logger      *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings booking.BookingRepository,
	lockedDates schedule.LockedDateRepository,
	quotes *QuoteService,
	discounts *DiscountService,
	notifier notify.Notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:    bookings,
		lockedDates: lockedDates,
		quotes:      quotes,
		discounts:   discounts,
		notifier:    notifier,
		logger:      logger,
	}
}

// SubmitBookingParams holds the customer inputs for a new booking. The date
// is a raw string; both RFC 3339 and plain YYYY-MM-DD are accepted.
type SubmitBookingParams struct {
	ServiceLine domain.ServiceLine
	Size        int64
	From        booking.Address
	To          *booking.Address
	Extras      map[string]int

	Customer      booking.Customer
	Date          string
	TimeOfDay     string
	Message       string
	WhatToMove    string
	ApartmentKeys string

	DiscountCode string
}

// Submit prices and persists a new booking. The price is always computed
// server-side from the stored catalog; client-supplied amounts are never
// trusted. An invalid discount code rejects the whole submission so the
// customer never books at a price they did not see.
func (s *BookingService) Submit(ctx context.Context, p SubmitBookingParams) (*booking.Booking, error) {
	date, err := ParseDate(p.Date)
	if err != nil {
		return nil, err
	}

	locked, err := s.lockedDates.IsLocked(ctx, p.ServiceLine, date)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, domain.NewConflictError("the selected date is not available")
	}

	email := booking.NormalizeEmail(p.Customer.Email)
	existing, err := s.bookings.FindDuplicate(ctx, p.ServiceLine, email, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewDuplicateBookingError("a booking with this email already exists for that date")
	}

	quoteReq := QuoteRequest{
		Size:         p.Size,
		Extras:       p.Extras,
		FromPostcode: p.From.Postcode,
	}
	if p.To != nil {
		quoteReq.ToPostcode = p.To.Postcode
	}
	snapshot, err := s.quotes.Quote(ctx, p.ServiceLine, quoteReq)
	if err != nil {
		return nil, err
	}

	var discountCode string
	var discountCodeID *uuid.UUID
	var discountAmount int64
	if p.DiscountCode != "" {
		outcome, err := s.discounts.ValidateForOrder(ctx, p.DiscountCode, snapshot.BaseBeforeDiscount(), p.ServiceLine)
		if err != nil {
			return nil, err
		}
		snapshot = snapshot.WithDiscount(outcome.Code.Code, outcome.Amount, outcome.Code.LineMeta())
		discountCode = outcome.Code.Code
		id := outcome.Code.ID
		discountCodeID = &id
		discountAmount = outcome.Amount
	}

	bk, err := booking.NewBooking(booking.NewBookingParams{
		ServiceLine:    p.ServiceLine,
		Size:           p.Size,
		From:           p.From,
		To:             p.To,
		Extras:         p.Extras,
		Customer:       p.Customer,
		Date:           date,
		TimeOfDay:      p.TimeOfDay,
		Message:        p.Message,
		WhatToMove:     p.WhatToMove,
		ApartmentKeys:  p.ApartmentKeys,
		DiscountCode:   discountCode,
		DiscountCodeID: discountCodeID,
		DiscountAmount: discountAmount,
		PriceDetails:   snapshot,
	})
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Create(ctx, bk); err != nil {
		return nil, err
	}

	// The booking is committed; a failed usage increment is logged, not
	// surfaced, so the customer still gets their confirmation.
	if discountCodeID != nil {
		if err := s.discounts.RecordUsage(ctx, *discountCodeID); err != nil {
			s.logger.Error("failed to record discount usage",
				zap.String("booking_id", bk.ID().String()),
				zap.String("discount_code", discountCode),
				zap.Error(err),
			)
		}
	}

	s.notifier.Publish(ctx, notify.EventBookingCreated, bookingEventPayload(bk))

	s.logger.Info("booking created",
		zap.String("service_line", string(bk.ServiceLine())),
		zap.Int64("booking_number", bk.BookingNumber()),
		zap.Int64("grand_total", bk.PriceDetails().Totals.GrandTotal),
	)
	return bk, nil
}

// Get returns one booking by id.
func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return s.bookings.FindByID(ctx, id)
}

// GetByNumber returns one booking by service line and booking number.
func (s *BookingService) GetByNumber(ctx context.Context, line domain.ServiceLine, number int64) (*booking.Booking, error) {
	return s.bookings.FindByNumber(ctx, line, number)
}

// List returns bookings for a service line with pagination.
func (s *BookingService) List(ctx context.Context, line domain.ServiceLine, page, limit int) (domain.PaginatedResult[*booking.Booking], error) {
	page, limit = normalizePagination(page, limit)
	bookings, total, err := s.bookings.List(ctx, line, page, limit)
	if err != nil {
		return domain.PaginatedResult[*booking.Booking]{}, err
	}
	return domain.NewPaginatedResult(bookings, total, page, limit), nil
}

// Stats returns booking counts grouped by status for one service line.
func (s *BookingService) Stats(ctx context.Context, line domain.ServiceLine) (map[string]int64, error) {
	return s.bookings.CountByStatus(ctx, line)
}

// Confirm moves a booking from pending to confirmed.
func (s *BookingService) Confirm(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := bk.Confirm(); err != nil {
		return nil, err
	}
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}
	s.notifier.Publish(ctx, notify.EventBookingConfirmed, bookingEventPayload(bk))
	return bk, nil
}

// Cancel moves a booking to cancelled. Usage counters of any redeemed
// discount code are deliberately left as they are.
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := bk.Cancel(); err != nil {
		return nil, err
	}
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}
	s.notifier.Publish(ctx, notify.EventBookingCancelled, bookingEventPayload(bk))
	return bk, nil
}

// PatchBookingParams holds optional admin corrections to a booking. Nil or
// empty fields are left unchanged.
type PatchBookingParams struct {
	Email     string
	Phone     string
	Date      string
	TimeOfDay string
	Size      *int64
}

// Patch applies admin corrections to a booking. Changing the size reprices
// the booking from the current catalog; contact and schedule edits never
// touch the price snapshot.
func (s *BookingService) Patch(ctx context.Context, id uuid.UUID, p PatchBookingParams) (*booking.Booking, error) {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Email != "" || p.Phone != "" {
		bk.UpdateContact(p.Email, p.Phone)
	}
	if p.Date != "" {
		date, err := ParseDate(p.Date)
		if err != nil {
			return nil, err
		}
		locked, err := s.lockedDates.IsLocked(ctx, bk.ServiceLine(), date)
		if err != nil {
			return nil, err
		}
		if locked {
			return nil, domain.NewConflictError("the selected date is not available")
		}
		if err := bk.Reschedule(date, p.TimeOfDay); err != nil {
			return nil, err
		}
	}
	if p.Size != nil {
		if err := bk.SetSize(*p.Size); err != nil {
			return nil, err
		}
		quoteReq := QuoteRequest{
			Size:         *p.Size,
			Extras:       bk.Extras(),
			FromPostcode: bk.From().Postcode,
		}
		if bk.To() != nil {
			quoteReq.ToPostcode = bk.To().Postcode
		}
		snapshot, err := s.quotes.Quote(ctx, bk.ServiceLine(), quoteReq)
		if err != nil {
			return nil, err
		}
		if err := bk.ReplaceSnapshot(snapshot); err != nil {
			return nil, err
		}
	}

	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}
	return bk, nil
}

// Delete removes a booking permanently.
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.bookings.Delete(ctx, id)
}

// ParseDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date.
func ParseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, domain.NewValidationError("date is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, domain.NewValidationError("invalid date format, expected RFC 3339 or YYYY-MM-DD")
}

func bookingEventPayload(bk *booking.Booking) map[string]interface{} {
	return map[string]interface{}{
		"booking_id":     bk.ID().String(),
		"service_line":   string(bk.ServiceLine()),
		"booking_number": bk.BookingNumber(),
		"status":         string(bk.Status()),
		"email":          bk.Customer().Email,
		"date":           bk.Date().Format("2006-01-02"),
		"grand_total":    bk.PriceDetails().Totals.GrandTotal,
	}
}
