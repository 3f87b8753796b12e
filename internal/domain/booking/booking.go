package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/pricing"
)

// Customer holds the contact details of the person who submitted a booking.
type Customer struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	PersonalNumber string `json:"personal_number,omitempty"`
}

// NormalizeEmail trims and lower-cases an email address for storage and
// duplicate matching.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Booking is the aggregate root for one priced service booking. The price
// snapshot is captured at creation time and never silently recomputed; later
// catalog or discount changes do not alter it.
type Booking struct {
	id            uuid.UUID
	serviceLine   domain.ServiceLine
	bookingNumber int64

	size   int64
	from   Address
	to     *Address
	extras map[string]int

	customer      Customer
	date          time.Time
	timeOfDay     string
	message       string
	whatToMove    string
	apartmentKeys string

	status BookingStatus

	discountCode   string
	discountCodeID *uuid.UUID
	discountAmount int64

	priceDetails pricing.Snapshot

	createdAt time.Time
	updatedAt time.Time
}

// NewBookingParams holds the inputs for creating a booking aggregate.
type NewBookingParams struct {
	ServiceLine   domain.ServiceLine
	Size          int64
	From          Address
	To            *Address // moving only
	Extras        map[string]int
	Customer      Customer
	Date          time.Time
	TimeOfDay     string
	Message       string
	WhatToMove    string
	ApartmentKeys string

	DiscountCode   string
	DiscountCodeID *uuid.UUID
	DiscountAmount int64

	PriceDetails pricing.Snapshot
}

// NewBooking creates a new pending Booking. The booking number is assigned by
// the repository at persistence time, not here.
func NewBooking(p NewBookingParams) (*Booking, error) {
	if !p.ServiceLine.IsValid() {
		return nil, domain.NewValidationError("invalid service line")
	}
	if p.Size <= 0 {
		return nil, domain.NewValidationError("size must be positive")
	}
	if err := p.From.Validate(); err != nil {
		return nil, err
	}
	if p.ServiceLine == domain.ServiceMoving {
		if p.To == nil {
			return nil, domain.NewValidationError("destination address is required for moving")
		}
		if err := p.To.Validate(); err != nil {
			return nil, err
		}
	}
	if p.Customer.Name == "" {
		return nil, domain.NewValidationError("customer name is required")
	}
	if NormalizeEmail(p.Customer.Email) == "" {
		return nil, domain.NewValidationError("customer email is required")
	}
	if p.Date.IsZero() {
		return nil, domain.NewValidationError("scheduled date is required")
	}
	if len(p.PriceDetails.Lines) == 0 {
		return nil, domain.NewValidationError("price snapshot is required")
	}

	customer := p.Customer
	customer.Email = NormalizeEmail(customer.Email)

	now := time.Now().UTC()
	return &Booking{
		id:             uuid.New(),
		serviceLine:    p.ServiceLine,
		size:           p.Size,
		from:           p.From,
		to:             p.To,
		extras:         p.Extras,
		customer:       customer,
		date:           p.Date,
		timeOfDay:      p.TimeOfDay,
		message:        p.Message,
		whatToMove:     p.WhatToMove,
		apartmentKeys:  p.ApartmentKeys,
		status:         StatusPending,
		discountCode:   p.DiscountCode,
		discountCodeID: p.DiscountCodeID,
		discountAmount: p.DiscountAmount,
		priceDetails:   p.PriceDetails,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructParams holds persistence data for rebuilding a Booking.
type ReconstructParams struct {
	ID            uuid.UUID
	ServiceLine   domain.ServiceLine
	BookingNumber int64

	Size   int64
	From   Address
	To     *Address
	Extras map[string]int

	Customer      Customer
	Date          time.Time
	TimeOfDay     string
	Message       string
	WhatToMove    string
	ApartmentKeys string

	Status BookingStatus

	DiscountCode   string
	DiscountCodeID *uuid.UUID
	DiscountAmount int64

	PriceDetails pricing.Snapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(p ReconstructParams) *Booking {
	return &Booking{
		id:             p.ID,
		serviceLine:    p.ServiceLine,
		bookingNumber:  p.BookingNumber,
		size:           p.Size,
		from:           p.From,
		to:             p.To,
		extras:         p.Extras,
		customer:       p.Customer,
		date:           p.Date,
		timeOfDay:      p.TimeOfDay,
		message:        p.Message,
		whatToMove:     p.WhatToMove,
		apartmentKeys:  p.ApartmentKeys,
		status:         p.Status,
		discountCode:   p.DiscountCode,
		discountCodeID: p.DiscountCodeID,
		discountAmount: p.DiscountAmount,
		priceDetails:   p.PriceDetails,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ServiceLine returns the business offering this booking belongs to.
func (b *Booking) ServiceLine() domain.ServiceLine { return b.serviceLine }

// BookingNumber returns the per-service-line sequential number, or 0 if the
// booking has not been persisted yet.
func (b *Booking) BookingNumber() int64 { return b.bookingNumber }

// Size returns the property size in m².
func (b *Booking) Size() int64 { return b.size }

// From returns the origin address.
func (b *Booking) From() Address { return b.from }

// To returns the destination address, or nil for single-address services.
func (b *Booking) To() *Address { return b.to }

// Extras returns the selected extra services as key to quantity.
func (b *Booking) Extras() map[string]int { return b.extras }

// Customer returns the customer contact details.
func (b *Booking) Customer() Customer { return b.customer }

// Date returns the scheduled date.
func (b *Booking) Date() time.Time { return b.date }

// TimeOfDay returns the optional scheduled time string.
func (b *Booking) TimeOfDay() string { return b.timeOfDay }

// Message returns the free-text customer message.
func (b *Booking) Message() string { return b.message }

// WhatToMove returns the moving inventory description.
func (b *Booking) WhatToMove() string { return b.whatToMove }

// ApartmentKeys returns the key-handover arrangement.
func (b *Booking) ApartmentKeys() string { return b.apartmentKeys }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// DiscountCode returns the applied discount code, or "" if none.
func (b *Booking) DiscountCode() string { return b.discountCode }

// DiscountCodeID returns the id of the applied discount code, or nil.
func (b *Booking) DiscountCodeID() *uuid.UUID { return b.discountCodeID }

// DiscountAmount returns the deducted discount amount in SEK.
func (b *Booking) DiscountAmount() int64 { return b.discountAmount }

// PriceDetails returns the price snapshot captured at creation time.
func (b *Booking) PriceDetails() pricing.Snapshot { return b.priceDetails }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// AssignNumber sets the booking number at persistence time. It may only be
// assigned once.
func (b *Booking) AssignNumber(n int64) error {
	if b.bookingNumber != 0 {
		return domain.NewConflictError("booking number already assigned")
	}
	if n <= 0 {
		return domain.NewValidationError("booking number must be positive")
	}
	b.bookingNumber = n
	return nil
}

// Confirm transitions the booking from pending to confirmed.
func (b *Booking) Confirm() error {
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	b.status = StatusConfirmed
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel transitions the booking to cancelled. Cancelled is terminal.
func (b *Booking) Cancel() error {
	if !b.status.CanTransitionTo(StatusCancelled) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	b.status = StatusCancelled
	b.updatedAt = time.Now().UTC()
	return nil
}

// UpdateContact corrects the customer contact fields. Empty values leave the
// existing field untouched.
func (b *Booking) UpdateContact(email, phone string) {
	if email != "" {
		b.customer.Email = NormalizeEmail(email)
	}
	if phone != "" {
		b.customer.Phone = strings.TrimSpace(phone)
	}
	b.updatedAt = time.Now().UTC()
}

// Reschedule moves the booking to a new date and optional time.
func (b *Booking) Reschedule(date time.Time, timeOfDay string) error {
	if date.IsZero() {
		return domain.NewValidationError("date is required")
	}
	b.date = date
	if timeOfDay != "" {
		b.timeOfDay = strings.TrimSpace(timeOfDay)
	}
	b.updatedAt = time.Now().UTC()
	return nil
}

// SetSize corrects the property size.
func (b *Booking) SetSize(size int64) error {
	if size <= 0 {
		return domain.NewValidationError("size must be positive")
	}
	b.size = size
	b.updatedAt = time.Now().UTC()
	return nil
}

// ReplaceSnapshot overwrites the price snapshot. Admin correction only: the
// snapshot is otherwise immutable after creation.
func (b *Booking) ReplaceSnapshot(s pricing.Snapshot) error {
	if len(s.Lines) == 0 {
		return domain.NewValidationError("price snapshot must have at least one line")
	}
	b.priceDetails = s
	b.updatedAt = time.Now().UTC()
	return nil
}
