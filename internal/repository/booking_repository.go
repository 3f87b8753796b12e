package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nordstad/booking-backend/internal/domain"
	bookingDomain "github.com/nordstad/booking-backend/internal/domain/booking"
	"github.com/nordstad/booking-backend/internal/domain/pricing"
)

// BookingModel is the GORM model for the bookings table. All service lines
// share one table, discriminated by service_line; booking numbers are unique
// per service line.
type BookingModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceLine   string    `gorm:"not null;size:30;index;uniqueIndex:idx_line_number"`
	BookingNumber int64     `gorm:"not null;uniqueIndex:idx_line_number"`

	Size   int64           `gorm:"not null"`
	From   json.RawMessage `gorm:"type:jsonb;not null;column:from_address"`
	To     json.RawMessage `gorm:"type:jsonb;column:to_address"`
	Extras json.RawMessage `gorm:"type:jsonb"`

	Name           string    `gorm:"not null;size:200"`
	Email          string    `gorm:"not null;size:200;index:idx_email_date"`
	Phone          string    `gorm:"size:50"`
	PersonalNumber string    `gorm:"size:20"`
	Date           time.Time `gorm:"not null;index:idx_email_date"`
	TimeOfDay      string    `gorm:"size:20"`
	Message        string    `gorm:"size:2000"`
	WhatToMove     string    `gorm:"size:2000"`
	ApartmentKeys  string    `gorm:"size:200"`

	Status string `gorm:"not null;size:20;index"`

	DiscountCode   string     `gorm:"size:50"`
	DiscountCodeID *uuid.UUID `gorm:"type:uuid"`
	DiscountAmount int64      `gorm:"not null;default:0"`

	PriceDetails json.RawMessage `gorm:"type:jsonb;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// BookingSequenceModel backs the per-service-line booking number sequence.
type BookingSequenceModel struct {
	ServiceLine string `gorm:"primaryKey;size:30"`
	Value       int64  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingSequenceModel) TableName() string {
	return "booking_sequences"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// nextBookingNumber reserves the next booking number for a service line with
// a single atomic upsert. Two concurrent creates can never observe the same
// value: the increment happens inside the database.
func nextBookingNumber(tx *gorm.DB, line domain.ServiceLine) (int64, error) {
	var next int64
	err := tx.Raw(`
		INSERT INTO booking_sequences (service_line, value)
		VALUES (?, 1)
		ON CONFLICT (service_line)
		DO UPDATE SET value = booking_sequences.value + 1
		RETURNING value`, string(line),
	).Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("failed to advance booking sequence: %w", err)
	}
	return next, nil
}

// Create persists a new booking, assigning its booking number atomically in
// the same transaction as the insert.
func (r *GormBookingRepository) Create(ctx context.Context, bk *bookingDomain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextBookingNumber(tx, bk.ServiceLine())
		if err != nil {
			return err
		}
		if err := bk.AssignNumber(number); err != nil {
			return err
		}

		model, err := toBookingModel(bk)
		if err != nil {
			return err
		}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}
		return nil
	})
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by id: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByNumber retrieves a booking by service line and booking number.
func (r *GormBookingRepository) FindByNumber(ctx context.Context, line domain.ServiceLine, number int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("service_line = ? AND booking_number = ?", string(line), number).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", fmt.Sprintf("%s/%d", line, number))
		}
		return nil, fmt.Errorf("failed to find booking by number: %w", err)
	}
	return toDomainBooking(&model)
}

// FindDuplicate looks for a booking with the same normalized email and exact
// scheduled date on the same service line. Returns (nil, nil) if none exists.
func (r *GormBookingRepository) FindDuplicate(ctx context.Context, line domain.ServiceLine, email string, date time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("service_line = ? AND email = ? AND date = ?", string(line), email, date).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check for duplicate booking: %w", err)
	}
	return toDomainBooking(&model)
}

// List retrieves bookings for one service line with pagination, newest first.
func (r *GormBookingRepository) List(ctx context.Context, line domain.ServiceLine, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("service_line = ?", string(line)).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("service_line = ?", string(line)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status for one service line.
func (r *GormBookingRepository) CountByStatus(ctx context.Context, line domain.ServiceLine) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Where("service_line = ?", string(line)).
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Update persists changes to an existing booking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"size":            model.Size,
			"from_address":    model.From,
			"to_address":      model.To,
			"extras":          model.Extras,
			"name":            model.Name,
			"email":           model.Email,
			"phone":           model.Phone,
			"personal_number": model.PersonalNumber,
			"date":            model.Date,
			"time_of_day":     model.TimeOfDay,
			"message":         model.Message,
			"what_to_move":    model.WhatToMove,
			"apartment_keys":  model.ApartmentKeys,
			"status":          model.Status,
			"price_details":   model.PriceDetails,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("booking", model.ID.String())
	}
	return nil
}

// Delete removes a booking permanently.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("booking", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toBookingModel(bk *bookingDomain.Booking) (*BookingModel, error) {
	fromJSON, err := json.Marshal(bk.From())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal origin address: %w", err)
	}

	var toJSON json.RawMessage
	if bk.To() != nil {
		data, err := json.Marshal(bk.To())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal destination address: %w", err)
		}
		toJSON = data
	}

	extrasJSON, err := json.Marshal(bk.Extras())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extras: %w", err)
	}

	priceJSON, err := json.Marshal(bk.PriceDetails())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal price details: %w", err)
	}

	customer := bk.Customer()
	return &BookingModel{
		ID:             bk.ID(),
		ServiceLine:    string(bk.ServiceLine()),
		BookingNumber:  bk.BookingNumber(),
		Size:           bk.Size(),
		From:           fromJSON,
		To:             toJSON,
		Extras:         extrasJSON,
		Name:           customer.Name,
		Email:          customer.Email,
		Phone:          customer.Phone,
		PersonalNumber: customer.PersonalNumber,
		Date:           bk.Date(),
		TimeOfDay:      bk.TimeOfDay(),
		Message:        bk.Message(),
		WhatToMove:     bk.WhatToMove(),
		ApartmentKeys:  bk.ApartmentKeys(),
		Status:         string(bk.Status()),
		DiscountCode:   bk.DiscountCode(),
		DiscountCodeID: bk.DiscountCodeID(),
		DiscountAmount: bk.DiscountAmount(),
		PriceDetails:   priceJSON,
		CreatedAt:      bk.CreatedAt(),
		UpdatedAt:      bk.UpdatedAt(),
	}, nil
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	var from bookingDomain.Address
	if err := json.Unmarshal(m.From, &from); err != nil {
		return nil, fmt.Errorf("failed to unmarshal origin address: %w", err)
	}

	var to *bookingDomain.Address
	if len(m.To) > 0 {
		var addr bookingDomain.Address
		if err := json.Unmarshal(m.To, &addr); err != nil {
			return nil, fmt.Errorf("failed to unmarshal destination address: %w", err)
		}
		to = &addr
	}

	var extras map[string]int
	if len(m.Extras) > 0 {
		if err := json.Unmarshal(m.Extras, &extras); err != nil {
			return nil, fmt.Errorf("failed to unmarshal extras: %w", err)
		}
	}

	var snapshot pricing.Snapshot
	if err := json.Unmarshal(m.PriceDetails, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal price details: %w", err)
	}

	line, err := domain.ParseServiceLine(m.ServiceLine)
	if err != nil {
		return nil, err
	}
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(bookingDomain.ReconstructParams{
		ID:            m.ID,
		ServiceLine:   line,
		BookingNumber: m.BookingNumber,
		Size:          m.Size,
		From:          from,
		To:            to,
		Extras:        extras,
		Customer: bookingDomain.Customer{
			Name:           m.Name,
			Email:          m.Email,
			Phone:          m.Phone,
			PersonalNumber: m.PersonalNumber,
		},
		Date:           m.Date,
		TimeOfDay:      m.TimeOfDay,
		Message:        m.Message,
		WhatToMove:     m.WhatToMove,
		ApartmentKeys:  m.ApartmentKeys,
		Status:         status,
		DiscountCode:   m.DiscountCode,
		DiscountCodeID: m.DiscountCodeID,
		DiscountAmount: m.DiscountAmount,
		PriceDetails:   snapshot,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}), nil
}
