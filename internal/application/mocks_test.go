package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/booking"
	"github.com/nordstad/booking-backend/internal/domain/discount"
	"github.com/nordstad/booking-backend/internal/domain/pricing"
	"github.com/nordstad/booking-backend/internal/domain/schedule"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, bk *booking.Booking) error {
	args := m.Called(ctx, bk)
	return args.Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindByNumber(ctx context.Context, line domain.ServiceLine, number int64) (*booking.Booking, error) {
	args := m.Called(ctx, line, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindDuplicate(ctx context.Context, line domain.ServiceLine, email string, date time.Time) (*booking.Booking, error) {
	args := m.Called(ctx, line, email, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, line domain.ServiceLine, page, limit int) ([]*booking.Booking, int64, error) {
	args := m.Called(ctx, line, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*booking.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockBookingRepo) CountByStatus(ctx context.Context, line domain.ServiceLine) (map[string]int64, error) {
	args := m.Called(ctx, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockBookingRepo) Update(ctx context.Context, bk *booking.Booking) error {
	args := m.Called(ctx, bk)
	return args.Error(0)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockLockedDateRepo struct {
	mock.Mock
}

func (m *mockLockedDateRepo) IsLocked(ctx context.Context, line domain.ServiceLine, date time.Time) (bool, error) {
	args := m.Called(ctx, line, date)
	return args.Bool(0), args.Error(1)
}

func (m *mockLockedDateRepo) Create(ctx context.Context, ld *schedule.LockedDate) error {
	args := m.Called(ctx, ld)
	return args.Error(0)
}

func (m *mockLockedDateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockLockedDateRepo) List(ctx context.Context, line domain.ServiceLine, futureOnly bool) ([]*schedule.LockedDate, error) {
	args := m.Called(ctx, line, futureOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schedule.LockedDate), args.Error(1)
}

func (m *mockLockedDateRepo) DeletePast(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) GetByLine(ctx context.Context, line domain.ServiceLine) (*pricing.Catalog, error) {
	args := m.Called(ctx, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Catalog), args.Error(1)
}

func (m *mockCatalogRepo) Upsert(ctx context.Context, c *pricing.Catalog) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCatalogRepo) SeedDefaults(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockDiscountRepo struct {
	mock.Mock
}

func (m *mockDiscountRepo) FindByCode(ctx context.Context, code string) (*discount.Code, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discount.Code), args.Error(1)
}

func (m *mockDiscountRepo) FindByID(ctx context.Context, id uuid.UUID) (*discount.Code, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discount.Code), args.Error(1)
}

func (m *mockDiscountRepo) List(ctx context.Context, page, limit int) ([]*discount.Code, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*discount.Code), args.Get(1).(int64), args.Error(2)
}

func (m *mockDiscountRepo) Create(ctx context.Context, c *discount.Code) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockDiscountRepo) Update(ctx context.Context, c *discount.Code) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockDiscountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockDiscountRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, origin, dest string) (float64, error) {
	args := m.Called(ctx, origin, dest)
	return args.Get(0).(float64), args.Error(1)
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) Publish(ctx context.Context, eventType string, payload interface{}) {
	n.events = append(n.events, eventType)
}

func percentageCode(code string, percent int64) *discount.Code {
	return &discount.Code{
		ID:       uuid.New(),
		Code:     code,
		Type:     discount.TypePercentage,
		Value:    percent,
		IsActive: true,
	}
}
