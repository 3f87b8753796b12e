package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/pricing"
)

func validAddress() Address {
	return Address{
		Postcode: "75430",
		HomeType: HomeApartment,
		Floor:    "2",
		Access:   AccessElevator,
	}
}

func validSnapshot() pricing.Snapshot {
	return pricing.Snapshot{
		Lines:  []pricing.Line{{Key: pricing.LineBase, Label: "Flytt", Amount: 2500}},
		Totals: pricing.Totals{Base: 2500, GrandTotal: 2500, Currency: "SEK"},
	}
}

func validParams() NewBookingParams {
	to := validAddress()
	return NewBookingParams{
		ServiceLine:  domain.ServiceMoving,
		Size:         40,
		From:         validAddress(),
		To:           &to,
		Customer:     Customer{Name: "Anna Larsson", Email: "Anna@Example.com", Phone: "0701234567"},
		Date:         time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		PriceDetails: validSnapshot(),
	}
}

func TestNewBooking(t *testing.T) {
	bk, err := NewBooking(validParams())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, bk.Status())
	assert.Equal(t, int64(0), bk.BookingNumber())
	assert.Equal(t, "anna@example.com", bk.Customer().Email)
	assert.NotEqual(t, "", bk.ID().String())
}

func TestNewBooking_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NewBookingParams)
	}{
		{"invalid service line", func(p *NewBookingParams) { p.ServiceLine = "plumbing" }},
		{"zero size", func(p *NewBookingParams) { p.Size = 0 }},
		{"bad postcode", func(p *NewBookingParams) { p.From.Postcode = "123" }},
		{"moving without destination", func(p *NewBookingParams) { p.To = nil }},
		{"missing name", func(p *NewBookingParams) { p.Customer.Name = "" }},
		{"blank email", func(p *NewBookingParams) { p.Customer.Email = "   " }},
		{"zero date", func(p *NewBookingParams) { p.Date = time.Time{} }},
		{"empty snapshot", func(p *NewBookingParams) { p.PriceDetails = pricing.Snapshot{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := NewBooking(p)
			require.Error(t, err)
			assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
		})
	}
}

func TestNewBooking_CleaningNeedsNoDestination(t *testing.T) {
	p := validParams()
	p.ServiceLine = domain.ServiceCleaning
	p.To = nil

	bk, err := NewBooking(p)
	require.NoError(t, err)
	assert.Nil(t, bk.To())
}

func TestAssignNumber(t *testing.T) {
	bk, err := NewBooking(validParams())
	require.NoError(t, err)

	require.NoError(t, bk.AssignNumber(7))
	assert.Equal(t, int64(7), bk.BookingNumber())

	// Assigning twice is a conflict.
	err = bk.AssignNumber(8)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, int64(7), bk.BookingNumber())
}

func TestAssignNumber_RejectsNonPositive(t *testing.T) {
	bk, err := NewBooking(validParams())
	require.NoError(t, err)
	assert.Error(t, bk.AssignNumber(0))
	assert.Error(t, bk.AssignNumber(-1))
}

func TestConfirmAndCancel(t *testing.T) {
	bk, err := NewBooking(validParams())
	require.NoError(t, err)

	require.NoError(t, bk.Confirm())
	assert.Equal(t, StatusConfirmed, bk.Status())

	// Confirming twice is an invalid transition.
	err = bk.Confirm()
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))

	require.NoError(t, bk.Cancel())
	assert.Equal(t, StatusCancelled, bk.Status())

	// Cancelled is terminal.
	assert.Error(t, bk.Cancel())
	assert.Error(t, bk.Confirm())
}

func TestUpdateContact(t *testing.T) {
	bk, err := NewBooking(validParams())
	require.NoError(t, err)

	bk.UpdateContact("New@Mail.SE", "")
	assert.Equal(t, "new@mail.se", bk.Customer().Email)
	assert.Equal(t, "0701234567", bk.Customer().Phone)

	bk.UpdateContact("", "0739999999")
	assert.Equal(t, "new@mail.se", bk.Customer().Email)
	assert.Equal(t, "0739999999", bk.Customer().Phone)
}

func TestReschedule(t *testing.T) {
	bk, err := NewBooking(validParams())
	require.NoError(t, err)

	newDate := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, bk.Reschedule(newDate, "morning"))
	assert.Equal(t, newDate, bk.Date())
	assert.Equal(t, "morning", bk.TimeOfDay())

	assert.Error(t, bk.Reschedule(time.Time{}, ""))
}

func TestReplaceSnapshot(t *testing.T) {
	bk, err := NewBooking(validParams())
	require.NoError(t, err)

	assert.Error(t, bk.ReplaceSnapshot(pricing.Snapshot{}))

	s := validSnapshot()
	s.Totals.GrandTotal = 3000
	require.NoError(t, bk.ReplaceSnapshot(s))
	assert.Equal(t, int64(3000), bk.PriceDetails().Totals.GrandTotal)
}

func TestReconstructBooking(t *testing.T) {
	original, err := NewBooking(validParams())
	require.NoError(t, err)
	require.NoError(t, original.AssignNumber(42))

	rebuilt := ReconstructBooking(ReconstructParams{
		ID:            original.ID(),
		ServiceLine:   original.ServiceLine(),
		BookingNumber: original.BookingNumber(),
		Size:          original.Size(),
		From:          original.From(),
		To:            original.To(),
		Customer:      original.Customer(),
		Date:          original.Date(),
		Status:        original.Status(),
		PriceDetails:  original.PriceDetails(),
		CreatedAt:     original.CreatedAt(),
		UpdatedAt:     original.UpdatedAt(),
	})

	assert.Equal(t, original.ID(), rebuilt.ID())
	assert.Equal(t, int64(42), rebuilt.BookingNumber())
	assert.Equal(t, original.Status(), rebuilt.Status())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.se", NormalizeEmail("  A@B.SE "))
}
