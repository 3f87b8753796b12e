package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordstad/booking-backend/internal/domain"
)

func movingCatalog() Catalog {
	return DefaultMovingCatalog()
}

func TestComputeQuote_FixedPriceBelowThreshold(t *testing.T) {
	snapshot, err := ComputeQuote(movingCatalog(), QuoteInput{Size: 40})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), snapshot.Totals.Base)
	assert.Equal(t, int64(2500), snapshot.Totals.GrandTotal)
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, LineBase, snapshot.Lines[0].Key)
	assert.Equal(t, "40 m²", snapshot.Lines[0].Meta)
}

func TestComputeQuote_FixedPriceAtThreshold(t *testing.T) {
	// The threshold is inclusive: exactly 50 m² still gets the fixed price.
	snapshot, err := ComputeQuote(movingCatalog(), QuoteInput{Size: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), snapshot.Totals.Base)
}

func TestComputeQuote_PerAreaAboveThreshold(t *testing.T) {
	snapshot, err := ComputeQuote(movingCatalog(), QuoteInput{Size: 80})
	require.NoError(t, err)

	assert.Equal(t, int64(4000), snapshot.Totals.Base)
	assert.Equal(t, int64(4000), snapshot.Totals.GrandTotal)
}

func TestComputeQuote_RejectsNonPositiveSize(t *testing.T) {
	_, err := ComputeQuote(movingCatalog(), QuoteInput{Size: 0})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = ComputeQuote(movingCatalog(), QuoteInput{Size: -5})
	require.Error(t, err)
}

func TestComputeQuote_TravelFeeOnlyAboveAllowance(t *testing.T) {
	// Both legs within the free allowance: no travel line at all.
	snapshot, err := ComputeQuote(movingCatalog(), QuoteInput{
		Size:       40,
		OutboundKm: 20,
		ReturnKm:   31,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), snapshot.Totals.Travel)
	require.Len(t, snapshot.Lines, 1)
}

func TestComputeQuote_TravelFeeChargesExcessPerLeg(t *testing.T) {
	// 51 km outbound charges 20 km, 10 km return charges nothing. The short
	// leg never offsets the long one.
	snapshot, err := ComputeQuote(movingCatalog(), QuoteInput{
		Size:       40,
		OutboundKm: 51,
		ReturnKm:   10,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(200), snapshot.Totals.Travel)
	require.Len(t, snapshot.Lines, 2)
	assert.Equal(t, LineTravel, snapshot.Lines[1].Key)
	assert.Equal(t, "Milersättning", snapshot.Lines[1].Label)
	assert.Equal(t, "20 km × 10 kr", snapshot.Lines[1].Meta)
	assert.Equal(t, int64(2700), snapshot.Totals.GrandTotal)
}

func TestComputeQuote_TravelFeeRoundsHalfUp(t *testing.T) {
	// 31.25 charged km at 10 kr = 312.5, rounds up to 313.
	snapshot, err := ComputeQuote(movingCatalog(), QuoteInput{
		Size:       40,
		OutboundKm: 62.25,
		ReturnKm:   0,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(313), snapshot.Totals.Travel)
}

func TestComputeQuote_NoTravelForCleaning(t *testing.T) {
	// Cleaning quotes ignore distances even when supplied.
	snapshot, err := ComputeQuote(DefaultCleaningCatalog(), QuoteInput{
		Size:       60,
		OutboundKm: 500,
		ReturnKm:   500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), snapshot.Totals.Travel)
	assert.Equal(t, int64(60*43), snapshot.Totals.GrandTotal)
}

func TestComputeQuote_ExtrasWithQuantity(t *testing.T) {
	snapshot, err := ComputeQuote(DefaultCleaningCatalog(), QuoteInput{
		Size: 40,
		Extras: map[string]int{
			ExtraBlinds:   3,
			ExtraBathroom: 1,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(600), snapshot.Totals.Extras)
	assert.Equal(t, int64(2750), snapshot.Totals.GrandTotal)

	// Extras are ordered by key: blinds before extra_bathroom.
	require.Len(t, snapshot.Lines, 3)
	assert.Equal(t, ExtraBlinds, snapshot.Lines[1].Key)
	assert.Equal(t, "3 × 100 kr", snapshot.Lines[1].Meta)
	assert.Equal(t, int64(300), snapshot.Lines[1].Amount)
	assert.Equal(t, ExtraBathroom, snapshot.Lines[2].Key)
	assert.Empty(t, snapshot.Lines[2].Meta)
}

func TestComputeQuote_ZeroQuantityExtraSkipped(t *testing.T) {
	snapshot, err := ComputeQuote(DefaultCleaningCatalog(), QuoteInput{
		Size:   40,
		Extras: map[string]int{ExtraBlinds: 0},
	})
	require.NoError(t, err)
	require.Len(t, snapshot.Lines, 1)
}

func TestComputeQuote_UnknownExtraRejected(t *testing.T) {
	_, err := ComputeQuote(DefaultCleaningCatalog(), QuoteInput{
		Size:   40,
		Extras: map[string]int{"helicopter": 1},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

func TestComputeQuote_NegativeQuantityRejected(t *testing.T) {
	_, err := ComputeQuote(DefaultCleaningCatalog(), QuoteInput{
		Size:   40,
		Extras: map[string]int{ExtraBlinds: -1},
	})
	require.Error(t, err)
}

func TestComputeQuote_GrandTotalEqualsLineSum(t *testing.T) {
	snapshot, err := ComputeQuote(movingCatalog(), QuoteInput{
		Size:       90,
		OutboundKm: 45,
		ReturnKm:   60,
		Extras: map[string]int{
			ExtraPackagingAllRooms: 1,
			ExtraMounting:          1,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, snapshot.Totals.GrandTotal, snapshot.SumLines())
}

func TestBillableKm_NeverNegative(t *testing.T) {
	assert.Equal(t, 0.0, BillableKm(0))
	assert.Equal(t, 0.0, BillableKm(31))
	assert.Equal(t, 0.0, BillableKm(15))
	assert.Equal(t, 1.0, BillableKm(32))
}

func TestSnapshot_WithDiscount(t *testing.T) {
	snapshot, err := ComputeQuote(movingCatalog(), QuoteInput{Size: 80})
	require.NoError(t, err)

	discounted := snapshot.WithDiscount("SUMMER24", 800, "20%")

	require.Len(t, discounted.Lines, len(snapshot.Lines)+1)
	last := discounted.Lines[len(discounted.Lines)-1]
	assert.Equal(t, LineDiscount, last.Key)
	assert.Equal(t, int64(-800), last.Amount)
	assert.Equal(t, "20%", last.Meta)

	assert.Equal(t, int64(800), discounted.Totals.Discount)
	assert.Equal(t, int64(3200), discounted.Totals.GrandTotal)
	assert.Equal(t, discounted.Totals.GrandTotal, discounted.SumLines())

	// The original snapshot is untouched.
	assert.Equal(t, int64(4000), snapshot.Totals.GrandTotal)
	require.Len(t, snapshot.Lines, 1)
}

func TestSnapshot_BaseBeforeDiscount(t *testing.T) {
	snapshot, err := ComputeQuote(movingCatalog(), QuoteInput{
		Size:       80,
		OutboundKm: 41,
		Extras:     map[string]int{ExtraMounting: 1},
	})
	require.NoError(t, err)

	// Base plus travel, extras excluded.
	assert.Equal(t, int64(4100), snapshot.BaseBeforeDiscount())
}
