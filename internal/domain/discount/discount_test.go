package discount

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordstad/booking-backend/internal/domain"
)

func activeCode(t Type, value int64) *Code {
	return &Code{
		ID:       uuid.New(),
		Code:     "TESTCODE",
		Type:     t,
		Value:    value,
		IsActive: true,
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrInt64(v int64) *int64        { return &v }

func TestNormalize(t *testing.T) {
	assert.Equal(t, "SUMMER24", Normalize("  summer24 "))
	assert.Equal(t, "", Normalize("   "))
}

func TestValidate_ActivePercentage(t *testing.T) {
	c := activeCode(TypePercentage, 20)
	v := c.Validate(time.Now(), 1000, domain.ServiceMoving)

	require.True(t, v.Valid)
	assert.Equal(t, int64(200), v.Amount)
}

func TestValidate_Inactive(t *testing.T) {
	c := activeCode(TypePercentage, 20)
	c.IsActive = false

	v := c.Validate(time.Now(), 1000, domain.ServiceMoving)
	require.False(t, v.Valid)
	assert.Equal(t, ReasonCodeInactive, v.Reason)
}

func TestValidate_NotYetValid(t *testing.T) {
	c := activeCode(TypePercentage, 20)
	c.ValidFrom = ptrTime(time.Now().Add(24 * time.Hour))

	v := c.Validate(time.Now(), 1000, domain.ServiceMoving)
	require.False(t, v.Valid)
	assert.Equal(t, ReasonNotYetValid, v.Reason)
}

func TestValidate_Expired(t *testing.T) {
	c := activeCode(TypePercentage, 20)
	c.ValidUntil = ptrTime(time.Now().Add(-time.Hour))

	v := c.Validate(time.Now(), 1000, domain.ServiceMoving)
	require.False(t, v.Valid)
	assert.Equal(t, ReasonExpired, v.Reason)
}

func TestValidate_UsageLimitReached(t *testing.T) {
	c := activeCode(TypePercentage, 20)
	c.MaxUses = ptrInt64(1)
	c.UsedCount = 1

	v := c.Validate(time.Now(), 1000, domain.ServiceMoving)
	require.False(t, v.Valid)
	assert.Equal(t, ReasonUsageLimitReached, v.Reason)
}

func TestValidate_BelowMinimumPurchase(t *testing.T) {
	c := activeCode(TypePercentage, 20)
	c.MinPurchaseAmount = ptrInt64(2000)

	v := c.Validate(time.Now(), 1999, domain.ServiceMoving)
	require.False(t, v.Valid)
	assert.Equal(t, ReasonBelowMinimumPurchase, v.Reason)

	v = c.Validate(time.Now(), 2000, domain.ServiceMoving)
	assert.True(t, v.Valid)
}

func TestValidate_ServiceNotEligible(t *testing.T) {
	c := activeCode(TypePercentage, 20)
	c.ApplicableServices = []domain.ServiceLine{domain.ServiceCleaning}

	v := c.Validate(time.Now(), 1000, domain.ServiceMoving)
	require.False(t, v.Valid)
	assert.Equal(t, ReasonServiceNotEligible, v.Reason)

	v = c.Validate(time.Now(), 1000, domain.ServiceCleaning)
	assert.True(t, v.Valid)
}

func TestValidate_EmptyServicesMeansAll(t *testing.T) {
	c := activeCode(TypeFixed, 100)
	for _, line := range []domain.ServiceLine{domain.ServiceMoving, domain.ServiceCleaning, domain.ServiceConstructionCleaning} {
		v := c.Validate(time.Now(), 1000, line)
		assert.True(t, v.Valid, "line %s", line)
	}
}

func TestValidate_ChecksRunInOrder(t *testing.T) {
	// A code that fails several constraints reports the first one.
	c := activeCode(TypePercentage, 20)
	c.IsActive = false
	c.ValidUntil = ptrTime(time.Now().Add(-time.Hour))
	c.MaxUses = ptrInt64(1)
	c.UsedCount = 5

	v := c.Validate(time.Now(), 1000, domain.ServiceMoving)
	assert.Equal(t, ReasonCodeInactive, v.Reason)
}

func TestAmountFor_PercentageRoundsHalfUp(t *testing.T) {
	c := activeCode(TypePercentage, 15)
	// 15% of 1005 = 150.75, rounds to 151.
	assert.Equal(t, int64(151), c.AmountFor(1005))

	c.Value = 20
	assert.Equal(t, int64(200), c.AmountFor(1000))
}

func TestAmountFor_FixedCappedAtOrderAmount(t *testing.T) {
	c := activeCode(TypeFixed, 500)
	assert.Equal(t, int64(500), c.AmountFor(1000))
	assert.Equal(t, int64(300), c.AmountFor(300))
}

func TestLineMeta(t *testing.T) {
	assert.Equal(t, "20%", activeCode(TypePercentage, 20).LineMeta())
	assert.Equal(t, "", activeCode(TypeFixed, 500).LineMeta())
}

func TestValidateNew(t *testing.T) {
	assert.NoError(t, ValidateNew("SUMMER24", TypePercentage, 20))
	assert.Error(t, ValidateNew("", TypePercentage, 20))
	assert.Error(t, ValidateNew("X", "bogus", 20))
	assert.Error(t, ValidateNew("X", TypeFixed, -1))
	assert.Error(t, ValidateNew("X", TypePercentage, 101))
	assert.NoError(t, ValidateNew("X", TypeFixed, 99999))
}
