package discount

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nordstad/booking-backend/internal/domain"
)

// Type is the discount calculation strategy of a code.
type Type string

const (
	// TypePercentage deducts a percentage of the order amount.
	TypePercentage Type = "percentage"
	// TypeFixed deducts a fixed SEK amount, capped at the order amount.
	TypeFixed Type = "fixed"
)

// IsValid returns true if the discount type is recognized.
func (t Type) IsValid() bool {
	return t == TypePercentage || t == TypeFixed
}

// Reason codes for rejected discount validations. Checks run in this order
// and short-circuit on the first failure.
const (
	ReasonCodeNotFound         = "code_not_found"
	ReasonCodeInactive         = "code_inactive"
	ReasonNotYetValid          = "not_yet_valid"
	ReasonExpired              = "expired"
	ReasonUsageLimitReached    = "usage_limit_reached"
	ReasonBelowMinimumPurchase = "below_minimum_purchase"
	ReasonServiceNotEligible   = "service_not_eligible"
)

// Code is a discount code with its constraints. Codes are stored upper-cased
// and compared case-insensitively.
type Code struct {
	ID                 uuid.UUID            `json:"id"`
	Code               string               `json:"code"`
	Type               Type                 `json:"type"`
	Value              int64                `json:"value"` // percent (0-100) or SEK
	IsActive           bool                 `json:"is_active"`
	ValidFrom          *time.Time           `json:"valid_from,omitempty"`
	ValidUntil         *time.Time           `json:"valid_until,omitempty"`
	MaxUses            *int64               `json:"max_uses,omitempty"`
	UsedCount          int64                `json:"used_count"`
	MinPurchaseAmount  *int64               `json:"min_purchase_amount,omitempty"`
	ApplicableServices []domain.ServiceLine `json:"applicable_services,omitempty"` // empty = all
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// Normalize upper-cases and trims a raw user-supplied code.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Validation is the outcome of validating a code against an order.
type Validation struct {
	Valid  bool
	Reason string
	Amount int64
}

// Validate runs the constraint checks against an order amount and service
// line, in fixed order, short-circuiting on the first failure. The existence
// check (ReasonCodeNotFound) is the caller's lookup concern.
func (c *Code) Validate(now time.Time, orderAmount int64, line domain.ServiceLine) Validation {
	if !c.IsActive {
		return Validation{Reason: ReasonCodeInactive}
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return Validation{Reason: ReasonNotYetValid}
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return Validation{Reason: ReasonExpired}
	}
	if c.MaxUses != nil && c.UsedCount >= *c.MaxUses {
		return Validation{Reason: ReasonUsageLimitReached}
	}
	if c.MinPurchaseAmount != nil && orderAmount < *c.MinPurchaseAmount {
		return Validation{Reason: ReasonBelowMinimumPurchase}
	}
	if len(c.ApplicableServices) > 0 && !c.appliesTo(line) {
		return Validation{Reason: ReasonServiceNotEligible}
	}
	return Validation{Valid: true, Amount: c.AmountFor(orderAmount)}
}

// AmountFor computes the discount amount for an order. A fixed discount never
// exceeds the order amount, so totals cannot go negative.
func (c *Code) AmountFor(orderAmount int64) int64 {
	switch c.Type {
	case TypePercentage:
		return int64(math.Floor(float64(orderAmount)*float64(c.Value)/100 + 0.5))
	case TypeFixed:
		if c.Value > orderAmount {
			return orderAmount
		}
		return c.Value
	default:
		return 0
	}
}

// LineMeta returns the display annotation for the discount line, e.g. "20%".
func (c *Code) LineMeta() string {
	if c.Type == TypePercentage {
		return fmt.Sprintf("%d%%", c.Value)
	}
	return ""
}

func (c *Code) appliesTo(line domain.ServiceLine) bool {
	for _, s := range c.ApplicableServices {
		if s == line {
			return true
		}
	}
	return false
}

// ValidateNew checks the constraints of a code being created by an admin.
func ValidateNew(code string, t Type, value int64) error {
	if Normalize(code) == "" {
		return domain.NewValidationError("code is required")
	}
	if !t.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid discount type: %s", t))
	}
	if value < 0 {
		return domain.NewValidationError("value cannot be negative")
	}
	if t == TypePercentage && value > 100 {
		return domain.NewValidationError("percentage value must be between 0 and 100")
	}
	return nil
}
