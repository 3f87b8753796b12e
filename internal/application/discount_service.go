package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/discount"
	"github.com/nordstad/booking-backend/internal/repository"
)

// DiscountOutcome is a successful validation: the resolved code and the
// amount it deducts from the order.
type DiscountOutcome struct {
	Code   *discount.Code
	Amount int64
}

// DiscountService validates discount codes against orders and carries the
// admin CRUD surface.
type DiscountService struct {
	repo   repository.DiscountRepository
	logger *zap.Logger
}

// NewDiscountService creates a new DiscountService.
func NewDiscountService(repo repository.DiscountRepository, logger *zap.Logger) *DiscountService {
	return &DiscountService{repo: repo, logger: logger}
}

// ValidateForOrder looks a code up and runs the full constraint chain against
// an order amount and service line. Every failure comes back as a discount
// rejection carrying its machine-readable reason.
func (s *DiscountService) ValidateForOrder(ctx context.Context, code string, orderAmount int64, line domain.ServiceLine) (*DiscountOutcome, error) {
	c, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.NewDiscountRejectedError(discount.ReasonCodeNotFound, "discount code not found")
		}
		return nil, err
	}

	v := c.Validate(time.Now(), orderAmount, line)
	if !v.Valid {
		return nil, domain.NewDiscountRejectedError(v.Reason, rejectionMessage(v.Reason))
	}
	return &DiscountOutcome{Code: c, Amount: v.Amount}, nil
}

// RecordUsage bumps the usage counter after a booking that redeemed the code
// was persisted. Called exactly once per successful booking.
func (s *DiscountService) RecordUsage(ctx context.Context, id uuid.UUID) error {
	return s.repo.IncrementUsage(ctx, id)
}

// CreateCodeParams holds the admin inputs for a new discount code.
type CreateCodeParams struct {
	Code               string
	Type               discount.Type
	Value              int64
	IsActive           bool
	ValidFrom          *time.Time
	ValidUntil         *time.Time
	MaxUses            *int64
	MinPurchaseAmount  *int64
	ApplicableServices []domain.ServiceLine
}

// Create registers a new discount code.
func (s *DiscountService) Create(ctx context.Context, p CreateCodeParams) (*discount.Code, error) {
	if err := discount.ValidateNew(p.Code, p.Type, p.Value); err != nil {
		return nil, err
	}
	for _, line := range p.ApplicableServices {
		if !line.IsValid() {
			return nil, domain.NewValidationError("invalid service line in applicable services")
		}
	}

	now := time.Now().UTC()
	c := &discount.Code{
		ID:                 uuid.New(),
		Code:               discount.Normalize(p.Code),
		Type:               p.Type,
		Value:              p.Value,
		IsActive:           p.IsActive,
		ValidFrom:          p.ValidFrom,
		ValidUntil:         p.ValidUntil,
		MaxUses:            p.MaxUses,
		MinPurchaseAmount:  p.MinPurchaseAmount,
		ApplicableServices: p.ApplicableServices,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("discount code created", zap.String("code", c.Code))
	return c, nil
}

// Update rewrites a code's constraints. The usage counter is never touched
// through this path.
func (s *DiscountService) Update(ctx context.Context, id uuid.UUID, p CreateCodeParams) (*discount.Code, error) {
	if err := discount.ValidateNew(p.Code, p.Type, p.Value); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Code = discount.Normalize(p.Code)
	c.Type = p.Type
	c.Value = p.Value
	c.IsActive = p.IsActive
	c.ValidFrom = p.ValidFrom
	c.ValidUntil = p.ValidUntil
	c.MaxUses = p.MaxUses
	c.MinPurchaseAmount = p.MinPurchaseAmount
	c.ApplicableServices = p.ApplicableServices
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a discount code.
func (s *DiscountService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// List returns discount codes with pagination.
func (s *DiscountService) List(ctx context.Context, page, limit int) (domain.PaginatedResult[*discount.Code], error) {
	page, limit = normalizePagination(page, limit)
	codes, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return domain.PaginatedResult[*discount.Code]{}, err
	}
	return domain.NewPaginatedResult(codes, total, page, limit), nil
}

// Get returns one discount code by id.
func (s *DiscountService) Get(ctx context.Context, id uuid.UUID) (*discount.Code, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByCode returns one discount code by its normalized code.
func (s *DiscountService) GetByCode(ctx context.Context, code string) (*discount.Code, error) {
	return s.repo.FindByCode(ctx, discount.Normalize(code))
}

func rejectionMessage(reason string) string {
	switch reason {
	case discount.ReasonCodeInactive:
		return "discount code is not active"
	case discount.ReasonNotYetValid:
		return "discount code is not valid yet"
	case discount.ReasonExpired:
		return "discount code has expired"
	case discount.ReasonUsageLimitReached:
		return "discount code has reached its usage limit"
	case discount.ReasonBelowMinimumPurchase:
		return "order amount is below the code's minimum"
	case discount.ReasonServiceNotEligible:
		return "discount code does not apply to this service"
	default:
		return "discount code was rejected"
	}
}

func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
