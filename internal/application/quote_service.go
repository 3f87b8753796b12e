// Package application orchestrates the domain: it wires repositories, the
// distance resolver and the event stream into the use cases the handlers call.
package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/distance"
	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/pricing"
	"github.com/nordstad/booking-backend/internal/repository"
)

// QuoteRequest carries the customer inputs for a price quote.
type QuoteRequest struct {
	Size         int64
	Extras       map[string]int
	FromPostcode string
	ToPostcode   string // moving only
	DiscountCode string // optional, validated against the computed base
}

// QuoteService computes price quotes from the stored catalogs and resolved
// road distances.
type QuoteService struct {
	catalogs      repository.CatalogRepository
	discounts     DiscountValidator
	resolver      distance.Resolver
	depotPostcode string
	logger        *zap.Logger
}

// DiscountValidator is the slice of the discount service quotes need.
type DiscountValidator interface {
	ValidateForOrder(ctx context.Context, code string, orderAmount int64, line domain.ServiceLine) (*DiscountOutcome, error)
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(
	catalogs repository.CatalogRepository,
	discounts DiscountValidator,
	resolver distance.Resolver,
	depotPostcode string,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		catalogs:      catalogs,
		discounts:     discounts,
		resolver:      resolver,
		depotPostcode: depotPostcode,
		logger:        logger,
	}
}

// Quote computes a priced snapshot for a service line. Distances are resolved
// only for moving; other lines never incur travel fees. If a discount code is
// supplied and valid it is folded into the snapshot; an invalid code fails
// the whole quote with its rejection reason.
func (s *QuoteService) Quote(ctx context.Context, line domain.ServiceLine, req QuoteRequest) (pricing.Snapshot, error) {
	if !line.IsValid() {
		return pricing.Snapshot{}, domain.NewValidationError("invalid service line")
	}

	catalog, err := s.catalogs.GetByLine(ctx, line)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			s.logger.Error("pricing catalog missing", zap.String("service_line", string(line)))
			return pricing.Snapshot{}, domain.NewConfigurationError("pricing is not configured for this service")
		}
		return pricing.Snapshot{}, err
	}

	in := pricing.QuoteInput{Size: req.Size, Extras: req.Extras}

	if line == domain.ServiceMoving {
		// One memoized resolver per request: the outbound and depot legs can
		// share a cached lookup when postcodes coincide.
		resolver := distance.NewMemo(s.resolver)

		outbound, err := resolver.Resolve(ctx, req.FromPostcode, req.ToPostcode)
		if err != nil {
			return pricing.Snapshot{}, err
		}
		depotLeg, err := resolver.Resolve(ctx, s.depotPostcode, req.FromPostcode)
		if err != nil {
			return pricing.Snapshot{}, err
		}
		in.OutboundKm = outbound
		in.ReturnKm = depotLeg
	}

	snapshot, err := pricing.ComputeQuote(*catalog, in)
	if err != nil {
		return pricing.Snapshot{}, err
	}

	if req.DiscountCode != "" {
		outcome, err := s.discounts.ValidateForOrder(ctx, req.DiscountCode, snapshot.BaseBeforeDiscount(), line)
		if err != nil {
			return pricing.Snapshot{}, err
		}
		snapshot = snapshot.WithDiscount(outcome.Code.Code, outcome.Amount, outcome.Code.LineMeta())
	}

	return snapshot, nil
}
