package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/pricing"
	"github.com/nordstad/booking-backend/internal/repository"
)

// CatalogService exposes the pricing catalogs: read for the public quote
// flow, write for admins.
type CatalogService struct {
	repo   repository.CatalogRepository
	logger *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repository.CatalogRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// Get returns the catalog for one service line.
func (s *CatalogService) Get(ctx context.Context, line domain.ServiceLine) (*pricing.Catalog, error) {
	if !line.IsValid() {
		return nil, domain.NewValidationError("invalid service line")
	}
	return s.repo.GetByLine(ctx, line)
}

// Update replaces the tariff for a service line. Only priced lines carry a
// catalog; construction cleaning is quoted manually by the office.
func (s *CatalogService) Update(ctx context.Context, c *pricing.Catalog) error {
	if !c.ServiceLine.IsValid() {
		return domain.NewValidationError("invalid service line")
	}
	priced := false
	for _, line := range domain.PricedLines() {
		if line == c.ServiceLine {
			priced = true
			break
		}
	}
	if !priced {
		return domain.NewValidationError("service line has no catalog pricing")
	}
	if c.PerAreaRate < 0 || c.FixedPrice < 0 || c.TravelFeeRate < 0 || c.FixedPriceThreshold < 0 {
		return domain.NewValidationError("tariff values cannot be negative")
	}
	for key, extra := range c.ExtraServices {
		if extra.UnitPrice < 0 {
			return domain.NewValidationError("extra service price cannot be negative: " + key)
		}
	}

	if err := s.repo.Upsert(ctx, c); err != nil {
		return err
	}
	s.logger.Info("pricing catalog updated", zap.String("service_line", string(c.ServiceLine)))
	return nil
}

// Seed inserts the default tariffs for any priced line missing a catalog.
func (s *CatalogService) Seed(ctx context.Context) error {
	return s.repo.SeedDefaults(ctx)
}
