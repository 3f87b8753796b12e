package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/pricing"
)

// CatalogModel is the GORM model for the pricing_catalogs table. One row per
// service line holds the full tariff, extras serialized as jsonb.
type CatalogModel struct {
	ServiceLine         string          `gorm:"primaryKey;size:30"`
	PerAreaRate         int64           `gorm:"not null"`
	FixedPriceThreshold int64           `gorm:"not null"`
	FixedPrice          int64           `gorm:"not null"`
	TravelFeeRate       int64           `gorm:"not null"`
	ExtraServices       json.RawMessage `gorm:"type:jsonb;not null"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CatalogModel) TableName() string {
	return "pricing_catalogs"
}

// CatalogRepository stores the pricing tariff per service line.
type CatalogRepository interface {
	GetByLine(ctx context.Context, line domain.ServiceLine) (*pricing.Catalog, error)
	Upsert(ctx context.Context, c *pricing.Catalog) error
	SeedDefaults(ctx context.Context) error
}

// GormCatalogRepository is the GORM-based implementation of CatalogRepository.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// GetByLine retrieves the pricing catalog for one service line.
func (r *GormCatalogRepository) GetByLine(ctx context.Context, line domain.ServiceLine) (*pricing.Catalog, error) {
	var model CatalogModel
	err := r.db.WithContext(ctx).Where("service_line = ?", string(line)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("pricing catalog", string(line))
		}
		return nil, fmt.Errorf("failed to find pricing catalog: %w", err)
	}
	return toDomainCatalog(&model)
}

// Upsert writes the catalog for a service line, replacing any existing tariff.
func (r *GormCatalogRepository) Upsert(ctx context.Context, c *pricing.Catalog) error {
	model, err := toCatalogModel(c)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "service_line"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"per_area_rate", "fixed_price_threshold", "fixed_price",
			"travel_fee_rate", "extra_services", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert pricing catalog: %w", err)
	}
	return nil
}

// SeedDefaults inserts the default tariffs for any priced service line that
// has no catalog yet. Existing rows are left untouched.
func (r *GormCatalogRepository) SeedDefaults(ctx context.Context) error {
	defaults := []pricing.Catalog{
		pricing.DefaultMovingCatalog(),
		pricing.DefaultCleaningCatalog(),
	}
	for _, c := range defaults {
		model, err := toCatalogModel(&c)
		if err != nil {
			return err
		}
		err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "service_line"}},
			DoNothing: true,
		}).Create(model).Error
		if err != nil {
			return fmt.Errorf("failed to seed pricing catalog for %s: %w", c.ServiceLine, err)
		}
	}
	return nil
}

func toCatalogModel(c *pricing.Catalog) (*CatalogModel, error) {
	extrasJSON, err := json.Marshal(c.ExtraServices)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extra services: %w", err)
	}
	now := time.Now()
	return &CatalogModel{
		ServiceLine:         string(c.ServiceLine),
		PerAreaRate:         c.PerAreaRate,
		FixedPriceThreshold: c.FixedPriceThreshold,
		FixedPrice:          c.FixedPrice,
		TravelFeeRate:       c.TravelFeeRate,
		ExtraServices:       extrasJSON,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

func toDomainCatalog(m *CatalogModel) (*pricing.Catalog, error) {
	line, err := domain.ParseServiceLine(m.ServiceLine)
	if err != nil {
		return nil, err
	}
	var extras map[string]pricing.ExtraPrice
	if err := json.Unmarshal(m.ExtraServices, &extras); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extra services: %w", err)
	}
	return &pricing.Catalog{
		ServiceLine:         line,
		PerAreaRate:         m.PerAreaRate,
		FixedPriceThreshold: m.FixedPriceThreshold,
		FixedPrice:          m.FixedPrice,
		TravelFeeRate:       m.TravelFeeRate,
		ExtraServices:       extras,
	}, nil
}
