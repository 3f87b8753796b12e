package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/discount"
)

// DiscountCodeModel is the GORM model for the discount_codes table.
type DiscountCodeModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code               string          `gorm:"not null;size:50;uniqueIndex"`
	Type               string          `gorm:"not null;size:20"`
	Value              int64           `gorm:"not null"`
	IsActive           bool            `gorm:"not null;default:true"`
	ValidFrom          *time.Time      `gorm:""`
	ValidUntil         *time.Time      `gorm:""`
	MaxUses            *int64          `gorm:""`
	UsedCount          int64           `gorm:"not null;default:0"`
	MinPurchaseAmount  *int64          `gorm:""`
	ApplicableServices json.RawMessage `gorm:"type:jsonb"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (DiscountCodeModel) TableName() string {
	return "discount_codes"
}

// DiscountRepository stores discount codes and their usage counters.
type DiscountRepository interface {
	FindByCode(ctx context.Context, code string) (*discount.Code, error)
	FindByID(ctx context.Context, id uuid.UUID) (*discount.Code, error)
	List(ctx context.Context, page, limit int) ([]*discount.Code, int64, error)
	Create(ctx context.Context, c *discount.Code) error
	Update(ctx context.Context, c *discount.Code) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

// GormDiscountRepository is the GORM-based implementation of DiscountRepository.
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GormDiscountRepository.
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// FindByCode retrieves a discount code by its normalized code string.
func (r *GormDiscountRepository) FindByCode(ctx context.Context, code string) (*discount.Code, error) {
	var model DiscountCodeModel
	err := r.db.WithContext(ctx).Where("code = ?", discount.Normalize(code)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("discount code", code)
		}
		return nil, fmt.Errorf("failed to find discount code: %w", err)
	}
	return toDomainDiscount(&model)
}

// FindByID retrieves a discount code by its unique identifier.
func (r *GormDiscountRepository) FindByID(ctx context.Context, id uuid.UUID) (*discount.Code, error) {
	var model DiscountCodeModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("discount code", id.String())
		}
		return nil, fmt.Errorf("failed to find discount code: %w", err)
	}
	return toDomainDiscount(&model)
}

// List retrieves discount codes with pagination, newest first.
func (r *GormDiscountRepository) List(ctx context.Context, page, limit int) ([]*discount.Code, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&DiscountCodeModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count discount codes: %w", err)
	}

	var models []DiscountCodeModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list discount codes: %w", err)
	}

	codes := make([]*discount.Code, len(models))
	for i, m := range models {
		c, err := toDomainDiscount(&m)
		if err != nil {
			return nil, 0, err
		}
		codes[i] = c
	}
	return codes, total, nil
}

// Create persists a new discount code. A duplicate code string is a conflict.
func (r *GormDiscountRepository) Create(ctx context.Context, c *discount.Code) error {
	model, err := toDiscountModel(c)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(fmt.Sprintf("discount code %s already exists", c.Code))
		}
		return fmt.Errorf("failed to create discount code: %w", err)
	}
	return nil
}

// Update persists changes to a discount code. The usage counter is excluded:
// it only moves through IncrementUsage.
func (r *GormDiscountRepository) Update(ctx context.Context, c *discount.Code) error {
	model, err := toDiscountModel(c)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DiscountCodeModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"code":                model.Code,
			"type":                model.Type,
			"value":               model.Value,
			"is_active":           model.IsActive,
			"valid_from":          model.ValidFrom,
			"valid_until":         model.ValidUntil,
			"max_uses":            model.MaxUses,
			"min_purchase_amount": model.MinPurchaseAmount,
			"applicable_services": model.ApplicableServices,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.NewConflictError(fmt.Sprintf("discount code %s already exists", c.Code))
		}
		return fmt.Errorf("failed to update discount code: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("discount code", model.ID.String())
	}
	return nil
}

// Delete removes a discount code permanently.
func (r *GormDiscountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DiscountCodeModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete discount code: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("discount code", id.String())
	}
	return nil
}

// IncrementUsage bumps the usage counter atomically in the database, so
// concurrent redemptions never lose an increment.
func (r *GormDiscountRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&DiscountCodeModel{}).
		Where("id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment discount usage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("discount code", id.String())
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}

func toDiscountModel(c *discount.Code) (*DiscountCodeModel, error) {
	var servicesJSON json.RawMessage
	if len(c.ApplicableServices) > 0 {
		data, err := json.Marshal(c.ApplicableServices)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal applicable services: %w", err)
		}
		servicesJSON = data
	}
	return &DiscountCodeModel{
		ID:                 c.ID,
		Code:               c.Code,
		Type:               string(c.Type),
		Value:              c.Value,
		IsActive:           c.IsActive,
		ValidFrom:          c.ValidFrom,
		ValidUntil:         c.ValidUntil,
		MaxUses:            c.MaxUses,
		UsedCount:          c.UsedCount,
		MinPurchaseAmount:  c.MinPurchaseAmount,
		ApplicableServices: servicesJSON,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}, nil
}

func toDomainDiscount(m *DiscountCodeModel) (*discount.Code, error) {
	var services []domain.ServiceLine
	if len(m.ApplicableServices) > 0 {
		if err := json.Unmarshal(m.ApplicableServices, &services); err != nil {
			return nil, fmt.Errorf("failed to unmarshal applicable services: %w", err)
		}
	}
	return &discount.Code{
		ID:                 m.ID,
		Code:               m.Code,
		Type:               discount.Type(m.Type),
		Value:              m.Value,
		IsActive:           m.IsActive,
		ValidFrom:          m.ValidFrom,
		ValidUntil:         m.ValidUntil,
		MaxUses:            m.MaxUses,
		UsedCount:          m.UsedCount,
		MinPurchaseAmount:  m.MinPurchaseAmount,
		ApplicableServices: services,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}, nil
}
