package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/admin"
)

// AdminModel is the GORM model for the admins table.
type AdminModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"not null;size:100;uniqueIndex"`
	PasswordHash string    `gorm:"not null;size:100"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (AdminModel) TableName() string {
	return "admins"
}

// GormAdminRepository is the GORM-based implementation of admin.Repository.
type GormAdminRepository struct {
	db *gorm.DB
}

// NewGormAdminRepository creates a new GormAdminRepository.
func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// FindByUsername retrieves an admin account by exact username.
func (r *GormAdminRepository) FindByUsername(ctx context.Context, username string) (*admin.Admin, error) {
	var model AdminModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("admin", username)
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return &admin.Admin{
		ID:           model.ID,
		Username:     model.Username,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
	}, nil
}

// Create persists a new admin account. A duplicate username is a conflict.
func (r *GormAdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	model := &AdminModel{
		ID:           a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(fmt.Sprintf("username %s is taken", a.Username))
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

var _ admin.Repository = (*GormAdminRepository)(nil)
