package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/lead"
)

// ContactModel is the GORM model for the contacts table.
type ContactModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;size:200"`
	Email     string    `gorm:"not null;size:200"`
	Phone     string    `gorm:"size:50"`
	Subject   string    `gorm:"size:200"`
	Message   string    `gorm:"not null;size:5000"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ContactModel) TableName() string {
	return "contacts"
}

// BusinessLeadModel is the GORM model for the business_leads table.
type BusinessLeadModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyName string    `gorm:"not null;size:200"`
	OrgNumber   string    `gorm:"size:20"`
	ContactName string    `gorm:"size:200"`
	Email       string    `gorm:"size:200"`
	Phone       string    `gorm:"size:50"`
	Address     string    `gorm:"size:300"`
	Postcode    string    `gorm:"size:10"`
	City        string    `gorm:"size:100"`
	SizeKvm     int64     `gorm:"not null;default:0"`
	Frequency   string    `gorm:"size:50"`
	Message     string    `gorm:"size:5000"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BusinessLeadModel) TableName() string {
	return "business_leads"
}

// CallbackModel is the GORM model for the callbacks table.
type CallbackModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone       string    `gorm:"not null;size:50"`
	Name        string    `gorm:"size:200"`
	ServiceLine string    `gorm:"size:30"`
	Status      string    `gorm:"not null;size:20;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CallbackModel) TableName() string {
	return "callbacks"
}

// GormLeadRepository is the GORM-based implementation of lead.Repository.
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository.
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// CreateContact persists a contact-form submission.
func (r *GormLeadRepository) CreateContact(ctx context.Context, c *lead.Contact) error {
	model := &ContactModel{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   c.Subject,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// FindContact retrieves one contact submission by id.
func (r *GormLeadRepository) FindContact(ctx context.Context, id uuid.UUID) (*lead.Contact, error) {
	var model ContactModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("contact", id.String())
		}
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}
	return &lead.Contact{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Phone:     model.Phone,
		Subject:   model.Subject,
		Message:   model.Message,
		CreatedAt: model.CreatedAt,
	}, nil
}

// ListContacts retrieves contact submissions with pagination, newest first.
func (r *GormLeadRepository) ListContacts(ctx context.Context, page, limit int) ([]*lead.Contact, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ContactModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	var models []ContactModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}

	contacts := make([]*lead.Contact, len(models))
	for i, m := range models {
		contacts[i] = &lead.Contact{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Phone:     m.Phone,
			Subject:   m.Subject,
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
		}
	}
	return contacts, total, nil
}

// DeleteContact removes a contact submission.
func (r *GormLeadRepository) DeleteContact(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ContactModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("contact", id.String())
	}
	return nil
}

// CreateBusinessLead persists a business cleaning inquiry.
func (r *GormLeadRepository) CreateBusinessLead(ctx context.Context, b *lead.BusinessLead) error {
	model := &BusinessLeadModel{
		ID:          b.ID,
		CompanyName: b.CompanyName,
		OrgNumber:   b.OrgNumber,
		ContactName: b.ContactName,
		Email:       b.Email,
		Phone:       b.Phone,
		Address:     b.Address,
		Postcode:    b.Postcode,
		City:        b.City,
		SizeKvm:     b.SizeKvm,
		Frequency:   b.Frequency,
		Message:     b.Message,
		CreatedAt:   b.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create business lead: %w", err)
	}
	return nil
}

// FindBusinessLead retrieves one business inquiry by id.
func (r *GormLeadRepository) FindBusinessLead(ctx context.Context, id uuid.UUID) (*lead.BusinessLead, error) {
	var model BusinessLeadModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("business lead", id.String())
		}
		return nil, fmt.Errorf("failed to find business lead: %w", err)
	}
	return &lead.BusinessLead{
		ID:          model.ID,
		CompanyName: model.CompanyName,
		OrgNumber:   model.OrgNumber,
		ContactName: model.ContactName,
		Email:       model.Email,
		Phone:       model.Phone,
		Address:     model.Address,
		Postcode:    model.Postcode,
		City:        model.City,
		SizeKvm:     model.SizeKvm,
		Frequency:   model.Frequency,
		Message:     model.Message,
		CreatedAt:   model.CreatedAt,
	}, nil
}

// ListBusinessLeads retrieves business inquiries with pagination, newest first.
func (r *GormLeadRepository) ListBusinessLeads(ctx context.Context, page, limit int) ([]*lead.BusinessLead, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BusinessLeadModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count business leads: %w", err)
	}

	var models []BusinessLeadModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list business leads: %w", err)
	}

	leads := make([]*lead.BusinessLead, len(models))
	for i, m := range models {
		leads[i] = &lead.BusinessLead{
			ID:          m.ID,
			CompanyName: m.CompanyName,
			OrgNumber:   m.OrgNumber,
			ContactName: m.ContactName,
			Email:       m.Email,
			Phone:       m.Phone,
			Address:     m.Address,
			Postcode:    m.Postcode,
			City:        m.City,
			SizeKvm:     m.SizeKvm,
			Frequency:   m.Frequency,
			Message:     m.Message,
			CreatedAt:   m.CreatedAt,
		}
	}
	return leads, total, nil
}

// DeleteBusinessLead removes a business inquiry.
func (r *GormLeadRepository) DeleteBusinessLead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BusinessLeadModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete business lead: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("business lead", id.String())
	}
	return nil
}

// CreateCallback persists a callback request.
func (r *GormLeadRepository) CreateCallback(ctx context.Context, c *lead.Callback) error {
	model := &CallbackModel{
		ID:          c.ID,
		Phone:       c.Phone,
		Name:        c.Name,
		ServiceLine: string(c.ServiceLine),
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create callback: %w", err)
	}
	return nil
}

// FindCallback retrieves one callback request by id.
func (r *GormLeadRepository) FindCallback(ctx context.Context, id uuid.UUID) (*lead.Callback, error) {
	var model CallbackModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("callback", id.String())
		}
		return nil, fmt.Errorf("failed to find callback: %w", err)
	}
	return &lead.Callback{
		ID:          model.ID,
		Phone:       model.Phone,
		Name:        model.Name,
		ServiceLine: domain.ServiceLine(model.ServiceLine),
		Status:      lead.CallbackStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}, nil
}

// ListCallbacks retrieves callback requests with pagination, oldest first so
// the queue is worked in arrival order.
func (r *GormLeadRepository) ListCallbacks(ctx context.Context, page, limit int) ([]*lead.Callback, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&CallbackModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count callbacks: %w", err)
	}

	var models []CallbackModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list callbacks: %w", err)
	}

	callbacks := make([]*lead.Callback, len(models))
	for i, m := range models {
		callbacks[i] = &lead.Callback{
			ID:          m.ID,
			Phone:       m.Phone,
			Name:        m.Name,
			ServiceLine: domain.ServiceLine(m.ServiceLine),
			Status:      lead.CallbackStatus(m.Status),
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		}
	}
	return callbacks, total, nil
}

// UpdateCallback persists a status change on a callback request.
func (r *GormLeadRepository) UpdateCallback(ctx context.Context, c *lead.Callback) error {
	result := r.db.WithContext(ctx).
		Model(&CallbackModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"status":     string(c.Status),
			"updated_at": c.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update callback: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("callback", c.ID.String())
	}
	return nil
}

// DeleteCallback removes a callback request.
func (r *GormLeadRepository) DeleteCallback(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&CallbackModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete callback: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("callback", id.String())
	}
	return nil
}

var _ lead.Repository = (*GormLeadRepository)(nil)
