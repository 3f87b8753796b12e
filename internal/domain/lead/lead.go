// Package lead holds the inbound sales contacts that are not bookings yet:
// contact-form messages, business cleaning inquiries and phone callback
// requests.
package lead

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nordstad/booking-backend/internal/domain"
)

// Contact is a plain contact-form submission.
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewContact validates and creates a contact-form submission.
func NewContact(name, email, phone, subject, message string) (*Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if email == "" {
		return nil, domain.NewValidationError("email is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, domain.NewValidationError("message is required")
	}
	return &Contact{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(phone),
		Subject:   strings.TrimSpace(subject),
		Message:   strings.TrimSpace(message),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// BusinessLead is an inquiry from a company asking for recurring commercial
// cleaning, priced manually by the office rather than by the catalog.
type BusinessLead struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	OrgNumber   string    `json:"org_number,omitempty"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address,omitempty"`
	Postcode    string    `json:"postcode,omitempty"`
	City        string    `json:"city,omitempty"`
	SizeKvm     int64     `json:"size_kvm,omitempty"`
	Frequency   string    `json:"frequency,omitempty"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BusinessLeadParams holds the inputs for a new business inquiry.
type BusinessLeadParams struct {
	CompanyName string
	OrgNumber   string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Postcode    string
	City        string
	SizeKvm     int64
	Frequency   string
	Message     string
}

// NewBusinessLead validates and creates a business cleaning inquiry.
func NewBusinessLead(p BusinessLeadParams) (*BusinessLead, error) {
	companyName := strings.TrimSpace(p.CompanyName)
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if companyName == "" {
		return nil, domain.NewValidationError("company name is required")
	}
	if email == "" && strings.TrimSpace(p.Phone) == "" {
		return nil, domain.NewValidationError("email or phone is required")
	}
	if p.SizeKvm < 0 {
		return nil, domain.NewValidationError("size cannot be negative")
	}
	return &BusinessLead{
		ID:          uuid.New(),
		CompanyName: companyName,
		OrgNumber:   strings.TrimSpace(p.OrgNumber),
		ContactName: strings.TrimSpace(p.ContactName),
		Email:       email,
		Phone:       strings.TrimSpace(p.Phone),
		Address:     strings.TrimSpace(p.Address),
		Postcode:    strings.TrimSpace(p.Postcode),
		City:        strings.TrimSpace(p.City),
		SizeKvm:     p.SizeKvm,
		Frequency:   strings.TrimSpace(p.Frequency),
		Message:     strings.TrimSpace(p.Message),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// CallbackStatus tracks how far the office has come with a callback request.
type CallbackStatus string

const (
	// CallbackNew means nobody has looked at the request yet.
	CallbackNew CallbackStatus = "new"
	// CallbackScheduled means an agent has committed to calling.
	CallbackScheduled CallbackStatus = "scheduled"
	// CallbackDone means the call happened.
	CallbackDone CallbackStatus = "done"
)

// IsValid returns true if the callback status is recognized.
func (s CallbackStatus) IsValid() bool {
	return s == CallbackNew || s == CallbackScheduled || s == CallbackDone
}

// Callback is a "call me back" request: a phone number, optionally the service
// the caller is interested in, and a status the office moves forward as they
// work the queue.
type Callback struct {
	ID          uuid.UUID          `json:"id"`
	Phone       string             `json:"phone"`
	Name        string             `json:"name,omitempty"`
	ServiceLine domain.ServiceLine `json:"service_line,omitempty"`
	Status      CallbackStatus     `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// NewCallback validates and creates a callback request. The service line is
// optional; when given it must be a known line.
func NewCallback(phone, name string, line domain.ServiceLine) (*Callback, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, domain.NewValidationError("phone is required")
	}
	if line != "" && !line.IsValid() {
		return nil, domain.NewValidationError("invalid service line")
	}
	now := time.Now().UTC()
	return &Callback{
		ID:          uuid.New(),
		Phone:       phone,
		Name:        strings.TrimSpace(name),
		ServiceLine: line,
		Status:      CallbackNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetStatus moves the callback to a new status.
func (c *Callback) SetStatus(s CallbackStatus) error {
	if !s.IsValid() {
		return domain.NewValidationError("invalid callback status")
	}
	c.Status = s
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Repository stores all three lead shapes.
type Repository interface {
	CreateContact(ctx context.Context, c *Contact) error
	FindContact(ctx context.Context, id uuid.UUID) (*Contact, error)
	ListContacts(ctx context.Context, page, limit int) ([]*Contact, int64, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error

	CreateBusinessLead(ctx context.Context, b *BusinessLead) error
	FindBusinessLead(ctx context.Context, id uuid.UUID) (*BusinessLead, error)
	ListBusinessLeads(ctx context.Context, page, limit int) ([]*BusinessLead, int64, error)
	DeleteBusinessLead(ctx context.Context, id uuid.UUID) error

	CreateCallback(ctx context.Context, c *Callback) error
	FindCallback(ctx context.Context, id uuid.UUID) (*Callback, error)
	ListCallbacks(ctx context.Context, page, limit int) ([]*Callback, int64, error)
	UpdateCallback(ctx context.Context, c *Callback) error
	DeleteCallback(ctx context.Context, id uuid.UUID) error
}
