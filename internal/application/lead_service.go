package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/lead"
	"github.com/nordstad/booking-backend/internal/notify"
)

// LeadService handles the inbound forms that are not bookings: contact
// messages, business cleaning inquiries and callback requests.
type LeadService struct {
	repo     lead.Repository
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewLeadService creates a new LeadService.
func NewLeadService(repo lead.Repository, notifier notify.Notifier, logger *zap.Logger) *LeadService {
	return &LeadService{repo: repo, notifier: notifier, logger: logger}
}

// SubmitContact stores a contact-form message.
func (s *LeadService) SubmitContact(ctx context.Context, name, email, phone, subject, message string) (*lead.Contact, error) {
	c, err := lead.NewContact(name, email, phone, subject, message)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateContact(ctx, c); err != nil {
		return nil, err
	}
	s.notifier.Publish(ctx, notify.EventLeadReceived, map[string]interface{}{
		"kind": "contact", "id": c.ID.String(), "email": c.Email,
	})
	return c, nil
}

// ListContacts returns contact messages with pagination.
func (s *LeadService) ListContacts(ctx context.Context, page, limit int) (domain.PaginatedResult[*lead.Contact], error) {
	page, limit = normalizePagination(page, limit)
	contacts, total, err := s.repo.ListContacts(ctx, page, limit)
	if err != nil {
		return domain.PaginatedResult[*lead.Contact]{}, err
	}
	return domain.NewPaginatedResult(contacts, total, page, limit), nil
}

// GetContact returns one contact message by id.
func (s *LeadService) GetContact(ctx context.Context, id uuid.UUID) (*lead.Contact, error) {
	return s.repo.FindContact(ctx, id)
}

// DeleteContact removes a contact message.
func (s *LeadService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteContact(ctx, id)
}

// SubmitBusinessLead stores a business cleaning inquiry.
func (s *LeadService) SubmitBusinessLead(ctx context.Context, p lead.BusinessLeadParams) (*lead.BusinessLead, error) {
	b, err := lead.NewBusinessLead(p)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateBusinessLead(ctx, b); err != nil {
		return nil, err
	}
	s.notifier.Publish(ctx, notify.EventLeadReceived, map[string]interface{}{
		"kind": "business", "id": b.ID.String(), "company": b.CompanyName,
	})
	return b, nil
}

// ListBusinessLeads returns business inquiries with pagination.
func (s *LeadService) ListBusinessLeads(ctx context.Context, page, limit int) (domain.PaginatedResult[*lead.BusinessLead], error) {
	page, limit = normalizePagination(page, limit)
	leads, total, err := s.repo.ListBusinessLeads(ctx, page, limit)
	if err != nil {
		return domain.PaginatedResult[*lead.BusinessLead]{}, err
	}
	return domain.NewPaginatedResult(leads, total, page, limit), nil
}

// GetBusinessLead returns one business inquiry by id.
func (s *LeadService) GetBusinessLead(ctx context.Context, id uuid.UUID) (*lead.BusinessLead, error) {
	return s.repo.FindBusinessLead(ctx, id)
}

// DeleteBusinessLead removes a business inquiry.
func (s *LeadService) DeleteBusinessLead(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBusinessLead(ctx, id)
}

// RequestCallback stores a "call me back" request.
func (s *LeadService) RequestCallback(ctx context.Context, phone, name string, line domain.ServiceLine) (*lead.Callback, error) {
	c, err := lead.NewCallback(phone, name, line)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateCallback(ctx, c); err != nil {
		return nil, err
	}
	s.notifier.Publish(ctx, notify.EventLeadReceived, map[string]interface{}{
		"kind": "callback", "id": c.ID.String(), "phone": c.Phone,
	})
	return c, nil
}

// ListCallbacks returns callback requests with pagination, oldest first.
func (s *LeadService) ListCallbacks(ctx context.Context, page, limit int) (domain.PaginatedResult[*lead.Callback], error) {
	page, limit = normalizePagination(page, limit)
	callbacks, total, err := s.repo.ListCallbacks(ctx, page, limit)
	if err != nil {
		return domain.PaginatedResult[*lead.Callback]{}, err
	}
	return domain.NewPaginatedResult(callbacks, total, page, limit), nil
}

// SetCallbackStatus moves a callback request to a new status.
func (s *LeadService) SetCallbackStatus(ctx context.Context, id uuid.UUID, status lead.CallbackStatus) (*lead.Callback, error) {
	c, err := s.repo.FindCallback(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.SetStatus(status); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateCallback(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCallback removes a callback request.
func (s *LeadService) DeleteCallback(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCallback(ctx, id)
}
