package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/application"
	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/lead"
	"github.com/nordstad/booking-backend/internal/response"
)

// LeadHandler serves the non-booking inbound forms: contact messages,
// business cleaning inquiries and callback requests.
type LeadHandler struct {
	service *application.LeadService
	logger  *zap.Logger
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(service *application.LeadService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{service: service, logger: logger}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact handles POST /api/contact.
func (h *LeadHandler) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	contact, err := h.service.SubmitContact(c.Request.Context(), req.Name, req.Email, req.Phone, req.Subject, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, contact)
}

// ListContacts handles GET /api/admin/contacts.
func (h *LeadHandler) ListContacts(c *gin.Context) {
	page, limit := pagination(c)
	result, err := h.service.ListContacts(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetContact handles GET /api/admin/contacts/:id.
func (h *LeadHandler) GetContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid contact id")
		return
	}
	contact, err := h.service.GetContact(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, contact)
}

// DeleteContact handles DELETE /api/admin/contacts/:id.
func (h *LeadHandler) DeleteContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid contact id")
		return
	}
	if err := h.service.DeleteContact(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

type businessLeadRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	OrgNumber   string `json:"org_number"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Postcode    string `json:"postcode"`
	City        string `json:"city"`
	SizeKvm     int64  `json:"size_kvm"`
	Frequency   string `json:"frequency"`
	Message     string `json:"message"`
}

// SubmitBusinessLead handles POST /api/business-leads.
func (h *LeadHandler) SubmitBusinessLead(c *gin.Context) {
	var req businessLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	bl, err := h.service.SubmitBusinessLead(c.Request.Context(), lead.BusinessLeadParams{
		CompanyName: req.CompanyName,
		OrgNumber:   req.OrgNumber,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Postcode:    req.Postcode,
		City:        req.City,
		SizeKvm:     req.SizeKvm,
		Frequency:   req.Frequency,
		Message:     req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, bl)
}

// ListBusinessLeads handles GET /api/admin/business-leads.
func (h *LeadHandler) ListBusinessLeads(c *gin.Context) {
	page, limit := pagination(c)
	result, err := h.service.ListBusinessLeads(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetBusinessLead handles GET /api/admin/business-leads/:id.
func (h *LeadHandler) GetBusinessLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid business lead id")
		return
	}
	bl, err := h.service.GetBusinessLead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, bl)
}

// DeleteBusinessLead handles DELETE /api/admin/business-leads/:id.
func (h *LeadHandler) DeleteBusinessLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid business lead id")
		return
	}
	if err := h.service.DeleteBusinessLead(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

type callbackRequest struct {
	Phone       string `json:"phone" binding:"required"`
	Name        string `json:"name"`
	ServiceLine string `json:"service_line"`
}

// RequestCallback handles POST /api/callbacks.
func (h *LeadHandler) RequestCallback(c *gin.Context) {
	var req callbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	cb, err := h.service.RequestCallback(c.Request.Context(), req.Phone, req.Name, domain.ServiceLine(req.ServiceLine))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cb)
}

// ListCallbacks handles GET /api/admin/callbacks.
func (h *LeadHandler) ListCallbacks(c *gin.Context) {
	page, limit := pagination(c)
	result, err := h.service.ListCallbacks(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

type callbackStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetCallbackStatus handles PATCH /api/admin/callbacks/:id.
func (h *LeadHandler) SetCallbackStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid callback id")
		return
	}

	var req callbackStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	cb, err := h.service.SetCallbackStatus(c.Request.Context(), id, lead.CallbackStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cb)
}

// DeleteCallback handles DELETE /api/admin/callbacks/:id.
func (h *LeadHandler) DeleteCallback(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid callback id")
		return
	}
	if err := h.service.DeleteCallback(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
