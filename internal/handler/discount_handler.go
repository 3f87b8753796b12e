package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/application"
	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/discount"
	"github.com/nordstad/booking-backend/internal/response"
)

// DiscountHandler serves public discount validation and the admin CRUD.
type DiscountHandler struct {
	service *application.DiscountService
	logger  *zap.Logger
}

// NewDiscountHandler creates a new DiscountHandler.
func NewDiscountHandler(service *application.DiscountService, logger *zap.Logger) *DiscountHandler {
	return &DiscountHandler{service: service, logger: logger}
}

type validateDiscountRequest struct {
	Code        string `json:"code" binding:"required"`
	OrderAmount int64  `json:"order_amount" binding:"required"`
	ServiceLine string `json:"service_line" binding:"required"`
}

// Validate handles POST /api/discounts/validate. A rejected code answers 400
// with its reason so the storefront can explain the failure.
func (h *DiscountHandler) Validate(c *gin.Context) {
	var req validateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	line, err := domain.ParseServiceLine(req.ServiceLine)
	if err != nil {
		response.Error(c, err)
		return
	}

	outcome, err := h.service.ValidateForOrder(c.Request.Context(), req.Code, req.OrderAmount, line)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"valid":  true,
		"code":   outcome.Code.Code,
		"type":   outcome.Code.Type,
		"value":  outcome.Code.Value,
		"amount": outcome.Amount,
	})
}

type discountCodeRequest struct {
	Code               string     `json:"code" binding:"required"`
	Type               string     `json:"type" binding:"required"`
	Value              int64      `json:"value"`
	IsActive           bool       `json:"is_active"`
	ValidFrom          *time.Time `json:"valid_from"`
	ValidUntil         *time.Time `json:"valid_until"`
	MaxUses            *int64     `json:"max_uses"`
	MinPurchaseAmount  *int64     `json:"min_purchase_amount"`
	ApplicableServices []string   `json:"applicable_services"`
}

func (r discountCodeRequest) toParams() (application.CreateCodeParams, error) {
	services := make([]domain.ServiceLine, 0, len(r.ApplicableServices))
	for _, s := range r.ApplicableServices {
		line, err := domain.ParseServiceLine(s)
		if err != nil {
			return application.CreateCodeParams{}, err
		}
		services = append(services, line)
	}
	return application.CreateCodeParams{
		Code:               r.Code,
		Type:               discount.Type(r.Type),
		Value:              r.Value,
		IsActive:           r.IsActive,
		ValidFrom:          r.ValidFrom,
		ValidUntil:         r.ValidUntil,
		MaxUses:            r.MaxUses,
		MinPurchaseAmount:  r.MinPurchaseAmount,
		ApplicableServices: services,
	}, nil
}

// Create handles POST /api/admin/discounts.
func (h *DiscountHandler) Create(c *gin.Context) {
	var req discountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	params, err := req.toParams()
	if err != nil {
		response.Error(c, err)
		return
	}

	code, err := h.service.Create(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, code)
}

// Update handles PUT /api/admin/discounts/:id.
func (h *DiscountHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid discount id")
		return
	}

	var req discountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	params, err := req.toParams()
	if err != nil {
		response.Error(c, err)
		return
	}

	code, err := h.service.Update(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, code)
}

// List handles GET /api/admin/discounts.
func (h *DiscountHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	result, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// Get handles GET /api/admin/discounts/:id. The parameter is either the
// code's uuid or the code string itself.
func (h *DiscountHandler) Get(c *gin.Context) {
	param := c.Param("id")

	var code *discount.Code
	var err error
	if id, parseErr := uuid.Parse(param); parseErr == nil {
		code, err = h.service.Get(c.Request.Context(), id)
	} else {
		code, err = h.service.GetByCode(c.Request.Context(), param)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, code)
}

// Delete handles DELETE /api/admin/discounts/:id.
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid discount id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
