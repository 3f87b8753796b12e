package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/application"
	"github.com/nordstad/booking-backend/internal/domain/booking"
	"github.com/nordstad/booking-backend/internal/response"
)

// BookingHandler serves the public booking submission endpoint and the
// admin booking surface.
type BookingHandler struct {
	service *application.BookingService
	logger  *zap.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{service: service, logger: logger}
}

type submitBookingRequest struct {
	Size   int64          `json:"size" binding:"required"`
	From   addressDTO     `json:"from" binding:"required"`
	To     *addressDTO    `json:"to"`
	Extras map[string]int `json:"extras"`

	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone"`
	PersonalNumber string `json:"personal_number"`

	Date          string `json:"date" binding:"required"`
	TimeOfDay     string `json:"time_of_day"`
	Message       string `json:"message"`
	WhatToMove    string `json:"what_to_move"`
	ApartmentKeys string `json:"apartment_keys"`

	DiscountCode string `json:"discount_code"`
}

// Submit handles POST /api/:line/bookings.
func (h *BookingHandler) Submit(c *gin.Context) {
	line, err := parseLine(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req submitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	params := application.SubmitBookingParams{
		ServiceLine: line,
		Size:        req.Size,
		From:        req.From.toDomain(),
		Extras:      req.Extras,
		Customer: booking.Customer{
			Name:           req.Name,
			Email:          req.Email,
			Phone:          req.Phone,
			PersonalNumber: req.PersonalNumber,
		},
		Date:          req.Date,
		TimeOfDay:     req.TimeOfDay,
		Message:       req.Message,
		WhatToMove:    req.WhatToMove,
		ApartmentKeys: req.ApartmentKeys,
		DiscountCode:  req.DiscountCode,
	}
	if req.To != nil {
		to := req.To.toDomain()
		params.To = &to
	}

	bk, err := h.service.Submit(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toBookingDTO(bk))
}

// GetByNumber handles GET /api/:line/bookings/:number. Customers look their
// booking up with the number from the confirmation; only a trimmed view
// comes back.
func (h *BookingHandler) GetByNumber(c *gin.Context) {
	line, err := parseLine(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil || number < 1 {
		response.BadRequest(c, "invalid booking number")
		return
	}

	bk, err := h.service.GetByNumber(c.Request.Context(), line, number)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"booking_number": bk.BookingNumber(),
		"service_line":   string(bk.ServiceLine()),
		"status":         string(bk.Status()),
		"date":           bk.Date().Format("2006-01-02"),
		"price_details":  bk.PriceDetails(),
	})
}

// List handles GET /api/admin/:line/bookings.
func (h *BookingHandler) List(c *gin.Context) {
	line, err := parseLine(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, limit := pagination(c)
	result, err := h.service.List(c.Request.Context(), line, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, toBookingDTOs(result.Items), result.Total, result.Page, result.Limit)
}

// Get handles GET /api/admin/bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	bk, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toBookingDTO(bk))
}

// Stats handles GET /api/admin/:line/bookings/stats.
func (h *BookingHandler) Stats(c *gin.Context) {
	line, err := parseLine(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	counts, err := h.service.Stats(c.Request.Context(), line)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, counts)
}

// Confirm handles POST /api/admin/bookings/:id/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.service.Confirm)
}

// Cancel handles POST /api/admin/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

type patchBookingRequest struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	TimeOfDay string `json:"time_of_day"`
	Size      *int64 `json:"size"`
}

// Patch handles PATCH /api/admin/bookings/:id.
func (h *BookingHandler) Patch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	var req patchBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	bk, err := h.service.Patch(c.Request.Context(), id, application.PatchBookingParams{
		Email:     req.Email,
		Phone:     req.Phone,
		Date:      req.Date,
		TimeOfDay: req.TimeOfDay,
		Size:      req.Size,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toBookingDTO(bk))
}

// Delete handles DELETE /api/admin/bookings/:id.
func (h *BookingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func (h *BookingHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*booking.Booking, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	bk, err := fn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toBookingDTO(bk))
}
