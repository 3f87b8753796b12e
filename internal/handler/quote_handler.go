package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/application"
	"github.com/nordstad/booking-backend/internal/response"
)

// QuoteHandler serves price quotes without creating a booking.
type QuoteHandler struct {
	service *application.QuoteService
	logger  *zap.Logger
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(service *application.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{service: service, logger: logger}
}

type quoteRequest struct {
	Size         int64          `json:"size" binding:"required"`
	Extras       map[string]int `json:"extras"`
	FromPostcode string         `json:"from_postcode" binding:"required"`
	ToPostcode   string         `json:"to_postcode"`
	DiscountCode string         `json:"discount_code"`
}

// Quote handles POST /api/:line/quote.
func (h *QuoteHandler) Quote(c *gin.Context) {
	line, err := parseLine(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	snapshot, err := h.service.Quote(c.Request.Context(), line, application.QuoteRequest{
		Size:         req.Size,
		Extras:       req.Extras,
		FromPostcode: req.FromPostcode,
		ToPostcode:   req.ToPostcode,
		DiscountCode: req.DiscountCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, snapshot)
}
