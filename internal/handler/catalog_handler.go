package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/application"
	"github.com/nordstad/booking-backend/internal/domain/pricing"
	"github.com/nordstad/booking-backend/internal/response"
)

// CatalogHandler serves the pricing catalogs: public read, admin write.
type CatalogHandler struct {
	service *application.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *application.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, logger: logger}
}

// Get handles GET /api/:line/catalog.
func (h *CatalogHandler) Get(c *gin.Context) {
	line, err := parseLine(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	catalog, err := h.service.Get(c.Request.Context(), line)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, catalog)
}

type catalogRequest struct {
	PerAreaRate         int64                         `json:"per_area_rate"`
	FixedPriceThreshold int64                         `json:"fixed_price_threshold"`
	FixedPrice          int64                         `json:"fixed_price"`
	TravelFeeRate       int64                         `json:"travel_fee_rate"`
	ExtraServices       map[string]pricing.ExtraPrice `json:"extra_services"`
}

// Update handles PUT /api/admin/:line/catalog.
func (h *CatalogHandler) Update(c *gin.Context) {
	line, err := parseLine(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req catalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	catalog := &pricing.Catalog{
		ServiceLine:         line,
		PerAreaRate:         req.PerAreaRate,
		FixedPriceThreshold: req.FixedPriceThreshold,
		FixedPrice:          req.FixedPrice,
		TravelFeeRate:       req.TravelFeeRate,
		ExtraServices:       req.ExtraServices,
	}
	if err := h.service.Update(c.Request.Context(), catalog); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, catalog)
}
