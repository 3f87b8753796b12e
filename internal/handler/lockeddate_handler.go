package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordstad/booking-backend/internal/application"
	"github.com/nordstad/booking-backend/internal/response"
)

// LockedDateHandler serves the blocked booking calendar: the storefront reads
// it to grey out days, admins maintain it.
type LockedDateHandler struct {
	service *application.LockedDateService
	logger  *zap.Logger
}

// NewLockedDateHandler creates a new LockedDateHandler.
func NewLockedDateHandler(service *application.LockedDateService, logger *zap.Logger) *LockedDateHandler {
	return &LockedDateHandler{service: service, logger: logger}
}

// ListPublic handles GET /api/:line/locked-dates. Only days from today on;
// the storefront has no use for history.
func (h *LockedDateHandler) ListPublic(c *gin.Context) {
	line, err := parseLine(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	dates, err := h.service.List(c.Request.Context(), line, true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dates)
}

// ListAll handles GET /api/admin/:line/locked-dates.
func (h *LockedDateHandler) ListAll(c *gin.Context) {
	line, err := parseLine(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	dates, err := h.service.List(c.Request.Context(), line, false)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dates)
}

type lockDateRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

// Lock handles POST /api/admin/:line/locked-dates.
func (h *LockedDateHandler) Lock(c *gin.Context) {
	line, err := parseLine(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req lockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ld, err := h.service.Lock(c.Request.Context(), line, req.Date, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ld)
}

type lockRangeRequest struct {
	From   string `json:"from" binding:"required"`
	To     string `json:"to" binding:"required"`
	Reason string `json:"reason"`
}

// LockRange handles POST /api/admin/:line/locked-dates/range.
func (h *LockedDateHandler) LockRange(c *gin.Context) {
	line, err := parseLine(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req lockRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	created, err := h.service.LockRange(c.Request.Context(), line, req.From, req.To, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Unlock handles DELETE /api/admin/locked-dates/:id.
func (h *LockedDateHandler) Unlock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid locked date id")
		return
	}

	if err := h.service.Unlock(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CleanupPast handles POST /api/admin/locked-dates/cleanup.
func (h *LockedDateHandler) CleanupPast(c *gin.Context) {
	removed, err := h.service.CleanupPast(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"removed": removed})
}
