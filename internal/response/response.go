package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nordstad/booking-backend/internal/domain"
)

// Success writes a 200 response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created writes a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// Paginated writes a 200 response with pagination metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// BadRequest writes a 400 response with a message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
}

// Error maps an error to its HTTP status. Business-rule failures surface
// their message and reason; unclassified errors become a generic 500 so
// internals never leak to the caller.
func Error(c *gin.Context, err error) {
	appErr, ok := domain.AsAppError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	body := gin.H{"success": false, "error": appErr.Message}
	if appErr.Reason != "" {
		body["reason"] = appErr.Reason
	}

	c.JSON(statusFor(appErr.Kind), body)
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidInput, domain.KindDuplicateBooking, domain.KindDiscountRejected:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict, domain.KindInvalidState:
		return http.StatusConflict
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindUpstream, domain.KindConfiguration:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
