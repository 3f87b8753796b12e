package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nordstad/booking-backend/internal/auth"
)

const (
	ctxAdminID  = "admin_id"
	ctxUsername = "admin_username"
)

// RequireAdmin verifies the Bearer token and attaches the authenticated admin
// principal to the request context. All admin-only routes use this.
func RequireAdmin(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := jwtManager.VerifyToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		adminID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			return
		}

		c.Set(ctxAdminID, adminID)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// GetAdminID returns the authenticated admin id from the request context.
func GetAdminID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxAdminID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
