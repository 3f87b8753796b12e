package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nordstad/booking-backend/internal/auth"
	"github.com/nordstad/booking-backend/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Booking    *BookingHandler
	Quote      *QuoteHandler
	Discount   *DiscountHandler
	Catalog    *CatalogHandler
	LockedDate *LockedDateHandler
	Lead       *LeadHandler
	Admin      *AdminHandler
}

// SetupRouter builds the gin engine with all public and admin routes.
func SetupRouter(h Handlers, jwtManager *auth.JWTManager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Public storefront endpoints.
		api.POST("/:line/bookings", h.Booking.Submit)
		api.GET("/:line/bookings/:number", h.Booking.GetByNumber)
		api.POST("/:line/quote", h.Quote.Quote)
		api.GET("/:line/catalog", h.Catalog.Get)
		api.GET("/:line/locked-dates", h.LockedDate.ListPublic)

		api.POST("/discounts/validate", h.Discount.Validate)

		api.POST("/contact", h.Lead.SubmitContact)
		api.POST("/business-leads", h.Lead.SubmitBusinessLead)
		api.POST("/callbacks", h.Lead.RequestCallback)

		api.POST("/admin/login", h.Admin.Login)
	}

	adminAPI := api.Group("/admin", middleware.RequireAdmin(jwtManager))
	{
		adminAPI.POST("/register", h.Admin.Register)

		adminAPI.GET("/:line/bookings", h.Booking.List)
		adminAPI.GET("/:line/bookings/stats", h.Booking.Stats)
		adminAPI.GET("/bookings/:id", h.Booking.Get)
		adminAPI.PATCH("/bookings/:id", h.Booking.Patch)
		adminAPI.POST("/bookings/:id/confirm", h.Booking.Confirm)
		adminAPI.POST("/bookings/:id/cancel", h.Booking.Cancel)
		adminAPI.DELETE("/bookings/:id", h.Booking.Delete)

		adminAPI.GET("/discounts", h.Discount.List)
		adminAPI.POST("/discounts", h.Discount.Create)
		adminAPI.GET("/discounts/:id", h.Discount.Get)
		adminAPI.PUT("/discounts/:id", h.Discount.Update)
		adminAPI.DELETE("/discounts/:id", h.Discount.Delete)

		adminAPI.PUT("/:line/catalog", h.Catalog.Update)

		adminAPI.GET("/:line/locked-dates", h.LockedDate.ListAll)
		adminAPI.POST("/:line/locked-dates", h.LockedDate.Lock)
		adminAPI.POST("/:line/locked-dates/range", h.LockedDate.LockRange)
		adminAPI.DELETE("/locked-dates/:id", h.LockedDate.Unlock)
		adminAPI.POST("/locked-dates/cleanup", h.LockedDate.CleanupPast)

		adminAPI.GET("/contacts", h.Lead.ListContacts)
		adminAPI.GET("/contacts/:id", h.Lead.GetContact)
		adminAPI.DELETE("/contacts/:id", h.Lead.DeleteContact)
		adminAPI.GET("/business-leads", h.Lead.ListBusinessLeads)
		adminAPI.GET("/business-leads/:id", h.Lead.GetBusinessLead)
		adminAPI.DELETE("/business-leads/:id", h.Lead.DeleteBusinessLead)
		adminAPI.GET("/callbacks", h.Lead.ListCallbacks)
		adminAPI.PATCH("/callbacks/:id", h.Lead.SetCallbackStatus)
		adminAPI.DELETE("/callbacks/:id", h.Lead.DeleteCallback)
	}

	return router
}
