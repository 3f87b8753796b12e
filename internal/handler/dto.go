// Package handler exposes the HTTP API: public booking, quote and lead
// endpoints plus the JWT-protected admin surface.
package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/booking"
	"github.com/nordstad/booking-backend/internal/domain/pricing"
)

// addressDTO mirrors booking.Address on the wire.
type addressDTO struct {
	Postcode        string `json:"postcode" binding:"required"`
	HomeType        string `json:"home_type"`
	Floor           string `json:"floor"`
	Access          string `json:"access"`
	ParkingDistance int    `json:"parking_distance"`
}

func (a addressDTO) toDomain() booking.Address {
	return booking.Address{
		Postcode:        a.Postcode,
		HomeType:        booking.HomeType(a.HomeType),
		Floor:           a.Floor,
		Access:          booking.Access(a.Access),
		ParkingDistance: a.ParkingDistance,
	}
}

func addressFromDomain(a booking.Address) addressDTO {
	return addressDTO{
		Postcode:        a.Postcode,
		HomeType:        string(a.HomeType),
		Floor:           a.Floor,
		Access:          string(a.Access),
		ParkingDistance: a.ParkingDistance,
	}
}

// bookingDTO is the wire shape of a booking aggregate.
type bookingDTO struct {
	ID            string      `json:"id"`
	ServiceLine   string      `json:"service_line"`
	BookingNumber int64       `json:"booking_number"`
	Size          int64       `json:"size"`
	From          addressDTO  `json:"from"`
	To            *addressDTO `json:"to,omitempty"`

	Extras map[string]int `json:"extras,omitempty"`

	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	PersonalNumber string `json:"personal_number,omitempty"`

	Date          string `json:"date"`
	TimeOfDay     string `json:"time_of_day,omitempty"`
	Message       string `json:"message,omitempty"`
	WhatToMove    string `json:"what_to_move,omitempty"`
	ApartmentKeys string `json:"apartment_keys,omitempty"`

	Status string `json:"status"`

	DiscountCode   string `json:"discount_code,omitempty"`
	DiscountAmount int64  `json:"discount_amount,omitempty"`

	PriceDetails pricing.Snapshot `json:"price_details"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toBookingDTO(bk *booking.Booking) bookingDTO {
	dto := bookingDTO{
		ID:             bk.ID().String(),
		ServiceLine:    string(bk.ServiceLine()),
		BookingNumber:  bk.BookingNumber(),
		Size:           bk.Size(),
		From:           addressFromDomain(bk.From()),
		Extras:         bk.Extras(),
		Name:           bk.Customer().Name,
		Email:          bk.Customer().Email,
		Phone:          bk.Customer().Phone,
		PersonalNumber: bk.Customer().PersonalNumber,
		Date:           bk.Date().Format("2006-01-02"),
		TimeOfDay:      bk.TimeOfDay(),
		Message:        bk.Message(),
		WhatToMove:     bk.WhatToMove(),
		ApartmentKeys:  bk.ApartmentKeys(),
		Status:         string(bk.Status()),
		DiscountCode:   bk.DiscountCode(),
		DiscountAmount: bk.DiscountAmount(),
		PriceDetails:   bk.PriceDetails(),
		CreatedAt:      bk.CreatedAt(),
		UpdatedAt:      bk.UpdatedAt(),
	}
	if bk.To() != nil {
		to := addressFromDomain(*bk.To())
		dto.To = &to
	}
	return dto
}

func toBookingDTOs(bookings []*booking.Booking) []bookingDTO {
	dtos := make([]bookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

// parseLine reads the :line path parameter into a ServiceLine.
func parseLine(c *gin.Context) (domain.ServiceLine, error) {
	return domain.ParseServiceLine(c.Param("line"))
}

// pagination reads ?page and ?limit with defaults.
func pagination(c *gin.Context) (int, int) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	return page, limit
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
