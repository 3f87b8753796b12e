package booking

import (
	"fmt"
	"regexp"

	"github.com/nordstad/booking-backend/internal/domain"
)

// HomeType classifies the property at an address.
type HomeType string

const (
	HomeApartment HomeType = "apartment"
	HomeHouse     HomeType = "house"
	HomeStorage   HomeType = "storage"
	HomeOffice    HomeType = "office"
)

// IsValid returns true if the home type is recognized.
func (h HomeType) IsValid() bool {
	switch h {
	case HomeApartment, HomeHouse, HomeStorage, HomeOffice:
		return true
	}
	return false
}

// Access describes how movers reach the property.
type Access string

const (
	AccessStairs        Access = "stairs"
	AccessElevator      Access = "elevator"
	AccessLargeElevator Access = "large-elevator"
)

// IsValid returns true if the access type is recognized.
func (a Access) IsValid() bool {
	switch a {
	case AccessStairs, AccessElevator, AccessLargeElevator:
		return true
	}
	return false
}

var postcodePattern = regexp.MustCompile(`^\d{5}$`)

// ValidPostcode reports whether s is a 5-digit Swedish postal code.
func ValidPostcode(s string) bool {
	return postcodePattern.MatchString(s)
}

// Address is an embedded value object describing one property involved in a
// booking. It has no independent lifecycle.
type Address struct {
	Postcode        string   `json:"postcode"`
	HomeType        HomeType `json:"home_type"`
	Floor           string   `json:"floor"` // "1".."10+"
	Access          Access   `json:"access"`
	ParkingDistance int      `json:"parking_distance"` // meters
}

// Validate checks the address fields against their formats and enums.
func (a Address) Validate() error {
	if !ValidPostcode(a.Postcode) {
		return domain.NewValidationError(fmt.Sprintf("invalid postcode: %q", a.Postcode))
	}
	if !a.HomeType.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid home type: %q", a.HomeType))
	}
	if !a.Access.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid access type: %q", a.Access))
	}
	if a.ParkingDistance < 0 {
		return domain.NewValidationError("parking distance cannot be negative")
	}
	return nil
}
