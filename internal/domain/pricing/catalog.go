package pricing

import (
	"github.com/nordstad/booking-backend/internal/domain"
)

// Extra keys for the moving catalog.
const (
	ExtraPackagingAllRooms = "packaging_all_rooms"
	ExtraPackagingKitchen  = "packaging_kitchen"
	ExtraMounting          = "mounting"
)

// Extra keys for the cleaning catalogs.
const (
	ExtraBlinds        = "blinds"
	ExtraBathroom      = "extra_bathroom"
	ExtraToilet        = "extra_toilet"
	ExtraGlassedShower = "glassed_shower"
)

// ExtraPrice is the unit price of one optional add-on service.
// Quantity-based extras (blinds) are billed unit price times count,
// flag extras are billed once.
type ExtraPrice struct {
	Label     string `json:"label"`
	UnitPrice int64  `json:"unit_price"`
}

// Catalog holds the active pricing parameters for one service line.
// Exactly one catalog is active per service line at any time.
type Catalog struct {
	ServiceLine         domain.ServiceLine    `json:"service_line"`
	PerAreaRate         int64                 `json:"per_area_rate"`          // SEK per m²
	FixedPriceThreshold int64                 `json:"fixed_price_threshold"`  // m², inclusive
	FixedPrice          int64                 `json:"fixed_price"`            // SEK
	TravelFeeRate       int64                 `json:"travel_fee_rate"`        // SEK per km, moving only
	ExtraServices       map[string]ExtraPrice `json:"extra_services"`
}

// ExtraPriceFor returns the unit price entry for an extra key.
func (c Catalog) ExtraPriceFor(key string) (ExtraPrice, bool) {
	p, ok := c.ExtraServices[key]
	return p, ok
}

// DefaultMovingCatalog returns the catalog seeded when no moving pricing exists.
func DefaultMovingCatalog() Catalog {
	return Catalog{
		ServiceLine:         domain.ServiceMoving,
		PerAreaRate:         50,
		FixedPriceThreshold: 50,
		FixedPrice:          2500,
		TravelFeeRate:       10,
		ExtraServices: map[string]ExtraPrice{
			ExtraPackagingAllRooms: {Label: "Packning alla rum", UnitPrice: 25},
			ExtraPackagingKitchen:  {Label: "Packning kök", UnitPrice: 10},
			ExtraMounting:          {Label: "Montering", UnitPrice: 10},
		},
	}
}

// DefaultCleaningCatalog returns the catalog seeded when no cleaning pricing exists.
func DefaultCleaningCatalog() Catalog {
	return Catalog{
		ServiceLine:         domain.ServiceCleaning,
		PerAreaRate:         43,
		FixedPriceThreshold: 50,
		FixedPrice:          2150,
		ExtraServices: map[string]ExtraPrice{
			ExtraBlinds:        {Label: "Persienner", UnitPrice: 100},
			ExtraBathroom:      {Label: "Extra badrum", UnitPrice: 300},
			ExtraToilet:        {Label: "Extra toalett", UnitPrice: 200},
			ExtraGlassedShower: {Label: "Inglasad duschhörna", UnitPrice: 200},
		},
	}
}
