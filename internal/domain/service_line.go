package domain

import "fmt"

// ServiceLine identifies one of the three business offerings. Each line has
// its own price catalog and its own booking-number sequence.
type ServiceLine string

const (
	ServiceMoving               ServiceLine = "moving"
	ServiceCleaning             ServiceLine = "cleaning"
	ServiceConstructionCleaning ServiceLine = "construction_cleaning"
)

// IsValid returns true if the service line is recognized.
func (s ServiceLine) IsValid() bool {
	switch s {
	case ServiceMoving, ServiceCleaning, ServiceConstructionCleaning:
		return true
	}
	return false
}

// String returns the string representation of the service line.
func (s ServiceLine) String() string {
	return string(s)
}

// ParseServiceLine converts a string to a ServiceLine. Unknown values come
// back as validation errors so handlers answer 400, not 500.
func ParseServiceLine(s string) (ServiceLine, error) {
	line := ServiceLine(s)
	if !line.IsValid() {
		return "", NewValidationError(fmt.Sprintf("invalid service line: %s", s))
	}
	return line, nil
}

// PricedLines returns the service lines that carry their own price catalog.
// Construction cleaning is quoted manually and has no catalog row.
func PricedLines() []ServiceLine {
	return []ServiceLine{ServiceMoving, ServiceCleaning}
}
