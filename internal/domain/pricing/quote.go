package pricing

import (
	"fmt"
	"math"
	"sort"

	"github.com/nordstad/booking-backend/internal/domain"
)

// FreeKmAllowance is the distance per leg below which no travel surcharge applies.
const FreeKmAllowance = 31.0

// Line item keys in a price snapshot.
const (
	LineBase     = "base"
	LineTravel   = "travel"
	LineDiscount = "discount"
)

// Line is one ordered entry of a price breakdown. Amount is a signed SEK
// amount; discount lines are negative.
type Line struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
	Meta   string `json:"meta,omitempty"`
}

// Totals aggregates a snapshot. GrandTotal always equals the sum of all line
// amounts: Base + Travel + Extras - Discount.
type Totals struct {
	Base       int64  `json:"base"`
	Travel     int64  `json:"travel"`
	Extras     int64  `json:"extras"`
	Discount   int64  `json:"discount"`
	GrandTotal int64  `json:"grand_total"`
	Currency   string `json:"currency"`
}

// Snapshot is the immutable priced breakdown captured at booking time.
// Line order is insertion order and is preserved for display.
type Snapshot struct {
	Lines  []Line `json:"lines"`
	Totals Totals `json:"totals"`
}

// SumLines returns the sum of all line amounts.
func (s Snapshot) SumLines() int64 {
	var sum int64
	for _, l := range s.Lines {
		sum += l.Amount
	}
	return sum
}

// WithDiscount returns a copy of the snapshot with a negative discount line
// appended and the totals recomputed.
func (s Snapshot) WithDiscount(label string, amount int64, meta string) Snapshot {
	lines := make([]Line, len(s.Lines), len(s.Lines)+1)
	copy(lines, s.Lines)
	lines = append(lines, Line{Key: LineDiscount, Label: label, Amount: -amount, Meta: meta})

	totals := s.Totals
	totals.Discount += amount
	totals.GrandTotal -= amount
	return Snapshot{Lines: lines, Totals: totals}
}

// BaseBeforeDiscount returns the pre-discount base amount (base plus travel),
// the amount discount codes validate against.
func (s Snapshot) BaseBeforeDiscount() int64 {
	return s.Totals.Base + s.Totals.Travel
}

// QuoteInput holds the request parameters for a quote computation.
// OutboundKm and ReturnKm are only consulted for the moving line.
type QuoteInput struct {
	Size       int64          // m²
	Extras     map[string]int // extra key -> quantity (1 for flag extras)
	OutboundKm float64        // customer origin -> destination
	ReturnKm   float64        // depot -> customer origin
}

// ComputeQuote turns a catalog and quote input into a priced snapshot.
// It is a pure function: distances are resolved by the caller.
func ComputeQuote(c Catalog, in QuoteInput) (Snapshot, error) {
	if in.Size <= 0 {
		return Snapshot{}, domain.NewValidationError("size must be positive")
	}

	var lines []Line
	var totals Totals
	totals.Currency = "SEK"

	// Tiered base: fixed price up to and including the threshold.
	var base int64
	if in.Size <= c.FixedPriceThreshold {
		base = c.FixedPrice
	} else {
		base = c.PerAreaRate * in.Size
	}
	lines = append(lines, Line{
		Key:    LineBase,
		Label:  baseLabel(c.ServiceLine),
		Amount: base,
		Meta:   fmt.Sprintf("%d m²", in.Size),
	})
	totals.Base = base

	if c.ServiceLine == domain.ServiceMoving {
		travel := travelSurcharge(in.OutboundKm, in.ReturnKm, c.TravelFeeRate)
		if travel > 0 {
			chargedKm := BillableKm(in.OutboundKm) + BillableKm(in.ReturnKm)
			lines = append(lines, Line{
				Key:    LineTravel,
				Label:  "Milersättning",
				Amount: travel,
				Meta:   fmt.Sprintf("%s km × %d kr", formatKm(chargedKm), c.TravelFeeRate),
			})
			totals.Travel = travel
		}
	}

	extraLines, extrasTotal, err := extraServiceLines(c, in.Extras)
	if err != nil {
		return Snapshot{}, err
	}
	lines = append(lines, extraLines...)
	totals.Extras = extrasTotal

	totals.GrandTotal = totals.Base + totals.Travel + totals.Extras
	return Snapshot{Lines: lines, Totals: totals}, nil
}

// BillableKm returns the chargeable distance of one leg: km above the free
// allowance, never negative.
func BillableKm(legKm float64) float64 {
	return math.Max(0, legKm-FreeKmAllowance)
}

func travelSurcharge(outboundKm, returnKm float64, ratePerKm int64) int64 {
	charged := BillableKm(outboundKm) + BillableKm(returnKm)
	return roundHalfUp(charged * float64(ratePerKm))
}

// extraServiceLines builds one line per selected extra. Zero or unset extras
// emit no line.
func extraServiceLines(c Catalog, extras map[string]int) ([]Line, int64, error) {
	keys := make([]string, 0, len(extras))
	for k, qty := range extras {
		if qty < 0 {
			return nil, 0, domain.NewValidationError(fmt.Sprintf("negative quantity for extra %q", k))
		}
		if qty == 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []Line
	var total int64
	for _, k := range keys {
		price, ok := c.ExtraPriceFor(k)
		if !ok {
			return nil, 0, domain.NewValidationError(fmt.Sprintf("unknown extra service: %s", k))
		}
		qty := extras[k]
		amount := price.UnitPrice * int64(qty)
		line := Line{Key: k, Label: price.Label, Amount: amount}
		if qty > 1 {
			line.Meta = fmt.Sprintf("%d × %d kr", qty, price.UnitPrice)
		}
		lines = append(lines, line)
		total += amount
	}
	return lines, total, nil
}

// roundHalfUp rounds to the nearest integer SEK, halves away from zero.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

func baseLabel(line domain.ServiceLine) string {
	switch line {
	case domain.ServiceMoving:
		return "Flytt"
	case domain.ServiceCleaning:
		return "Flyttstädning"
	case domain.ServiceConstructionCleaning:
		return "Byggstädning"
	default:
		return "Grundpris"
	}
}

func formatKm(km float64) string {
	if km == math.Trunc(km) {
		return fmt.Sprintf("%.0f", km)
	}
	return fmt.Sprintf("%.1f", km)
}
