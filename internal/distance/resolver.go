// Package distance resolves road distances between Swedish postal codes via
// an external routing provider.
package distance

import (
	"context"
	"fmt"

	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/booking"
)

// Resolver returns the road distance in kilometers between two Swedish
// postal codes. Implementations never guess: a provider failure or an
// unresolvable route is an error, not an estimate.
type Resolver interface {
	Resolve(ctx context.Context, originPostcode, destPostcode string) (float64, error)
}

// validatePostcodes checks both inputs against the 5-digit Swedish format.
func validatePostcodes(origin, dest string) error {
	if !booking.ValidPostcode(origin) {
		return domain.NewValidationError(fmt.Sprintf("invalid postcode: %q", origin))
	}
	if !booking.ValidPostcode(dest) {
		return domain.NewValidationError(fmt.Sprintf("invalid postcode: %q", dest))
	}
	return nil
}

// memoResolver caches lookups for the lifetime of one quote computation so
// the two legs of a moving quote never trigger duplicate round-trips.
// Not safe for concurrent use; create one per request.
type memoResolver struct {
	inner Resolver
	seen  map[string]float64
}

// NewMemo wraps a Resolver with a per-request lookup cache.
func NewMemo(inner Resolver) Resolver {
	return &memoResolver{inner: inner, seen: make(map[string]float64)}
}

func (m *memoResolver) Resolve(ctx context.Context, origin, dest string) (float64, error) {
	key := origin + "->" + dest
	if km, ok := m.seen[key]; ok {
		return km, nil
	}
	km, err := m.inner.Resolve(ctx, origin, dest)
	if err != nil {
		return 0, err
	}
	m.seen[key] = km
	return km, nil
}
