package distance

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"github.com/nordstad/booking-backend/internal/domain"
)

// GoogleResolver resolves distances through the Google Distance Matrix API.
type GoogleResolver struct {
	client *maps.Client
	logger *zap.Logger
}

// NewGoogleResolver creates a GoogleResolver authenticated with the given API key.
func NewGoogleResolver(apiKey string, logger *zap.Logger) (*GoogleResolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleResolver{client: client, logger: logger}, nil
}

// Resolve returns the road distance in kilometers between two postal codes.
func (r *GoogleResolver) Resolve(ctx context.Context, origin, dest string) (float64, error) {
	if err := validatePostcodes(origin, dest); err != nil {
		return 0, err
	}

	resp, err := r.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{origin + ", Sweden"},
		Destinations: []string{dest + ", Sweden"},
		Units:        maps.UnitsMetric,
		Mode:         maps.TravelModeDriving,
	})
	if err != nil {
		r.logger.Warn("distance matrix request failed",
			zap.String("origin", origin),
			zap.String("dest", dest),
			zap.Error(err),
		)
		return 0, domain.NewUpstreamError("could not reach distance provider")
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, domain.NewUpstreamError("distance provider returned no route")
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		r.logger.Warn("distance matrix element not OK",
			zap.String("origin", origin),
			zap.String("dest", dest),
			zap.String("status", element.Status),
		)
		return 0, domain.NewUpstreamError(fmt.Sprintf("could not resolve distance between %s and %s", origin, dest))
	}

	return float64(element.Distance.Meters) / 1000.0, nil
}
