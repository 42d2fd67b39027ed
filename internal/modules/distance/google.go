// README: Google Maps routing backend, selectable instead of ORS.
package distance

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"umzug/internal/types"
)

// GoogleProvider resolves driving distance through the Directions API.
type GoogleProvider struct {
	client *maps.Client
}

func NewGoogleProvider(apiKey string) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, newProviderError(CodeAPIKeyMissing, "Google Maps API key not configured", nil)
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &GoogleProvider{client: client}, nil
}

// RouteKm returns the driving distance of the first returned route.
func (p *GoogleProvider) RouteKm(ctx context.Context, from, to types.Point) (float64, error) {
	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", from.Lat, from.Lon),
		Destination: fmt.Sprintf("%f,%f", to.Lat, to.Lon),
		Mode:        maps.TravelModeDriving,
		Language:    "de",
		Region:      "de",
	}

	routes, _, err := p.client.Directions(ctx, r)
	if err != nil {
		return 0, newProviderError(CodeRequestFailed, "maps api", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, newProviderError(CodeDistanceMissing, "no route found", nil)
	}

	meters := 0
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
	}
	return float64(meters) / 1000, nil
}
