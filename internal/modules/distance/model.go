// README: Route distance resolution between two addresses: geocoding,
// routing providers, Redis caching and the road-distance fallback.
package distance

import (
	"context"

	"umzug/internal/types"
)

// Source records where a resolved distance came from.
type Source string

const (
	SourceCache    Source = "cache"
	SourceProvider Source = "provider"
	SourceFallback Source = "fallback"
	// SourceApprox marks a straight-line estimate made without any provider,
	// used by the quote flow when only coordinates are known.
	SourceApprox Source = "approx"
)

// Result is a resolved route distance in kilometres.
type Result struct {
	Km         float64
	Source     Source
	FromPostal string
	ToPostal   string
	Profile    string
}

// Address is one endpoint of a route as the customer entered it.
type Address struct {
	Raw string
	// Postal is extracted from Raw when empty.
	Postal string
}

// RouteProvider computes driving distance between two coordinates.
// Implemented by the OpenRouteService and Google Maps backends.
type RouteProvider interface {
	RouteKm(ctx context.Context, from, to types.Point) (float64, error)
}

// Geocoder turns an address into a coordinate plus the 5-digit postal code
// of the resolved location, empty when the geocoder could not determine one.
type Geocoder interface {
	Geocode(ctx context.Context, addr Address) (types.Point, string, error)
}
