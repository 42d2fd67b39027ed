// README: Resolver wires geocoding, the routing provider and the cache into
// one route distance lookup.
package distance

import (
	"context"
	"fmt"
	"log"

	"umzug/internal/types"
)

type Resolver struct {
	geocoder Geocoder
	provider RouteProvider
	cache    *Cache
	// profile namespaces cache entries per routing backend and mode.
	profile string
}

func NewResolver(geocoder Geocoder, provider RouteProvider, cache *Cache, profile string) *Resolver {
	if profile == "" {
		profile = defaultORSProfile
	}
	return &Resolver{geocoder: geocoder, provider: provider, cache: cache, profile: profile}
}

// RouteDistance resolves the driving distance between two addresses. The
// cache is keyed by the postal pair: the address's own postal code when it
// names one, otherwise the geocoder-resolved one. A known pair is checked
// before geocoding, so those hits skip it entirely. With allowFallback set,
// a provider failure degrades to a haversine road estimate, which is never
// cached.
func (r *Resolver) RouteDistance(ctx context.Context, from, to Address, allowFallback bool) (Result, error) {
	postalFrom := postalOf(from)
	postalTo := postalOf(to)

	if postalFrom != "" && postalTo != "" {
		if km, ok := r.cachedKm(ctx, postalFrom, postalTo); ok {
			return r.result(km, SourceCache, postalFrom, postalTo), nil
		}
	}

	fromPt, fromGeoPostal, err := r.geocoder.Geocode(ctx, from)
	if err != nil {
		return Result{}, fmt.Errorf("geocode origin: %w", err)
	}
	toPt, toGeoPostal, err := r.geocoder.Geocode(ctx, to)
	if err != nil {
		return Result{}, fmt.Errorf("geocode destination: %w", err)
	}

	// Fill in postals the address itself did not carry, then retry the
	// cache for pairs that only became known through geocoding.
	resolvedMissing := false
	if postalFrom == "" && fromGeoPostal != "" {
		postalFrom, resolvedMissing = fromGeoPostal, true
	}
	if postalTo == "" && toGeoPostal != "" {
		postalTo, resolvedMissing = toGeoPostal, true
	}
	if resolvedMissing && postalFrom != "" && postalTo != "" {
		if km, ok := r.cachedKm(ctx, postalFrom, postalTo); ok {
			return r.result(km, SourceCache, postalFrom, postalTo), nil
		}
	}

	km, err := r.provider.RouteKm(ctx, fromPt, toPt)
	if err != nil {
		if !allowFallback {
			return Result{}, err
		}
		log.Printf("[distance] provider failed (%s), using road estimate: %v", CodeOf(err), err)
		return r.result(FallbackRouteKm(fromPt, toPt), SourceFallback, postalFrom, postalTo), nil
	}

	km = round2(km)
	if r.cache != nil && postalFrom != "" && postalTo != "" {
		if err := r.cache.Put(ctx, r.profile, postalFrom, postalTo, km); err != nil {
			log.Printf("[distance] cache write failed: %v", err)
		}
	}
	return r.result(km, SourceProvider, postalFrom, postalTo), nil
}

func (r *Resolver) cachedKm(ctx context.Context, postalFrom, postalTo string) (float64, bool) {
	if r.cache == nil {
		return 0, false
	}
	km, ok, err := r.cache.Get(ctx, r.profile, postalFrom, postalTo)
	if err != nil {
		log.Printf("[distance] cache read failed: %v", err)
		return 0, false
	}
	return km, ok
}

func (r *Resolver) result(km float64, src Source, postalFrom, postalTo string) Result {
	return Result{Km: km, Source: src, FromPostal: postalFrom, ToPostal: postalTo, Profile: r.profile}
}

// RouteDistanceBetween resolves the distance between two known coordinates,
// bypassing geocoding and the postal cache.
func (r *Resolver) RouteDistanceBetween(ctx context.Context, from, to types.Point, allowFallback bool) (Result, error) {
	km, err := r.provider.RouteKm(ctx, from, to)
	if err != nil {
		if !allowFallback {
			return Result{}, err
		}
		log.Printf("[distance] provider failed (%s), using road estimate: %v", CodeOf(err), err)
		return Result{Km: FallbackRouteKm(from, to), Source: SourceFallback, Profile: r.profile}, nil
	}
	return Result{Km: round2(km), Source: SourceProvider, Profile: r.profile}, nil
}

func postalOf(a Address) string {
	if a.Postal != "" {
		return a.Postal
	}
	return ExtractPostal(a.Raw)
}
