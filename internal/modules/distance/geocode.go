// README: Nominatim geocoding client with German address candidates.
package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"umzug/internal/types"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder resolves free-form German addresses to coordinates.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewNominatimGeocoder(baseURL, userAgent string) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = defaultNominatimURL
	}
	return &NominatimGeocoder{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type geocodeCandidate struct {
	query        string
	allowRelaxed bool
}

// Geocode tries several query spellings, each first restricted to Germany
// and then relaxed. When the address names a postal code, results that lack
// it or contradict it are rejected.
func (g *NominatimGeocoder) Geocode(ctx context.Context, addr Address) (types.Point, string, error) {
	postal := addr.Postal
	if postal == "" {
		postal = ExtractPostal(addr.Raw)
	}

	candidates := []geocodeCandidate{{query: addr.Raw, allowRelaxed: true}}
	if folded := foldGerman(addr.Raw); folded != addr.Raw {
		candidates = append(candidates, geocodeCandidate{query: folded, allowRelaxed: true})
	}
	if postal != "" {
		candidates = append(candidates,
			geocodeCandidate{query: postal + " Deutschland"},
			geocodeCandidate{query: postal + " Germany"},
			geocodeCandidate{query: postal},
		)
	}

	var lastErr error
	for _, cand := range candidates {
		p, resolved, err := g.search(ctx, cand.query, postal, true)
		if err == nil {
			return p, resolved, nil
		}
		lastErr = err
		if !cand.allowRelaxed {
			continue
		}
		p, resolved, err = g.search(ctx, cand.query, postal, false)
		if err == nil {
			return p, resolved, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = newProviderError(CodeGeocodeFailed, fmt.Sprintf("no result for %q", addr.Raw), nil)
	}
	return types.Point{}, "", lastErr
}

type nominatimResult struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		Postcode string `json:"postcode"`
	} `json:"address"`
}

func (g *NominatimGeocoder) search(ctx context.Context, query, wantPostal string, strict bool) (types.Point, string, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("addressdetails", "1")
	if strict {
		q.Set("countrycodes", "de")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return types.Point{}, "", newProviderError(CodeRequestFailed, "build geocode request", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return types.Point{}, "", newProviderError(CodeRequestFailed, "geocode request", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return types.Point{}, "", newProviderError(CodeRequestFailed,
			fmt.Sprintf("geocode status %d for %q", resp.StatusCode, query), nil)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return types.Point{}, "", newProviderError(CodeRequestFailed, "decode geocode response", err)
	}
	if len(results) == 0 {
		return types.Point{}, "", newProviderError(CodeGeocodeFailed, fmt.Sprintf("no result for %q", query), nil)
	}

	r := results[0]
	resolved := ExtractPostal(r.Address.Postcode)
	if wantPostal != "" && resolved != wantPostal {
		return types.Point{}, "", newProviderError(CodeGeocodeFailed,
			fmt.Sprintf("postal mismatch: want %s got %q", wantPostal, resolved), nil)
	}

	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return types.Point{}, "", newProviderError(CodeRequestFailed, "parse lat", err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return types.Point{}, "", newProviderError(CodeRequestFailed, "parse lon", err)
	}
	return types.Point{Lat: lat, Lon: lon}, resolved, nil
}
