// README: OpenRouteService routing backend.
package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"umzug/internal/types"
)

const (
	defaultORSBaseURL = "https://api.openrouteservice.org"
	defaultORSProfile = "driving-car"
	orsTimeout        = 10 * time.Second
)

// ORSProvider calls the OpenRouteService directions endpoint.
type ORSProvider struct {
	baseURL string
	apiKey  string
	profile string
	client  *http.Client
}

func NewORSProvider(baseURL, apiKey, profile string) *ORSProvider {
	if baseURL == "" {
		baseURL = defaultORSBaseURL
	}
	if profile == "" {
		profile = defaultORSProfile
	}
	return &ORSProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		profile: profile,
		client:  &http.Client{Timeout: orsTimeout},
	}
}

// Profile returns the routing profile, used as part of the cache key.
func (p *ORSProvider) Profile() string { return p.profile }

type orsResponse struct {
	Routes []struct {
		Summary struct {
			Distance *float64 `json:"distance"`
		} `json:"summary"`
	} `json:"routes"`
	Features []struct {
		Properties struct {
			Segments []struct {
				Distance *float64 `json:"distance"`
			} `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
	Metadata struct {
		Query struct {
			Units string `json:"units"`
		} `json:"query"`
	} `json:"metadata"`
}

// RouteKm resolves the driving distance between two coordinates.
func (p *ORSProvider) RouteKm(ctx context.Context, from, to types.Point) (float64, error) {
	if p.apiKey == "" {
		return 0, newProviderError(CodeAPIKeyMissing, "ORS API key not configured", nil)
	}
	base, err := url.Parse(p.baseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") {
		return 0, newProviderError(CodeBaseURLInvalid, fmt.Sprintf("bad base URL %q", p.baseURL), err)
	}

	body, err := json.Marshal(map[string]any{
		"coordinates": [][]float64{{from.Lon, from.Lat}, {to.Lon, to.Lat}},
		"units":       "km",
	})
	if err != nil {
		return 0, newProviderError(CodeRequestFailed, "encode request", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/json", p.baseURL, p.profile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, newProviderError(CodeRequestFailed, "build request", err)
	}
	req.Header.Set("Authorization", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return 0, newProviderError(CodeTimeout, "ORS request timed out", err)
		}
		return 0, newProviderError(CodeRequestFailed, "ORS request", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return 0, newProviderError(CodeForbidden, "ORS rejected the API key", nil)
	case resp.StatusCode != http.StatusOK:
		return 0, newProviderError(CodeRequestFailed, fmt.Sprintf("ORS status %d", resp.StatusCode), nil)
	}

	var parsed orsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, newProviderError(CodeRequestFailed, "decode response", err)
	}

	raw, ok := extractDistance(&parsed)
	if !ok {
		return 0, newProviderError(CodeDistanceMissing, "no distance in ORS response", nil)
	}
	return normalizeKm(raw, parsed.Metadata.Query.Units), nil
}

// extractDistance pulls the route distance out of either response shape.
// Non-positive values count as missing.
func extractDistance(r *orsResponse) (float64, bool) {
	var raw *float64
	if len(r.Routes) > 0 && r.Routes[0].Summary.Distance != nil {
		raw = r.Routes[0].Summary.Distance
	} else if len(r.Features) > 0 {
		segs := r.Features[0].Properties.Segments
		if len(segs) > 0 && segs[0].Distance != nil {
			raw = segs[0].Distance
		}
	}
	if raw == nil || *raw <= 0 {
		return 0, false
	}
	return *raw, true
}

// normalizeKm converts the raw distance to kilometres. When the response does
// not echo the requested unit, a large magnitude is taken to mean metres.
func normalizeKm(raw float64, units string) float64 {
	switch strings.ToLower(units) {
	case "km", "kilometers":
		return raw
	}
	if raw >= 100 {
		return raw / 1000
	}
	return raw
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
