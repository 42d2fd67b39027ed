package distance

import (
	"context"
	"math"
	"testing"

	"umzug/internal/types"
)

type fakeGeocoder struct {
	points  map[string]types.Point
	postals map[string]string
	err     error
	calls   int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, addr Address) (types.Point, string, error) {
	f.calls++
	if f.err != nil {
		return types.Point{}, "", f.err
	}
	return f.points[addr.Raw], f.postals[addr.Raw], nil
}

type fakeProvider struct {
	km    float64
	err   error
	calls int
}

func (f *fakeProvider) RouteKm(ctx context.Context, from, to types.Point) (float64, error) {
	f.calls++
	return f.km, f.err
}

func testAddresses() (Address, Address, *fakeGeocoder) {
	from := Address{Raw: "Alexanderplatz 1, 10178 Berlin"}
	to := Address{Raw: "Rathausmarkt 1, 20095 Hamburg"}
	g := &fakeGeocoder{points: map[string]types.Point{
		from.Raw: {Lat: 52.5200, Lon: 13.4050},
		to.Raw:   {Lat: 53.5511, Lon: 9.9937},
	}}
	return from, to, g
}

func TestResolver_ProviderSuccess(t *testing.T) {
	from, to, g := testAddresses()
	p := &fakeProvider{km: 289.27}
	r := NewResolver(g, p, nil, "")

	res, err := r.RouteDistance(context.Background(), from, to, false)
	if err != nil {
		t.Fatalf("RouteDistance() error = %v", err)
	}
	if res.Source != SourceProvider {
		t.Errorf("Source = %q, want %q", res.Source, SourceProvider)
	}
	if res.Km != 289.27 {
		t.Errorf("Km = %f, want 289.27", res.Km)
	}
	if res.FromPostal != "10178" || res.ToPostal != "20095" {
		t.Errorf("postals = %q/%q, want 10178/20095", res.FromPostal, res.ToPostal)
	}
	if g.calls != 2 {
		t.Errorf("geocoder calls = %d, want 2", g.calls)
	}
}

func TestResolver_GeocoderPostalsFillResult(t *testing.T) {
	from := Address{Raw: "Marienplatz 1, München"}
	to := Address{Raw: "Römerberg 2, Frankfurt am Main"}
	g := &fakeGeocoder{
		points: map[string]types.Point{
			from.Raw: {Lat: 48.1374, Lon: 11.5755},
			to.Raw:   {Lat: 50.1106, Lon: 8.6820},
		},
		postals: map[string]string{
			from.Raw: "80331",
			to.Raw:   "60311",
		},
	}
	p := &fakeProvider{km: 392.4}
	r := NewResolver(g, p, nil, "")

	res, err := r.RouteDistance(context.Background(), from, to, false)
	if err != nil {
		t.Fatalf("RouteDistance() error = %v", err)
	}
	if res.FromPostal != "80331" || res.ToPostal != "60311" {
		t.Errorf("postals = %q/%q, want 80331/60311", res.FromPostal, res.ToPostal)
	}
	if res.Source != SourceProvider {
		t.Errorf("Source = %q, want %q", res.Source, SourceProvider)
	}
}

func TestResolver_AddressPostalWinsOverGeocoder(t *testing.T) {
	from, to, g := testAddresses()
	g.postals = map[string]string{from.Raw: "99999", to.Raw: "88888"}
	p := &fakeProvider{km: 289.27}
	r := NewResolver(g, p, nil, "")

	res, err := r.RouteDistance(context.Background(), from, to, false)
	if err != nil {
		t.Fatalf("RouteDistance() error = %v", err)
	}
	if res.FromPostal != "10178" || res.ToPostal != "20095" {
		t.Errorf("postals = %q/%q, want the address's own 10178/20095", res.FromPostal, res.ToPostal)
	}
}

func TestResolver_FallbackOnProviderFailure(t *testing.T) {
	from, to, g := testAddresses()
	p := &fakeProvider{err: newProviderError(CodeTimeout, "timed out", nil)}
	r := NewResolver(g, p, nil, "")

	res, err := r.RouteDistance(context.Background(), from, to, true)
	if err != nil {
		t.Fatalf("RouteDistance() error = %v", err)
	}
	if res.Source != SourceFallback {
		t.Errorf("Source = %q, want %q", res.Source, SourceFallback)
	}
	straight := HaversineKm(g.points[from.Raw], g.points[to.Raw])
	want := math.Round(straight*1.25*100) / 100
	if math.Abs(res.Km-want) > 0.001 {
		t.Errorf("Km = %f, want %f", res.Km, want)
	}
}

func TestResolver_ProviderFailureWithoutFallback(t *testing.T) {
	from, to, g := testAddresses()
	p := &fakeProvider{err: newProviderError(CodeForbidden, "bad key", nil)}
	r := NewResolver(g, p, nil, "")

	_, err := r.RouteDistance(context.Background(), from, to, false)
	if CodeOf(err) != CodeForbidden {
		t.Errorf("error code = %q, want %q", CodeOf(err), CodeForbidden)
	}
}

func TestResolver_GeocodeFailureHasNoFallback(t *testing.T) {
	from, to, _ := testAddresses()
	g := &fakeGeocoder{err: newProviderError(CodeGeocodeFailed, "nothing found", nil)}
	p := &fakeProvider{km: 100}
	r := NewResolver(g, p, nil, "")

	_, err := r.RouteDistance(context.Background(), from, to, true)
	if CodeOf(err) != CodeGeocodeFailed {
		t.Errorf("error code = %q, want %q", CodeOf(err), CodeGeocodeFailed)
	}
	if p.calls != 0 {
		t.Errorf("provider calls = %d, want 0", p.calls)
	}
}

func TestRouteKey_SortsPostalPair(t *testing.T) {
	if routeKey("driving-car", "20095", "10178") != routeKey("driving-car", "10178", "20095") {
		t.Error("route key is not symmetric in the postal pair")
	}
}
