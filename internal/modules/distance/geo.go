// README: Pure geographic helpers. No network access here.
package distance

import (
	"math"
	"regexp"
	"strings"

	"umzug/internal/types"
)

const earthRadiusKm = 6371.0

// roadFactor scales straight-line distance to an approximate road distance.
const roadFactor = 1.25

// HaversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func HaversineKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLon := degreesToRadians(b.Lon - a.Lon)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// FallbackRouteKm estimates road distance when no routing backend answered.
// Never below one kilometre.
func FallbackRouteKm(a, b types.Point) float64 {
	return round2(math.Max(1, HaversineKm(a, b)*roadFactor))
}

// ApproxTripKm estimates the trip distance for a quote when the customer
// gave coordinates but no explicit distance. Never below three kilometres.
func ApproxTripKm(a, b types.Point) float64 {
	return round2(math.Max(3, HaversineKm(a, b)*roadFactor))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var postalRe = regexp.MustCompile(`\d{5}`)

// ExtractPostal returns the first five-digit German postal code in s.
func ExtractPostal(s string) string {
	return postalRe.FindString(s)
}

// foldGerman rewrites German umlauts and sharp s into their ASCII digraphs,
// which geocoders with ASCII-normalized indexes match more reliably.
func foldGerman(s string) string {
	r := strings.NewReplacer(
		"ß", "ss",
		"ä", "ae", "ö", "oe", "ü", "ue",
		"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	)
	return r.Replace(s)
}
