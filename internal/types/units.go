// README: Volume and duration rounding rules shared by the estimate and
// availability engines.
package types

import "math"

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}

// RoundVolume rounds a volume in cubic metres to two decimal places.
func RoundVolume(m3 float64) float64 {
	return math.Round(m3*100) / 100
}

// LaborHoursFromMinutes converts labor minutes to billable hours: rounded to
// the nearest quarter hour, never less than one full hour.
func LaborHoursFromMinutes(minutes int) float64 {
	hours := math.Round(float64(minutes)/60*4) / 4
	return math.Max(1, hours)
}

// CeilToGrid rounds value up to the next multiple of grid.
// CeilToGrid(150, 60) == 180; already-aligned values are unchanged.
func CeilToGrid(value, grid int) int {
	if grid <= 0 {
		return value
	}
	return (value + grid - 1) / grid * grid
}

// Clamp bounds v to [min, max].
func Clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}
