package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean earth radius used for all great-circle distances.
const EarthRadiusKm = 6371.0

// A Coordinate is a point on the earth in degrees.
// It is comparable, so it can be used directly as a map key.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

// Valid reports whether the latitude is in [-90, 90] and the longitude in [-180, 180].
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%f, %f)", c.Lat, c.Lon)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceKm returns the haversine distance between a and b in kilometres.
func DistanceKm(a, b Coordinate) float64 {
	// Convert to radians
	aLat := toRadians(a.Lat)
	bLat := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(aLat)*math.Cos(bLat)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// PathLengthMeters sums the great-circle length of every consecutive pair in path.
func PathLengthMeters(path []Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += DistanceKm(path[i-1], path[i]) * 1000
	}
	return total
}

// Sector buckets the direction from origin to p into one of n compass sectors.
// The angle atan2(dLon, dLat) in [-pi, pi] is scaled onto [0, n] and rounded,
// so both ends of the range land in sector 0.
func Sector(origin, p Coordinate, n int) int {
	angle := math.Atan2(p.Lon-origin.Lon, p.Lat-origin.Lat)
	return int(math.Round((angle+math.Pi)/(2*math.Pi)*float64(n))) % n
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
