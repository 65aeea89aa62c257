package routegen

import (
	"context"
	"math"
	"sync"

	"github.com/ColinToft/OutAndBack/internal/util/geo"
)

var kmPerDegree = geo.EarthRadiusKm * math.Pi / 180

// offset returns the point d km from origin in one of the four compass directions.
// Exact for an origin on the equator.
func offset(origin geo.Coordinate, direction string, d float64) geo.Coordinate {
	deg := d / kmPerDegree
	switch direction {
	case "north":
		return geo.Coordinate{Lat: origin.Lat + deg, Lon: origin.Lon}
	case "south":
		return geo.Coordinate{Lat: origin.Lat - deg, Lon: origin.Lon}
	case "east":
		return geo.Coordinate{Lat: origin.Lat, Lon: origin.Lon + deg}
	default:
		return geo.Coordinate{Lat: origin.Lat, Lon: origin.Lon - deg}
	}
}

// fakeMaps stands in for openrouteservice.
// Paths are straight lines through their midpoint.
type fakeMaps struct {
	mu sync.Mutex

	points   []geo.Coordinate
	reachErr error
	pathErr  error

	reachCalls int
	pathCalls  int
	lastLegKm  float64
}

func (f *fakeMaps) ReachablePoints(_ context.Context, _ geo.Coordinate, targetLegKm float64) ([]geo.Coordinate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reachCalls++
	f.lastLegKm = targetLegKm
	if f.reachErr != nil {
		return nil, f.reachErr
	}
	return f.points, nil
}

func (f *fakeMaps) Path(_ context.Context, start, end geo.Coordinate) ([]geo.Coordinate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pathCalls++
	if f.pathErr != nil {
		return nil, f.pathErr
	}
	mid := geo.Coordinate{Lat: (start.Lat + end.Lat) / 2, Lon: (start.Lon + end.Lon) / 2}
	return []geo.Coordinate{start, mid, end}, nil
}

func (f *fakeMaps) calls() (reach, path int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reachCalls, f.pathCalls
}
