package mapdata

import (
	"context"

	"github.com/ColinToft/OutAndBack/internal/util/geo"
)

// Service answers the two questions route generation asks of the map:
// which points can be reached from an origin, and how to walk between two points.
type Service interface {
	// ReachablePoints returns the boundary of the area reachable from origin
	// when walking a little further than targetLegKm.
	ReachablePoints(ctx context.Context, origin geo.Coordinate, targetLegKm float64) ([]geo.Coordinate, error)

	// Path returns the one-way walking path from start to end.
	Path(ctx context.Context, start, end geo.Coordinate) ([]geo.Coordinate, error)
}
