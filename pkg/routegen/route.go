package routegen

import (
	"github.com/ColinToft/OutAndBack/internal/util/errors"
	"github.com/ColinToft/OutAndBack/internal/util/geo"
)

// A Route is a final out-and-back route that can be shown to the user.
// The first and last coordinates are both the start of the outbound path.
// Routes are never modified after they are assembled.
type Route struct {
	Coordinates      []geo.Coordinate `json:"coordinates"`
	DistanceMeters   float64          `json:"distanceMeters"`
	ActualDistanceKm float64          `json:"actualDistanceKm"`
	Success          bool             `json:"success"`
}

// AssembleRoute turns a one-way path from the origin to the turnaround point
// into a round trip: the outbound path, followed by the outbound path reversed
// without its first element so the turnaround point is not repeated.
func AssembleRoute(outbound []geo.Coordinate) (Route, error) {
	if len(outbound) < 2 {
		return Route{}, errors.Upstream("path must contain at least two coordinates", nil)
	}

	full := make([]geo.Coordinate, 0, 2*len(outbound)-1)
	full = append(full, outbound...)
	for i := len(outbound) - 2; i >= 0; i-- {
		full = append(full, outbound[i])
	}

	meters := geo.PathLengthMeters(full)
	return Route{
		Coordinates:      full,
		DistanceMeters:   meters,
		ActualDistanceKm: meters / 1000,
		Success:          true,
	}, nil
}
