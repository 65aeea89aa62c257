package mapdata

import (
	"context"
	"math"

	"github.com/ColinToft/OutAndBack/internal/util/errors"
	"github.com/ColinToft/OutAndBack/internal/util/geo"
	"github.com/ColinToft/OutAndBack/internal/util/mapdata"
	"github.com/go-kit/log/level"
)

// RangeOvershoot widens the isochrone beyond the target leg so that the
// reachable polygon comfortably contains points at the target distance.
const RangeOvershoot = 1.6

// IsochroneRangeMeters is the distance budget requested for a leg of targetLegKm.
func IsochroneRangeMeters(targetLegKm float64) int {
	return int(math.Round(targetLegKm * 1000 * RangeOvershoot))
}

// ReachablePoints queries the isochrones API once and returns the deduplicated boundary points.
func (c *Client) ReachablePoints(ctx context.Context, origin geo.Coordinate, targetLegKm float64) ([]geo.Coordinate, error) {
	req := mapdata.IsochroneRequest{
		Locations: []mapdata.Position{mapdata.PositionOf(origin)},
		Range:     []int{IsochroneRangeMeters(targetLegKm)},
		RangeType: "distance",
	}

	body, err := c.post(ctx, "isochrones", "/v2/isochrones/"+c.profile, req)
	if err != nil {
		return nil, err
	}

	points, err := mapdata.BoundaryPoints(body)
	if err != nil {
		return nil, errors.Upstream("isochrones response could not be parsed", err)
	}

	if len(points) == 0 {
		return nil, errors.NoReachable("no reachable points from isochrones API")
	}

	level.Debug(c.logger).Log("api", "isochrones", "origin", origin, "range", req.Range[0], "points", len(points))

	return points, nil
}
