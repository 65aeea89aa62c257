package mapdata

import (
	"context"

	"github.com/ColinToft/OutAndBack/internal/util/errors"
	"github.com/ColinToft/OutAndBack/internal/util/geo"
	"github.com/ColinToft/OutAndBack/internal/util/mapdata"
)

// Path queries the directions API for the walking path from start to end.
func (c *Client) Path(ctx context.Context, start, end geo.Coordinate) ([]geo.Coordinate, error) {
	req := mapdata.DirectionsRequest{
		Coordinates: []mapdata.Position{mapdata.PositionOf(start), mapdata.PositionOf(end)},
	}

	body, err := c.post(ctx, "directions", "/v2/directions/"+c.profile+"/geojson", req)
	if err != nil {
		return nil, err
	}

	path, err := mapdata.PathPoints(body)
	if err != nil {
		return nil, errors.Upstream("directions response could not be parsed", err)
	}

	if len(path) < 2 {
		return nil, errors.Upstream("directions response contained fewer than two coordinates", nil)
	}

	return path, nil
}
