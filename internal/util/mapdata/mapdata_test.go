package mapdata

import (
	"encoding/json"
	"testing"

	"github.com/ColinToft/OutAndBack/internal/util/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const isochroneBody = `{
  "type": "FeatureCollection",
  "bbox": [-0.15, 51.49, -0.10, 51.52],
  "features": [{
    "type": "Feature",
    "properties": {"group_index": 0, "value": 4000.0, "center": [-0.1278, 51.5074]},
    "geometry": {
      "type": "Polygon",
      "coordinates": [[[-0.15, 51.50], [-0.12, 51.52], [-0.10, 51.50], [-0.12, 51.49], [-0.15, 51.50]]]
    }
  }],
  "metadata": {"service": "isochrones"}
}`

func TestBoundaryPoints(t *testing.T) {
	points, err := BoundaryPoints([]byte(isochroneBody))
	require.NoError(t, err)

	// The closing vertex repeats the first and is dropped
	assert.Equal(t, []geo.Coordinate{
		{Lat: 51.50, Lon: -0.15},
		{Lat: 51.52, Lon: -0.12},
		{Lat: 51.50, Lon: -0.10},
		{Lat: 51.49, Lon: -0.12},
	}, points)
}

func TestBoundaryPointsMultiPolygon(t *testing.T) {
	body := `{"type":"FeatureCollection","features":[
	  {"type":"Feature","properties":{},"geometry":{"type":"MultiPolygon","coordinates":[[[[1,2],[3,4],[1,2]]],[[[5,6],[3,4]]]]}},
	  {"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[5,6],[7,8]]]}}
	]}`

	points, err := BoundaryPoints([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, []geo.Coordinate{{Lat: 2, Lon: 1}, {Lat: 4, Lon: 3}, {Lat: 6, Lon: 5}, {Lat: 8, Lon: 7}}, points)
}

func TestBoundaryPointsEmpty(t *testing.T) {
	points, err := BoundaryPoints([]byte(`{"type":"FeatureCollection","features":[]}`))
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestBoundaryPointsMalformed(t *testing.T) {
	_, err := BoundaryPoints([]byte(`{"error": "quota exceeded"}`))
	assert.Error(t, err)

	_, err = BoundaryPoints([]byte(`not json`))
	assert.Error(t, err)
}

func TestPathPoints(t *testing.T) {
	body := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"summary":{"distance":2500}},
	  "geometry":{"type":"LineString","coordinates":[[-0.1278,51.5074],[-0.1270,51.5080],[-0.1200,51.5200]]}}]}`

	path, err := PathPoints([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, []geo.Coordinate{
		{Lat: 51.5074, Lon: -0.1278},
		{Lat: 51.5080, Lon: -0.1270},
		{Lat: 51.5200, Lon: -0.1200},
	}, path)
}

func TestPathPointsErrors(t *testing.T) {
	_, err := PathPoints([]byte(`{"type":"FeatureCollection","features":[]}`))
	assert.Error(t, err)

	_, err = PathPoints([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,2]}}]}`))
	assert.Error(t, err)
}

func TestRequestBodies(t *testing.T) {
	origin := geo.Coordinate{Lat: 51.5074, Lon: -0.1278}

	b, err := json.Marshal(IsochroneRequest{Locations: []Position{PositionOf(origin)}, Range: []int{4000}, RangeType: "distance"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"locations":[[-0.1278,51.5074]],"range":[4000],"range_type":"distance"}`, string(b))

	b, err = json.Marshal(DirectionsRequest{Coordinates: []Position{PositionOf(origin), {1, 2}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"coordinates":[[-0.1278,51.5074],[1,2]]}`, string(b))
}
