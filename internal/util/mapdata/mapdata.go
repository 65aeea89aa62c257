package mapdata

import (
	"fmt"

	"github.com/ColinToft/OutAndBack/internal/util/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Positions are [lon, lat] pairs, the same order openrouteservice and GeoJSON use.
type Position [2]float64

func PositionOf(c geo.Coordinate) Position {
	return Position{c.Lon, c.Lat}
}

// IsochroneRequest is the body of an isochrones query
type IsochroneRequest struct {
	Locations []Position `json:"locations"`
	Range     []int      `json:"range"`
	RangeType string     `json:"range_type"`
}

// DirectionsRequest is the body of a directions query
type DirectionsRequest struct {
	Coordinates []Position `json:"coordinates"`
}

// A PointSet collects coordinates in first-seen order, dropping exact duplicates.
type PointSet struct {
	seen   map[geo.Coordinate]struct{}
	points []geo.Coordinate
}

func NewPointSet() *PointSet {
	return &PointSet{seen: make(map[geo.Coordinate]struct{})}
}

// Add adds c unless an identical coordinate is already in the set.
func (s *PointSet) Add(c geo.Coordinate) {
	if _, ok := s.seen[c]; ok {
		return
	}
	s.seen[c] = struct{}{}
	s.points = append(s.points, c)
}

func (s *PointSet) Len() int {
	return len(s.points)
}

// Points returns the coordinates in the order they were first added.
func (s *PointSet) Points() []geo.Coordinate {
	return s.points
}

func toCoordinate(p orb.Point) geo.Coordinate {
	return geo.Coordinate{Lat: p.Lat(), Lon: p.Lon()}
}

func addPoints(s *PointSet, points []orb.Point) {
	for _, p := range points {
		s.Add(toCoordinate(p))
	}
}

// BoundaryPoints decodes an isochrone feature collection and returns every
// vertex of every returned geometry, deduplicated.
func BoundaryPoints(body []byte) ([]geo.Coordinate, error) {
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, err
	}

	set := NewPointSet()
	for _, feature := range fc.Features {
		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			for _, ring := range g {
				addPoints(set, ring)
			}
		case orb.MultiPolygon:
			for _, polygon := range g {
				for _, ring := range polygon {
					addPoints(set, ring)
				}
			}
		case orb.LineString:
			addPoints(set, g)
		case orb.Point:
			set.Add(toCoordinate(g))
		case nil:
			return nil, fmt.Errorf("feature without geometry")
		default:
			return nil, fmt.Errorf("unexpected geometry type %s", g.GeoJSONType())
		}
	}

	return set.Points(), nil
}

// PathPoints decodes a directions feature collection and returns the line of its first feature.
func PathPoints(body []byte) ([]geo.Coordinate, error) {
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, err
	}

	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("no features in directions response")
	}

	line, ok := fc.Features[0].Geometry.(orb.LineString)
	if !ok {
		if fc.Features[0].Geometry == nil {
			return nil, fmt.Errorf("first feature has no geometry")
		}
		return nil, fmt.Errorf("unexpected geometry type %s", fc.Features[0].Geometry.GeoJSONType())
	}

	path := make([]geo.Coordinate, len(line))
	for i, p := range line {
		path[i] = toCoordinate(p)
	}
	return path, nil
}
