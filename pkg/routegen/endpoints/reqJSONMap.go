package endpoints

import (
	"github.com/ColinToft/OutAndBack/internal/util/geo"
	"github.com/ColinToft/OutAndBack/pkg/routegen"
)

// A request to generate an out-and-back route
type GenerationRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// The total length of the round trip
	DistanceKm float64 `json:"distanceKm"`

	// Optional, makes the generated variant reproducible
	Seed *int64 `json:"seed,omitempty"`
}

func (r GenerationRequest) toService() routegen.GenerateRequest {
	return routegen.GenerateRequest{
		Origin:     geo.Coordinate{Lat: r.Lat, Lon: r.Lon},
		DistanceKm: r.DistanceKm,
		Seed:       r.Seed,
	}
}

// A generated route rendered as a GPX document
type GPXResponse struct {
	Content string
}

type ResetCacheResponse struct {
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Timestamp int64  `json:"timestamp"`
}

// The body of every failed request
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Details   string `json:"details"`
	Timestamp int64  `json:"timestamp"`
}
