package routegen

import (
	"context"

	"github.com/ColinToft/OutAndBack/internal/util/errors"
	"github.com/ColinToft/OutAndBack/internal/util/geo"
)

// MaxDistanceKm is the longest round trip that can be requested.
const MaxDistanceKm = 50.0

// A GenerateRequest asks for an out-and-back route of DistanceKm starting at Origin.
// A nil Seed means a seed is drawn from the service's seed source.
type GenerateRequest struct {
	Origin     geo.Coordinate
	DistanceKm float64
	Seed       *int64
}

// Validate checks the request before anything is sent upstream.
func (r GenerateRequest) Validate() error {
	// Negated comparisons reject NaN as well
	if !(r.Origin.Lat >= -90 && r.Origin.Lat <= 90) {
		return errors.Invalid("Latitude must be between -90 and 90")
	}
	if !(r.Origin.Lon >= -180 && r.Origin.Lon <= 180) {
		return errors.Invalid("Longitude must be between -180 and 180")
	}
	if !(r.DistanceKm > 0) {
		return errors.Invalid("Distance must be greater than 0 km")
	}
	if r.DistanceKm > MaxDistanceKm {
		return errors.Invalid("Distance cannot exceed 50 km")
	}
	return nil
}

type Service interface {
	// GenerateRoute returns an out-and-back route, generating a new variant or
	// rotating through stored ones.
	GenerateRoute(ctx context.Context, req GenerateRequest) (Route, error)

	// ResetCache forgets every stored route.
	ResetCache(ctx context.Context)

	Status(ctx context.Context) Status
}

// Middleware decorates a Service.
type Middleware func(Service) Service
