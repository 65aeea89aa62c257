package routegen

// Route generation service implementation

import (
	"context"
	"math/rand"
	"os"
	"sync/atomic"

	"github.com/ColinToft/OutAndBack/internal/util/errors"
	"github.com/ColinToft/OutAndBack/internal/util/geo"
	"github.com/ColinToft/OutAndBack/pkg/mapdata"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type routeGenService struct {
	maps         mapdata.Service
	cache        *RouteCache
	keyPrecision int
	seeds        func() int64
	logger       log.Logger

	inProgress atomic.Int64
}

type ServiceOption func(*routeGenService)

// WithCache makes the service store routes in c.
func WithCache(c *RouteCache) ServiceOption {
	return func(s *routeGenService) { s.cache = c }
}

// WithKeyPrecision sets the number of decimal places cache keys are rounded to.
func WithKeyPrecision(places int) ServiceOption {
	return func(s *routeGenService) { s.keyPrecision = places }
}

// WithSeedSource sets where seeds come from for requests that do not carry one.
// The default is the process wide math/rand source.
func WithSeedSource(seeds func() int64) ServiceOption {
	return func(s *routeGenService) { s.seeds = seeds }
}

func WithLogger(logger log.Logger) ServiceOption {
	return func(s *routeGenService) { s.logger = logger }
}

// NewService creates a route generator that looks up reachability and paths in maps.
func NewService(maps mapdata.Service, opts ...ServiceOption) Service {
	s := &routeGenService{
		maps:         maps,
		keyPrecision: 6,
		seeds:        rand.Int63,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = NewRouteCache(DefaultMaxVariants)
	}
	return s
}

func (s *routeGenService) GenerateRoute(ctx context.Context, req GenerateRequest) (Route, error) {
	if err := req.Validate(); err != nil {
		return Route{}, err
	}

	key := NewCacheKey(req.Origin, req.DistanceKm, s.keyPrecision)

	return s.cache.GetOrGenerate(ctx, key, func(ctx context.Context) (Route, error) {
		seed := s.seeds()
		if req.Seed != nil {
			seed = *req.Seed
		}
		return s.generate(ctx, req.Origin, req.DistanceKm, seed)
	})
}

// generate builds one new route: reachable area, turnaround point, path, round trip.
func (s *routeGenService) generate(ctx context.Context, origin geo.Coordinate, distanceKm float64, seed int64) (Route, error) {
	s.inProgress.Add(1)
	defer s.inProgress.Add(-1)

	rng := rand.New(rand.NewSource(seed))
	targetLegKm := distanceKm / 2

	points, err := s.maps.ReachablePoints(ctx, origin, targetLegKm)
	if err != nil {
		return Route{}, err
	}
	if len(points) == 0 {
		return Route{}, errors.NoReachable("no reachable points from isochrones API")
	}

	turnaround, tier, err := SelectTurnaround(points, origin, targetLegKm, rng)
	if err != nil {
		return Route{}, err
	}
	if tier == TierFarthest {
		level.Warn(s.logger).Log("msg", "using farthest reachable point as fallback", "origin", origin, "target_leg_km", targetLegKm, "turnaround_km", turnaround.DistanceKm)
	}
	level.Debug(s.logger).Log("msg", "turnaround chosen", "seed", seed, "tier", tier, "sector", turnaround.Sector, "turnaround", turnaround.Point, "turnaround_km", turnaround.DistanceKm)

	path, err := s.maps.Path(ctx, origin, turnaround.Point)
	if err != nil {
		return Route{}, err
	}

	return AssembleRoute(path)
}

func (s *routeGenService) ResetCache(_ context.Context) {
	s.cache.Reset()
}

func (s *routeGenService) Status(_ context.Context) Status {
	return Status{
		Cache:                 s.cache.Status(),
		GenerationsInProgress: s.inProgress.Load(),
	}
}

var logger log.Logger

func init() {
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
}
