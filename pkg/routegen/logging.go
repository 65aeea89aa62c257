package routegen

import (
	"context"
	"time"

	"github.com/go-kit/log"
)

type requestIDKey struct{}

// ContextWithRequestID attaches a request id that the logging middleware reports.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LoggingMiddleware logs every call with its duration and outcome.
func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next Service) Service {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

type loggingMiddleware struct {
	next   Service
	logger log.Logger
}

func (mw *loggingMiddleware) GenerateRoute(ctx context.Context, req GenerateRequest) (r Route, err error) {
	defer func(begin time.Time) {
		mw.logger.Log(
			"method", "GenerateRoute",
			"request_id", RequestIDFromContext(ctx),
			"lat", req.Origin.Lat,
			"lon", req.Origin.Lon,
			"distance_km", req.DistanceKm,
			"points", len(r.Coordinates),
			"actual_km", r.ActualDistanceKm,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return mw.next.GenerateRoute(ctx, req)
}

func (mw *loggingMiddleware) ResetCache(ctx context.Context) {
	defer func(begin time.Time) {
		mw.logger.Log("method", "ResetCache", "request_id", RequestIDFromContext(ctx), "took", time.Since(begin))
	}(time.Now())
	mw.next.ResetCache(ctx)
}

func (mw *loggingMiddleware) Status(ctx context.Context) Status {
	return mw.next.Status(ctx)
}
