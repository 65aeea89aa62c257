package routegen

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/metrics"
)

// InstrumentingMiddleware counts calls and records their latency, labelled by method and error.
func InstrumentingMiddleware(requestCount metrics.Counter, requestLatency metrics.Histogram) Middleware {
	return func(next Service) Service {
		return &instrumentingMiddleware{
			requestCount:   requestCount,
			requestLatency: requestLatency,
			next:           next,
		}
	}
}

type instrumentingMiddleware struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	next           Service
}

func (mw *instrumentingMiddleware) observe(method string, err error, begin time.Time) {
	lvs := []string{"method", method, "error", fmt.Sprint(err != nil)}
	mw.requestCount.With(lvs...).Add(1)
	mw.requestLatency.With(lvs...).Observe(time.Since(begin).Seconds())
}

func (mw *instrumentingMiddleware) GenerateRoute(ctx context.Context, req GenerateRequest) (r Route, err error) {
	defer func(begin time.Time) { mw.observe("GenerateRoute", err, begin) }(time.Now())
	return mw.next.GenerateRoute(ctx, req)
}

func (mw *instrumentingMiddleware) ResetCache(ctx context.Context) {
	defer func(begin time.Time) { mw.observe("ResetCache", nil, begin) }(time.Now())
	mw.next.ResetCache(ctx)
}

func (mw *instrumentingMiddleware) Status(ctx context.Context) Status {
	return mw.next.Status(ctx)
}
