package main

// The code to start and stop the HTTP server.

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ColinToft/OutAndBack/internal/util/config"
	"github.com/ColinToft/OutAndBack/pkg/mapdata"
	"github.com/ColinToft/OutAndBack/pkg/routegen"
	"github.com/ColinToft/OutAndBack/pkg/routegen/endpoints"
	"github.com/ColinToft/OutAndBack/pkg/routegen/transport"

	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load(".env")

	var logger log.Logger
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	cfg, err := config.Load()
	if err != nil {
		level.Error(logger).Log("during", "Load", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, allowLevel(cfg.Log.Level))

	if cfg.OpenRoute.APIKey == "" {
		level.Warn(logger).Log("msg", "no openroute API key configured, upstream calls will be rejected")
	}

	fieldKeys := []string{"method", "error"}
	requestCount := kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: "outandback",
		Subsystem: "routegen",
		Name:      "request_count",
		Help:      "Number of requests received.",
	}, fieldKeys)
	requestLatency := kitprometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Namespace: "outandback",
		Subsystem: "routegen",
		Name:      "request_latency_seconds",
		Help:      "Total duration of requests in seconds.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, fieldKeys)

	maps := mapdata.NewClient(
		cfg.OpenRoute.BaseURL,
		cfg.OpenRoute.APIKey,
		mapdata.WithProfile(cfg.OpenRoute.Profile),
		mapdata.WithTimeout(cfg.OpenRoute.Timeout),
		mapdata.WithLogger(log.With(logger, "component", "mapdata")),
	)

	var service routegen.Service
	{
		service = routegen.NewService(
			maps,
			routegen.WithCache(routegen.NewRouteCache(cfg.Cache.MaxVariants)),
			routegen.WithKeyPrecision(cfg.Cache.KeyPrecision),
			routegen.WithLogger(log.With(logger, "component", "routegen")),
		)
		service = routegen.LoggingMiddleware(log.With(logger, "component", "routegen"))(service)
		service = routegen.InstrumentingMiddleware(requestCount, requestLatency)(service)
	}

	var (
		endpoints = endpoints.NewEndpointSet(service)
		mux       = http.NewServeMux()
	)
	mux.Handle("/", transport.NewHTTPHandler(endpoints, cfg.Server.BasePath, log.With(logger, "transport", "HTTP")))
	mux.Handle("GET /metrics", promhttp.Handler())

	httpAddr := cfg.Server.Addr()
	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		level.Error(logger).Log("transport", "HTTP", "during", "Listen", "err", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		level.Info(logger).Log("transport", "HTTP", "addr", httpAddr)
		err := httpServer.Serve(httpListener)
		if err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("transport", "HTTP", "during", "Serve", "err", err)
		}
	}()

	// Wait for an interrupt signal to stop the server.
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	level.Info(logger).Log("signal", sig)

	// Stop the server gracefully, giving in-flight generations time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	err = httpServer.Shutdown(ctx)
	if err != nil {
		level.Error(logger).Log("transport", "HTTP", "during", "Shutdown", "err", err)
	}

	level.Info(logger).Log("transport", "HTTP", "status", "stopped")
}

func allowLevel(name string) level.Option {
	switch strings.ToLower(name) {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
