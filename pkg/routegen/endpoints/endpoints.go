package endpoints

import (
	"context"
	"time"

	"github.com/ColinToft/OutAndBack/pkg/routegen"
	"github.com/go-kit/kit/endpoint"
)

type Set struct {
	GenerateEndpoint   endpoint.Endpoint
	GPXEndpoint        endpoint.Endpoint
	ResetCacheEndpoint endpoint.Endpoint
	StatusEndpoint     endpoint.Endpoint
}

func NewEndpointSet(svc routegen.Service) Set {
	return Set{
		GenerateEndpoint:   MakeGenerateEndpoint(svc),
		GPXEndpoint:        MakeGPXEndpoint(svc),
		ResetCacheEndpoint: MakeResetCacheEndpoint(svc),
		StatusEndpoint:     MakeStatusEndpoint(svc),
	}
}

// MakeGenerateEndpoint returns the route itself as the response.
func MakeGenerateEndpoint(svc routegen.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(GenerationRequest)
		route, err := svc.GenerateRoute(ctx, req.toService())
		if err != nil {
			return nil, err
		}
		return route, nil
	}
}

func MakeGPXEndpoint(svc routegen.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(GenerationRequest)
		route, err := svc.GenerateRoute(ctx, req.toService())
		if err != nil {
			return nil, err
		}
		return GPXResponse{Content: routegen.ExportGPX(route)}, nil
	}
}

// MakeResetCacheEndpoint always succeeds.
func MakeResetCacheEndpoint(svc routegen.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		svc.ResetCache(ctx)
		return ResetCacheResponse{
			Message:   "Route cache has been reset",
			Success:   true,
			Timestamp: time.Now().UnixMilli(),
		}, nil
	}
}

func MakeStatusEndpoint(svc routegen.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		return svc.Status(ctx), nil
	}
}
