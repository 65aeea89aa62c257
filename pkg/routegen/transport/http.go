package transport

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/ColinToft/OutAndBack/internal/util/errors"
	"github.com/ColinToft/OutAndBack/pkg/routegen"
	"github.com/ColinToft/OutAndBack/pkg/routegen/endpoints"

	"github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/google/uuid"
)

// NewHTTPHandler mounts the route endpoints under basePath, e.g. "/api".
// A nil logger logs to stderr.
func NewHTTPHandler(ep endpoints.Set, basePath string, logger log.Logger) http.Handler {
	if logger == nil {
		logger = defaultLogger
	}

	options := []httptransport.ServerOption{
		httptransport.ServerBefore(withRequestID),
		httptransport.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
		httptransport.ServerErrorEncoder(encodeError),
	}

	m := http.NewServeMux()

	m.Handle("POST "+basePath+"/routes", httptransport.NewServer(
		ep.GenerateEndpoint,
		decodeGenerateRequest,
		encodeRouteResponse,
		options...,
	))
	m.Handle("POST "+basePath+"/routes/gpx", httptransport.NewServer(
		ep.GPXEndpoint,
		decodeGenerateRequest,
		encodeGPXResponse,
		options...,
	))
	m.Handle("POST "+basePath+"/routes/reset-cache", httptransport.NewServer(
		ep.ResetCacheEndpoint,
		decodeEmptyRequest,
		encodeJSONResponse,
		options...,
	))
	m.Handle("GET "+basePath+"/routes/status", httptransport.NewServer(
		ep.StatusEndpoint,
		decodeEmptyRequest,
		encodeJSONResponse,
		options...,
	))

	return allowCORS(m)
}

// allowCORS lets the browser frontend call the API from another origin.
func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withRequestID(ctx context.Context, r *http.Request) context.Context {
	id := r.Header.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	return routegen.ContextWithRequestID(ctx, id)
}

func decodeGenerateRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req endpoints.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.Invalid("Request cannot be empty")
		}
		return nil, errors.Invalid("Request body is not valid JSON: " + err.Error())
	}
	return req, nil
}

func decodeEmptyRequest(_ context.Context, _ *http.Request) (interface{}, error) {
	return nil, nil
}

func encodeJSONResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

// encodeRouteResponse writes the route in its JSON export form.
func encodeRouteResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	body, err := routegen.ExportJSON(response.(routegen.Route))
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, err = io.WriteString(w, body+"\n")
	return err
}

func encodeGPXResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	gpx := response.(endpoints.GPXResponse)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="route.gpx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(gpx.Content)))
	_, err := io.WriteString(w, gpx.Content)
	return err
}

func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	status := http.StatusInternalServerError
	title := "Route generation failed"
	if stderrors.Is(err, errors.ErrInvalidArgument) {
		status = http.StatusBadRequest
		title = "Invalid request parameters"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(endpoints.ErrorResponse{
		Success:   false,
		Error:     title,
		Details:   errors.Detail(err),
		Timestamp: time.Now().UnixMilli(),
	})
}

var defaultLogger log.Logger

func init() {
	defaultLogger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	defaultLogger = log.With(defaultLogger, "ts", log.DefaultTimestampUTC)
}
