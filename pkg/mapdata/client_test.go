package mapdata

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/ColinToft/OutAndBack/internal/util/errors"
	"github.com/ColinToft/OutAndBack/internal/util/geo"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var london = geo.Coordinate{Lat: 51.5074, Lon: -0.1278}

func newTestClient(server *httptest.Server, opts ...Option) *Client {
	opts = append([]Option{WithHTTPClient(server.Client()), WithLogger(log.NewNopLogger())}, opts...)
	return NewClient(server.URL, "test-key", opts...)
}

func TestReachablePoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/isochrones/foot-walking", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []interface{}{[]interface{}{-0.1278, 51.5074}}, body["locations"])
		// 2.5 km leg with the 60% overshoot
		assert.Equal(t, []interface{}{4000.0}, body["range"])
		assert.Equal(t, "distance", body["range_type"])

		w.Header().Set("Content-Type", "application/geo+json")
		io.WriteString(w, `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},
		  "geometry":{"type":"Polygon","coordinates":[[[-0.15,51.50],[-0.12,51.52],[-0.15,51.50]]]}}]}`)
	}))
	defer server.Close()

	points, err := newTestClient(server).ReachablePoints(context.Background(), london, 2.5)
	require.NoError(t, err)
	assert.Equal(t, []geo.Coordinate{{Lat: 51.50, Lon: -0.15}, {Lat: 51.52, Lon: -0.12}}, points)
}

func TestReachablePointsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"type":"FeatureCollection","features":[]}`)
	}))
	defer server.Close()

	_, err := newTestClient(server).ReachablePoints(context.Background(), london, 2.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNoReachablePoints))
}

func TestReachablePointsUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error":"Access to this API has been disallowed"}`)
	}))
	defer server.Close()

	_, err := newTestClient(server).ReachablePoints(context.Background(), london, 2.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "disallowed")
}

func TestReachablePointsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>gateway</html>`)
	}))
	defer server.Close()

	_, err := newTestClient(server).ReachablePoints(context.Background(), london, 2.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
}

func TestTimeoutIsUpstream(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(server, WithTimeout(50*time.Millisecond))
	_, err := client.Path(context.Background(), london, geo.Coordinate{Lat: 51.52, Lon: -0.12})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
	assert.Contains(t, err.Error(), "timed out")
}

func TestClientTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewClient(DefaultBaseURL, "").httpClient.Timeout)

	caller := &http.Client{Timeout: time.Minute}
	before := NewClient(DefaultBaseURL, "", WithTimeout(time.Second), WithHTTPClient(caller))
	after := NewClient(DefaultBaseURL, "", WithHTTPClient(caller), WithTimeout(time.Second))

	assert.Equal(t, time.Second, before.httpClient.Timeout)
	assert.Equal(t, time.Second, after.httpClient.Timeout)
	assert.Equal(t, time.Minute, caller.Timeout)

	// Without WithTimeout the caller's client is used as is
	assert.Same(t, caller, NewClient(DefaultBaseURL, "", WithHTTPClient(caller)).httpClient)

	assert.Equal(t, time.Second, NewClient(DefaultBaseURL, "", WithHTTPClient(nil), WithTimeout(time.Second)).httpClient.Timeout)
}

func TestPath(t *testing.T) {
	end := geo.Coordinate{Lat: 51.52, Lon: -0.12}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/directions/foot-walking/geojson", r.URL.Path)

		var body map[string][][]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, [][]float64{{-0.1278, 51.5074}, {-0.12, 51.52}}, body["coordinates"])

		io.WriteString(w, `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},
		  "geometry":{"type":"LineString","coordinates":[[-0.1278,51.5074],[-0.125,51.51],[-0.12,51.52]]}}]}`)
	}))
	defer server.Close()

	path, err := newTestClient(server).Path(context.Background(), london, end)
	require.NoError(t, err)
	assert.Equal(t, []geo.Coordinate{london, {Lat: 51.51, Lon: -0.125}, end}, path)
}

func TestPathProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/directions/foot-hiking/geojson", r.URL.Path)
		io.WriteString(w, `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},
		  "geometry":{"type":"LineString","coordinates":[[0,0],[0,1]]}}]}`)
	}))
	defer server.Close()

	_, err := newTestClient(server, WithProfile("foot-hiking")).Path(context.Background(), geo.Coordinate{}, geo.Coordinate{Lat: 1})
	require.NoError(t, err)
}

func TestPathTooShort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},
		  "geometry":{"type":"LineString","coordinates":[[-0.1278,51.5074]]}}]}`)
	}))
	defer server.Close()

	_, err := newTestClient(server).Path(context.Background(), london, london)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
}

func TestIsochroneRangeMeters(t *testing.T) {
	assert.Equal(t, 4000, IsochroneRangeMeters(2.5))
	assert.Equal(t, 1600, IsochroneRangeMeters(1))
	assert.Equal(t, 40000, IsochroneRangeMeters(25))
}
