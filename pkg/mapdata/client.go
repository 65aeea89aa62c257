package mapdata

// Map data service implementation backed by openrouteservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ColinToft/OutAndBack/internal/util/errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	DefaultBaseURL = "https://api.openrouteservice.org"
	DefaultProfile = "foot-walking"
	DefaultTimeout = 30 * time.Second

	// The most of an error body that is copied into an error message
	maxErrorBody = 512
)

type Client struct {
	baseURL    string
	apiKey     string
	profile    string
	httpClient *http.Client
	timeout    time.Duration
	logger     log.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client. Its own Timeout is kept unless
// WithTimeout is also given.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithProfile(profile string) Option {
	return func(cl *Client) { cl.profile = profile }
}

func WithLogger(logger log.Logger) Option {
	return func(cl *Client) { cl.logger = logger }
}

// WithTimeout bounds every upstream call. The default is DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.timeout = d }
}

// NewClient creates an openrouteservice client for baseURL authorised by apiKey.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		profile: DefaultProfile,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.httpClient == nil:
		timeout := c.timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	case c.timeout > 0:
		// Copy so the caller's client is left alone
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// post sends body as JSON to path and returns the response body of a 2xx answer.
// Every failure, including a timeout, is an upstream error.
func (c *Client) post(ctx context.Context, api, path string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", api, err)
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Upstream(api+" request failed", err)
	}
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "application/json, application/geo+json")
	if c.apiKey != "" {
		r.Header.Set("Authorization", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(r)
	if err != nil {
		level.Warn(c.logger).Log("api", api, "during", "Do", "err", err)
		if os.IsTimeout(err) || ctx.Err() != nil {
			return nil, errors.Upstream(api+" request timed out", err)
		}
		return nil, errors.Upstream(api+" request failed", err)
	}
	defer resp.Body.Close()

	// Read the response body
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Upstream(api+" response could not be read", err)
	}

	level.Debug(c.logger).Log("api", api, "status", resp.StatusCode, "bytes", len(respBody), "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(respBody)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, errors.Upstream(fmt.Sprintf("%s API error (%d): %s", api, resp.StatusCode, snippet), nil)
	}

	return respBody, nil
}

var logger log.Logger

func init() {
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
}
