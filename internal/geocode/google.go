package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"eventkit/internal/services"
)

// ErrNoResults reports that the geocoding service found no match.
var ErrNoResults = errors.New("no geocoding results")

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocoder resolves a free-form query to a point.
type Geocoder interface {
	Lookup(ctx context.Context, query string) (Point, error)
}

type googleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location Point `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GoogleClient queries the Google Geocoding API.
type GoogleClient struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	minInterval time.Duration

	mu   sync.Mutex
	last time.Time
}

var _ Geocoder = (*GoogleClient)(nil)

// Option configures a GoogleClient.
type Option func(*GoogleClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *GoogleClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMinInterval spaces consecutive requests at least d apart.
func WithMinInterval(d time.Duration) Option {
	return func(c *GoogleClient) {
		if d >= 0 {
			c.minInterval = d
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *GoogleClient) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// NewGoogleClient creates a Geocoding API client.
func NewGoogleClient(apiKey, baseURL string, opts ...Option) (*GoogleClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("geocoding api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("geocoding base url required")
	}
	client := &GoogleClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Lookup geocodes query and returns the location of the first result.
func (c *GoogleClient) Lookup(ctx context.Context, query string) (Point, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Point{}, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/geocode/json")
	if err != nil {
		return Point{}, fmt.Errorf("parse geocode url: %w", err)
	}
	params := url.Values{}
	params.Set("address", query)
	params.Set("key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	if err := c.throttle(ctx); err != nil {
		return Point{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Point{}, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return Point{}, fmt.Errorf("%w: execute request (latency=%v): %w", services.ErrTransient, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return Point{}, fmt.Errorf("%w: geocode returned %d (latency=%v)", services.ErrTransient, resp.StatusCode, latency)
		}
		return Point{}, fmt.Errorf("geocode returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Point{}, fmt.Errorf("decode geocode response: %w", err)
	}

	switch payload.Status {
	case "OK":
		if len(payload.Results) == 0 {
			return Point{}, ErrNoResults
		}
		return payload.Results[0].Geometry.Location, nil
	case "ZERO_RESULTS":
		return Point{}, ErrNoResults
	default:
		msg := payload.Status
		if payload.ErrorMessage != "" {
			msg += ": " + payload.ErrorMessage
		}
		if payload.Status == "OVER_QUERY_LIMIT" || payload.Status == "UNKNOWN_ERROR" {
			return Point{}, fmt.Errorf("%w: geocode status %s", services.ErrTransient, msg)
		}
		return Point{}, fmt.Errorf("geocode status %s", msg)
	}
}

// throttle waits until minInterval has passed since the previous request.
func (c *GoogleClient) throttle(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.minInterval > 0 && !c.last.IsZero() {
		if err := sleepWithContext(ctx, c.minInterval-time.Since(c.last)); err != nil {
			return err
		}
	}
	c.last = time.Now()
	return nil
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
