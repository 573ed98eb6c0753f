// Package upstream implements the relay's server-side client for the
// OpenWeatherMap-style provider. It injects the API credential, shields the
// provider with a circuit breaker and bounded backoff, and hands the
// provider's JSON back untouched for verbatim forwarding.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

const (
	defaultBaseURL = "https://api.openweathermap.org"

	weatherPath    = "/data/2.5/weather"
	forecastPath   = "/data/2.5/forecast"
	geoDirectPath  = "/geo/1.0/direct"
	geoReversePath = "/geo/1.0/reverse"
)

// Client talks to the weather/geocoding provider.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	backoff    backoff
	circuit    *gobreaker.CircuitBreaker
}

// New creates a provider client.
func New(httpClient *http.Client, apiKey string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
		backoff: backoff{
			maxRetries:      3,
			initialInterval: 500 * time.Millisecond,
			maxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

// SetBaseURL overrides the provider base URL, used by tests.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

// CurrentWeather fetches current conditions for a coordinate pair and
// returns the provider's JSON body verbatim.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon, units string) ([]byte, error) {
	values := url.Values{}
	values.Set("lat", lat)
	values.Set("lon", lon)
	values.Set("units", units)
	return c.fetch(ctx, weatherPath, values)
}

// Forecast fetches the 5-day/3-hour forecast, JSON verbatim.
func (c *Client) Forecast(ctx context.Context, lat, lon, units string) ([]byte, error) {
	values := url.Values{}
	values.Set("lat", lat)
	values.Set("lon", lon)
	values.Set("units", units)
	return c.fetch(ctx, forecastPath, values)
}

// GeocodeDirect forward-geocodes a free-text query, JSON verbatim.
func (c *Client) GeocodeDirect(ctx context.Context, query string, limit int) ([]byte, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", fmt.Sprintf("%d", limit))
	return c.fetch(ctx, geoDirectPath, values)
}

// GeocodeReverse reverse-geocodes a coordinate pair, JSON verbatim.
func (c *Client) GeocodeReverse(ctx context.Context, lat, lon string, limit int) ([]byte, error) {
	values := url.Values{}
	values.Set("lat", lat)
	values.Set("lon", lon)
	values.Set("limit", fmt.Sprintf("%d", limit))
	return c.fetch(ctx, geoReversePath, values)
}

func (c *Client) fetch(ctx context.Context, path string, values url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("provider api key is not configured")
	}
	values.Set("appid", c.apiKey)

	resp, err := c.get(ctx, fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", errBadStatus, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
