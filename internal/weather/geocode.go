package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultSearchLimit bounds forward geocode results when the caller does not care.
const DefaultSearchLimit = 5

// GeocodeClient resolves free-text city queries and coordinate pairs to named
// locations through the relay's geocoding endpoints.
type GeocodeClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeocodeClient creates a geocoding client against the given relay base URL.
func NewGeocodeClient(client *http.Client, baseURL string) *GeocodeClient {
	return &GeocodeClient{
		baseURL:    baseURL,
		httpClient: client,
	}
}

type geoRecord struct {
	Name    string  `json:"name"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Search performs a forward geocode of a free-text query. Zero upstream
// results surface as ErrNotFound so callers can distinguish "no such city"
// from transport failure.
func (c *GeocodeClient) Search(ctx context.Context, query string, limit int) ([]Location, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", fmt.Sprintf("%d", limit))

	records, err := c.fetch(ctx, "geocode search", "/geo/direct?"+values.Encode())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	locations := make([]Location, len(records))
	for i, r := range records {
		locations[i] = Location{
			Name: DisplayName(r.Name, r.State, r.Country),
			Lat:  r.Lat,
			Lon:  r.Lon,
		}
	}
	return locations, nil
}

// Reverse resolves a coordinate pair to the best single named location.
func (c *GeocodeClient) Reverse(ctx context.Context, lat, lon float64) (Location, error) {
	path := fmt.Sprintf("/geo/reverse?lat=%f&lon=%f&limit=1", lat, lon)

	records, err := c.fetch(ctx, "reverse geocode", path)
	if err != nil {
		return Location{}, err
	}
	if len(records) == 0 {
		return Location{}, ErrNotFound
	}

	r := records[0]
	return Location{
		Name: DisplayName(r.Name, r.State, r.Country),
		Lat:  r.Lat,
		Lon:  r.Lon,
	}, nil
}

func (c *GeocodeClient) fetch(ctx context.Context, op, path string) ([]geoRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: op, Status: resp.StatusCode}
	}

	var records []geoRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return records, nil
}
