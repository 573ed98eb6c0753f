package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client fetches current conditions and forecasts through the relay.
// Both calls are single-shot: no retries, no local timeout beyond the
// injected http.Client's own.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a weather client against the given relay base URL.
func NewClient(client *http.Client, baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// Current fetches the present conditions for a location in the given units.
func (c *Client) Current(ctx context.Context, loc Location, units UnitSystem) (CurrentConditions, error) {
	var payload struct {
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}

	if err := c.fetch(ctx, "current weather", "/weather", loc, units, &payload); err != nil {
		return CurrentConditions{}, err
	}

	cond := CurrentConditions{
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
	}
	if len(payload.Weather) > 0 {
		cond.Description = payload.Weather[0].Description
		cond.IconID = payload.Weather[0].Icon
	}
	return cond, nil
}

// Forecast fetches the 5-day/3-hour forecast series for a location.
func (c *Client) Forecast(ctx context.Context, loc Location, units UnitSystem) ([]ForecastEntry, error) {
	var payload struct {
		List []struct {
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				Icon string `json:"icon"`
				Main string `json:"main"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := c.fetch(ctx, "forecast", "/forecast", loc, units, &payload); err != nil {
		return nil, err
	}

	entries := make([]ForecastEntry, 0, len(payload.List))
	for _, item := range payload.List {
		entry := ForecastEntry{
			Timestamp:   item.DtTxt,
			Temperature: item.Main.Temp,
		}
		if len(item.Weather) > 0 {
			entry.ConditionMain = item.Weather[0].Main
			entry.IconID = item.Weather[0].Icon
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *Client) fetch(ctx context.Context, op, path string, loc Location, units UnitSystem, out any) error {
	u := fmt.Sprintf("%s%s?lat=%f&lon=%f&units=%s", c.baseURL, path, loc.Lat, loc.Lon, units)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &TransportError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return nil
}
