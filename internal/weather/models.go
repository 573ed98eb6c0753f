package weather

// UnitSystem selects the measurement system used for API queries and display.
type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

// Symbol returns the temperature symbol for display.
func (u UnitSystem) Symbol() string {
	if u == UnitsImperial {
		return "°F"
	}
	return "°C"
}

// ParseUnitSystem normalizes a stored or user-supplied unit string,
// falling back to metric for anything unrecognized.
func ParseUnitSystem(s string) UnitSystem {
	if s == string(UnitsImperial) {
		return UnitsImperial
	}
	return UnitsMetric
}

// Theme is the UI color scheme choice.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme normalizes a stored theme string, falling back to light.
func ParseTheme(s string) Theme {
	if s == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

// Location is a resolved place. Name carries the display form
// ("City, State, Country"); Lat/Lon drive all weather queries.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// DisplayName builds the canonical display form, omitting an absent state.
func DisplayName(name, state, country string) string {
	if state != "" {
		return name + ", " + state + ", " + country
	}
	return name + ", " + country
}

// CurrentConditions is the latest observed weather for a location.
// Held only as the most recent successful fetch, never persisted.
type CurrentConditions struct {
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	IconID      string  `json:"iconId"`
}

// ForecastEntry is one 3-hour forecast slot as delivered upstream.
// Timestamp keeps the provider's "YYYY-MM-DD HH:MM:SS" local-time form.
type ForecastEntry struct {
	Timestamp     string  `json:"timestamp"`
	Temperature   float64 `json:"temperature"`
	ConditionMain string  `json:"conditionMain"`
	IconID        string  `json:"iconId"`
}

// DailySummary is the per-calendar-day reduction of forecast entries.
type DailySummary struct {
	Date               string  `json:"date"`
	MinTemp            float64 `json:"minTemp"`
	MaxTemp            float64 `json:"maxTemp"`
	RepresentativeIcon string  `json:"representativeIcon"`
	RepresentativeDesc string  `json:"representativeDesc"`
}

// ChartPoint is one labeled sample handed to the charting sink.
type ChartPoint struct {
	Label       string  `json:"label"`
	Temperature float64 `json:"temperature"`
}
