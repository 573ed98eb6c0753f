package session

import (
	"context"
	"errors"

	"github.com/skycastlabs/skycast/internal/weather"
)

// View is the rendering collaborator. The session owns all lookup state and
// pushes results into it; implementations only draw. Reset is called at the
// start of every user-initiated action to clear prior errors and hide stale
// results. Conditions and forecast outcomes land in separate regions so a
// failure in one never overwrites the other.
type View interface {
	Reset()
	ShowConditions(loc weather.Location, cond weather.CurrentConditions, units weather.UnitSystem)
	ShowForecast(days []weather.DailySummary, units weather.UnitSystem)
	ShowRecent(locations []weather.Location)
	ApplyTheme(theme weather.Theme)
	SetSearchError(msg string)
	SetConditionsError(msg string)
	SetForecastError(msg string)
}

// ChartSink consumes the labeled midday temperature series. The charting
// widget behind it is a black box.
type ChartSink interface {
	Plot(points []weather.ChartPoint, units weather.UnitSystem)
}

var (
	// ErrPermissionDenied is returned by a Geolocator when the user refused
	// the position request.
	ErrPermissionDenied = errors.New("geolocation permission denied")

	// ErrUnsupported is returned when the host has no geolocation capability.
	ErrUnsupported = errors.New("geolocation not supported")
)

// Geolocator is the host-supplied position capability.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (lat, lon float64, err error)
}
