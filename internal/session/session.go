package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/skycastlabs/skycast/internal/store"
	"github.com/skycastlabs/skycast/internal/weather"
)

// State tracks where the current lookup episode stands.
type State int

const (
	StateIdle State = iota
	StateResolving
	StateFetching
	StateDisplayed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateFetching:
		return "fetching"
	case StateDisplayed:
		return "displayed"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Geocoder resolves queries and coordinates to named locations.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]weather.Location, error)
	Reverse(ctx context.Context, lat, lon float64) (weather.Location, error)
}

// WeatherSource fetches current conditions and forecasts.
type WeatherSource interface {
	Current(ctx context.Context, loc weather.Location, units weather.UnitSystem) (weather.CurrentConditions, error)
	Forecast(ctx context.Context, loc weather.Location, units weather.UnitSystem) ([]weather.ForecastEntry, error)
}

// Session coordinates user actions into the geocoding and weather clients,
// owns the currently displayed location, and reconciles unit changes by
// replaying the last-initiated fetch. All view mutation is serialized under
// one mutex; in-flight requests are the only concurrency.
type Session struct {
	geocoder Geocoder
	source   WeatherSource
	prefs    *store.Preferences
	recent   *store.RecentLocations
	view     View
	chart    ChartSink
	locator  Geolocator

	mu    sync.Mutex
	state State
	// last is the location of the most recent fetch attempt, successful or
	// not. Unit changes replay against it so a failed fetch stays retryable.
	last *weather.Location
}

// Deps bundles the session's collaborators. Chart and Locator may be nil.
type Deps struct {
	Geocoder Geocoder
	Weather  WeatherSource
	Prefs    *store.Preferences
	Recent   *store.RecentLocations
	View     View
	Chart    ChartSink
	Locator  Geolocator
}

// New creates a session.
func New(deps Deps) *Session {
	return &Session{
		geocoder: deps.Geocoder,
		source:   deps.Weather,
		prefs:    deps.Prefs,
		recent:   deps.Recent,
		view:     deps.View,
		chart:    deps.Chart,
		locator:  deps.Locator,
		state:    StateIdle,
	}
}

// Start renders the persisted state and makes one silent geolocation
// attempt. Startup failures are suppressed; a user who has not granted
// permission should not see an error they never asked for.
func (s *Session) Start(ctx context.Context) {
	s.view.ApplyTheme(s.prefs.Theme())
	s.view.ShowRecent(s.recent.List())

	if s.locator == nil {
		return
	}
	lat, lon, err := s.locator.CurrentPosition(ctx)
	if err != nil {
		log.Printf("session: startup geolocation unavailable: %v", err)
		return
	}
	if err := s.locate(ctx, lat, lon); err != nil {
		log.Printf("session: startup lookup failed: %v", err)
	}
}

// SubmitQuery resolves a typed city query and fetches its weather. Empty
// input is a no-op. The first geocoding result is taken as canonical.
func (s *Session) SubmitQuery(ctx context.Context, text string) {
	query := strings.TrimSpace(text)
	if query == "" {
		return
	}

	s.begin(StateResolving)

	locations, err := s.geocoder.Search(ctx, query, weather.DefaultSearchLimit)
	if err != nil {
		if errors.Is(err, weather.ErrNotFound) {
			s.fail("City not found")
		} else {
			log.Printf("session: geocode failed for %q: %v", query, err)
			s.fail("Could not reach the weather service")
		}
		return
	}
	if len(locations) == 0 {
		s.fail("City not found")
		return
	}

	s.fetch(ctx, locations[0])
}

// SelectLocation skips resolution and fetches weather for an already
// resolved location (autocomplete pick, recent pick, geolocation).
func (s *Session) SelectLocation(ctx context.Context, loc weather.Location) {
	s.begin(StateFetching)
	s.fetch(ctx, loc)
}

// ChangeUnitSystem persists the new unit system and, when a last-initiated
// location exists, replays the fetch against it. A full refetch keeps the
// upstream as the source of truth instead of converting displayed values.
func (s *Session) ChangeUnitSystem(ctx context.Context, units weather.UnitSystem) {
	if err := s.prefs.SetUnitSystem(units); err != nil {
		log.Printf("session: failed to persist unit system: %v", err)
	}

	s.mu.Lock()
	last := s.last
	s.mu.Unlock()
	if last == nil {
		return
	}

	s.begin(StateFetching)
	s.fetch(ctx, *last)
}

// Units returns the active unit system.
func (s *Session) Units() weather.UnitSystem {
	return s.prefs.UnitSystem()
}

// SetTheme persists an explicit theme choice and applies it.
func (s *Session) SetTheme(theme weather.Theme) {
	if err := s.prefs.SetTheme(theme); err != nil {
		log.Printf("session: failed to persist theme: %v", err)
	}
	s.view.ApplyTheme(theme)
}

// Theme returns the active theme.
func (s *Session) Theme() weather.Theme {
	return s.prefs.Theme()
}

// UseGeolocation asks the host for the current position and looks up its
// weather. Unlike the startup attempt, failures here are user-visible.
func (s *Session) UseGeolocation(ctx context.Context) {
	s.begin(StateResolving)

	if s.locator == nil {
		s.fail("Geolocation not supported.")
		return
	}

	lat, lon, err := s.locator.CurrentPosition(ctx)
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			s.fail("Geolocation not supported.")
		} else {
			s.fail("Location permission denied.")
		}
		return
	}

	if err := s.locate(ctx, lat, lon); err != nil {
		s.fail("Could not get your location weather.")
	}
}

// Recent returns the persisted recent-location list.
func (s *Session) Recent() []weather.Location {
	return s.recent.List()
}

// ClearRecent erases the recent-location list.
func (s *Session) ClearRecent() {
	if err := s.recent.Clear(); err != nil {
		log.Printf("session: failed to clear recent locations: %v", err)
	}
	s.view.ShowRecent(nil)
}

// Refresh replays the last-initiated location, if any. Used by the
// auto-refresh schedule; does not reset the view.
func (s *Session) Refresh(ctx context.Context) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()
	if last == nil {
		return
	}
	s.fetch(ctx, *last)
}

// State reports the current episode state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// locate reverse-resolves a position and fetches weather for it. The
// device coordinates are kept over the resolved place's own; the name is
// all the reverse geocode contributes.
func (s *Session) locate(ctx context.Context, lat, lon float64) error {
	place, err := s.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		return err
	}
	s.fetch(ctx, weather.Location{Name: place.Name, Lat: lat, Lon: lon})
	return nil
}

// begin opens a new episode: clears prior errors, hides stale results.
func (s *Session) begin(state State) {
	s.mu.Lock()
	s.state = state
	s.view.Reset()
	s.mu.Unlock()
}

func (s *Session) fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateFailed
	s.view.SetSearchError(msg)
}

// fetch issues the current-conditions and forecast requests concurrently.
// The outcomes are independent: each updates only its own view region, and
// neither cancels the other. Success of either records the location.
func (s *Session) fetch(ctx context.Context, loc weather.Location) {
	units := s.prefs.UnitSystem()
	episode := uuid.NewString()[:8]

	s.mu.Lock()
	s.state = StateFetching
	s.last = &loc
	s.mu.Unlock()

	log.Printf("session %s: fetching %s lat=%.2f lon=%.2f units=%s",
		episode, loc.Name, loc.Lat, loc.Lon, units)

	var wg sync.WaitGroup
	var condOK, forecastOK bool

	wg.Add(2)
	go func() {
		defer wg.Done()
		cond, err := s.source.Current(ctx, loc, units)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			log.Printf("session %s: current conditions failed: %v", episode, err)
			s.view.SetConditionsError("Weather data not available")
			return
		}
		condOK = true
		s.state = StateDisplayed
		s.view.ShowConditions(loc, cond, units)
	}()
	go func() {
		defer wg.Done()
		entries, err := s.source.Forecast(ctx, loc, units)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			log.Printf("session %s: forecast failed: %v", episode, err)
			s.view.SetForecastError("Forecast data not available")
			return
		}
		forecastOK = true
		s.state = StateDisplayed
		s.view.ShowForecast(weather.SummarizeByDay(entries), units)
		if s.chart != nil {
			s.chart.Plot(weather.MiddaySeries(entries), units)
		}
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !condOK && !forecastOK {
		s.state = StateFailed
		return
	}
	if err := s.recent.Record(loc); err != nil {
		log.Printf("session %s: failed to record recent location: %v", episode, err)
		return
	}
	s.view.ShowRecent(s.recent.List())
}
