package store

import (
	"log"

	"github.com/skycastlabs/skycast/internal/weather"
)

const (
	keyUnit  = "unit"
	keyTheme = "theme"
)

// DarkModeProbe reports whether the host environment prefers a dark color
// scheme. Consulted once, on the first theme read with nothing persisted.
type DarkModeProbe func() bool

// Preferences persists the unit system and theme choices.
type Preferences struct {
	kv          *KV
	prefersDark DarkModeProbe
}

// NewPreferences creates a preference store. probe may be nil, in which case
// the first-read theme default is light.
func NewPreferences(kv *KV, probe DarkModeProbe) *Preferences {
	return &Preferences{kv: kv, prefersDark: probe}
}

// UnitSystem returns the persisted unit system, defaulting to metric.
// A missing or unreadable value degrades to the default.
func (p *Preferences) UnitSystem() weather.UnitSystem {
	value, ok, err := p.kv.Get(keyUnit)
	if err != nil {
		log.Printf("prefs: failed to read unit system: %v", err)
	}
	if !ok {
		return weather.UnitsMetric
	}
	return weather.ParseUnitSystem(value)
}

// SetUnitSystem persists the unit system. It does not trigger a refetch;
// the new units take effect on the next fetch.
func (p *Preferences) SetUnitSystem(u weather.UnitSystem) error {
	return p.kv.Set(keyUnit, string(u))
}

// Theme returns the persisted theme. With nothing persisted it derives the
// default from the host dark-mode signal and persists that answer
// immediately, so later loads stay stable even if the host preference
// changes.
func (p *Preferences) Theme() weather.Theme {
	value, ok, err := p.kv.Get(keyTheme)
	if err != nil {
		log.Printf("prefs: failed to read theme: %v", err)
	}
	if ok {
		return weather.ParseTheme(value)
	}

	theme := weather.ThemeLight
	if p.prefersDark != nil && p.prefersDark() {
		theme = weather.ThemeDark
	}
	if err := p.kv.Set(keyTheme, string(theme)); err != nil {
		log.Printf("prefs: failed to persist derived theme: %v", err)
	}
	return theme
}

// SetTheme persists an explicit theme choice.
func (p *Preferences) SetTheme(t weather.Theme) error {
	return p.kv.Set(keyTheme, string(t))
}
