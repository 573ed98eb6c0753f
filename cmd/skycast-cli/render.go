package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/skycastlabs/skycast/internal/session"
	"github.com/skycastlabs/skycast/internal/weather"
)

// textView renders lookup results as plain text. The session owns all state
// and serializes calls, so the view only writes.
type textView struct {
	out io.Writer
}

func (v *textView) Reset() {
	fmt.Fprintln(v.out, "---")
}

func (v *textView) ShowConditions(loc weather.Location, cond weather.CurrentConditions, units weather.UnitSystem) {
	fmt.Fprintf(v.out, "%s\n", loc.Name)
	fmt.Fprintf(v.out, "  %.0f%s  %s\n", math.Round(cond.Temperature), units.Symbol(), cond.Description)
	fmt.Fprintf(v.out, "  humidity %d%%  wind %.1f\n", cond.Humidity, cond.WindSpeed)
}

func (v *textView) ShowForecast(days []weather.DailySummary, units weather.UnitSystem) {
	for _, d := range days {
		fmt.Fprintf(v.out, "  %s  %.0f%s / %.0f%s  %s\n",
			d.Date, math.Round(d.MinTemp), units.Symbol(), math.Round(d.MaxTemp), units.Symbol(), d.RepresentativeDesc)
	}
}

func (v *textView) ShowRecent(locations []weather.Location) {
	if len(locations) == 0 {
		return
	}
	fmt.Fprintln(v.out, "recent:")
	for i, loc := range locations {
		fmt.Fprintf(v.out, "  %d. %s\n", i+1, loc.Name)
	}
}

func (v *textView) ApplyTheme(theme weather.Theme) {
	fmt.Fprintf(v.out, "theme: %s\n", theme)
}

func (v *textView) SetSearchError(msg string)     { fmt.Fprintf(v.out, "error: %s\n", msg) }
func (v *textView) SetConditionsError(msg string) { fmt.Fprintf(v.out, "error: %s\n", msg) }
func (v *textView) SetForecastError(msg string)   { fmt.Fprintf(v.out, "forecast error: %s\n", msg) }

// textChart prints the midday series as a labeled line.
type textChart struct {
	out io.Writer
}

func (c *textChart) Plot(points []weather.ChartPoint, units weather.UnitSystem) {
	if len(points) == 0 {
		return
	}
	fmt.Fprint(c.out, "midday:")
	for _, p := range points {
		fmt.Fprintf(c.out, "  %s %.0f%s", p.Label, math.Round(p.Temperature), units.Symbol())
	}
	fmt.Fprintln(c.out)
}

// envGeolocator reads a fixed position from SKYCAST_LAT/SKYCAST_LON. A
// terminal has no position capability of its own, so this stands in for the
// host geolocation provider.
type envGeolocator struct{}

func (envGeolocator) CurrentPosition(context.Context) (float64, float64, error) {
	latStr, lonStr := os.Getenv("SKYCAST_LAT"), os.Getenv("SKYCAST_LON")
	if latStr == "" || lonStr == "" {
		return 0, 0, session.ErrUnsupported
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, session.ErrUnsupported
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, session.ErrUnsupported
	}
	return lat, lon, nil
}
