package weather

import (
	"fmt"
	"testing"
)

// threeHourSeries builds a forecast series with the standard 8-entries-per-day
// cadence starting at midnight.
func threeHourSeries(days int) []ForecastEntry {
	var entries []ForecastEntry
	for d := 0; d < days; d++ {
		for h := 0; h < 24; h += 3 {
			entries = append(entries, ForecastEntry{
				Timestamp:     fmt.Sprintf("2024-06-%02d %02d:00:00", 10+d, h),
				Temperature:   float64(10 + d + h/3),
				ConditionMain: fmt.Sprintf("cond-%d-%d", d, h),
				IconID:        fmt.Sprintf("icon-%d-%d", d, h),
			})
		}
	}
	return entries
}

func TestSummarizeByDayCapsAtFiveDays(t *testing.T) {
	entries := threeHourSeries(7)

	summaries := SummarizeByDay(entries)
	if len(summaries) != 5 {
		t.Fatalf("expected 5 summaries for 7 days of data, got %d", len(summaries))
	}
	for i, s := range summaries {
		want := fmt.Sprintf("2024-06-%02d", 10+i)
		if s.Date != want {
			t.Errorf("summary %d: expected date %s, got %s", i, want, s.Date)
		}
	}
}

func TestSummarizeByDayRepresentativeEntry(t *testing.T) {
	tests := []struct {
		name      string
		groupSize int
		wantIcon  string
	}{
		{name: "full day uses third entry", groupSize: 8, wantIcon: "icon-2"},
		{name: "three entries use third", groupSize: 3, wantIcon: "icon-2"},
		{name: "two entries fall back to first", groupSize: 2, wantIcon: "icon-0"},
		{name: "single entry falls back to first", groupSize: 1, wantIcon: "icon-0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []ForecastEntry
			for i := 0; i < tt.groupSize; i++ {
				entries = append(entries, ForecastEntry{
					Timestamp:     fmt.Sprintf("2024-06-10 %02d:00:00", i*3),
					Temperature:   20,
					ConditionMain: fmt.Sprintf("cond-%d", i),
					IconID:        fmt.Sprintf("icon-%d", i),
				})
			}

			summaries := SummarizeByDay(entries)
			if len(summaries) != 1 {
				t.Fatalf("expected one summary, got %d", len(summaries))
			}
			if summaries[0].RepresentativeIcon != tt.wantIcon {
				t.Errorf("expected representative icon %s, got %s", tt.wantIcon, summaries[0].RepresentativeIcon)
			}
		})
	}
}

func TestSummarizeByDayMinMax(t *testing.T) {
	entries := []ForecastEntry{
		{Timestamp: "2024-06-10 00:00:00", Temperature: 14.5},
		{Timestamp: "2024-06-10 03:00:00", Temperature: 11.2},
		{Timestamp: "2024-06-10 06:00:00", Temperature: 19.8},
		{Timestamp: "2024-06-10 09:00:00", Temperature: 17.0},
	}

	summaries := SummarizeByDay(entries)
	if len(summaries) != 1 {
		t.Fatalf("expected one summary, got %d", len(summaries))
	}
	s := summaries[0]
	if s.MinTemp != 11.2 || s.MaxTemp != 19.8 {
		t.Errorf("expected min 11.2 max 19.8, got min %.1f max %.1f", s.MinTemp, s.MaxTemp)
	}
	if s.MinTemp > s.MaxTemp {
		t.Errorf("min %.1f exceeds max %.1f", s.MinTemp, s.MaxTemp)
	}
}

func TestSummarizeByDayPreservesFirstSeenOrder(t *testing.T) {
	// A series whose first partial day sorts after the second day
	// lexicographically must still come first.
	entries := []ForecastEntry{
		{Timestamp: "2024-06-11 21:00:00", Temperature: 10},
		{Timestamp: "2024-06-12 00:00:00", Temperature: 12},
		{Timestamp: "2024-06-11 18:00:00", Temperature: 9},
	}

	summaries := SummarizeByDay(entries)
	if len(summaries) != 2 {
		t.Fatalf("expected two summaries, got %d", len(summaries))
	}
	if summaries[0].Date != "2024-06-11" || summaries[1].Date != "2024-06-12" {
		t.Errorf("unexpected order: %s, %s", summaries[0].Date, summaries[1].Date)
	}
	if summaries[0].MinTemp != 9 || summaries[0].MaxTemp != 10 {
		t.Errorf("day group split across non-adjacent entries: min %.0f max %.0f",
			summaries[0].MinTemp, summaries[0].MaxTemp)
	}
}

func TestSummarizeByDayEmptyAndMalformed(t *testing.T) {
	if got := SummarizeByDay(nil); len(got) != 0 {
		t.Errorf("expected no summaries for empty input, got %d", len(got))
	}

	entries := []ForecastEntry{{Timestamp: "garbage", Temperature: 5}}
	if got := SummarizeByDay(entries); len(got) != 0 {
		t.Errorf("expected malformed timestamps to be skipped, got %d summaries", len(got))
	}
}

func TestMiddaySeries(t *testing.T) {
	entries := threeHourSeries(7)

	points := MiddaySeries(entries)
	if len(points) != 5 {
		t.Fatalf("expected 5 midday points, got %d", len(points))
	}
	// 2024-06-10 is a Monday.
	wantLabels := []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	for i, p := range points {
		if p.Label != wantLabels[i] {
			t.Errorf("point %d: expected label %s, got %s", i, wantLabels[i], p.Label)
		}
		// Noon is the fifth slot of the day: base 10+d plus 12/3.
		want := float64(10 + i + 4)
		if p.Temperature != want {
			t.Errorf("point %d: expected temperature %.0f, got %.0f", i, want, p.Temperature)
		}
	}
}

func TestMiddaySeriesSparseData(t *testing.T) {
	entries := []ForecastEntry{
		{Timestamp: "2024-06-10 09:00:00", Temperature: 18},
		{Timestamp: "2024-06-10 12:00:00", Temperature: 21},
		{Timestamp: "2024-06-11 15:00:00", Temperature: 19},
	}

	points := MiddaySeries(entries)
	if len(points) != 1 {
		t.Fatalf("expected a single midday point, got %d", len(points))
	}
	if points[0].Temperature != 21 {
		t.Errorf("expected temperature 21, got %.0f", points[0].Temperature)
	}
}
