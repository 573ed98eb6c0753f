package weather

import (
	"strings"
	"time"
)

const maxForecastDays = 5

// timestampLayout matches the provider's local-time-encoded dt_txt strings.
const timestampLayout = "2006-01-02 15:04:05"

// SummarizeByDay reduces a 3-hour forecast series into at most five daily
// summaries. Entries are grouped by the date prefix of their timestamp
// (string comparison; the provider encodes local time and a timezone
// conversion would shift entries across day boundaries). Group order follows
// first occurrence in the series. The representative icon and description
// come from the 3rd entry of a group when present, a midday reading under
// the standard 8-entries-per-day cadence, falling back to the 1st for
// partial final-day groups.
func SummarizeByDay(entries []ForecastEntry) []DailySummary {
	groups := make(map[string][]ForecastEntry)
	var order []string

	for _, e := range entries {
		date, _, ok := strings.Cut(e.Timestamp, " ")
		if !ok || date == "" {
			continue
		}
		if _, seen := groups[date]; !seen {
			order = append(order, date)
		}
		groups[date] = append(groups[date], e)
	}

	if len(order) > maxForecastDays {
		order = order[:maxForecastDays]
	}

	summaries := make([]DailySummary, 0, len(order))
	for _, date := range order {
		group := groups[date]

		rep := group[0]
		if len(group) > 2 {
			rep = group[2]
		}

		min, max := group[0].Temperature, group[0].Temperature
		for _, e := range group[1:] {
			if e.Temperature < min {
				min = e.Temperature
			}
			if e.Temperature > max {
				max = e.Temperature
			}
		}

		summaries = append(summaries, DailySummary{
			Date:               date,
			MinTemp:            min,
			MaxTemp:            max,
			RepresentativeIcon: rep.IconID,
			RepresentativeDesc: rep.ConditionMain,
		})
	}

	return summaries
}

// MiddaySeries extracts the noon samples from a forecast series for
// charting: at most five entries whose timestamp reads exactly 12:00:00
// local, each labeled with its weekday name. Sparse upstream data simply
// yields fewer points.
func MiddaySeries(entries []ForecastEntry) []ChartPoint {
	points := make([]ChartPoint, 0, maxForecastDays)

	for _, e := range entries {
		if !strings.Contains(e.Timestamp, "12:00:00") {
			continue
		}

		label := e.Timestamp
		if ts, err := time.Parse(timestampLayout, e.Timestamp); err == nil {
			label = ts.Format("Mon")
		}

		points = append(points, ChartPoint{
			Label:       label,
			Temperature: e.Temperature,
		})
		if len(points) >= maxForecastDays {
			break
		}
	}

	return points
}
