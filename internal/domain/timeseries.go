package domain

import (
	"math"
	"sort"
	"time"
)

// InvalidDatesMessage replaces the time-series chart when the Date column has
// no usable values.
const InvalidDatesMessage = "Invalid dates for Time Series Analysis."

// TimeSeries plots unemployment rate against date, one line per State.
type TimeSeries struct {
	Start time.Time        `json:"start"`
	End   time.Time        `json:"end"`
	Lines []TimeSeriesLine `json:"lines"`
}

// TimeSeriesLine is the series for one State, sorted by date.
type TimeSeriesLine struct {
	State  string            `json:"state"`
	Points []TimeSeriesPoint `json:"points"`
}

// TimeSeriesPoint is a single dated observation.
type TimeSeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Empty reports whether the chart has no points to draw.
func (ts TimeSeries) Empty() bool { return len(ts.Lines) == 0 }

// BuildTimeSeries groups the date-filtered subset by State. Rows with a null
// Date or a null rate are skipped. Points with equal dates keep input order.
func BuildTimeSeries(rows []Observation, start, end time.Time) TimeSeries {
	index := make(map[string]int)
	lines := make([]TimeSeriesLine, 0)
	for _, r := range rows {
		if !r.HasDate() || math.IsNaN(r.UnemploymentRate) {
			continue
		}
		i, ok := index[r.State]
		if !ok {
			i = len(lines)
			index[r.State] = i
			lines = append(lines, TimeSeriesLine{State: r.State})
		}
		lines[i].Points = append(lines[i].Points, TimeSeriesPoint{Date: r.Date, Value: r.UnemploymentRate})
	}
	for i := range lines {
		pts := lines[i].Points
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].Date.Before(pts[b].Date) })
	}
	return TimeSeries{Start: start, End: end, Lines: lines}
}
