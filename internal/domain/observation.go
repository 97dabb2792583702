package domain

import (
	"math"
	"time"
)

// Canonical column names, in file order. Source headers are discarded and
// replaced by these regardless of what the file declares.
const (
	ColState                   = "State"
	ColDate                    = "Date"
	ColFrequency               = "Frequency"
	ColUnemploymentRate        = "Estimated Unemployment Rate"
	ColEmployed                = "Estimated Employed"
	ColLabourParticipationRate = "Estimated Labour Participation Rate"
	ColRegion                  = "Region"
	ColLongitude               = "Longitude"
	ColLatitude                = "Latitude"
)

// Columns lists the canonical column names in file order.
var Columns = []string{
	ColState,
	ColDate,
	ColFrequency,
	ColUnemploymentRate,
	ColEmployed,
	ColLabourParticipationRate,
	ColRegion,
	ColLongitude,
	ColLatitude,
}

// NumColumns is the fixed width of a source row.
const NumColumns = 9

// Observation is one row of the source dataset.
//
// Null decimals are NaN. A null Date is the zero time. A null Employed count
// is reported by EmployedValid.
type Observation struct {
	State                   string    `json:"state"`
	Date                    time.Time `json:"date"`
	Frequency               string    `json:"frequency"`
	UnemploymentRate        float64   `json:"unemployment_rate"`
	Employed                int64     `json:"employed"`
	EmployedValid           bool      `json:"-"`
	LabourParticipationRate float64   `json:"labour_participation_rate"`
	Region                  string    `json:"region"`
	Longitude               float64   `json:"longitude"`
	Latitude                float64   `json:"latitude"`
}

// HasDate reports whether the row's Date parsed.
func (o Observation) HasDate() bool { return !o.Date.IsZero() }

// Value returns the numeric cell for a histogram column and whether it is non-null.
func (o Observation) Value(column string) (float64, bool) {
	switch column {
	case ColEmployed:
		return float64(o.Employed), o.EmployedValid
	case ColUnemploymentRate:
		return o.UnemploymentRate, !math.IsNaN(o.UnemploymentRate)
	case ColLabourParticipationRate:
		return o.LabourParticipationRate, !math.IsNaN(o.LabourParticipationRate)
	case ColLongitude:
		return o.Longitude, !math.IsNaN(o.Longitude)
	case ColLatitude:
		return o.Latitude, !math.IsNaN(o.Latitude)
	default:
		return 0, false
	}
}

// Table is the full dataset held in memory for the lifetime of the process.
// It is never mutated after NewTable returns.
type Table struct {
	Rows []Observation

	// Regions and States hold the distinct values in first-appearance order.
	Regions []string
	States  []string

	// MinDate and MaxDate bound the non-null dates. Both are zero when HasDates is false.
	MinDate  time.Time
	MaxDate  time.Time
	HasDates bool

	NullDates int
}

// NewTable wraps rows and computes the values the dashboard derives once at startup:
// the default filter selections and the default date range.
func NewTable(rows []Observation) *Table {
	t := &Table{Rows: rows}
	t.Regions = distinct(rows, func(o Observation) string { return o.Region })
	t.States = distinct(rows, func(o Observation) string { return o.State })

	for _, r := range rows {
		if !r.HasDate() {
			t.NullDates++
			continue
		}
		if !t.HasDates || r.Date.Before(t.MinDate) {
			t.MinDate = r.Date
		}
		if !t.HasDates || r.Date.After(t.MaxDate) {
			t.MaxDate = r.Date
		}
		t.HasDates = true
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

func distinct(rows []Observation, key func(Observation) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
