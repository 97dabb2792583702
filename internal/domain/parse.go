package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. Day-first layouts come first because the
// published dataset writes dates as DD-MM-YYYY.
var dateLayouts = []string{
	"02-01-2006",
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"2-1-2006",
	time.RFC3339,
}

// ParseRecord converts one source row into an Observation.
// Short rows are padded with empty cells. Rows wider than NumColumns are rejected.
// Unparseable dates and numbers become null instead of failing the row.
func ParseRecord(fields []string) (Observation, error) {
	if len(fields) > NumColumns {
		return Observation{}, fmt.Errorf("parse record: expected %d fields, got %d", NumColumns, len(fields))
	}
	cells := make([]string, NumColumns)
	for i, f := range fields {
		cells[i] = strings.TrimSpace(f)
	}

	employed, employedOK := parseCount(cells[4])

	return Observation{
		State:                   cells[0],
		Date:                    ParseDate(cells[1]),
		Frequency:               cells[2],
		UnemploymentRate:        parseFloatOrNaN(cells[3]),
		Employed:                employed,
		EmployedValid:           employedOK,
		LabourParticipationRate: parseFloatOrNaN(cells[5]),
		Region:                  cells[6],
		Longitude:               parseFloatOrNaN(cells[7]),
		Latitude:                parseFloatOrNaN(cells[8]),
	}, nil
}

// ParseDate parses a calendar date, returning the zero time when no layout matches.
// The result is truncated to midnight UTC.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Time{}
}

func parseFloatOrNaN(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// parseCount accepts integer or decimal notation ("1.2E7", "11999139.0").
func parseCount(s string) (int64, bool) {
	v := parseFloatOrNaN(s)
	if math.IsNaN(v) {
		return 0, false
	}
	return int64(math.Round(v)), true
}
