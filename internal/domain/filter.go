package domain

import "time"

// FilterRows returns the rows whose Region is in regions AND whose State is in
// states. An empty set in either dimension yields an empty subset. The result is
// a newly allocated slice; rows is never modified.
func FilterRows(rows []Observation, regions, states []string) []Observation {
	out := make([]Observation, 0)
	if len(regions) == 0 || len(states) == 0 {
		return out
	}

	regionSet := toSet(regions)
	stateSet := toSet(states)
	for _, r := range rows {
		if _, ok := regionSet[r.Region]; !ok {
			continue
		}
		if _, ok := stateSet[r.State]; !ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterDateRange keeps rows with a non-null Date inside the inclusive
// [start, end] range, compared at day granularity. start after end yields an
// empty subset.
func FilterDateRange(rows []Observation, start, end time.Time) []Observation {
	out := make([]Observation, 0)
	start, end = truncateDay(start), truncateDay(end)
	if start.After(end) {
		return out
	}
	for _, r := range rows {
		if !r.HasDate() {
			continue
		}
		d := truncateDay(r.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
