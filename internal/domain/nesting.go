package domain

import "sort"

// NestingViolation is a State observed under more than one Region.
type NestingViolation struct {
	State   string   `json:"state"`
	Regions []string `json:"regions"`
}

// CheckNesting reports every State that does not belong to exactly one Region.
// The sunburst assumes each State nests under a single Region.
func CheckNesting(rows []Observation) []NestingViolation {
	regionsByState := make(map[string]map[string]struct{})
	order := make([]string, 0)
	for _, r := range rows {
		set, ok := regionsByState[r.State]
		if !ok {
			set = make(map[string]struct{})
			regionsByState[r.State] = set
			order = append(order, r.State)
		}
		set[r.Region] = struct{}{}
	}

	var out []NestingViolation
	for _, state := range order {
		set := regionsByState[state]
		if len(set) <= 1 {
			continue
		}
		regions := make([]string, 0, len(set))
		for region := range set {
			regions = append(regions, region)
		}
		sort.Strings(regions)
		out = append(out, NestingViolation{State: state, Regions: regions})
	}
	return out
}
