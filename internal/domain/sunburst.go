package domain

import "math"

// Default rendered size of the sunburst chart.
const (
	DefaultSunburstWidth  = 600
	DefaultSunburstHeight = 600
)

// SunburstNode is a Region root or a State leaf.
type SunburstNode struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Value    float64        `json:"value"`
	Children []SunburstNode `json:"children,omitempty"`
}

// Sunburst is a two-level Region -> State hierarchy sized by unemployment rate.
//
// IDs, Labels, Parents and Values carry the same tree in the flat form that
// plotly-style sunburst renderers consume.
type Sunburst struct {
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Roots   []SunburstNode `json:"roots"`
	IDs     []string       `json:"ids"`
	Labels  []string       `json:"labels"`
	Parents []string       `json:"parents"`
	Values  []float64      `json:"values"`
}

// BuildSunburst sums the non-null unemployment rates of each (Region, State)
// pair into a leaf and each Region's leaves into its root. Nodes keep
// first-appearance order. Leaves are keyed by Region and State together, so a
// State that shows up under two Regions becomes two leaves.
func BuildSunburst(rows []Observation, width, height int) Sunburst {
	if width <= 0 {
		width = DefaultSunburstWidth
	}
	if height <= 0 {
		height = DefaultSunburstHeight
	}

	type leafKey struct{ region, state string }
	rootIndex := make(map[string]int)
	leafIndex := make(map[leafKey]int)
	roots := make([]SunburstNode, 0)

	for _, r := range rows {
		ri, ok := rootIndex[r.Region]
		if !ok {
			ri = len(roots)
			rootIndex[r.Region] = ri
			roots = append(roots, SunburstNode{ID: r.Region, Label: r.Region})
		}
		k := leafKey{r.Region, r.State}
		li, ok := leafIndex[k]
		if !ok {
			li = len(roots[ri].Children)
			leafIndex[k] = li
			roots[ri].Children = append(roots[ri].Children, SunburstNode{
				ID:    r.Region + "/" + r.State,
				Label: r.State,
			})
		}
		if math.IsNaN(r.UnemploymentRate) {
			continue
		}
		roots[ri].Children[li].Value += r.UnemploymentRate
		roots[ri].Value += r.UnemploymentRate
	}

	sb := Sunburst{
		Width:   width,
		Height:  height,
		Roots:   roots,
		IDs:     make([]string, 0),
		Labels:  make([]string, 0),
		Parents: make([]string, 0),
		Values:  make([]float64, 0),
	}
	for _, root := range roots {
		sb.IDs = append(sb.IDs, root.ID)
		sb.Labels = append(sb.Labels, root.Label)
		sb.Parents = append(sb.Parents, "")
		sb.Values = append(sb.Values, root.Value)
		for _, leaf := range root.Children {
			sb.IDs = append(sb.IDs, leaf.ID)
			sb.Labels = append(sb.Labels, leaf.Label)
			sb.Parents = append(sb.Parents, root.ID)
			sb.Values = append(sb.Values, leaf.Value)
		}
	}
	return sb
}

// Leaf returns the leaf for a (Region, State) pair.
func (s Sunburst) Leaf(region, state string) (SunburstNode, bool) {
	for _, root := range s.Roots {
		if root.Label != region {
			continue
		}
		for _, leaf := range root.Children {
			if leaf.Label == state {
				return leaf, true
			}
		}
	}
	return SunburstNode{}, false
}
