package domain

import (
	"fmt"
	"math"
)

// Bin count bounds for the histogram sliders.
const (
	MinBins     = 5
	MaxBins     = 50
	DefaultBins = 20
)

// Histogram is a binned distribution of one numeric column, split by Region.
// All series share the same bin edges.
type Histogram struct {
	Column string            `json:"column"`
	Bins   int               `json:"bins"`
	Edges  []float64         `json:"edges"`
	Series []HistogramSeries `json:"series"`
	Empty  bool              `json:"empty"`
}

// HistogramSeries holds the per-bin counts for one Region.
type HistogramSeries struct {
	Region string `json:"region"`
	Counts []int  `json:"counts"`
}

// MaxCount returns the largest single bin count across all series.
func (h Histogram) MaxCount() int {
	m := 0
	for _, s := range h.Series {
		for _, c := range s.Counts {
			if c > m {
				m = c
			}
		}
	}
	return m
}

// BuildHistogram bins the non-null values of column into bins equal-width bins
// spanning [min, max] of the subset. Bins are half-open [lo, hi) except the last,
// which also includes max. When every value is equal the range becomes
// [v-0.5, v+0.5]. A subset with no usable values yields an empty histogram.
func BuildHistogram(rows []Observation, column string, bins int) (Histogram, error) {
	if bins < MinBins || bins > MaxBins {
		return Histogram{}, fmt.Errorf("build histogram: bins %d outside [%d, %d]", bins, MinBins, MaxBins)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		v, ok := r.Value(column)
		if !ok {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return Histogram{Column: column, Empty: true, Series: []HistogramSeries{}}, nil
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(bins)
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi

	index := make(map[string]int)
	series := make([]HistogramSeries, 0)
	for _, r := range rows {
		v, ok := r.Value(column)
		if !ok {
			continue
		}
		i, seen := index[r.Region]
		if !seen {
			i = len(series)
			index[r.Region] = i
			series = append(series, HistogramSeries{Region: r.Region, Counts: make([]int, bins)})
		}
		series[i].Counts[binIndex(v, lo, width, bins)]++
	}

	return Histogram{
		Column: column,
		Bins:   bins,
		Edges:  edges,
		Series: series,
	}, nil
}

func binIndex(v, lo, width float64, bins int) int {
	i := int(math.Floor((v - lo) / width))
	if i < 0 {
		return 0
	}
	if i >= bins {
		return bins - 1
	}
	return i
}
