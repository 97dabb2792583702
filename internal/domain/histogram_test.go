package domain

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHistogram_BinCountHonored(t *testing.T) {
	rows := sampleRows()

	for bins := MinBins; bins <= MaxBins; bins++ {
		t.Run(fmt.Sprintf("bins=%d", bins), func(t *testing.T) {
			h, err := BuildHistogram(rows, ColUnemploymentRate, bins)
			require.NoError(t, err)

			assert.False(t, h.Empty)
			assert.Equal(t, bins, h.Bins)
			assert.Len(t, h.Edges, bins+1)
			for _, s := range h.Series {
				assert.Len(t, s.Counts, bins)
			}
		})
	}
}

func TestBuildHistogram_SplitsByRegion(t *testing.T) {
	h, err := BuildHistogram(sampleRows(), ColUnemploymentRate, 5)
	require.NoError(t, err)

	require.Len(t, h.Series, 2)
	assert.Equal(t, "East", h.Series[0].Region)
	assert.Equal(t, "West", h.Series[1].Region)

	// Rates 5..9 over five bins of width 0.8.
	assert.Equal(t, []int{1, 1, 0, 1, 0}, h.Series[0].Counts)
	assert.Equal(t, []int{0, 0, 1, 0, 1}, h.Series[1].Counts)
	assert.Equal(t, 5.0, h.Edges[0])
	assert.Equal(t, 9.0, h.Edges[5])
}

func TestBuildHistogram_MaxFallsInLastBin(t *testing.T) {
	rows := []Observation{obs("East", "A", "", 0), obs("East", "A", "", 10)}
	h, err := BuildHistogram(rows, ColUnemploymentRate, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, h.Series[0].Counts[0])
	assert.Equal(t, 1, h.Series[0].Counts[9])
}

func TestBuildHistogram_EdgeValueOpensNextBin(t *testing.T) {
	rows := []Observation{obs("East", "A", "", 0), obs("East", "A", "", 5), obs("East", "A", "", 10)}
	h, err := BuildHistogram(rows, ColUnemploymentRate, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, h.Series[0].Counts[5])
	assert.Equal(t, 0, h.Series[0].Counts[4])
}

func TestBuildHistogram_SingleValue(t *testing.T) {
	rows := []Observation{obs("East", "A", "", 4), obs("West", "B", "", 4)}
	h, err := BuildHistogram(rows, ColUnemploymentRate, MinBins)
	require.NoError(t, err)

	assert.InDelta(t, 3.5, h.Edges[0], 1e-9)
	assert.InDelta(t, 4.5, h.Edges[MinBins], 1e-9)
	assert.Equal(t, 2, h.Series[0].Counts[2]+h.Series[1].Counts[2])
}

func TestBuildHistogram_Employed(t *testing.T) {
	rows := sampleRows()
	rows[0].Employed = 5000
	rows[1].EmployedValid = false

	h, err := BuildHistogram(rows, ColEmployed, DefaultBins)
	require.NoError(t, err)

	total := 0
	for _, s := range h.Series {
		for _, c := range s.Counts {
			total += c
		}
	}
	assert.Equal(t, 4, total)
	assert.Equal(t, 1000.0, h.Edges[0])
	assert.Equal(t, 5000.0, h.Edges[DefaultBins])
}

func TestBuildHistogram_Empty(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		h, err := BuildHistogram(nil, ColEmployed, DefaultBins)
		require.NoError(t, err)
		assert.True(t, h.Empty)
		assert.Empty(t, h.Series)
		assert.Zero(t, h.MaxCount())
	})

	t.Run("only null values", func(t *testing.T) {
		rows := []Observation{obs("East", "A", "", math.NaN())}
		h, err := BuildHistogram(rows, ColUnemploymentRate, DefaultBins)
		require.NoError(t, err)
		assert.True(t, h.Empty)
	})
}

func TestBuildHistogram_InvalidBins(t *testing.T) {
	for _, bins := range []int{0, MinBins - 1, MaxBins + 1} {
		_, err := BuildHistogram(sampleRows(), ColEmployed, bins)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bins")
	}
}
