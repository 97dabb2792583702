package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/unemployment-dashboard/internal/domain"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func sampleHistogram(t *testing.T) domain.Histogram {
	t.Helper()
	rows := []domain.Observation{
		{Region: "East", State: "A", UnemploymentRate: 5},
		{Region: "East", State: "B", UnemploymentRate: 6},
		{Region: "West", State: "C", UnemploymentRate: 9},
	}
	h, err := domain.BuildHistogram(rows, domain.ColUnemploymentRate, 5)
	require.NoError(t, err)
	return h
}

func TestRenderHistogram_PNG(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(640, 400).RenderHistogram(&buf, "Rate", sampleHistogram(t), PNG)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderHistogram_SVG(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(640, 400).RenderHistogram(&buf, "Rate", sampleHistogram(t), SVG)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")
}

func TestRenderHistogram_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(640, 400).RenderHistogram(&buf, "Rate", domain.Histogram{Empty: true}, PNG)
	require.ErrorIs(t, err, ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestRenderTimeSeries(t *testing.T) {
	d1 := time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)

	t.Run("several lines", func(t *testing.T) {
		ts := domain.TimeSeries{Lines: []domain.TimeSeriesLine{
			{State: "A", Points: []domain.TimeSeriesPoint{{Date: d1, Value: 5}, {Date: d2, Value: 7}}},
			{State: "B", Points: []domain.TimeSeriesPoint{{Date: d1, Value: 3}, {Date: d2, Value: 4}}},
		}}
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(640, 400).RenderTimeSeries(&buf, "Rate", ts, PNG))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
	})

	t.Run("single point", func(t *testing.T) {
		ts := domain.TimeSeries{Lines: []domain.TimeSeriesLine{
			{State: "A", Points: []domain.TimeSeriesPoint{{Date: d1, Value: 5}}},
		}}
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(640, 400).RenderTimeSeries(&buf, "Rate", ts, SVG))
		assert.Contains(t, buf.String(), "<svg")
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewRenderer(640, 400).RenderTimeSeries(&buf, "Rate", domain.TimeSeries{}, PNG)
		require.ErrorIs(t, err, ErrNoData)
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, "image/png", f.ContentType())

	f, err = ParseFormat("svg")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", f.ContentType())

	_, err = ParseFormat("gif")
	require.Error(t, err)
}
