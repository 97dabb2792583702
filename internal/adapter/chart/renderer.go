// Package chart rasterises dashboard chart payloads with go-chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/couchcryptid/unemployment-dashboard/internal/domain"
)

// ErrNoData is returned when a payload has nothing to draw.
var ErrNoData = errors.New("no data to chart")

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png", "svg" or empty (PNG).
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q", s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() gochart.RendererProvider {
	if f == SVG {
		return gochart.SVG
	}
	return gochart.PNG
}

// Renderer draws charts at a fixed size.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a Renderer.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// RenderHistogram draws one frequency polygon per Region through the bin centers.
func (r *Renderer) RenderHistogram(w io.Writer, title string, h domain.Histogram, format Format) error {
	if h.Empty || len(h.Series) == 0 {
		return ErrNoData
	}

	centers := make([]float64, h.Bins)
	for i := range centers {
		centers[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}

	series := make([]gochart.Series, 0, len(h.Series))
	for i, s := range h.Series {
		ys := make([]float64, len(s.Counts))
		for j, c := range s.Counts {
			ys[j] = float64(c)
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Region,
			XValues: centers,
			YValues: ys,
			Style:   seriesStyle(i),
		})
	}

	ch := gochart.Chart{
		Title:      title,
		Width:      r.Width,
		Height:     r.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 12}},
		XAxis: gochart.XAxis{
			Name:  h.Column,
			Range: &gochart.ContinuousRange{Min: h.Edges[0], Max: h.Edges[h.Bins]},
		},
		YAxis: gochart.YAxis{
			Name:  "Count",
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(h.MaxCount())},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render histogram: %w", err)
	}
	return nil
}

// RenderTimeSeries draws one line per State.
func (r *Renderer) RenderTimeSeries(w io.Writer, title string, ts domain.TimeSeries, format Format) error {
	if ts.Empty() {
		return ErrNoData
	}

	var (
		minT, maxT time.Time
		minY, maxY float64
		first      = true
	)
	series := make([]gochart.Series, 0, len(ts.Lines))
	for i, line := range ts.Lines {
		xs := make([]time.Time, len(line.Points))
		ys := make([]float64, len(line.Points))
		for j, p := range line.Points {
			xs[j], ys[j] = p.Date, p.Value
			if first || p.Date.Before(minT) {
				minT = p.Date
			}
			if first || p.Date.After(maxT) {
				maxT = p.Date
			}
			if first || p.Value < minY {
				minY = p.Value
			}
			if first || p.Value > maxY {
				maxY = p.Value
			}
			first = false
		}
		series = append(series, gochart.TimeSeries{
			Name:    line.State,
			XValues: xs,
			YValues: ys,
			Style:   seriesStyle(i),
		})
	}

	// go-chart rejects zero-width ranges.
	if !maxT.After(minT) {
		minT, maxT = minT.AddDate(0, 0, -1), maxT.AddDate(0, 0, 1)
	}
	if maxY <= minY {
		minY, maxY = minY-1, maxY+1
	}

	ch := gochart.Chart{
		Title:      title,
		Width:      r.Width,
		Height:     r.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 12}},
		XAxis: gochart.XAxis{
			Name:           domain.ColDate,
			ValueFormatter: gochart.TimeValueFormatterWithFormat(time.DateOnly),
			Range: &gochart.ContinuousRange{
				Min: gochart.TimeToFloat64(minT),
				Max: gochart.TimeToFloat64(maxT),
			},
		},
		YAxis: gochart.YAxis{
			Name:  domain.ColUnemploymentRate,
			Range: &gochart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render time series: %w", err)
	}
	return nil
}

func seriesStyle(i int) gochart.Style {
	return gochart.Style{
		StrokeColor: gochart.GetDefaultColor(i),
		StrokeWidth: 2,
		DotColor:    gochart.GetDefaultColor(i),
		DotWidth:    3,
	}
}
