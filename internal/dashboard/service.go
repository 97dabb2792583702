// Package dashboard recomputes every chart of the dashboard from one set of
// widget values. It is the explicit form of the full rerun a reactive UI
// performs on each interaction.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/unemployment-dashboard/internal/domain"
	"github.com/couchcryptid/unemployment-dashboard/internal/observability"
)

// Options configures a Service.
type Options struct {
	SunburstWidth  int
	SunburstHeight int
	// CacheSize bounds memoized dashboards. Zero disables memoization.
	CacheSize int
}

// WidgetOptions describes the choices and bounds of every input widget.
type WidgetOptions struct {
	Regions     []string   `json:"regions"`
	States      []string   `json:"states"`
	MinBins     int        `json:"min_bins"`
	MaxBins     int        `json:"max_bins"`
	DefaultBins int        `json:"default_bins"`
	HasDates    bool       `json:"has_dates"`
	MinDate     *time.Time `json:"min_date,omitempty"`
	MaxDate     *time.Time `json:"max_date,omitempty"`
	TotalRows   int        `json:"total_rows"`
}

// Service owns the read-only table and computes dashboards from it.
type Service struct {
	table    *domain.Table
	opts     Options
	validate *validator.Validate
	cache    *lruCache
	group    singleflight.Group
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Service over a loaded table.
func New(table *domain.Table, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Service {
	s := &Service{
		table:    table,
		opts:     opts,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
	if opts.CacheSize > 0 {
		s.cache = newLRUCache(opts.CacheSize)
	}

	if table != nil {
		metrics.RowsLoaded.Set(float64(table.Len()))
		metrics.NullDates.Set(float64(table.NullDates))
		metrics.DatasetReady.Set(1)
	}
	return s
}

// CheckReadiness returns nil once a table has been loaded.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.table == nil {
		return errors.New("dataset not loaded")
	}
	return nil
}

// Options returns the widget surface: selectable values, bin bounds and the
// date picker bounds, all derived once from the unfiltered table.
func (s *Service) Options() WidgetOptions {
	o := WidgetOptions{
		Regions:     s.table.Regions,
		States:      s.table.States,
		MinBins:     domain.MinBins,
		MaxBins:     domain.MaxBins,
		DefaultBins: domain.DefaultBins,
		HasDates:    s.table.HasDates,
		TotalRows:   s.table.Len(),
	}
	if s.table.HasDates {
		minDate, maxDate := s.table.MinDate, s.table.MaxDate
		o.MinDate, o.MaxDate = &minDate, &maxDate
	}
	return o
}

// Recompute filters the table and rebuilds all four charts for p.
// Invalid widget values return an error wrapping ErrInvalidParams.
func (s *Service) Recompute(ctx context.Context, p Params) (domain.Dashboard, error) {
	s.metrics.Recomputes.Inc()

	r, err := resolve(s.validate, s.table, p)
	if err != nil {
		s.metrics.RecomputeError.Inc()
		return domain.Dashboard{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Dashboard{}, err
	}

	if s.cache == nil {
		return s.compute(r)
	}

	key := r.key()
	if d, ok := s.cache.get(key); ok {
		s.metrics.Cache.WithLabelValues("hit").Inc()
		return d, nil
	}
	s.metrics.Cache.WithLabelValues("miss").Inc()

	v, err, _ := s.group.Do(key, func() (any, error) {
		d, err := s.compute(r)
		if err != nil {
			return nil, err
		}
		s.cache.put(key, d)
		return d, nil
	})
	if err != nil {
		return domain.Dashboard{}, err
	}
	return v.(domain.Dashboard), nil
}

func (s *Service) compute(r resolved) (domain.Dashboard, error) {
	start := time.Now()

	filtered := domain.FilterRows(s.table.Rows, r.regions, r.states)

	d := domain.NewDashboard(r.applied())
	d.ID = uuid.NewString()
	d.TotalRows = s.table.Len()
	d.FilteredRows = len(filtered)

	employed, err := domain.BuildHistogram(filtered, domain.ColEmployed, r.binsEmployed)
	if err != nil {
		s.metrics.RecomputeError.Inc()
		return domain.Dashboard{}, fmt.Errorf("employed histogram: %w", err)
	}
	d.Employed.Histogram = employed

	rate, err := domain.BuildHistogram(filtered, domain.ColUnemploymentRate, r.binsUnemployment)
	if err != nil {
		s.metrics.RecomputeError.Inc()
		return domain.Dashboard{}, fmt.Errorf("unemployment rate histogram: %w", err)
	}
	d.UnemploymentRate.Histogram = rate

	d.Sunburst.Sunburst = domain.BuildSunburst(filtered, s.opts.SunburstWidth, s.opts.SunburstHeight)

	if r.hasDates {
		inRange := domain.FilterDateRange(filtered, r.start, r.end)
		ts := domain.BuildTimeSeries(inRange, r.start, r.end)
		d.TimeSeries.Available = true
		d.TimeSeries.Rows = len(inRange)
		d.TimeSeries.Chart = &ts
	} else {
		d.TimeSeries.Message = domain.InvalidDatesMessage
	}

	s.metrics.FilteredRows.Observe(float64(len(filtered)))
	s.metrics.RecomputeDuration.Observe(time.Since(start).Seconds())
	s.logger.Debug("dashboard recomputed",
		"id", d.ID,
		"filtered_rows", d.FilteredRows,
		"time_series_rows", d.TimeSeries.Rows,
		"duration", time.Since(start),
	)
	return d, nil
}
