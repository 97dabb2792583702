package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/unemployment-dashboard/internal/adapter/chart"
	httpadapter "github.com/couchcryptid/unemployment-dashboard/internal/adapter/http"
	"github.com/couchcryptid/unemployment-dashboard/internal/dashboard"
	"github.com/couchcryptid/unemployment-dashboard/internal/domain"
	"github.com/couchcryptid/unemployment-dashboard/internal/observability"
)

func record(t *testing.T, fields ...string) domain.Observation {
	t.Helper()
	o, err := domain.ParseRecord(fields)
	require.NoError(t, err)
	return o
}

func datedTable(t *testing.T) *domain.Table {
	t.Helper()
	return domain.NewTable([]domain.Observation{
		record(t, "A", "31-01-2020", "M", "5.0", "1000", "40", "East", "0", "0"),
		record(t, "A", "29-02-2020", "M", "7.0", "1200", "41", "East", "0", "0"),
		record(t, "B", "31-01-2020", "M", "3.0", "800", "39", "East", "0", "0"),
		record(t, "C", "31-01-2020", "M", "9.0", "2000", "45", "West", "0", "0"),
		record(t, "C", "31-03-2020", "M", "10.0", "2050", "44", "West", "0", "0"),
	})
}

func undatedTable(t *testing.T) *domain.Table {
	t.Helper()
	return domain.NewTable([]domain.Observation{
		record(t, "A", "", "M", "5.0", "1000", "40", "East", "0", "0"),
		record(t, "C", "n/a", "M", "9.0", "2000", "45", "West", "0", "0"),
	})
}

func newTestServer(t *testing.T, table *domain.Table) *httpadapter.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	svc := dashboard.New(table, dashboard.Options{SunburstWidth: 600, SunburstHeight: 600}, logger, metrics)
	return httpadapter.NewServer(":0", svc, chart.NewRenderer(640, 400), logger, metrics)
}

func get(t *testing.T, srv *httpadapter.Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeDashboard(t *testing.T, rec *httptest.ResponseRecorder) domain.Dashboard {
	t.Helper()
	var d domain.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	return d
}

func TestHealthzReturns200(t *testing.T) {
	rec := get(t, newTestServer(t, datedTable(t)), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenLoaded(t *testing.T) {
	rec := get(t, newTestServer(t, datedTable(t)), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WithoutDataset(t *testing.T) {
	rec := get(t, newTestServer(t, nil), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(t, newTestServer(t, datedTable(t)), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestOptions(t *testing.T) {
	rec := get(t, newTestServer(t, datedTable(t)), "/api/options")
	require.Equal(t, http.StatusOK, rec.Code)

	var o dashboard.WidgetOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	assert.Equal(t, []string{"East", "West"}, o.Regions)
	assert.Equal(t, []string{"A", "B", "C"}, o.States)
	assert.Equal(t, domain.DefaultBins, o.DefaultBins)
	require.NotNil(t, o.MinDate)
	assert.Equal(t, "2020-01-31", o.MinDate.Format("2006-01-02"))
	assert.Equal(t, "2020-03-31", o.MaxDate.Format("2006-01-02"))
}

func TestDashboard_Defaults(t *testing.T) {
	rec := get(t, newTestServer(t, datedTable(t)), "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	d := decodeDashboard(t, rec)
	assert.Equal(t, domain.DashboardTitle, d.Title)
	assert.Equal(t, 5, d.FilteredRows)
	assert.Equal(t, domain.DefaultBins, d.Employed.Histogram.Bins)
	assert.True(t, d.TimeSeries.Available)
	assert.NotEmpty(t, d.ID)
}

func TestDashboard_QueryParams(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		filtered int
	}{
		{"region subset", "region=East", 3},
		{"region and state", "region=East&state=A&state=C", 2},
		{"empty region selection", "region=", 0},
		{"empty state selection", "state=", 0},
		{"bins", "bins_employed=5&bins_unemployment=50", 5},
		{"date range", "start=2020-01-31&end=2020-02-29", 5},
	}
	srv := newTestServer(t, datedTable(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, srv, "/api/dashboard?"+tt.query)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.filtered, decodeDashboard(t, rec).FilteredRows)
		})
	}
}

func TestDashboard_DateRangeLimitsTimeSeries(t *testing.T) {
	rec := get(t, newTestServer(t, datedTable(t)), "/api/dashboard?start=2020-02-01&end=2020-03-31")
	require.Equal(t, http.StatusOK, rec.Code)

	d := decodeDashboard(t, rec)
	assert.Equal(t, 2, d.TimeSeries.Rows)
}

func TestDashboard_InvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bins below minimum", "bins_employed=4"},
		{"bins above maximum", "bins_unemployment=51"},
		{"bins not a number", "bins_employed=many"},
		{"malformed date", "start=31-01-2020"},
		{"start before picker bound", "start=2019-12-31"},
		{"end after picker bound", "end=2020-04-01"},
	}
	srv := newTestServer(t, datedTable(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, srv, "/api/dashboard?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestDashboard_NoUsableDates(t *testing.T) {
	rec := get(t, newTestServer(t, undatedTable(t)), "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	d := decodeDashboard(t, rec)
	assert.False(t, d.TimeSeries.Available)
	assert.Equal(t, domain.InvalidDatesMessage, d.TimeSeries.Message)
}

func TestCharts_Images(t *testing.T) {
	tests := []struct {
		target      string
		contentType string
	}{
		{"/api/charts/employed", "image/png"},
		{"/api/charts/unemployment-rate?format=png", "image/png"},
		{"/api/charts/timeseries?format=svg", "image/svg+xml"},
		{"/api/charts/employed?format=svg&region=West", "image/svg+xml"},
	}
	srv := newTestServer(t, datedTable(t))
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, srv, tt.target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.NotZero(t, rec.Body.Len())
		})
	}
}

func TestCharts_Sunburst(t *testing.T) {
	rec := get(t, newTestServer(t, datedTable(t)), "/api/charts/sunburst?region=East")
	require.Equal(t, http.StatusOK, rec.Code)

	var panel domain.SunburstPanel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &panel))
	assert.Equal(t, domain.SunburstSection.Title, panel.Title)
	require.Len(t, panel.Sunburst.Roots, 1)
	assert.Equal(t, "East", panel.Sunburst.Roots[0].Label)
	assert.InDelta(t, 15.0, panel.Sunburst.Roots[0].Value, 1e-9)
}

func TestCharts_EmptySelectionHasNoContent(t *testing.T) {
	srv := newTestServer(t, datedTable(t))
	for _, name := range []string{"employed", "unemployment-rate", "timeseries"} {
		rec := get(t, srv, "/api/charts/"+name+"?state=")
		assert.Equal(t, http.StatusNoContent, rec.Code, name)
	}
}

func TestCharts_TimeSeriesPlaceholder(t *testing.T) {
	rec := get(t, newTestServer(t, undatedTable(t)), "/api/charts/timeseries")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, domain.InvalidDatesMessage, rec.Header().Get(httpadapter.MessageHeader))
}

func TestCharts_Errors(t *testing.T) {
	srv := newTestServer(t, datedTable(t))

	rec := get(t, srv, "/api/charts/pie")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, srv, "/api/charts/employed?format=gif")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, srv, "/api/charts/employed?bins_employed=100")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
