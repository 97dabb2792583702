package domain

import "time"

// Static text shown around the charts.
const (
	DashboardTitle       = "Covid-19 Unemployment Analysis"
	DashboardDescription = "This is an interactive app that allows you to analyze unemployment rate in India " +
		"during Covid. You can choose from multiple states and regions and understand how the " +
		"data changes as you filter the data according to your choice."
	DashboardClosing = "Thank you for visiting. Please come back soon."
)

// Section is the heading and description above one chart.
type Section struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var (
	EmployedSection = Section{
		Title: "Distribution of Estimated Employed",
		Description: "This is an interactive histogram of the distribution of Estimated Employed " +
			"and allows you to select the number of bins.",
	}
	UnemploymentRateSection = Section{
		Title: "Distribution of Estimated Unemployment Rate",
		Description: "This is an interactive histogram of the distribution of Estimated Unemployment Rate " +
			"and allows you to select the number of bins.",
	}
	SunburstSection = Section{
		Title: "Regional Sunburst Chart",
		Description: "This is an interactive sunburst chart based on the State and Region filters, " +
			"with Region at the root and States at the node.",
	}
	TimeSeriesSection = Section{
		Title: "Unemployment Rate Over Time",
		Description: "This is an interactive line chart that allows you to see the unemployment rate " +
			"for different states within the selected time period.",
	}
)

// AppliedFilters echoes the resolved widget values a dashboard was computed with.
type AppliedFilters struct {
	Regions          []string   `json:"regions"`
	States           []string   `json:"states"`
	BinsEmployed     int        `json:"bins_employed"`
	BinsUnemployment int        `json:"bins_unemployment"`
	Start            *time.Time `json:"start,omitempty"`
	End              *time.Time `json:"end,omitempty"`
}

// HistogramPanel is a histogram with its section text.
type HistogramPanel struct {
	Section
	Histogram Histogram `json:"histogram"`
}

// SunburstPanel is the sunburst with its section text.
type SunburstPanel struct {
	Section
	Sunburst Sunburst `json:"sunburst"`
}

// TimeSeriesPanel holds either the line chart or, when the table has no usable
// dates, a placeholder message.
type TimeSeriesPanel struct {
	Section
	Available bool        `json:"available"`
	Message   string      `json:"message,omitempty"`
	Rows      int         `json:"rows"`
	Chart     *TimeSeries `json:"chart,omitempty"`
}

// Dashboard is one full recompute of every chart for a set of widget values.
type Dashboard struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Closing     string `json:"closing"`

	Filters      AppliedFilters `json:"filters"`
	TotalRows    int            `json:"total_rows"`
	FilteredRows int            `json:"filtered_rows"`

	Employed         HistogramPanel  `json:"employed"`
	UnemploymentRate HistogramPanel  `json:"unemployment_rate"`
	Sunburst         SunburstPanel   `json:"sunburst"`
	TimeSeries       TimeSeriesPanel `json:"time_series"`
}

// NewDashboard returns a dashboard carrying the static text, stamped with the
// current time.
func NewDashboard(filters AppliedFilters) Dashboard {
	return Dashboard{
		GeneratedAt:      clock.Now().UTC(),
		Title:            DashboardTitle,
		Description:      DashboardDescription,
		Closing:          DashboardClosing,
		Filters:          filters,
		Employed:         HistogramPanel{Section: EmployedSection},
		UnemploymentRate: HistogramPanel{Section: UnemploymentRateSection},
		Sunburst:         SunburstPanel{Section: SunburstSection},
		TimeSeries:       TimeSeriesPanel{Section: TimeSeriesSection},
	}
}
