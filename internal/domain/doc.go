// Package domain models the regional unemployment dataset and the pure
// transforms the dashboard is built from.
//
// # Data Source
//
// The input is the "Unemployment in India" survey export: one row per State per
// month, nine columns, published as CSV with a header row whose names carry
// stray whitespace. Headers are discarded and replaced by [Columns].
//
//	State, Date, Frequency, Estimated Unemployment Rate (%), Estimated Employed,
//	Estimated Labour Participation Rate (%), Region, longitude, latitude
//
// Date format:
//
//	DD-MM-YYYY with a leading space, e.g. " 31-05-2019". ISO dates and slash
//	separated variants are also accepted. See [ParseDate].
//
// Null handling:
//
//	Cells that do not parse are coerced to null rather than rejected: the zero
//	time for Date, NaN for decimals and EmployedValid=false for Employed. The row
//	is kept, so it still counts toward the table size and the Region/State
//	filters, and is skipped only by the views that read the null cell.
//
// Region grouping:
//
//	Region is a coarse grouping (North, South, East, West, Northeast) containing
//	several States. [CheckNesting] reports States that appear under more than
//	one Region.
//
// # Transforms
//
// [FilterRows] and [FilterDateRange] derive subsets. [BuildHistogram],
// [BuildSunburst] and [BuildTimeSeries] turn a subset into chart payloads.
// None of them mutate their input.
package domain
