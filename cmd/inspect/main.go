// Command inspect checks a dashboard dataset before it is served. It loads the
// file with the same loader the service uses and reports, per phase, whether
// dates parse, whether every State nests under a single Region, and whether
// the numeric columns hold plausible values.
//
// Usage:
//
//	go run ./cmd/inspect -file data/unemployment.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/unemployment-dashboard/internal/adapter/dataset"
	"github.com/couchcryptid/unemployment-dashboard/internal/domain"
)

// phase tracks pass/fail for an inspection phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	file := flag.String("file", "", "CSV or XLSX dataset to inspect")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*file, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(path string, out io.Writer) int {
	fmt.Fprintln(out, "=== Dataset Inspection ===")
	fmt.Fprintln(out)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	load := &phase{name: "Phase 1: Load"}
	table, err := dataset.NewLoader(logger).Load(path)
	if err != nil {
		load.errorf("%v", err)
		report(out, []*phase{load})
		return 1
	}
	if table.Len() == 0 {
		load.errorf("no data rows")
	}

	phases := []*phase{
		load,
		checkDates(table),
		checkNesting(table),
		checkNumerics(table),
	}

	fmt.Fprintf(out, "Rows: %d, Regions: %d, States: %d\n", table.Len(), len(table.Regions), len(table.States))
	if table.HasDates {
		fmt.Fprintf(out, "Dates: %s to %s (%d null)\n",
			table.MinDate.Format("2006-01-02"), table.MaxDate.Format("2006-01-02"), table.NullDates)
	}
	fmt.Fprintln(out)

	if !report(out, phases) {
		fmt.Fprintln(out, "\nInspection FAILED.")
		return 1
	}
	fmt.Fprintln(out, "\nAll checks passed.")
	return 0
}

// report prints the phase summary and details and returns whether every phase passed.
func report(out io.Writer, phases []*phase) bool {
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-34s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}
	return allPassed
}

// line maps a row index back to its line in the source file, header included.
func line(i int) int { return i + 2 }

func checkDates(t *domain.Table) *phase {
	p := &phase{name: "Phase 2: Dates"}
	if !t.HasDates {
		p.errorf("no row has a usable date; the time series will be unavailable")
		return p
	}
	for i, r := range t.Rows {
		if !r.HasDate() {
			p.errorf("line %d (%s): date did not parse", line(i), r.State)
		}
	}
	return p
}

func checkNesting(t *domain.Table) *phase {
	p := &phase{name: "Phase 3: Region/State nesting"}
	for _, v := range domain.CheckNesting(t.Rows) {
		p.errorf("state %q appears under regions %v", v.State, v.Regions)
	}
	return p
}

func checkNumerics(t *domain.Table) *phase {
	p := &phase{name: "Phase 4: Numeric columns"}
	percentages := []string{domain.ColUnemploymentRate, domain.ColLabourParticipationRate}
	for i, r := range t.Rows {
		for _, col := range percentages {
			v, ok := r.Value(col)
			switch {
			case !ok:
				p.errorf("line %d (%s): %s is empty or not a number", line(i), r.State, col)
			case v < 0 || v > 100:
				p.errorf("line %d (%s): %s %g outside [0, 100]", line(i), r.State, col, v)
			}
		}
		switch {
		case !r.EmployedValid:
			p.errorf("line %d (%s): %s is empty or not an integer", line(i), r.State, domain.ColEmployed)
		case r.Employed < 0:
			p.errorf("line %d (%s): %s is negative", line(i), r.State, domain.ColEmployed)
		}
	}
	return p
}
