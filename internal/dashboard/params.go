package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/unemployment-dashboard/internal/domain"
)

// ErrInvalidParams marks widget values the dashboard refuses to compute with.
var ErrInvalidParams = errors.New("invalid dashboard parameters")

// Params carries the widget state of one interaction.
//
// A nil Regions or States selects every value observed in the table; a non-nil
// empty slice selects nothing. Zero bin counts fall back to the default. Nil
// dates fall back to the table's date bounds.
type Params struct {
	Regions          []string
	States           []string
	BinsEmployed     int `validate:"omitempty,min=5,max=50"`
	BinsUnemployment int `validate:"omitempty,min=5,max=50"`
	Start            *time.Time
	End              *time.Time
}

// resolved is Params with every default applied.
type resolved struct {
	regions          []string
	states           []string
	binsEmployed     int
	binsUnemployment int
	start            time.Time
	end              time.Time
	hasDates         bool
}

func (r resolved) applied() domain.AppliedFilters {
	f := domain.AppliedFilters{
		Regions:          r.regions,
		States:           r.states,
		BinsEmployed:     r.binsEmployed,
		BinsUnemployment: r.binsUnemployment,
	}
	if r.hasDates {
		start, end := r.start, r.end
		f.Start, f.End = &start, &end
	}
	return f
}

// key identifies the resolved tuple for memoization.
func (r resolved) key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\x1e%s\x1e", len(r.regions), strings.Join(r.regions, "\x1f"))
	fmt.Fprintf(&b, "%d\x1e%s\x1e", len(r.states), strings.Join(r.states, "\x1f"))
	fmt.Fprintf(&b, "%d\x1e%d", r.binsEmployed, r.binsUnemployment)
	if r.hasDates {
		fmt.Fprintf(&b, "\x1e%s\x1e%s", r.start.Format(time.DateOnly), r.end.Format(time.DateOnly))
	}
	return b.String()
}

func resolve(v *validator.Validate, table *domain.Table, p Params) (resolved, error) {
	if err := v.Struct(p); err != nil {
		return resolved{}, validationError(err)
	}

	r := resolved{
		regions:          p.Regions,
		states:           p.States,
		binsEmployed:     orDefault(p.BinsEmployed),
		binsUnemployment: orDefault(p.BinsUnemployment),
		hasDates:         table.HasDates,
	}
	if r.regions == nil {
		r.regions = table.Regions
	}
	if r.states == nil {
		r.states = table.States
	}

	if !table.HasDates {
		return r, nil
	}
	r.start, r.end = table.MinDate, table.MaxDate
	if p.Start != nil {
		r.start = *p.Start
	}
	if p.End != nil {
		r.end = *p.End
	}
	if err := checkBounds("start", r.start, table); err != nil {
		return resolved{}, err
	}
	if err := checkBounds("end", r.end, table); err != nil {
		return resolved{}, err
	}
	return r, nil
}

func orDefault(bins int) int {
	if bins == 0 {
		return domain.DefaultBins
	}
	return bins
}

func checkBounds(field string, d time.Time, table *domain.Table) error {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(table.MinDate) || day.After(table.MaxDate) {
		return fmt.Errorf("%w: %s date %s outside [%s, %s]", ErrInvalidParams, field,
			day.Format(time.DateOnly), table.MinDate.Format(time.DateOnly), table.MaxDate.Format(time.DateOnly))
	}
	return nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must be between %d and %d", fe.Field(), domain.MinBins, domain.MaxBins))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidParams, strings.Join(msgs, "; "))
}
