package http

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/unemployment-dashboard/internal/dashboard"
)

// Query parameter names of the dashboard widgets.
const (
	paramRegion           = "region"
	paramState            = "state"
	paramBinsEmployed     = "bins_employed"
	paramBinsUnemployment = "bins_unemployment"
	paramStart            = "start"
	paramEnd              = "end"
)

// parseParams maps query values onto dashboard.Params. An absent region or
// state parameter selects every value; a present one with only empty values
// selects nothing.
func parseParams(q url.Values) (dashboard.Params, error) {
	var p dashboard.Params
	p.Regions = selection(q, paramRegion)
	p.States = selection(q, paramState)

	var err error
	if p.BinsEmployed, err = intParam(q, paramBinsEmployed); err != nil {
		return dashboard.Params{}, err
	}
	if p.BinsUnemployment, err = intParam(q, paramBinsUnemployment); err != nil {
		return dashboard.Params{}, err
	}
	if p.Start, err = dateParam(q, paramStart); err != nil {
		return dashboard.Params{}, err
	}
	if p.End, err = dateParam(q, paramEnd); err != nil {
		return dashboard.Params{}, err
	}
	return p, nil
}

func selection(q url.Values, name string) []string {
	vals, ok := q[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func intParam(q url.Values, name string) (int, error) {
	s := q.Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", dashboard.ErrInvalidParams, name)
	}
	return n, nil
}

func dateParam(q url.Values, name string) (*time.Time, error) {
	s := q.Get(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", dashboard.ErrInvalidParams, name)
	}
	return &t, nil
}
