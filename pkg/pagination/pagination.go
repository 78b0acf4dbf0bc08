package pagination

import (
	"net/http"
	"strconv"
)

// Params holds pagination parameters extracted from query strings. They are
// forwarded verbatim to the upstream commerce API, which owns the actual
// paging; total page counts come back on the upstream response headers.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// DefaultParams returns the storefront paging defaults.
func DefaultParams() Params {
	return Params{
		Page:    1,
		PerPage: 10,
	}
}

// FromRequest extracts pagination parameters from an HTTP request.
// Invalid or out-of-range values fall back to defaults.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if perPage := r.URL.Query().Get("per_page"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 100 {
			p.PerPage = v
		}
	}

	return p
}
