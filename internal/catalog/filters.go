// Package catalog holds the browse state of the product listing: current
// page, price-range filter, and sort key, mirrored bidirectionally with a
// query string so the state survives restarts and external edits.
package catalog

import (
	"net/url"
	"strconv"

	"redseam/internal/api"
)

// Filters is the listing state. The zero value means page 1, no price
// filter, default ordering.
type Filters struct {
	Page      int
	PriceFrom float64 // 0 = unset
	PriceTo   float64 // 0 = unset
	Sort      string  // one of SortOptions values, "" = default
}

// ParseQuery seeds filters from query parameters, the inverse of Query.
// Garbage values degrade to defaults; a page below 1 reads as 1.
func ParseQuery(q url.Values) Filters {
	f := Filters{Page: 1}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 1 {
		f.Page = page
	}
	if v, err := strconv.ParseFloat(q.Get("price_from"), 64); err == nil && v > 0 {
		f.PriceFrom = v
	}
	if v, err := strconv.ParseFloat(q.Get("price_to"), 64); err == nil && v > 0 {
		f.PriceTo = v
	}
	if sort := q.Get("sort"); isSortValue(sort) {
		f.Sort = sort
	}
	return f
}

// ParseQueryString is ParseQuery over a raw query string; unparsable input
// yields the default state.
func ParseQueryString(raw string) Filters {
	q, err := url.ParseQuery(raw)
	if err != nil {
		return Filters{Page: 1}
	}
	return ParseQuery(q)
}

// Query renders the canonical query parameters. Defaults are omitted so the
// mirror stays minimal, matching how the storefront rewrites its URL.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.Page > 1 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PriceFrom > 0 {
		q.Set("price_from", strconv.FormatFloat(f.PriceFrom, 'f', -1, 64))
	}
	if f.PriceTo > 0 {
		q.Set("price_to", strconv.FormatFloat(f.PriceTo, 'f', -1, 64))
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	return q
}

// CurrentPage clamps the page for reads; values below 1 read as 1.
func (f Filters) CurrentPage() int {
	if f.Page < 1 {
		return 1
	}
	return f.Page
}

// SetPage moves to a page, clamped to >= 1.
func (f *Filters) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	f.Page = page
}

// SetPrice sets the price range and resets to page 1. Zero clears a bound.
func (f *Filters) SetPrice(from, to float64) {
	f.PriceFrom = from
	f.PriceTo = to
	f.Page = 1
}

// ClearPrice removes the price filter and resets to page 1.
func (f *Filters) ClearPrice() {
	f.SetPrice(0, 0)
}

// SetSort sets the sort key and resets to page 1.
func (f *Filters) SetSort(sort string) {
	f.Sort = sort
	f.Page = 1
}

// Reset restores the default state.
func (f *Filters) Reset() {
	*f = Filters{Page: 1}
}

// ListParams maps the filter state onto the API's query contract, including
// the bracket-style filter keys and the API spelling of the sort key.
func (f Filters) ListParams() api.ListParams {
	return api.ListParams{
		Page:      f.CurrentPage(),
		Sort:      APISort(f.Sort),
		PriceFrom: f.PriceFrom,
		PriceTo:   f.PriceTo,
	}
}
