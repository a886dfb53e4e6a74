package filter

import (
	"net/url"
	"strconv"
)

// URLQuery returns shareable query string parameters mirroring the filter.
// Defaults for category, manufacturer, flags and discount are left out.
func (f Filter) URLQuery() url.Values {
	query := url.Values{}

	if f.Category != "" {
		query.Set("category", f.Category)
	}
	if f.IsSale {
		query.Set("isSale", "true")
	}
	if f.InStock {
		query.Set("inStock", "true")
	}
	if f.Manufacturer != "" {
		query.Set("manufacturer", f.Manufacturer)
	}
	if f.MinDiscount > 0 {
		query.Set("minDiscount", formatNumber(f.MinDiscount))
	}

	query.Set("minprice", formatNumber(f.MinPrice))
	query.Set("maxprice", formatNumber(f.MaxPrice))
	query.Set("sortBy", string(f.SortBy))
	query.Set("limit", strconv.Itoa(f.Limit))

	return query
}

// FromURLQuery returns base filter overridden by values found in query.
// Malformed values are ignored and base value is kept.
func FromURLQuery(query url.Values, base Filter) Filter {
	result := base

	if query.Has("category") {
		result.Category = query.Get("category")
	}
	if query.Has("manufacturer") {
		result.Manufacturer = query.Get("manufacturer")
	}
	if v, err := strconv.ParseBool(query.Get("isSale")); err == nil {
		result.IsSale = v
	}
	if v, err := strconv.ParseBool(query.Get("inStock")); err == nil {
		result.InStock = v
	}
	if v, err := strconv.ParseFloat(query.Get("minDiscount"), 64); err == nil && v >= 0 {
		result.MinDiscount = v
	}
	if v, err := strconv.ParseFloat(query.Get("minprice"), 64); err == nil {
		result.MinPrice = v
	}
	if v, err := strconv.ParseFloat(query.Get("maxprice"), 64); err == nil {
		result.MaxPrice = v
	}
	if v := SortBy(query.Get("sortBy")); v.Valid() {
		result.SortBy = v
	}
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		result.Limit = v
	}

	return result
}
