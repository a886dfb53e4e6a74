// Package filter describes product search queries.
package filter

import (
	"fmt"
	"net/url"
	"strconv"
)

// SortBy is products ordering.
type SortBy string

// Supported orderings.
const (
	SortNewest    SortBy = "newest"
	SortPriceAsc  SortBy = "priceAsc"
	SortPriceDesc SortBy = "priceDesc"
)

const (
	// DefaultLimit is page size used when none is provided.
	DefaultLimit = 12
	// DefaultMinPrice is lower bound of default price range.
	DefaultMinPrice = 1
	// DefaultMaxPrice is upper bound of default price range.
	DefaultMaxPrice = 1000
)

// Filter is product search query. It is a value, every edit returns new Filter.
type Filter struct {
	Category     string  `json:"category"`
	IsSale       bool    `json:"isSale"`
	MinDiscount  float64 `json:"minDiscount"`
	Manufacturer string  `json:"manufacturer"`
	InStock      bool    `json:"inStock"`
	MinPrice     float64 `json:"minPrice"`
	MaxPrice     float64 `json:"maxPrice"`
	SortBy       SortBy  `json:"sortBy"`
	Limit        int     `json:"limit"`
}

// Default returns default filter with provided page size.
func Default(limit int) Filter {
	if limit <= 0 {
		limit = DefaultLimit
	}

	return Filter{
		Category:     "",
		IsSale:       false,
		MinDiscount:  0,
		Manufacturer: "",
		InStock:      false,
		MinPrice:     DefaultMinPrice,
		MaxPrice:     DefaultMaxPrice,
		SortBy:       SortNewest,
		Limit:        limit,
	}
}

// Validate checks filter values. Price range order is not checked.
func (f Filter) Validate() error {
	if f.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidFilter, f.Limit)
	}

	if f.MinDiscount < 0 {
		return fmt.Errorf("%w: min discount can't be negative, got %v", ErrInvalidFilter, f.MinDiscount)
	}

	if !f.SortBy.Valid() {
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidFilter, f.SortBy)
	}

	return nil
}

// Valid reports whether s is supported ordering.
func (s SortBy) Valid() bool {
	switch s {
	case SortNewest, SortPriceAsc, SortPriceDesc:
		return true
	default:
		return false
	}
}

// WithLimit returns copy of filter with provided limit.
func (f Filter) WithLimit(limit int) Filter {
	f.Limit = limit
	return f
}

// Skip returns number of products to skip for provided page.
func (f Filter) Skip(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit
}

// SearchQuery returns search endpoint query parameters for provided page.
// Empty string fields are omitted.
func (f Filter) SearchQuery(page int) url.Values {
	query := url.Values{}

	if f.Category != "" {
		query.Set("category", f.Category)
	}
	if f.Manufacturer != "" {
		query.Set("manufacturer", f.Manufacturer)
	}

	query.Set("isSale", strconv.FormatBool(f.IsSale))
	query.Set("inStock", strconv.FormatBool(f.InStock))
	query.Set("minDiscount", formatNumber(f.MinDiscount))
	query.Set("minPrice", formatNumber(f.MinPrice))
	query.Set("maxPrice", formatNumber(f.MaxPrice))
	query.Set("sortBy", string(f.SortBy))
	query.Set("skip", strconv.Itoa(f.Skip(page)))
	query.Set("limit", strconv.Itoa(f.Limit))

	return query
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
