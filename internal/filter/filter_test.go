package filter_test

import (
	"net/url"
	"testing"

	"github.com/MichalMitros/crm-console/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitDefault(t *testing.T) {
	want := filter.Filter{
		Category:     "",
		IsSale:       false,
		MinDiscount:  0,
		Manufacturer: "",
		InStock:      false,
		MinPrice:     1,
		MaxPrice:     1000,
		SortBy:       filter.SortNewest,
		Limit:        12,
	}

	assert.Equal(t, want, filter.Default(12), "should return documented defaults")
	assert.Equal(t, want, filter.Default(0), "should fall back to default limit")
	assert.Equal(t, 24, filter.Default(24).Limit, "should use provided limit")
}

func TestUnitValidate(t *testing.T) {
	tests := map[string]struct {
		filter  filter.Filter
		wantErr error
	}{
		"default": {
			filter: filter.Default(12),
		},
		"min price above max price": {
			filter: func() filter.Filter {
				f := filter.Default(12)
				f.MinPrice = 500
				f.MaxPrice = 10
				return f
			}(),
		},
		"zero limit": {
			filter:  filter.Default(12).WithLimit(0),
			wantErr: filter.ErrInvalidFilter,
		},
		"negative discount": {
			filter: func() filter.Filter {
				f := filter.Default(12)
				f.MinDiscount = -1
				return f
			}(),
			wantErr: filter.ErrInvalidFilter,
		},
		"unknown sort": {
			filter: func() filter.Filter {
				f := filter.Default(12)
				f.SortBy = "cheapest"
				return f
			}(),
			wantErr: filter.ErrInvalidFilter,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, tt.filter.Validate(), tt.wantErr, "should return correct error")
		})
	}
}

func TestUnitWithLimitReturnsCopy(t *testing.T) {
	original := filter.Default(12)
	changed := original.WithLimit(48)

	assert.Equal(t, 12, original.Limit, "shouldn't mutate original filter")
	assert.Equal(t, 48, changed.Limit, "should return filter with new limit")
}

func TestUnitSearchQuery(t *testing.T) {
	f := filter.Default(12)
	f.Category = "Cakes"

	tests := map[string]struct {
		page int
		want url.Values
	}{
		"first page": {
			page: 1,
			want: url.Values{
				"category":    {"Cakes"},
				"isSale":      {"false"},
				"inStock":     {"false"},
				"minDiscount": {"0"},
				"minPrice":    {"1"},
				"maxPrice":    {"1000"},
				"sortBy":      {"newest"},
				"skip":        {"0"},
				"limit":       {"12"},
			},
		},
		"third page": {
			page: 3,
			want: url.Values{
				"category":    {"Cakes"},
				"isSale":      {"false"},
				"inStock":     {"false"},
				"minDiscount": {"0"},
				"minPrice":    {"1"},
				"maxPrice":    {"1000"},
				"sortBy":      {"newest"},
				"skip":        {"24"},
				"limit":       {"12"},
			},
		},
		"page below one": {
			page: 0,
			want: url.Values{
				"category":    {"Cakes"},
				"isSale":      {"false"},
				"inStock":     {"false"},
				"minDiscount": {"0"},
				"minPrice":    {"1"},
				"maxPrice":    {"1000"},
				"sortBy":      {"newest"},
				"skip":        {"0"},
				"limit":       {"12"},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.SearchQuery(tt.page), "should return correct search query")
		})
	}
}

func TestUnitURLQuery(t *testing.T) {
	f := filter.Default(24)
	f.IsSale = true
	f.Manufacturer = "Golden Cake"
	f.MinDiscount = 10
	f.SortBy = filter.SortPriceDesc

	want := url.Values{
		"isSale":       {"true"},
		"manufacturer": {"Golden Cake"},
		"minDiscount":  {"10"},
		"minprice":     {"1"},
		"maxprice":     {"1000"},
		"sortBy":       {"priceDesc"},
		"limit":        {"24"},
	}

	assert.Equal(t, want, f.URLQuery(), "should mirror non-default values")
	assert.Equal(t, f, filter.FromURLQuery(f.URLQuery(), filter.Default(12)),
		"should restore filter from its query",
	)
}

func TestUnitFromURLQueryKeepsBaseOnMalformedValues(t *testing.T) {
	base := filter.Default(12)
	query := url.Values{
		"minprice": {"cheap"},
		"limit":    {"-5"},
		"sortBy":   {"random"},
		"isSale":   {"maybe"},
		"category": {"Fruits"},
	}

	want := base
	want.Category = "Fruits"

	assert.Equal(t, want, filter.FromURLQuery(query, base), "should keep base values for malformed parameters")
}
