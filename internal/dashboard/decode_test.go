package dashboard_test

import (
	"encoding/json"
	"os"
	"path"
	"testing"

	"github.com/MichalMitros/crm-console/internal/dashboard"
	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	firstMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul"}
	lastMonths  = []string{"Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

func customersDataset(data ...float64) models.Dataset {
	return models.Dataset{
		Label:           "New Customers",
		Data:            data,
		BackgroundColor: "rgba(22, 163, 74, 0.7)",
		BorderColor:     "#16a34a",
		BorderWidth:     1,
		BorderRadius:    4,
	}
}

func revenueDataset(data ...float64) models.Dataset {
	return models.Dataset{
		Label:           "Monthly Revenue ($)",
		Data:            data,
		BackgroundColor: "rgba(37, 99, 235, 0.1)",
		BorderColor:     "#2563eb",
		BorderWidth:     3,
		Tension:         0.4,
		Fill:            true,
	}
}

func TestUnitCustomersChart(t *testing.T) {
	tests := map[string]struct {
		file      string
		wantShape dashboard.Shape
		want      *models.ChartData
	}{
		"aggregation buckets": {
			file:      "customers_buckets.json",
			wantShape: dashboard.ShapeBuckets,
			want: &models.ChartData{
				Labels:   lastMonths,
				Datasets: []models.Dataset{customersDataset(12, 0, 0, 7, 0, 0, 21)},
			},
		},
		"counts": {
			file:      "customers_counts.json",
			wantShape: dashboard.ShapeCounts,
			want: &models.ChartData{
				Labels:   firstMonths,
				Datasets: []models.Dataset{customersDataset(120, 140, 180, 200, 240, 210, 260)},
			},
		},
		"ready chart": {
			file:      "revenue_chart.json",
			wantShape: dashboard.ShapeChart,
			want: &models.ChartData{
				Labels: []string{"Jan", "Feb", "Mar"},
				Datasets: []models.Dataset{{
					Label:       "Revenue",
					Data:        []float64{15000, 18000, 22000},
					BorderColor: "#2563eb",
					BorderWidth: 3,
				}},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			series, err := dashboard.DecodeChartResponse(readTestdata(t, tt.file))
			require.NoError(t, err, "shouldn't return any error")
			assert.Equal(t, tt.wantShape, series.Shape, "should detect shape")

			got, err := dashboard.CustomersChart(series)

			require.NoError(t, err, "shouldn't return any error")
			assert.Equal(t, tt.want, got, "should build customers chart")
		})
	}
}

func TestUnitRevenueChart(t *testing.T) {
	tests := map[string]struct {
		file string
		want *models.ChartData
	}{
		"aggregation buckets with totals": {
			file: "revenue_buckets.json",
			want: &models.ChartData{
				Labels:   lastMonths,
				Datasets: []models.Dataset{revenueDataset(0, 1500.5, 900, 0, 0, 0, 0)},
			},
		},
		"counts": {
			file: "customers_counts.json",
			want: &models.ChartData{
				Labels:   firstMonths,
				Datasets: []models.Dataset{revenueDataset(120, 140, 180, 200, 240, 210, 260, 300, 320)},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			series, err := dashboard.DecodeChartResponse(readTestdata(t, tt.file))
			require.NoError(t, err, "shouldn't return any error")

			got, err := dashboard.RevenueChart(series)

			require.NoError(t, err, "shouldn't return any error")
			assert.Equal(t, tt.want, got, "should build revenue chart")
		})
	}
}

func TestUnitDecodeChartResponseUnrecognized(t *testing.T) {
	tests := map[string]string{
		"failed envelope":   `{"success":false,"data":[1,2,3]}`,
		"empty envelope":    `{"success":true,"data":null}`,
		"bare array":        `[1,2,3]`,
		"string":            `"chart"`,
		"object":            `{"months":[1,2,3]}`,
		"unknown objects":   `{"success":true,"data":[{"month":1}]}`,
		"booleans":          `{"success":true,"data":[true,false]}`,
		"labels only":       `{"labels":["Jan"]}`,
		"scalar in data":    `{"success":true,"data":7}`,
		"mixed array items": `{"success":true,"data":[1,"2"]}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := dashboard.DecodeChartResponse(json.RawMessage(raw))

			require.ErrorIs(t, err, dashboard.ErrUnrecognizedShape, "should reject unrecognized shape")
		})
	}
}

func TestUnitDecodeSeriesEmptyArray(t *testing.T) {
	series, err := dashboard.DecodeSeries(json.RawMessage(`[]`))

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, dashboard.ShapeCounts, series.Shape, "should treat empty array as counts")
	assert.Empty(t, series.Counts, "should have no counts")
}

func TestUnitDecodeSeriesArrayOfCharts(t *testing.T) {
	series, err := dashboard.DecodeSeries(json.RawMessage(`[{"labels":["Jan"],"datasets":[{"label":"x","data":[1]}]}]`))

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, dashboard.ShapeChart, series.Shape, "should use first chart")
	assert.Equal(t, []string{"Jan"}, series.Chart.Labels, "should decode chart")
}

func TestUnitChartUnknownShape(t *testing.T) {
	_, err := dashboard.CustomersChart(dashboard.Series{})
	require.ErrorIs(t, err, dashboard.ErrUnrecognizedShape, "should reject empty series")

	_, err = dashboard.RevenueChart(dashboard.Series{})
	require.ErrorIs(t, err, dashboard.ErrUnrecognizedShape, "should reject empty series")
}

func TestUnitDecodeStats(t *testing.T) {
	tests := map[string]struct {
		file          string
		want          models.Stats
		wantCustomers bool
	}{
		"envelope": {
			file: "stats_envelope.json",
			want: models.Stats{
				TotalRevenue:   135393,
				TotalCustomers: 87,
				ActiveDeals:    142,
				ConversionRate: 32.5,
				TotalProducts:  lo.ToPtr(40),
			},
			wantCustomers: true,
		},
		"bare stats": {
			file: "stats_bare.json",
			want: models.Stats{
				TotalRevenue:   1000,
				TotalCustomers: 5,
				ActiveDeals:    2,
				ConversionRate: 12.5,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := dashboard.DecodeStats(readTestdata(t, tt.file))

			require.NoError(t, err, "shouldn't return any error")
			assert.Equal(t, tt.want, got.Stats, "should decode stats")
			assert.Equal(t, tt.wantCustomers, got.Customers != nil, "should keep embedded customers chart")
			assert.Nil(t, got.Revenue, "should skip null revenue chart")
		})
	}
}

func TestUnitDecodeStatsInvalid(t *testing.T) {
	tests := map[string]string{
		"array":             `[1,2,3]`,
		"unknown object":    `{"revenue":1}`,
		"envelope no stats": `{"success":true}`,
		"failed envelope":   `{"success":false,"stats":{"totalRevenue":1}}`,
		"wrong types":       `{"totalRevenue":"a lot"}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := dashboard.DecodeStats(json.RawMessage(raw))

			require.ErrorIs(t, err, dashboard.ErrInvalidStats, "should reject invalid stats")
		})
	}
}

func readTestdata(t *testing.T, name string) json.RawMessage {
	t.Helper()

	data, err := os.ReadFile(path.Join("testdata", name))
	require.NoError(t, err, "can't read test data")

	return data
}
