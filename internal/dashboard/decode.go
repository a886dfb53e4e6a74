package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/samber/lo"
)

// Shape is kind of chart payload sent by the API.
type Shape int

// Known chart payload shapes.
const (
	// ShapeCounts is plain array of numbers.
	ShapeCounts Shape = iota + 1
	// ShapeBuckets is array of monthly aggregation buckets {_id:{year,month}, count|total}.
	ShapeBuckets
	// ShapeChart is ready chart series {labels, datasets}.
	ShapeChart
)

// String returns shape name.
func (s Shape) String() string {
	switch s {
	case ShapeCounts:
		return "counts"
	case ShapeBuckets:
		return "buckets"
	case ShapeChart:
		return "chart"
	default:
		return "unknown"
	}
}

const chartMonths = 7

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Bucket is monthly aggregation result.
type Bucket struct {
	ID struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	} `json:"_id"`
	Count *float64 `json:"count,omitempty"`
	Total *float64 `json:"total,omitempty"`
}

// Series is chart payload decoded into one of known shapes. Only the field matching Shape is set.
type Series struct {
	Shape   Shape
	Counts  []float64
	Buckets []Bucket
	Chart   *models.ChartData
}

// envelope is {success, data} wrapper used by chart endpoints.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// chartProbe detects ready chart series.
type chartProbe struct {
	Labels   []json.RawMessage `json:"labels"`
	Datasets []json.RawMessage `json:"datasets"`
}

// bucketProbe detects aggregation bucket.
type bucketProbe struct {
	ID    json.RawMessage `json:"_id"`
	Count json.RawMessage `json:"count"`
	Total json.RawMessage `json:"total"`
}

// DecodeChartResponse decodes chart endpoint response. The API sends either
// {success: true, data: <series>} or ready chart series.
func DecodeChartResponse(raw json.RawMessage) (Series, error) {
	if isObject(raw) {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Success && len(env.Data) > 0 && !isNull(env.Data) {
			return DecodeSeries(env.Data)
		}
		if isChart(raw) {
			return DecodeSeries(raw)
		}
	}

	return Series{}, fmt.Errorf("%w: chart response is neither envelope nor chart", ErrUnrecognizedShape)
}

// DecodeSeries detects shape of chart payload and decodes it.
func DecodeSeries(raw json.RawMessage) (Series, error) {
	switch {
	case isObject(raw):
		if !isChart(raw) {
			return Series{}, fmt.Errorf("%w: object without labels and datasets", ErrUnrecognizedShape)
		}
		return decodeChart(raw)
	case isArray(raw):
		return decodeArray(raw)
	default:
		return Series{}, fmt.Errorf("%w: expected object or array", ErrUnrecognizedShape)
	}
}

func decodeArray(raw json.RawMessage) (Series, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return Series{}, fmt.Errorf("%w: %w", ErrUnrecognizedShape, err)
	}

	if len(items) == 0 {
		return Series{Shape: ShapeCounts, Counts: []float64{}}, nil
	}

	first := items[0]
	switch {
	case isObject(first) && isChart(first):
		return decodeChart(first)
	case isObject(first) && isBucket(first):
		var buckets []Bucket
		if err := json.Unmarshal(raw, &buckets); err != nil {
			return Series{}, fmt.Errorf("%w: malformed buckets: %w", ErrUnrecognizedShape, err)
		}
		return Series{Shape: ShapeBuckets, Buckets: buckets}, nil
	default:
		var counts []float64
		if err := json.Unmarshal(raw, &counts); err != nil {
			return Series{}, fmt.Errorf("%w: array is neither counts nor buckets", ErrUnrecognizedShape)
		}
		return Series{Shape: ShapeCounts, Counts: counts}, nil
	}
}

func decodeChart(raw json.RawMessage) (Series, error) {
	var chart models.ChartData
	if err := json.Unmarshal(raw, &chart); err != nil {
		return Series{}, fmt.Errorf("%w: malformed chart: %w", ErrUnrecognizedShape, err)
	}
	return Series{Shape: ShapeChart, Chart: &chart}, nil
}

// CustomersChart returns new customers chart for series.
// Counts show first seven months, buckets show last seven months of the year.
func CustomersChart(s Series) (*models.ChartData, error) {
	dataset := models.Dataset{
		Label:           "New Customers",
		BackgroundColor: "rgba(22, 163, 74, 0.7)",
		BorderColor:     "#16a34a",
		BorderWidth:     1,
		BorderRadius:    4,
	}

	switch s.Shape {
	case ShapeChart:
		return s.Chart, nil
	case ShapeCounts:
		dataset.Data = lo.Subset(s.Counts, 0, chartMonths)
		return chart(monthLabels[:chartMonths], dataset), nil
	case ShapeBuckets:
		dataset.Data = lastMonths(s.Buckets, func(b Bucket) float64 {
			return lo.FromPtr(b.Count)
		})
		return chart(monthLabels[len(monthLabels)-chartMonths:], dataset), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedShape, s.Shape)
	}
}

// RevenueChart returns monthly revenue chart for series.
// Buckets carry revenue in count or, when it's missing, in total.
func RevenueChart(s Series) (*models.ChartData, error) {
	dataset := models.Dataset{
		Label:           "Monthly Revenue ($)",
		BackgroundColor: "rgba(37, 99, 235, 0.1)",
		BorderColor:     "#2563eb",
		BorderWidth:     3,
		Tension:         0.4,
		Fill:            true,
	}

	switch s.Shape {
	case ShapeChart:
		return s.Chart, nil
	case ShapeCounts:
		dataset.Data = s.Counts
		return chart(monthLabels[:chartMonths], dataset), nil
	case ShapeBuckets:
		dataset.Data = lastMonths(s.Buckets, func(b Bucket) float64 {
			if b.Count != nil {
				return *b.Count
			}
			return lo.FromPtr(b.Total)
		})
		return chart(monthLabels[len(monthLabels)-chartMonths:], dataset), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedShape, s.Shape)
	}
}

// lastMonths spreads buckets over calendar months and returns the last seven.
func lastMonths(buckets []Bucket, value func(b Bucket) float64) []float64 {
	monthly := make([]float64, len(monthLabels))
	for _, b := range buckets {
		if ix := b.ID.Month - 1; ix >= 0 && ix < len(monthly) {
			monthly[ix] = value(b)
		}
	}
	return monthly[len(monthly)-chartMonths:]
}

func chart(labels []string, dataset models.Dataset) *models.ChartData {
	return &models.ChartData{
		Labels:   append([]string(nil), labels...),
		Datasets: []models.Dataset{dataset},
	}
}

// StatsResponse is decoded stats endpoint response. Chart payloads embedded
// in the response are kept raw.
type StatsResponse struct {
	Stats     models.Stats
	Customers json.RawMessage
	Revenue   json.RawMessage
}

// DecodeStats decodes stats endpoint response. The API sends either
// {success: true, stats, chartData: {customers, revenue}} or bare stats object.
func DecodeStats(raw json.RawMessage) (*StatsResponse, error) {
	if !isObject(raw) {
		return nil, fmt.Errorf("%w: expected object", ErrInvalidStats)
	}

	var wrapped struct {
		Success   bool          `json:"success"`
		Stats     *models.Stats `json:"stats"`
		ChartData *struct {
			Customers json.RawMessage `json:"customers"`
			Revenue   json.RawMessage `json:"revenue"`
		} `json:"chartData"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStats, err)
	}

	if wrapped.Success && wrapped.Stats != nil {
		resp := &StatsResponse{Stats: *wrapped.Stats}
		if wrapped.ChartData != nil {
			resp.Customers = nonNull(wrapped.ChartData.Customers)
			resp.Revenue = nonNull(wrapped.ChartData.Revenue)
		}
		return resp, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStats, err)
	}
	if _, ok := fields["totalRevenue"]; !ok {
		return nil, fmt.Errorf("%w: neither envelope nor stats", ErrInvalidStats)
	}

	var stats models.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStats, err)
	}

	return &StatsResponse{Stats: stats}, nil
}

func isChart(raw json.RawMessage) bool {
	var probe chartProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.Labels != nil && probe.Datasets != nil
}

func isBucket(raw json.RawMessage) bool {
	var probe bucketProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.ID != nil && (probe.Count != nil || probe.Total != nil)
}

func isObject(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{"))
}

func isArray(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func nonNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || isNull(raw) {
		return nil
	}
	return raw
}
