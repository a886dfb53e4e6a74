package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace is used as namespace of all console metrics.
	Namespace = "crm_console"
)

// Fetch results.
const (
	ResultSuccess   = "success"
	ResultError     = "error"
	ResultDiscarded = "discarded"
)

// Metrics holds console collectors.
type Metrics struct {
	// APIRequestDuration observes remote API calls by endpoint and status class.
	APIRequestDuration *prometheus.HistogramVec
	// ProductFetches counts product searches by result.
	ProductFetches *prometheus.CounterVec
	// DebouncedChanges counts filter and page changes which rescheduled pending fetch.
	DebouncedChanges prometheus.Counter
	// PushEvents counts received push events by event name and outcome.
	PushEvents *prometheus.CounterVec
	// LocalRequests counts requests to local JSON API by route and status code.
	LocalRequests *prometheus.CounterVec
}

// New returns Metrics with collectors registered in reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		APIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of remote API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "status"}),
		ProductFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "catalog",
			Name:      "fetches_total",
			Help:      "The number of product searches by result",
		}, []string{"result"}),
		DebouncedChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "catalog",
			Name:      "debounced_changes_total",
			Help:      "The number of changes which cancelled pending fetch",
		}),
		PushEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "realtime",
			Name:      "events_total",
			Help:      "The number of received push events",
		}, []string{"event", "outcome"}),
		LocalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "The number of local API requests",
		}, []string{"route", "code"}),
	}

	reg.MustRegister(
		m.APIRequestDuration,
		m.ProductFetches,
		m.DebouncedChanges,
		m.PushEvents,
		m.LocalRequests,
	)

	return m
}

// Nop returns Metrics registered in private registry. Useful when metrics aren't exported.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}
