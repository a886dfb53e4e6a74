// Package dashboard keeps CRM statistics and charts shown on the dashboard.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MichalMitros/crm-console/internal/api"
	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Client --filename client.go
//go:generate mockery --name Recorder --filename recorder.go

// DefaultMonths is number of months requested for charts.
const DefaultMonths = 7

// Messages shown when dashboard can't be loaded.
const (
	MessageUnreachable = "Cannot connect to server. Please check if backend is running."
	MessageAuthFailed  = "Authentication failed. Please log in again."
	MessageLoadFailed  = "Failed to load dashboard data"
)

// Client calls dashboard API.
type Client interface {
	CurrentUser(ctx context.Context) (*models.User, error)
	Stats(ctx context.Context) (json.RawMessage, error)
	NewCustomers(ctx context.Context, months int) (json.RawMessage, error)
	Revenue(ctx context.Context, months int) (json.RawMessage, error)
}

// Recorder stores stats history.
type Recorder interface {
	// RecordStats stores stats taken at provided time.
	RecordStats(ctx context.Context, takenAt time.Time, stats models.Stats) error
	// ListStats returns up to limit latest snapshots, newest first.
	ListStats(ctx context.Context, limit int) ([]models.StatsSnapshot, error)
}

// Clock provides times.
type Clock interface {
	// Now returns current time.
	Now() time.Time
}

type systemClock struct{}

// Now returns current UTC time.
func (c systemClock) Now() time.Time {
	return time.Now().UTC()
}

// StatsUpdate is partial stats. Nil fields are left unchanged.
type StatsUpdate struct {
	TotalRevenue   *float64 `json:"totalRevenue,omitempty"`
	TotalCustomers *int     `json:"totalCustomers,omitempty"`
	ActiveDeals    *int     `json:"activeDeals,omitempty"`
	ConversionRate *float64 `json:"conversionRate,omitempty"`
	TotalProducts  *int     `json:"totalProducts,omitempty"`
}

// Snapshot is dashboard state.
type Snapshot struct {
	User      *models.User      `json:"user"`
	Stats     *models.Stats     `json:"stats"`
	Customers *models.ChartData `json:"customers"`
	Revenue   *models.ChartData `json:"revenue"`
	Loading   bool              `json:"loading"`
	Error     string            `json:"error,omitempty"`
	// Retryable is set when last refresh failed and can be repeated.
	Retryable bool `json:"retryable"`
}

// Option is custom configuration of Store.
type Option func(s *Store)

// Store holds dashboard data. Parts which fail to refresh keep their previous values.
type Store struct {
	client   Client
	logger   *zerolog.Logger
	recorder Recorder
	clock    Clock
	months   int

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewStore returns new Store. It is loading until first Refresh finishes.
func NewStore(client Client, logger *zerolog.Logger, ops ...Option) *Store {
	s := &Store{
		client:   client,
		logger:   logger,
		clock:    systemClock{},
		months:   DefaultMonths,
		snapshot: Snapshot{Loading: true},
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// refresh holds results of single refresh.
type refresh struct {
	user         *models.User
	stats        *StatsResponse
	customers    *models.ChartData
	revenue      *models.ChartData
	userErr      error
	statsErr     error
	customersErr error
	revenueErr   error
}

// Refresh fetches current user, stats and both charts concurrently.
// It returns joined errors of all failed parts.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.snapshot.Loading = true
	s.snapshot.Error = ""
	s.snapshot.Retryable = false
	s.mu.Unlock()

	var r refresh
	var eg errgroup.Group

	eg.Go(func() error {
		r.user, r.userErr = s.client.CurrentUser(ctx)
		if r.userErr != nil {
			r.userErr = fmt.Errorf("can't load current user: %w", r.userErr)
		}
		return nil
	})
	eg.Go(func() error {
		r.stats, r.statsErr = s.fetchStats(ctx)
		return nil
	})
	eg.Go(func() error {
		r.customers, r.customersErr = s.fetchChart(ctx, s.client.NewCustomers, CustomersChart)
		if r.customersErr != nil {
			r.customersErr = fmt.Errorf("can't load customers chart: %w", r.customersErr)
		}
		return nil
	})
	eg.Go(func() error {
		r.revenue, r.revenueErr = s.fetchChart(ctx, s.client.Revenue, RevenueChart)
		if r.revenueErr != nil {
			r.revenueErr = fmt.Errorf("can't load revenue chart: %w", r.revenueErr)
		}
		return nil
	})

	_ = eg.Wait()

	if r.stats != nil {
		s.record(ctx, r.stats.Stats)
	}

	err := errors.Join(r.statsErr, r.userErr, r.customersErr, r.revenueErr)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.apply(&r)
	s.snapshot.Loading = false
	if err != nil {
		s.snapshot.Error = ErrorMessage(firstError(r.statsErr, r.userErr, r.customersErr, r.revenueErr))
		s.snapshot.Retryable = true

		s.logger.Error().
			Err(err).
			Msg("can't refresh dashboard")
	}

	return err
}

// apply commits successful parts. Charts embedded in stats are used only when
// chart endpoint failed. s.mu must be held.
func (s *Store) apply(r *refresh) {
	if r.user != nil {
		s.snapshot.User = r.user
	}

	if r.stats != nil {
		stats := r.stats.Stats
		s.snapshot.Stats = &stats
	}

	if r.customers != nil {
		s.snapshot.Customers = r.customers
	} else if r.stats != nil && r.stats.Customers != nil {
		s.snapshot.Customers = s.embeddedChart(r.stats.Customers, CustomersChart)
	}

	if r.revenue != nil {
		s.snapshot.Revenue = r.revenue
	} else if r.stats != nil && r.stats.Revenue != nil {
		s.snapshot.Revenue = s.embeddedChart(r.stats.Revenue, RevenueChart)
	}
}

func (s *Store) embeddedChart(raw json.RawMessage, build func(Series) (*models.ChartData, error)) *models.ChartData {
	series, err := DecodeSeries(raw)
	if err == nil {
		var chart *models.ChartData
		if chart, err = build(series); err == nil {
			return chart
		}
	}

	s.logger.Warn().
		Err(err).
		Msg("chart embedded in stats ignored")
	return nil
}

func (s *Store) fetchStats(ctx context.Context) (*StatsResponse, error) {
	raw, err := s.client.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load stats: %w", err)
	}

	resp, err := DecodeStats(raw)
	if err != nil {
		return nil, fmt.Errorf("can't decode stats: %w", err)
	}

	return resp, nil
}

func (s *Store) fetchChart(
	ctx context.Context,
	fetch func(ctx context.Context, months int) (json.RawMessage, error),
	build func(Series) (*models.ChartData, error),
) (*models.ChartData, error) {
	raw, err := fetch(ctx, s.months)
	if err != nil {
		return nil, err
	}

	series, err := DecodeChartResponse(raw)
	if err != nil {
		return nil, err
	}

	return build(series)
}

func (s *Store) record(ctx context.Context, stats models.Stats) {
	if s.recorder == nil {
		return
	}

	if err := s.recorder.RecordStats(ctx, s.clock.Now(), stats); err != nil {
		s.logger.Error().
			Err(err).
			Msg("can't record stats")
	}
}

// UpdateStats merges non-nil fields of update into current stats.
func (s *Store) UpdateStats(update StatsUpdate) models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats models.Stats
	if s.snapshot.Stats != nil {
		stats = *s.snapshot.Stats
	}

	if update.TotalRevenue != nil {
		stats.TotalRevenue = *update.TotalRevenue
	}
	if update.TotalCustomers != nil {
		stats.TotalCustomers = *update.TotalCustomers
	}
	if update.ActiveDeals != nil {
		stats.ActiveDeals = *update.ActiveDeals
	}
	if update.ConversionRate != nil {
		stats.ConversionRate = *update.ConversionRate
	}
	if update.TotalProducts != nil {
		total := *update.TotalProducts
		stats.TotalProducts = &total
	}

	s.snapshot.Stats = &stats
	return stats
}

// Snapshot returns current dashboard state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// History returns up to limit latest recorded stats.
func (s *Store) History(ctx context.Context, limit int) ([]models.StatsSnapshot, error) {
	if s.recorder == nil {
		return nil, ErrHistoryDisabled
	}

	history, err := s.recorder.ListStats(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list stats history: %w", err)
	}

	return history, nil
}

// ErrorMessage returns user facing message for dashboard loading error.
func ErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrTransport):
		return MessageUnreachable
	case api.Status(err) == http.StatusUnauthorized:
		return MessageAuthFailed
	case api.Status(err) != 0:
		return fmt.Sprintf("Server error: %d", api.Status(err))
	default:
		return MessageLoadFailed
	}
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// WithRecorder sets storage of stats history.
func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		s.recorder = r
	}
}

// WithClock sets Store's custom Clock.
func WithClock(c Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// WithMonths sets number of months requested for charts.
func WithMonths(months int) Option {
	return func(s *Store) {
		if months > 0 {
			s.months = months
		}
	}
}
