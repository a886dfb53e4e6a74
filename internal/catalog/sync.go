package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/MichalMitros/crm-console/internal/api"
	"github.com/MichalMitros/crm-console/internal/filter"
	"github.com/MichalMitros/crm-console/internal/platform/metrics"
	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/MichalMitros/crm-console/internal/realtime"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Searcher --filename searcher.go
//go:generate mockery --name Subscriber --filename subscriber.go

const (
	// DefaultDebounce is quiet interval after last change before products are fetched.
	DefaultDebounce = 400 * time.Millisecond
	// FetchErrorMessage is shown when search failed and the API sent no message.
	FetchErrorMessage = "Failed to load products"
)

// Searcher searches products.
type Searcher interface {
	SearchProducts(ctx context.Context, f filter.Filter, page int) ([]models.Product, error)
}

// Subscriber registers push event handlers.
type Subscriber interface {
	Subscribe(event string, handler realtime.Handler) (func(), error)
}

// State is snapshot of synchronised products view.
type State struct {
	Items   []models.Product `json:"items"`
	Loading bool             `json:"loading"`
	Error   string           `json:"error,omitempty"`
	Page    int              `json:"page"`
	Filter  filter.Filter    `json:"filter"`
}

// Option is custom configuration of ProductSync.
type Option func(s *ProductSync)

// ProductSync keeps page of products matching the filter in sync with the API.
// Filter and page changes are debounced, responses to outdated requests are dropped
// and productUpdated push events are merged into the current page.
type ProductSync struct {
	searcher   Searcher
	subscriber Subscriber
	logger     *zerolog.Logger
	clock      Clock
	debounce   time.Duration
	pageSize   int
	metrics    *metrics.Metrics
	onChange   func(State)

	mu          sync.Mutex
	ctx         context.Context
	filter      filter.Filter
	page        int
	items       []models.Product
	loading     bool
	errMsg      string
	generation  uint64
	timer       Timer
	unsubscribe func()
	closed      bool
}

// NewProductSync returns new ProductSync with default filter on first page.
func NewProductSync(searcher Searcher, subscriber Subscriber, logger *zerolog.Logger, ops ...Option) *ProductSync {
	s := &ProductSync{
		searcher:   searcher,
		subscriber: subscriber,
		logger:     logger,
		clock:      systemClock{},
		debounce:   DefaultDebounce,
		pageSize:   filter.DefaultLimit,
		ctx:        context.Background(),
		page:       1,
		items:      []models.Product{},
	}

	for _, op := range ops {
		op(s)
	}

	s.filter = filter.Default(s.pageSize)

	return s
}

// Start subscribes to product updates and schedules first fetch.
// Fetches started by timer use ctx.
func (s *ProductSync) Start(ctx context.Context) error {
	unsubscribe, err := s.subscriber.Subscribe(realtime.EventProductUpdated, s.applyUpdate)
	if err != nil {
		return fmt.Errorf("can't subscribe to product updates: %w", err)
	}

	s.mu.Lock()
	s.ctx = ctx
	s.unsubscribe = unsubscribe
	state := s.scheduleLocked()
	s.mu.Unlock()

	s.notify(state)
	return nil
}

// SetFilter replaces the filter and goes back to first page.
// Limit of next is replaced with the page size.
func (s *ProductSync) SetFilter(next filter.Filter) {
	s.mu.Lock()
	s.filter = next.WithLimit(s.pageSize)
	s.page = 1
	state := s.scheduleLocked()
	s.mu.Unlock()

	s.notify(state)
}

// SetPage changes current page. Pages lower than 1 are treated as first page.
func (s *ProductSync) SetPage(page int) {
	s.mu.Lock()
	s.page = max(page, 1)
	state := s.scheduleLocked()
	s.mu.Unlock()

	s.notify(state)
}

// ResetFilters restores default filter and first page.
func (s *ProductSync) ResetFilters() {
	s.SetFilter(filter.Default(s.pageSize))
}

// Refetch fetches current page immediately, superseding pending fetch.
func (s *ProductSync) Refetch(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.stopTimerLocked()
	s.generation++
	gen := s.generation
	s.loading = true
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state)
	return s.fetch(ctx, gen)
}

// State returns snapshot of current state.
func (s *ProductSync) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels pending fetch and releases push subscription.
// Responses arriving after Close are ignored.
func (s *ProductSync) Close() {
	s.mu.Lock()
	s.closed = true
	s.stopTimerLocked()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// scheduleLocked starts new generation and (re)arms debounce timer. s.mu must be held.
func (s *ProductSync) scheduleLocked() State {
	if s.closed {
		return s.snapshotLocked()
	}

	if s.stopTimerLocked() && s.metrics != nil {
		s.metrics.DebouncedChanges.Inc()
	}

	s.generation++
	gen := s.generation
	ctx := s.ctx
	s.loading = true
	s.timer = s.clock.AfterFunc(s.debounce, func() {
		_ = s.fetch(ctx, gen)
	})

	return s.snapshotLocked()
}

// stopTimerLocked stops pending fetch and reports whether there was one. s.mu must be held.
func (s *ProductSync) stopTimerLocked() bool {
	if s.timer == nil {
		return false
	}
	stopped := s.timer.Stop()
	s.timer = nil
	return stopped
}

// fetch searches products for generation gen and commits the result if gen is still current.
func (s *ProductSync) fetch(ctx context.Context, gen uint64) error {
	s.mu.Lock()
	if s.closed || gen != s.generation {
		s.mu.Unlock()
		return nil
	}
	f := s.filter
	page := s.page
	s.mu.Unlock()

	items, err := s.searcher.SearchProducts(ctx, f, page)

	s.mu.Lock()
	if s.closed || gen != s.generation {
		s.mu.Unlock()
		s.countFetch(metrics.ResultDiscarded)
		s.logger.Debug().
			Uint64("generation", gen).
			Msg("outdated products response discarded")
		return nil
	}

	s.loading = false
	if err != nil {
		s.errMsg = api.Message(err, FetchErrorMessage)
	} else {
		s.items = items
		s.errMsg = ""
	}
	state := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		s.countFetch(metrics.ResultError)
		s.logger.Error().
			Err(err).
			Int("page", page).
			Msg("can't load products")
	} else {
		s.countFetch(metrics.ResultSuccess)
	}

	s.notify(state)

	if err != nil {
		return fmt.Errorf("can't load products: %w", err)
	}
	return nil
}

// applyUpdate merges productUpdated changes into matching product of current page.
func (s *ProductSync) applyUpdate(_ context.Context, payload []byte) error {
	var update models.ProductUpdated
	if err := json.Unmarshal(payload, &update); err != nil {
		return fmt.Errorf("can't decode product update: %w", err)
	}

	s.mu.Lock()
	_, ix, found := lo.FindIndexOf(s.items, func(p models.Product) bool {
		return p.ID == update.ProductID
	})
	if !found {
		s.mu.Unlock()
		return nil
	}

	patched, err := s.items[ix].Patch(update.Changes)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("can't patch product %s: %w", update.ProductID, err)
	}

	items := make([]models.Product, len(s.items))
	copy(items, s.items)
	items[ix] = patched
	s.items = items
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state)
	return nil
}

func (s *ProductSync) snapshotLocked() State {
	items := lo.Map(s.items, func(p models.Product, _ int) models.Product {
		return p.Clone()
	})

	return State{
		Items:   items,
		Loading: s.loading,
		Error:   s.errMsg,
		Page:    s.page,
		Filter:  s.filter,
	}
}

func (s *ProductSync) notify(state State) {
	if s.onChange != nil {
		s.onChange(state)
	}
}

func (s *ProductSync) countFetch(result string) {
	if s.metrics != nil {
		s.metrics.ProductFetches.WithLabelValues(result).Inc()
	}
}

// WithClock sets ProductSync's custom Clock.
func WithClock(c Clock) Option {
	return func(s *ProductSync) {
		s.clock = c
	}
}

// WithDebounce sets quiet interval before fetch.
func WithDebounce(d time.Duration) Option {
	return func(s *ProductSync) {
		s.debounce = d
	}
}

// WithPageSize sets number of products per page. Non-positive sizes are ignored.
func WithPageSize(size int) Option {
	return func(s *ProductSync) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithMetrics sets collectors of fetch results.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ProductSync) {
		s.metrics = m
	}
}

// WithOnChange sets function notified with every new state.
func WithOnChange(fn func(State)) Option {
	return func(s *ProductSync) {
		s.onChange = fn
	}
}
