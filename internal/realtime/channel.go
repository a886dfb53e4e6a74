package realtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/MichalMitros/crm-console/internal/platform"
	"github.com/MichalMitros/crm-console/internal/platform/metrics"
	"github.com/MichalMitros/crm-console/internal/platform/rabbitmq"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Consumer --filename consumer.go

// Event names pushed by the CRM server.
const (
	EventProductUpdated = "productUpdated"
	EventUserUpdated    = "userUpdated"
)

// Push event outcomes.
const (
	OutcomeHandled = "handled"
	OutcomeDropped = "dropped"
	OutcomeFailed  = "failed"
)

// allEvents binds queue to every routing key on the exchange.
const allEvents = "#"

// Consumer consumes messages from the push exchange.
type Consumer interface {
	// DeclareQueue declares private queue bound to the exchange with routing keys.
	DeclareQueue(routingKeys ...string) (string, error)
	// Consume passes messages from queue to handler until ctx is done.
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
}

// Handler handles payload of a single event.
type Handler func(ctx context.Context, payload []byte) error

// Subscriber registers event handlers.
type Subscriber interface {
	Subscribe(event string, handler Handler) (unsubscribe func(), err error)
}

type subscription struct {
	id      uint64
	handler Handler
}

// Option is custom configuration of Channel.
type Option func(c *Channel)

// Channel is push channel client. It owns one queue for the process lifetime and
// dispatches each event to at most one handler registered for its name.
type Channel struct {
	consumer Consumer
	logger   *zerolog.Logger
	metrics  *metrics.Metrics

	mu       sync.RWMutex
	handlers map[string]subscription
	nextID   uint64
	done     chan struct{}
}

// NewChannel returns new Channel.
func NewChannel(consumer Consumer, logger *zerolog.Logger, ops ...Option) *Channel {
	c := &Channel{
		consumer: consumer,
		logger:   logger,
		handlers: make(map[string]subscription),
	}

	for _, op := range ops {
		op(c)
	}

	return c
}

// Start declares the channel queue and starts dispatching events in background.
// Dispatching stops when ctx is done.
func (c *Channel) Start(ctx context.Context) error {
	queue, err := c.consumer.DeclareQueue(allEvents)
	if err != nil {
		return fmt.Errorf("can't declare events queue: %w", err)
	}

	errorsChan, err := c.consumer.Consume(ctx, queue, c.dispatch)
	if err != nil {
		return fmt.Errorf("can't consume events: %w", err)
	}

	done := make(chan struct{})
	c.mu.Lock()
	c.done = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		for err := range errorsChan {
			c.logger.Error().
				Err(err).
				Msg("can't handle push event")
		}
	}()

	c.logger.Info().
		Str("queue", queue).
		Msg("push channel started")

	return nil
}

// Done returns channel closed when dispatching is finished.
// It is nil before Start.
func (c *Channel) Done() <-chan struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.done
}

// Subscribe registers handler for event. Returned function removes the registration.
// Event can have one subscriber at a time.
func (c *Channel) Subscribe(event string, handler Handler) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.handlers[event]; ok {
		return nil, fmt.Errorf("can't subscribe to %q: %w", event, platform.ErrAlreadySubscribed)
	}

	c.nextID++
	id := c.nextID
	c.handlers[event] = subscription{id: id, handler: handler}

	c.logger.Debug().
		Str("event", event).
		Msg("subscribed")

	var once sync.Once
	return func() {
		once.Do(func() {
			c.unsubscribe(event, id)
		})
	}, nil
}

// Unsubscribe removes handler of event, if there is any.
func (c *Channel) Unsubscribe(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, event)
}

// unsubscribe removes registration only when it wasn't replaced in the meantime.
func (c *Channel) unsubscribe(event string, id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sub, ok := c.handlers[event]; ok && sub.id == id {
		delete(c.handlers, event)
	}
}

func (c *Channel) dispatch(ctx context.Context, event string, payload []byte) error {
	c.mu.RLock()
	sub, ok := c.handlers[event]
	c.mu.RUnlock()

	if !ok {
		c.count(event, OutcomeDropped)
		c.logger.Debug().
			Str("event", event).
			Msg("no subscriber, event dropped")
		return nil
	}

	if err := sub.handler(ctx, payload); err != nil {
		c.count(event, OutcomeFailed)
		return err
	}

	c.count(event, OutcomeHandled)
	return nil
}

func (c *Channel) count(event, outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.PushEvents.WithLabelValues(event, outcome).Inc()
}

// WithMetrics sets collectors counting push events.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Channel) {
		c.metrics = m
	}
}
