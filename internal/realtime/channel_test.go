package realtime_test

import (
	"context"
	"testing"

	"github.com/MichalMitros/crm-console/internal/platform"
	"github.com/MichalMitros/crm-console/internal/platform/metrics"
	"github.com/MichalMitros/crm-console/internal/platform/rabbitmq"
	"github.com/MichalMitros/crm-console/internal/realtime"
	"github.com/MichalMitros/crm-console/internal/realtime/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const queue = "amq.gen-test"

// startChannel starts channel on mocked consumer and returns function delivering messages to it.
func startChannel(t *testing.T, ops ...realtime.Option) (*realtime.Channel, rabbitmq.HandlerFunc) {
	t.Helper()

	logger := zerolog.Nop()
	errs := make(chan error)
	var deliver rabbitmq.HandlerFunc

	consumer := mocks.NewConsumer(t)
	consumer.On("DeclareQueue", "#").Return(queue, nil)
	consumer.On("Consume", mock.Anything, queue, mock.Anything).
		Run(func(args mock.Arguments) {
			deliver = args.Get(2).(rabbitmq.HandlerFunc)
		}).
		Return((<-chan error)(errs), nil)

	ch := realtime.NewChannel(consumer, &logger, ops...)
	require.NoError(t, ch.Start(context.TODO()), "shouldn't return any error")

	t.Cleanup(func() {
		close(errs)
		<-ch.Done()
	})

	return ch, deliver
}

func TestUnitChannelDispatch(t *testing.T) {
	m := metrics.Nop()
	ch, deliver := startChannel(t, realtime.WithMetrics(m))

	var got []byte
	unsubscribe, err := ch.Subscribe(realtime.EventProductUpdated, func(_ context.Context, payload []byte) error {
		got = payload
		return nil
	})
	require.NoError(t, err, "shouldn't return any error")

	payload := []byte(`{"productId":"p1","changes":{"price":5}}`)
	require.NoError(t, deliver(context.TODO(), realtime.EventProductUpdated, payload), "should handle event")
	assert.Equal(t, payload, got, "should pass payload to subscriber")

	require.NoError(t, deliver(context.TODO(), realtime.EventUserUpdated, []byte(`{}`)), "should drop event without subscriber")

	unsubscribe()
	got = nil
	require.NoError(t, deliver(context.TODO(), realtime.EventProductUpdated, payload), "should drop event after unsubscribe")
	assert.Nil(t, got, "shouldn't call removed subscriber")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PushEvents.WithLabelValues(realtime.EventProductUpdated, realtime.OutcomeHandled)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PushEvents.WithLabelValues(realtime.EventProductUpdated, realtime.OutcomeDropped)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PushEvents.WithLabelValues(realtime.EventUserUpdated, realtime.OutcomeDropped)))
}

func TestUnitChannelHandlerError(t *testing.T) {
	m := metrics.Nop()
	ch, deliver := startChannel(t, realtime.WithMetrics(m))

	_, err := ch.Subscribe(realtime.EventUserUpdated, func(context.Context, []byte) error {
		return assert.AnError
	})
	require.NoError(t, err, "shouldn't return any error")

	err = deliver(context.TODO(), realtime.EventUserUpdated, []byte(`{}`))

	require.ErrorIs(t, err, assert.AnError, "should return handler error")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PushEvents.WithLabelValues(realtime.EventUserUpdated, realtime.OutcomeFailed)))
}

func TestUnitChannelSubscribe(t *testing.T) {
	logger := zerolog.Nop()
	ch := realtime.NewChannel(mocks.NewConsumer(t), &logger)
	noop := func(context.Context, []byte) error { return nil }

	first, err := ch.Subscribe(realtime.EventProductUpdated, noop)
	require.NoError(t, err, "shouldn't return any error")

	_, err = ch.Subscribe(realtime.EventProductUpdated, noop)
	require.ErrorIs(t, err, platform.ErrAlreadySubscribed, "shouldn't allow second subscriber")

	_, err = ch.Subscribe(realtime.EventUserUpdated, noop)
	require.NoError(t, err, "should allow subscriber of other event")

	ch.Unsubscribe(realtime.EventProductUpdated)
	second, err := ch.Subscribe(realtime.EventProductUpdated, noop)
	require.NoError(t, err, "should allow subscriber after unsubscribe")

	// stale unsubscribe must not remove newer subscriber.
	first()
	_, err = ch.Subscribe(realtime.EventProductUpdated, noop)
	require.ErrorIs(t, err, platform.ErrAlreadySubscribed, "should keep newer subscriber")

	second()
	second()
	_, err = ch.Subscribe(realtime.EventProductUpdated, noop)
	require.NoError(t, err, "should allow subscriber after unsubscribe")
}

func TestUnitChannelStartErrors(t *testing.T) {
	logger := zerolog.Nop()

	tests := map[string]struct {
		declareErr error
		consumeErr error
	}{
		"declare error": {
			declareErr: assert.AnError,
		},
		"consume error": {
			consumeErr: assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			consumer := mocks.NewConsumer(t)
			consumer.On("DeclareQueue", "#").Return(queue, tt.declareErr)
			if tt.declareErr == nil {
				consumer.On("Consume", mock.Anything, queue, mock.Anything).Return(nil, tt.consumeErr)
			}

			err := realtime.NewChannel(consumer, &logger).Start(context.TODO())

			require.ErrorIs(t, err, assert.AnError, "should return correct error")
		})
	}
}
