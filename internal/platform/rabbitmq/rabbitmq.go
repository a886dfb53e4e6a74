package rabbitmq

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// HandlerFunc handles single message. Routing key of the delivery names the event.
type HandlerFunc func(ctx context.Context, routingKey string, message []byte) error

// RabbitMQ consumes and publishes amqp messages on topic exchange.
type RabbitMQ struct {
	channel   *amqp.Channel
	exchange  string
	isRunning chan struct{}
}

// NewRabbitMQ opens channel on connection and declares durable topic exchange.
func NewRabbitMQ(connection *amqp.Connection, exchange string) (*RabbitMQ, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("can't open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto delete
		false,
		false,
		nil,
	)
	if err != nil {
		_ = channel.Close()
		return nil, fmt.Errorf("can't declare exchange %q: %w", exchange, err)
	}

	mq := RabbitMQ{
		channel:  channel,
		exchange: exchange,
	}

	return &mq, nil
}

// Publish publishes json message to routing key.
func (mq *RabbitMQ) Publish(ctx context.Context, routingKey string, message []byte) error {
	msg := amqp.Publishing{
		ContentType: "application/json",
		Body:        message,
	}

	return mq.channel.PublishWithContext(
		ctx,
		mq.exchange,
		routingKey,
		false,
		false,
		msg,
	)
}

// DeclareQueue declares server named exclusive queue bound to the exchange with provided routing keys.
// The queue lives as long as the channel.
func (mq *RabbitMQ) DeclareQueue(routingKeys ...string) (string, error) {
	queue, err := mq.channel.QueueDeclare(
		"",
		false, // durable
		true,  // auto delete
		true,  // exclusive
		false,
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("can't declare queue: %w", err)
	}

	for _, key := range routingKeys {
		if err := mq.channel.QueueBind(queue.Name, key, mq.exchange, false, nil); err != nil {
			return "", fmt.Errorf("can't bind queue to %q: %w", key, err)
		}
	}

	return queue.Name, nil
}

// Consume consumes messages from queue and passes deliveries to provided handler function.
// It returns channel with errors from handler function and consuming process.
// Function works asynchronously, it consumes messages in background as long as context is not closed.
func (mq *RabbitMQ) Consume(ctx context.Context, queue string, handler HandlerFunc) (<-chan error, error) {
	consumerID, err := uuid.NewUUID()
	if err != nil {
		return nil, fmt.Errorf("can't create consumer ID: %w", err)
	}

	deliveries, err := mq.channel.Consume(
		queue,
		consumerID.String(),
		false, // auto acknowledge
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("can't start consuming: %w", err)
	}

	consumingErrors := make(chan error)
	mq.isRunning = make(chan struct{})
	go func() {
		defer close(mq.isRunning)
		defer close(consumingErrors)
		mq.consumeMessages(ctx, deliveries, consumingErrors, handler)
	}()

	return consumingErrors, nil
}

func (mq *RabbitMQ) consumeMessages(
	ctx context.Context,
	deliveries <-chan amqp.Delivery,
	consumingErrors chan error,
	handler HandlerFunc,
) {
	for {
		var delivery amqp.Delivery
		var ok bool
		select {
		case <-ctx.Done():
			return
		case delivery, ok = <-deliveries:
			if !ok {
				return
			}
		}

		if err := handler(ctx, delivery.RoutingKey, delivery.Body); err != nil {
			_ = pushError(ctx, fmt.Errorf("%s: %w", delivery.RoutingKey, err), consumingErrors)
			if err := settle(ctx, "nack", func() error { return delivery.Nack(false, false) }, consumingErrors); err != nil {
				return
			}
			continue
		}

		if err := settle(ctx, "ack", func() error { return delivery.Ack(false) }, consumingErrors); err != nil {
			return
		}
	}
}

func settle(ctx context.Context, action string, fn func() error, consumingErrors chan error) error {
	if err := fn(); err != nil {
		if pushErr := pushError(ctx, fmt.Errorf("can't %s message: %w", action, err), consumingErrors); pushErr != nil {
			return pushErr
		}
	}
	return nil
}

// Done returns channel which will be closed when consuming will be finished.
func (mq *RabbitMQ) Done() chan struct{} {
	return mq.isRunning
}

// Close closes the channel. Exclusive queues declared on it are deleted by the broker.
func (mq *RabbitMQ) Close() error {
	if err := mq.channel.Close(); err != nil {
		return fmt.Errorf("can't close channel: %w", err)
	}
	return nil
}

func pushError(ctx context.Context, err error, errChan chan error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case errChan <- err:
	}
	return nil
}
