package events

import "context"

//go:generate mockery --name RabbitMQPublisher --filename rabbitmqpublisher.go

// RabbitMQPublisher is RabbitMQ messages publisher.
type RabbitMQPublisher interface {
	Publish(context.Context, string, []byte) error
}

// RabbitMQSender sends RMQ messages using event name as routing key.
type RabbitMQSender struct {
	publisher RabbitMQPublisher
}

// NewRabbitMQSender returns new RabbitMQSender using provided publisher for sending messages.
func NewRabbitMQSender(publisher RabbitMQPublisher) RabbitMQSender {
	return RabbitMQSender{
		publisher: publisher,
	}
}

// Send sends message to event's routing key.
func (s RabbitMQSender) Send(ctx context.Context, event string, msg []byte) error {
	return s.publisher.Publish(ctx, event, msg)
}
