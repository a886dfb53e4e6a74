// Command pushctl publishes CRM push events to the events exchange.
//
//	pushctl -event productUpdated -payload '{"productId":"1","changes":{"price":10}}'
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/MichalMitros/crm-console/internal/platform/rabbitmq"
	"github.com/MichalMitros/crm-console/pkg/v1/events"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Config holds pushctl configuration.
type Config struct {
	URL      string        `env:"RABBITMQ_URL"`
	Exchange string        `env:"RABBITMQ_EXCHANGE" envDefault:"crm.events"`
	Timeout  time.Duration `env:"PUBLISH_TIMEOUT" envDefault:"5s"`
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	event := flag.String("event", events.EventProductUpdated, "event name used as routing key")
	payload := flag.String("payload", "", "event JSON payload")
	flag.Parse()

	if err := run(&logger, *event, []byte(*payload)); err != nil {
		logger.Error().
			Err(err).
			Str("event", *event).
			Msg("can't publish event")
		os.Exit(1)
	}

	logger.Info().
		Str("event", *event).
		Msg("event published")
}

// run connects to the exchange and publishes single event. Connections are closed before it returns.
func run(logger *zerolog.Logger, event string, payload []byte) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().
			Err(err).
			Msg("can't load .env file")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("can't parse env variables: %w", err)
	}

	amqpConnection, err := amqp.Dial(cfg.URL)
	if err != nil {
		return fmt.Errorf("can't open RabbitMQ connection: %w", err)
	}
	defer amqpConnection.Close()

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.Exchange)
	if err != nil {
		return fmt.Errorf("can't open RabbitMQ channel: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	return publish(ctx, events.NewRabbitMQSender(conn), event, payload)
}

func publish(ctx context.Context, sender events.Sender, event string, payload []byte) error {
	if err := events.NewPublisher(sender).PublishRaw(ctx, event, payload); err != nil {
		return fmt.Errorf("can't publish %s: %w", event, err)
	}
	return nil
}
