// Package events publishes CRM push events consumed by the console's realtime channel.
package events

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// Names of published events.
const (
	EventProductUpdated = "productUpdated"
	EventUserUpdated    = "userUpdated"
)

// ProductUpdated is payload of productUpdated event.
type ProductUpdated struct {
	ProductID string         `json:"productId"`
	Changes   map[string]any `json:"changes"`
}

// Sender sends event messages.
type Sender interface {
	Send(ctx context.Context, event string, msg []byte) error
}

// Publisher publishes push events.
type Publisher struct {
	sender Sender
}

// NewPublisher returns new Publisher using provided sender for sending messages.
func NewPublisher(sender Sender) Publisher {
	return Publisher{
		sender: sender,
	}
}

// PublishProductUpdated publishes productUpdated event with changed product fields.
func (p Publisher) PublishProductUpdated(ctx context.Context, productID string, changes map[string]any) error {
	return p.publish(ctx, EventProductUpdated, ProductUpdated{
		ProductID: productID,
		Changes:   changes,
	})
}

// PublishUserUpdated publishes userUpdated event with whole updated user.
func (p Publisher) PublishUserUpdated(ctx context.Context, user any) error {
	return p.publish(ctx, EventUserUpdated, user)
}

// PublishRaw publishes event with already encoded payload.
func (p Publisher) PublishRaw(ctx context.Context, event string, payload json.RawMessage) error {
	if !json.Valid(payload) {
		return fmt.Errorf("can't publish %s event: %w", event, ErrInvalidPayload)
	}

	return p.sender.Send(ctx, event, payload)
}

func (p Publisher) publish(ctx context.Context, event string, payload any) error {
	msg, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("can't marshal %s event: %w", event, err)
	}

	return p.sender.Send(ctx, event, msg)
}
