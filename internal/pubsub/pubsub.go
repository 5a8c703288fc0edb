// Package pubsub is the in-process event bus modules use to announce what
// happened without knowing who listens.
package pubsub

import (
	"context"
)

// Message is the structure passed between components on the bus.
type Message struct {
	// Topic identifies the channel, e.g. "friends.view.changed".
	Topic string
	// UserID identifies the viewer who caused the message.
	UserID string
	// Payload is the encoded event.
	Payload []byte
	// Metadata holds arbitrary key-value context.
	Metadata map[string]string
}

// Handler processes a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages.
type Subscriber interface {
	// Subscribe starts handling messages of topic in the background and
	// returns once the subscription is active.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
