package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when a feature is not supported by the selected broker.
var ErrUnsupported = errors.New("messaging: unsupported operation")

// ErrClosed is returned when publishing or consuming on a closed client.
var ErrClosed = errors.New("messaging: client closed")

// Messaging is a broker-agnostic client that can publish and consume messages.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer consumes messages from a subject.
type Consumer interface {
	// Consume blocks until ctx is done, dispatching messages to handler.
	Consume(ctx context.Context, subject string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message. With auto-ack enabled a nil error
// acks the message and a non-nil error nacks it.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a message to be published.
type OutgoingMessage struct {
	Body    []byte
	Headers []Header

	// Delay requests deferred delivery; no current driver supports it.
	Delay time.Duration
}

// Header is a key/value pair used for message headers.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult carries optional broker metadata about a publish.
type PublishResult struct {
	MessageID string
	Subject   string
	Timestamp time.Time
}

// Message is a received message.
type Message interface {
	Body() []byte
	Headers() []Header
	// Header returns the first value for key, or "".
	Header(key string) string

	ID() string
	Subject() string
	Timestamp() time.Time

	Ack(ctx context.Context) error
	Nack(ctx context.Context) error
}
