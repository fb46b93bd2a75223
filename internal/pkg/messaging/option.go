package messaging

import "context"

// ConsumeOption tunes a single Consume call.
type ConsumeOption func(*consumeConfig)

type consumeConfig struct {
	workers int
	autoAck bool
	group   string
}

func applyConsumeOptions(opts []ConsumeOption) consumeConfig {
	var c consumeConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// workerCount is at least one.
func (c consumeConfig) workerCount() int { return max(c.workers, 1) }

// WithConcurrency runs n handlers in parallel.
func WithConcurrency(n int) ConsumeOption {
	return func(c *consumeConfig) { c.workers = n }
}

// WithQueueGroup makes consumers sharing name split the subject's messages
// instead of each receiving all of them.
func WithQueueGroup(name string) ConsumeOption {
	return func(c *consumeConfig) { c.group = name }
}

// WithAutoAck acks on a nil handler error and nacks otherwise, unless the
// handler already responded.
func WithAutoAck(on bool) ConsumeOption {
	return func(c *consumeConfig) { c.autoAck = on }
}

type responder interface {
	Ack(ctx context.Context) error
	Nack(ctx context.Context) error
}

func settle(ctx context.Context, msg responder, handlerErr error) error {
	if handlerErr != nil {
		return msg.Nack(ctx)
	}
	return msg.Ack(ctx)
}
