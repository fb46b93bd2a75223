package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

var (
	// ErrNATSSubjectRequired is returned when the subject is empty.
	ErrNATSSubjectRequired = errors.New("messaging: nats subject is required")
	// ErrNATSURLRequired is returned when the NATS server URL is missing.
	ErrNATSURLRequired = errors.New("messaging: nats url is required")
	// ErrHandlerRequired is returned when Consume is called with a nil handler.
	ErrHandlerRequired = errors.New("messaging: handler is required")
)

// NATSConfig configures the NATS implementation.
type NATSConfig struct {
	URL string
	// Name identifies the connection in server monitoring.
	Name string

	Options []nats.Option
}

// NATS is a messaging implementation backed by core NATS.
type NATS struct {
	conn *nats.Conn

	mu     sync.Mutex
	subs   []*nats.Subscription
	closed bool
}

// NewNATS connects to the server at cfg.URL.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	opts := cfg.Options
	if cfg.Name != "" {
		opts = append([]nats.Option{nats.Name(cfg.Name)}, opts...)
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

// Close drains subscriptions and closes the connection.
func (n *NATS) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	subs := append([]*nats.Subscription{}, n.subs...)
	n.mu.Unlock()

	var closeErr error
	for _, sub := range subs {
		if err := sub.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			closeErr = errors.Join(closeErr, err)
		}
	}

	if err := n.conn.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		closeErr = errors.Join(closeErr, err)
	}
	n.conn.Close()

	return closeErr
}

// Publish stamps the message with a Nats-Msg-Id, sends it and waits for the
// server to acknowledge the flush.
func (n *NATS) Publish(ctx context.Context, subject string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if subject == "" {
		return PublishResult{}, ErrNATSSubjectRequired
	}
	if msg.Delay > 0 {
		return PublishResult{}, ErrUnsupported
	}

	id := uuid.NewString()
	nmsg := &nats.Msg{Subject: subject, Data: msg.Body, Header: nats.Header{}}
	nmsg.Header.Set(nats.MsgIdHdr, id)
	for _, h := range msg.Headers {
		if h.Key != "" && h.Key != nats.MsgIdHdr {
			nmsg.Header.Add(h.Key, string(h.Value))
		}
	}

	if err := n.conn.PublishMsg(nmsg); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nats publish: %w", err)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nats flush: %w", err)
	}

	return PublishResult{MessageID: id, Subject: subject, Timestamp: time.Now()}, nil
}

// Consume subscribes to subject and blocks until ctx is done.
func (n *NATS) Consume(ctx context.Context, subject string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if subject == "" {
		return ErrNATSSubjectRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}

	co := applyConsumeOptions(opts)
	concurrency := co.workerCount()
	msgCh := make(chan *nats.Msg, concurrency)

	sub, err := n.conn.QueueSubscribe(subject, co.group, func(m *nats.Msg) {
		select {
		case msgCh <- m:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("messaging: nats subscribe: %w", err)
	}

	var wg sync.WaitGroup
	for range concurrency {
		wg.Go(func() {
			for m := range msgCh {
				wrapped := newNATSMessage(m, time.Now())
				herr := callHandlerWithRecover(ctx, DriverNATS, func() error {
					return handler(ctx, wrapped)
				})
				if co.autoAck && !wrapped.hasResponded() {
					_ = settle(ctx, wrapped, herr)
				}
			}
		})
	}

	stop := func(cause error) error {
		uerr := sub.Drain()
		close(msgCh)
		wg.Wait()
		return errors.Join(cause, uerr)
	}

	if err := n.track(sub); err != nil {
		return stop(err)
	}
	if err := n.conn.Flush(); err != nil {
		return stop(fmt.Errorf("messaging: nats flush: %w", err))
	}

	<-ctx.Done()

	return stop(ctx.Err())
}

func (n *NATS) track(sub *nats.Subscription) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return ErrClosed
	}
	n.subs = append(n.subs, sub)

	return nil
}
