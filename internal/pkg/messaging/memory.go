package messaging

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// ErrMemorySubjectRequired is returned when the subject is empty.
var ErrMemorySubjectRequired = errors.New("messaging: memory subject is required")

// MemoryConfig configures the in-process driver.
type MemoryConfig struct {
	// Buffer is the per consumer queue length. Publish blocks while the
	// queue is full. Defaults to 64.
	Buffer int
}

// Memory is an in-process broker. Delivery is at most once: a nacked message
// is dropped, and messages published with no consumer are discarded.
type Memory struct {
	buffer int

	mu     sync.RWMutex
	subs   map[string][]*memorySub
	closed *atomic.Bool

	seq *atomic.Uint64
	rr  *atomic.Uint64
}

type memorySub struct {
	group string
	ch    chan *memoryMessage
}

// NewMemory returns an empty in-process broker.
func NewMemory(cfg MemoryConfig) *Memory {
	if cfg.Buffer <= 0 {
		cfg.Buffer = 64
	}

	return &Memory{
		buffer: cfg.Buffer,
		subs:   make(map[string][]*memorySub),
		closed: atomic.NewBool(false),
		seq:    atomic.NewUint64(0),
		rr:     atomic.NewUint64(0),
	}
}

// Close stops accepting publishes and ends every running Consume.
func (m *Memory) Close() error {
	if m.closed.Swap(true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for subject, subs := range m.subs {
		for _, s := range subs {
			close(s.ch)
		}
		delete(m.subs, subject)
	}

	return nil
}

// Publish delivers msg to every ungrouped consumer of subject and to one
// member of each queue group.
func (m *Memory) Publish(ctx context.Context, subject string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if subject == "" {
		return PublishResult{}, ErrMemorySubjectRequired
	}
	if msg.Delay > 0 {
		return PublishResult{}, ErrUnsupported
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed.Load() {
		return PublishResult{}, ErrClosed
	}

	now := time.Now()
	id := strconv.FormatUint(m.seq.Inc(), 10)

	for _, s := range m.targets(subject) {
		mm := &memoryMessage{
			id:         id,
			subject:    subject,
			body:       append([]byte(nil), msg.Body...),
			headers:    append([]Header(nil), msg.Headers...),
			receivedAt: now,
			responded:  atomic.NewBool(false),
		}

		select {
		case s.ch <- mm:
		case <-ctx.Done():
			return PublishResult{}, ctx.Err()
		}
	}

	return PublishResult{MessageID: id, Subject: subject, Timestamp: now}, nil
}

// targets picks the receivers of one message. Callers hold m.mu.
func (m *Memory) targets(subject string) []*memorySub {
	var (
		out    []*memorySub
		groups = make(map[string][]*memorySub)
		order  []string
	)

	for _, s := range m.subs[subject] {
		if s.group == "" {
			out = append(out, s)
			continue
		}
		if _, ok := groups[s.group]; !ok {
			order = append(order, s.group)
		}
		groups[s.group] = append(groups[s.group], s)
	}

	for _, g := range order {
		members := groups[g]
		out = append(out, members[m.rr.Inc()%uint64(len(members))])
	}

	return out
}

// Consume registers a consumer for subject and blocks until ctx is done or
// the broker is closed.
func (m *Memory) Consume(ctx context.Context, subject string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if subject == "" {
		return ErrMemorySubjectRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}

	co := applyConsumeOptions(opts)
	sub := &memorySub{group: co.group, ch: make(chan *memoryMessage, m.buffer)}

	m.mu.Lock()
	if m.closed.Load() {
		m.mu.Unlock()
		return ErrClosed
	}
	m.subs[subject] = append(m.subs[subject], sub)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for range co.workerCount() {
		wg.Go(func() {
			for mm := range sub.ch {
				herr := callHandlerWithRecover(ctx, DriverMemory, func() error {
					return handler(ctx, mm)
				})
				if co.autoAck && !mm.responded.Load() {
					_ = settle(ctx, mm, herr)
				}
			}
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return ErrClosed
	case <-ctx.Done():
	}

	if m.unsubscribe(subject, sub) {
		close(sub.ch)
	}
	<-done

	return ctx.Err()
}

// unsubscribe removes sub and reports whether it was still registered.
func (m *Memory) unsubscribe(subject string, sub *memorySub) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	subs := m.subs[subject]
	for i, s := range subs {
		if s == sub {
			m.subs[subject] = append(subs[:i:i], subs[i+1:]...)
			if len(m.subs[subject]) == 0 {
				delete(m.subs, subject)
			}
			return true
		}
	}

	return false
}

type memoryMessage struct {
	id         string
	subject    string
	body       []byte
	headers    []Header
	receivedAt time.Time

	responded *atomic.Bool
}

func (mm *memoryMessage) Body() []byte             { return mm.body }
func (mm *memoryMessage) Headers() []Header        { return mm.headers }
func (mm *memoryMessage) Header(key string) string { return firstHeader(mm.headers, key) }
func (mm *memoryMessage) ID() string               { return mm.id }
func (mm *memoryMessage) Subject() string          { return mm.subject }
func (mm *memoryMessage) Timestamp() time.Time     { return mm.receivedAt }

func (mm *memoryMessage) Ack(ctx context.Context) error {
	mm.responded.Store(true)
	return ctx.Err()
}

func (mm *memoryMessage) Nack(ctx context.Context) error {
	mm.responded.Store(true)
	return ctx.Err()
}
