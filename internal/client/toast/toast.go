// Package toast is a small in-process event emitter for transient user
// notices. The application shell owns the Bus and hands it to the views that
// emit; renderers subscribe.
package toast

import (
	"errors"
	"sync"
	"time"

	"github.com/shandysiswandi/gobudget/internal/pkg/clock"
	"go.uber.org/atomic"
)

const (
	DefaultMaxSubscribers = 8
	DefaultBuffer         = 16
)

var (
	ErrClosed             = errors.New("toast: bus closed")
	ErrTooManySubscribers = errors.New("toast: subscriber limit reached")
)

type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
)

type Message struct {
	ID        uint64
	Type      Type
	Text      string
	CreatedAt time.Time
}

type Options struct {
	// MaxSubscribers caps concurrent subscribers.
	MaxSubscribers int
	// Buffer is the per-subscriber queue size. A full queue drops messages
	// for that subscriber only.
	Buffer int
	Clock  clock.Clocker
}

type Bus struct {
	ids     *atomic.Uint64
	dropped *atomic.Uint64
	clock   clock.Clocker
	maxSubs int
	buffer  int

	mu      sync.Mutex
	nextSub uint64
	subs    map[uint64]chan Message
	closed  bool
}

func NewBus(opts Options) *Bus {
	if opts.MaxSubscribers <= 0 {
		opts.MaxSubscribers = DefaultMaxSubscribers
	}
	if opts.Buffer <= 0 {
		opts.Buffer = DefaultBuffer
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}

	return &Bus{
		ids:     atomic.NewUint64(0),
		dropped: atomic.NewUint64(0),
		clock:   opts.Clock,
		maxSubs: opts.MaxSubscribers,
		buffer:  opts.Buffer,
		subs:    make(map[uint64]chan Message),
	}
}

func (b *Bus) Success(text string) Message { return b.emit(TypeSuccess, text) }
func (b *Bus) Error(text string) Message   { return b.emit(TypeError, text) }
func (b *Bus) Info(text string) Message    { return b.emit(TypeInfo, text) }

// Dropped counts deliveries skipped because a subscriber queue was full.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Bus) emit(t Type, text string) Message {
	msg := Message{ID: b.ids.Inc(), Type: t, Text: text, CreatedAt: b.clock.Now()}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return msg
	}

	for _, ch := range b.subs {
		select {
		case ch <- msg:
		default:
			b.dropped.Inc()
		}
	}

	return msg
}

// Subscribe registers a listener. The returned function unsubscribes and
// closes the channel; calling it more than once is safe.
func (b *Bus) Subscribe() (<-chan Message, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, nil, ErrClosed
	}
	if len(b.subs) >= b.maxSubs {
		return nil, nil, ErrTooManySubscribers
	}

	b.nextSub++
	id := b.nextSub
	ch := make(chan Message, b.buffer)
	b.subs[id] = ch

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}

	return ch, unsub, nil
}

// Close closes every subscriber channel. Later emits are no-ops.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
