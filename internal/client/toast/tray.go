package toast

import (
	"slices"
	"sync"
	"time"

	"github.com/shandysiswandi/gobudget/internal/pkg/clock"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 3 * time.Second

// Tray holds the toasts currently on screen.
type Tray struct {
	ttl   time.Duration
	clock clock.Clocker

	mu    sync.Mutex
	items []Message
}

func NewTray(ttl time.Duration, clk clock.Clocker) *Tray {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Tray{ttl: ttl, clock: clk}
}

func (t *Tray) Add(msg Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items = append(t.items, msg)
}

func (t *Tray) Dismiss(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items = slices.DeleteFunc(t.items, func(m Message) bool { return m.ID == id })
}

// Visible prunes expired toasts and returns the rest, oldest first.
func (t *Tray) Visible() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	t.items = slices.DeleteFunc(t.items, func(m Message) bool {
		return !now.Before(m.CreatedAt.Add(t.ttl))
	})

	return slices.Clone(t.items)
}
