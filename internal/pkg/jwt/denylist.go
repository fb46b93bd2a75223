package jwt

import (
	"sync"
	"time"
)

// Denylist remembers revoked token IDs until their natural expiry.
// Entries past their expiry are purged lazily on Revoke.
type Denylist struct {
	mu    sync.RWMutex
	ids   map[string]time.Time
	clock clocker
}

func NewDenylist(clock clocker) *Denylist {
	return &Denylist{ids: make(map[string]time.Time), clock: clock}
}

// Revoke marks jti as revoked until exp.
func (d *Denylist) Revoke(jti string, exp time.Time) {
	if jti == "" {
		return
	}

	now := d.clock.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	for id, until := range d.ids {
		if !now.Before(until) {
			delete(d.ids, id)
		}
	}

	if now.Before(exp) {
		d.ids[jti] = exp
	}
}

// Revoked reports whether jti was revoked and is not yet expired.
func (d *Denylist) Revoked(jti string) bool {
	d.mu.RLock()
	until, ok := d.ids[jti]
	d.mu.RUnlock()

	return ok && d.clock.Now().Before(until)
}

// Len returns the number of tracked entries, expired ones included.
func (d *Denylist) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.ids)
}
