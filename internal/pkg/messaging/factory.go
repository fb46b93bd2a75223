package messaging

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDriver = errors.New("messaging: unknown driver")

// Driver names accepted by NewFromDriver.
const (
	DriverMemory = "memory"
	DriverNATS   = "nats"
)

// FactoryOptions holds the settings of every driver; only the selected
// driver's block is read.
type FactoryOptions struct {
	Memory MemoryConfig
	NATS   NATSConfig
}

// NewFromDriver picks the broker by name. Blank means memory, which keeps a
// single process deployment free of external services.
func NewFromDriver(driver string, opts FactoryOptions) (Messaging, error) {
	switch d := strings.ToLower(strings.TrimSpace(driver)); d {
	case "", DriverMemory:
		return NewMemory(opts.Memory), nil
	case DriverNATS:
		return NewNATS(opts.NATS)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, d)
	}
}
