// Package memory keeps identity state in process memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/gobudget/internal/identity/entity"
	"github.com/shandysiswandi/gobudget/internal/pkg/goerror"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
)

type Memory struct {
	mu        sync.RWMutex
	users     map[int64]entity.User
	userEmail map[string]int64
	otps      map[string]entity.OTP

	ins instrument.Instrumentation
}

func NewMemory(ins instrument.Instrumentation) *Memory {
	return &Memory{
		users:     make(map[int64]entity.User),
		userEmail: make(map[string]int64),
		otps:      make(map[string]entity.OTP),
		ins:       ins,
	}
}

func (m *Memory) span(ctx context.Context, name string) (context.Context, func()) {
	ctx, span := m.ins.Tracer("identity.outbound.memory").Start(ctx, name)
	return ctx, func() { span.End() }
}

func (m *Memory) GetOTP(ctx context.Context, email string) (*entity.OTP, error) {
	_, end := m.span(ctx, "GetOTP")
	defer end()

	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.otps[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return &o, nil
}

// SaveOTP stores o, replacing any code previously issued for the email.
func (m *Memory) SaveOTP(ctx context.Context, o entity.OTP) error {
	_, end := m.span(ctx, "SaveOTP")
	defer end()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.otps[o.Email] = o

	return nil
}

func (m *Memory) DeleteOTP(ctx context.Context, email string) error {
	_, end := m.span(ctx, "DeleteOTP")
	defer end()

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.otps, email)

	return nil
}

// IncrementOTPAttempts records a failed verification and returns the new count.
func (m *Memory) IncrementOTPAttempts(ctx context.Context, email string) (int, error) {
	_, end := m.span(ctx, "IncrementOTPAttempts")
	defer end()

	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.otps[email]
	if !ok {
		return 0, goerror.ErrNotFound
	}

	o.Attempts++
	m.otps[email] = o

	return o.Attempts, nil
}

func (m *Memory) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	_, end := m.span(ctx, "GetUserByID")
	defer end()

	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return &u, nil
}

func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	_, end := m.span(ctx, "GetUserByEmail")
	defer end()

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.userEmail[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	u := m.users[id]
	return &u, nil
}

// CreateUser inserts u, failing with goerror.ErrConflict when the email is taken.
func (m *Memory) CreateUser(ctx context.Context, u entity.User) error {
	_, end := m.span(ctx, "CreateUser")
	defer end()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.userEmail[u.Email]; taken {
		return goerror.ErrConflict
	}

	m.users[u.ID] = u
	m.userEmail[u.Email] = u.ID

	return nil
}

// UpdateUserLogin stamps the login time and replaces the name when non-empty.
func (m *Memory) UpdateUserLogin(ctx context.Context, id int64, name string, at time.Time) (*entity.User, error) {
	_, end := m.span(ctx, "UpdateUserLogin")
	defer end()

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	if name != "" {
		u.Name = name
	}
	u.LastLoginAt = at
	m.users[id] = u

	return &u, nil
}
