// Package memory keeps transactions in process memory, partitioned by user.
package memory

import (
	"context"
	"sync"

	"github.com/shandysiswandi/gobudget/internal/budget/entity"
	"github.com/shandysiswandi/gobudget/internal/pkg/goerror"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
)

type Memory struct {
	mu     sync.RWMutex
	byUser map[int64]map[int64]entity.Transaction

	ins instrument.Instrumentation
}

func NewMemory(ins instrument.Instrumentation) *Memory {
	return &Memory{
		byUser: make(map[int64]map[int64]entity.Transaction),
		ins:    ins,
	}
}

func (m *Memory) span(ctx context.Context, name string) (context.Context, func()) {
	ctx, span := m.ins.Tracer("budget.outbound.memory").Start(ctx, name)
	return ctx, func() { span.End() }
}

// ListTransactions returns the user's transactions in no particular order.
func (m *Memory) ListTransactions(ctx context.Context, userID int64) ([]entity.Transaction, error) {
	_, end := m.span(ctx, "ListTransactions")
	defer end()

	m.mu.RLock()
	defer m.mu.RUnlock()

	txs := m.byUser[userID]
	out := make([]entity.Transaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, t)
	}

	return out, nil
}

func (m *Memory) CreateTransaction(ctx context.Context, t entity.Transaction) error {
	_, end := m.span(ctx, "CreateTransaction")
	defer end()

	m.mu.Lock()
	defer m.mu.Unlock()

	txs, ok := m.byUser[t.UserID]
	if !ok {
		txs = make(map[int64]entity.Transaction)
		m.byUser[t.UserID] = txs
	}
	if _, exists := txs[t.ID]; exists {
		return goerror.ErrConflict
	}
	txs[t.ID] = t

	return nil
}

// DeleteTransaction removes a transaction owned by userID. Another user's
// transaction is reported as not found.
func (m *Memory) DeleteTransaction(ctx context.Context, userID, id int64) error {
	_, end := m.span(ctx, "DeleteTransaction")
	defer end()

	m.mu.Lock()
	defer m.mu.Unlock()

	txs := m.byUser[userID]
	if _, ok := txs[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(txs, id)

	return nil
}
