package goroutine

import (
	"context"
	"errors"
	"testing"
)

func TestManager_Go(t *testing.T) {
	t.Run("collects errors", func(t *testing.T) {
		m := NewManager(4)
		errBoom := errors.New("boom")

		m.Go(context.Background(), func(context.Context) error { return nil })
		m.Go(context.Background(), func(context.Context) error { return errBoom })

		if err := m.Wait(); !errors.Is(err, errBoom) {
			t.Fatalf("Wait() = %v, want %v", err, errBoom)
		}
	})

	t.Run("recovers panics", func(t *testing.T) {
		m := NewManager(1)
		m.Go(context.Background(), func(context.Context) error { panic("bad consumer") })

		if err := m.Wait(); err != nil {
			t.Fatalf("Wait() = %v", err)
		}
	})

	t.Run("rejects when full", func(t *testing.T) {
		m := NewManager(1)
		release := make(chan struct{})

		if !m.Go(context.Background(), func(context.Context) error { <-release; return nil }) {
			t.Fatal("first task should be scheduled")
		}
		if m.Go(context.Background(), func(context.Context) error { return nil }) {
			t.Fatal("second task should be rejected")
		}

		close(release)
		_ = m.Wait()
	})

	t.Run("rejects after wait", func(t *testing.T) {
		m := NewManager(1)
		_ = m.Wait()

		if m.Go(context.Background(), func(context.Context) error { return nil }) {
			t.Fatal("closed manager must not schedule")
		}
	})

	t.Run("nil manager", func(t *testing.T) {
		var m *Manager
		if m.Go(context.Background(), func(context.Context) error { return nil }) || m.Wait() != nil {
			t.Fatal("nil manager should be inert")
		}
	})
}
