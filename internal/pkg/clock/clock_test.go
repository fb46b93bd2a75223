package clock

import (
	"testing"
	"time"
)

func TestManual(t *testing.T) {
	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("frozen until advanced", func(t *testing.T) {
		// Arrange
		c := NewManual(start)

		// Act
		first := c.Now()
		c.Advance(90 * time.Second)
		second := c.Now()

		// Assert
		if !first.Equal(start) {
			t.Fatalf("Now() = %v, want %v", first, start)
		}
		if got := second.Sub(first); got != 90*time.Second {
			t.Fatalf("advanced by %v, want 90s", got)
		}
	})

	t.Run("set jumps to exact time", func(t *testing.T) {
		c := NewManual(start)
		target := start.Add(-time.Hour)

		c.Set(target)

		if !c.Now().Equal(target) {
			t.Fatalf("Now() = %v, want %v", c.Now(), target)
		}
	})
}

func TestTimeClockerTicker(t *testing.T) {
	tk := New().NewTicker(time.Millisecond)
	defer tk.Stop()

	select {
	case <-tk.C():
	case <-time.After(time.Second):
		t.Fatal("ticker did not fire")
	}
}
