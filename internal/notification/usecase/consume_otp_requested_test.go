package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/gobudget/internal/notification/entity"
	"github.com/shandysiswandi/gobudget/internal/pkg/clock"
	"github.com/shandysiswandi/gobudget/internal/pkg/config"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
	"github.com/shandysiswandi/gobudget/internal/pkg/validator"
)

type flakyMail struct {
	failures int
	calls    int
	sent     []entity.Email
}

func (f *flakyMail) Send(_ context.Context, msg entity.Email) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestUsecase(t *testing.T, m *flakyMail, now time.Time) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  name: GoBudget
modules:
  notification:
    support_email: help@gobudget.test
    retry:
      max_attempts: 3
      base_ms: 1
`))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	return New(Dependency{
		Config:     cfg,
		Clock:      clock.NewManual(now),
		Validator:  v,
		RepoMail:   m,
		Instrument: instrument.NewNoop(),
	})
}

func TestConsumeOTPRequested(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	valid := ConsumeOTPRequestedInput{
		Email:     "ada@example.com",
		Code:      "482913",
		ExpiresAt: now.Add(10 * time.Minute),
	}

	tests := []struct {
		name      string
		in        ConsumeOTPRequestedInput
		failures  int
		wantErr   bool
		wantCalls int
		wantSent  int
	}{
		{name: "first attempt", in: valid, wantCalls: 1, wantSent: 1},
		{name: "recovers after failures", in: valid, failures: 2, wantCalls: 3, wantSent: 1},
		{name: "gives up after max attempts", in: valid, failures: 10, wantErr: true, wantCalls: 3},
		{name: "invalid email dropped", in: ConsumeOTPRequestedInput{Email: "x", Code: "482913", ExpiresAt: valid.ExpiresAt}},
		{name: "invalid code dropped", in: ConsumeOTPRequestedInput{Email: valid.Email, Code: "12ab56", ExpiresAt: valid.ExpiresAt}},
		{name: "expired dropped", in: ConsumeOTPRequestedInput{Email: valid.Email, Code: valid.Code, ExpiresAt: now.Add(-time.Second)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			m := &flakyMail{failures: tt.failures}
			uc := newTestUsecase(t, m, now)

			// Act
			err := uc.ConsumeOTPRequested(context.Background(), tt.in)

			// Assert
			if (err != nil) != tt.wantErr {
				t.Fatalf("ConsumeOTPRequested() error = %v, wantErr %v", err, tt.wantErr)
			}
			if m.calls != tt.wantCalls || len(m.sent) != tt.wantSent {
				t.Fatalf("calls = %d sent = %d, want %d/%d", m.calls, len(m.sent), tt.wantCalls, tt.wantSent)
			}
		})
	}
}

func TestConsumeOTPRequested_RendersBodies(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m := &flakyMail{}
	uc := newTestUsecase(t, m, now)

	err := uc.ConsumeOTPRequested(context.Background(), ConsumeOTPRequestedInput{
		Email:     "ada@example.com",
		Code:      "482913",
		ExpiresAt: now.Add(10 * time.Minute),
	})
	if err != nil {
		t.Fatalf("ConsumeOTPRequested() error = %v", err)
	}

	got := m.sent[0]
	if got.To != "ada@example.com" || got.Subject != "Your GoBudget login code" {
		t.Fatalf("unexpected envelope %+v", got)
	}
	for _, body := range []string{got.TextBody, got.HTMLBody} {
		if !strings.Contains(body, "482913") || !strings.Contains(body, "10 minutes") || !strings.Contains(body, "help@gobudget.test") {
			t.Fatalf("body missing content:\n%s", body)
		}
	}
	if !strings.Contains(got.HTMLBody, "<html>") {
		t.Fatal("html body not rendered")
	}
}
