package login

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/gobudget/internal/client/api"
	"github.com/shandysiswandi/gobudget/internal/client/toast"
	"github.com/shandysiswandi/gobudget/internal/pkg/clock"
)

type fakeAuth struct {
	mu         sync.Mutex
	requests   []string
	verifies   []string
	requestErr error
	verifyErr  error
	block      chan struct{}
	entered    chan struct{}
}

func (f *fakeAuth) wait() {
	if f.block != nil {
		f.entered <- struct{}{}
		<-f.block
	}
}

func (f *fakeAuth) RequestOTP(_ context.Context, email string) (*api.OTPRequested, error) {
	f.mu.Lock()
	f.requests = append(f.requests, email)
	f.mu.Unlock()
	f.wait()
	if f.requestErr != nil {
		return nil, f.requestErr
	}
	return &api.OTPRequested{CooldownSeconds: 30}, nil
}

func (f *fakeAuth) VerifyOTP(_ context.Context, email, code, name string) (*api.User, error) {
	f.mu.Lock()
	f.verifies = append(f.verifies, email+"|"+code+"|"+name)
	f.mu.Unlock()
	f.wait()
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &api.User{ID: "1", Email: email, Name: name}, nil
}

func (f *fakeAuth) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests) + len(f.verifies)
}

type recordedToast struct {
	kind toast.Type
	text string
}

type fakeToasts struct{ got []recordedToast }

func (f *fakeToasts) add(k toast.Type, text string) toast.Message {
	f.got = append(f.got, recordedToast{k, text})
	return toast.Message{Type: k, Text: text}
}

func (f *fakeToasts) Success(text string) toast.Message { return f.add(toast.TypeSuccess, text) }
func (f *fakeToasts) Error(text string) toast.Message   { return f.add(toast.TypeError, text) }
func (f *fakeToasts) Info(text string) toast.Message    { return f.add(toast.TypeInfo, text) }

func (f *fakeToasts) last() recordedToast {
	if len(f.got) == 0 {
		return recordedToast{}
	}
	return f.got[len(f.got)-1]
}

type fixture struct {
	c      *Controller
	auth   *fakeAuth
	toasts *fakeToasts
	clk    *clock.Manual
	logins []*api.User
}

func newFixture() *fixture {
	f := &fixture{
		auth:   &fakeAuth{},
		toasts: &fakeToasts{},
		clk:    clock.NewManual(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
	f.c = New(Config{
		Auth:    f.auth,
		Toasts:  f.toasts,
		Clock:   f.clk,
		OnLogin: func(u *api.User) { f.logins = append(f.logins, u) },
	})
	return f
}

// toCodeEntry drives a fixture through a successful email submission.
func (f *fixture) toCodeEntry(t *testing.T) {
	t.Helper()

	f.c.SubmitEmail(context.Background(), "user@example.com", "")
	if f.c.Snapshot().Step != StepCode {
		t.Fatal("expected code entry")
	}
}

func TestSubmitEmail(t *testing.T) {
	t.Run("malformed emails never reach the network", func(t *testing.T) {
		for _, email := range []string{"", "user", "user@example", "userexample.com", "@example.com", "user@.com"} {
			f := newFixture()

			f.c.SubmitEmail(context.Background(), email, "")

			v := f.c.Snapshot()
			if f.auth.calls() != 0 {
				t.Fatalf("%q: network called", email)
			}
			if v.Error != "Please enter a valid email address." || v.Step != StepEmail || v.Loading {
				t.Fatalf("%q: unexpected view %+v", email, v)
			}
			if f.toasts.last() != (recordedToast{toast.TypeError, "Please enter a valid email address."}) {
				t.Fatalf("%q: toast = %+v", email, f.toasts.last())
			}
		}
	})

	t.Run("success moves to code entry and starts timers", func(t *testing.T) {
		// Arrange
		f := newFixture()

		// Act
		f.c.SubmitEmail(context.Background(), "user@example.com", "Ada")

		// Assert
		v := f.c.Snapshot()
		if v.Step != StepCode || v.CooldownSeconds != 30 || v.Code != "" {
			t.Fatalf("unexpected view %+v", v)
		}
		if !v.HasExpiry || v.ExpiresIn != 10*time.Minute || v.ExpiresInText() != "10:00" {
			t.Fatalf("expiry = %v %q", v.ExpiresIn, v.ExpiresInText())
		}
		if v.Message != "OTP sent to your email. Please check your inbox/spam." {
			t.Fatalf("message = %q", v.Message)
		}
		if f.toasts.last() != (recordedToast{toast.TypeSuccess, "OTP sent to your email."}) {
			t.Fatalf("toast = %+v", f.toasts.last())
		}
	})

	t.Run("failure with retry after sets cooldown", func(t *testing.T) {
		f := newFixture()
		f.auth.requestErr = &api.Error{StatusCode: 429, Message: "Please wait before requesting another code", RetryAfter: 45}

		f.c.SubmitEmail(context.Background(), "user@example.com", "")

		v := f.c.Snapshot()
		if v.Step != StepEmail || v.CooldownSeconds != 45 {
			t.Fatalf("unexpected view %+v", v)
		}
		if v.Error != "Please wait before requesting another code" {
			t.Fatalf("error = %q", v.Error)
		}
	})

	t.Run("failure without hint keeps cooldown and uses generic text", func(t *testing.T) {
		f := newFixture()
		f.auth.requestErr = errors.New("connection refused")

		f.c.SubmitEmail(context.Background(), "user@example.com", "")

		v := f.c.Snapshot()
		if v.CooldownSeconds != 0 || v.Error != "Failed to send OTP. Please check your email and try again." {
			t.Fatalf("unexpected view %+v", v)
		}
	})
}

func TestSubmitCode(t *testing.T) {
	t.Run("malformed codes never reach the network", func(t *testing.T) {
		f := newFixture()
		f.toCodeEntry(t)

		for _, code := range []string{"", "12345", "1234567", "12a456", "12 456", "１２３４５６"} {
			f.c.SubmitCode(context.Background(), code)

			if len(f.auth.verifies) != 0 {
				t.Fatalf("%q: network called", code)
			}
			if v := f.c.Snapshot(); v.Error != "Enter the 6-digit code we emailed you." || v.Step != StepCode {
				t.Fatalf("%q: unexpected view %+v", code, v)
			}
		}
	})

	t.Run("success notifies and navigates", func(t *testing.T) {
		f := newFixture()
		f.c.SubmitEmail(context.Background(), "user@example.com", "Ada")

		f.c.SubmitCode(context.Background(), "123456")

		if len(f.logins) != 1 || f.logins[0].Email != "user@example.com" {
			t.Fatalf("logins = %+v", f.logins)
		}
		if f.auth.verifies[0] != "user@example.com|123456|Ada" {
			t.Fatalf("verify call = %q", f.auth.verifies[0])
		}
		if f.toasts.last() != (recordedToast{toast.TypeSuccess, "Logged in successfully"}) {
			t.Fatalf("toast = %+v", f.toasts.last())
		}
	})

	t.Run("failure keeps code for retry", func(t *testing.T) {
		f := newFixture()
		f.toCodeEntry(t)
		f.auth.verifyErr = &api.Error{StatusCode: 422, Message: "Invalid or expired code"}

		f.c.SubmitCode(context.Background(), "654321")

		v := f.c.Snapshot()
		if v.Step != StepCode || v.Code != "654321" || v.Error != "Invalid or expired code. Please try again." {
			t.Fatalf("unexpected view %+v", v)
		}
		if f.toasts.last() != (recordedToast{toast.TypeError, "Invalid or expired code."}) {
			t.Fatalf("toast = %+v", f.toasts.last())
		}
		if len(f.logins) != 0 {
			t.Fatal("must not navigate")
		}
	})

	t.Run("expired code is disabled without network", func(t *testing.T) {
		f := newFixture()
		f.toCodeEntry(t)

		f.clk.Advance(10 * time.Minute)
		if v := f.c.Snapshot(); v.Expired || v.VerifyDisabled || v.ExpiresInText() != "00:00" {
			t.Fatalf("boundary is exclusive: %+v", v)
		}

		f.clk.Advance(time.Millisecond)
		f.c.SubmitCode(context.Background(), "123456")

		v := f.c.Snapshot()
		if len(f.auth.verifies) != 0 {
			t.Fatal("network called after expiry")
		}
		if !v.Expired || !v.VerifyDisabled || v.VerifyLabel != "Code expired" || v.ExpiresInText() != "00:00" {
			t.Fatalf("unexpected view %+v", v)
		}
	})
}

func TestResend(t *testing.T) {
	t.Run("no effect during cooldown", func(t *testing.T) {
		f := newFixture()
		f.toCodeEntry(t)
		before := f.c.Snapshot()

		f.c.Resend(context.Background())

		if len(f.auth.requests) != 1 {
			t.Fatalf("requests = %d", len(f.auth.requests))
		}
		if after := f.c.Snapshot(); after != before {
			t.Fatalf("state changed: %+v -> %+v", before, after)
		}
	})

	t.Run("no effect without email", func(t *testing.T) {
		f := newFixture()

		f.c.Resend(context.Background())

		if f.auth.calls() != 0 {
			t.Fatal("network called")
		}
	})

	t.Run("no effect after changing email", func(t *testing.T) {
		f := newFixture()
		f.toCodeEntry(t)
		for range 30 {
			f.c.Tick()
		}
		f.c.ChangeEmail()
		before := f.c.Snapshot()

		f.c.Resend(context.Background())

		if len(f.auth.requests) != 1 {
			t.Fatalf("requests = %d", len(f.auth.requests))
		}
		if after := f.c.Snapshot(); after != before || after.Step != StepEmail {
			t.Fatalf("state changed: %+v -> %+v", before, after)
		}
	})

	t.Run("after cooldown resets both timers", func(t *testing.T) {
		f := newFixture()
		f.toCodeEntry(t)

		for range 30 {
			f.clk.Advance(time.Second)
			f.c.Tick()
		}
		f.c.Resend(context.Background())

		v := f.c.Snapshot()
		if len(f.auth.requests) != 2 || v.Step != StepCode {
			t.Fatalf("unexpected view %+v", v)
		}
		if v.CooldownSeconds != 30 || v.ExpiresIn != 10*time.Minute {
			t.Fatalf("timers not reset: %+v", v)
		}
		if v.Message != "A new OTP has been sent to your email." || f.toasts.last() != (recordedToast{toast.TypeInfo, "New OTP sent"}) {
			t.Fatalf("unexpected notice %q %+v", v.Message, f.toasts.last())
		}
	})

	t.Run("failure applies retry after", func(t *testing.T) {
		f := newFixture()
		f.toCodeEntry(t)
		for range 30 {
			f.c.Tick()
		}
		f.auth.requestErr = &api.Error{StatusCode: 429, RetryAfter: 12}

		f.c.Resend(context.Background())

		v := f.c.Snapshot()
		if v.CooldownSeconds != 12 || v.Error != "Could not resend OTP. Please try again shortly." {
			t.Fatalf("unexpected view %+v", v)
		}
	})
}

func TestTickAndLabels(t *testing.T) {
	f := newFixture()
	if f.c.Tick() {
		t.Fatal("idle cooldown reported running")
	}
	if v := f.c.Snapshot(); v.CooldownSeconds != 0 || v.ResendHint != "Didn't get the code?" {
		t.Fatalf("unexpected view %+v", v)
	}

	f.toCodeEntry(t)
	if v := f.c.Snapshot(); v.ResendHint != "Resend available in 30s" || !v.ResendDisabled || v.VerifyLabel != "Verify & Continue" {
		t.Fatalf("unexpected view %+v", v)
	}

	for range 40 {
		f.c.Tick()
	}
	if v := f.c.Snapshot(); v.CooldownSeconds != 0 || v.ResendDisabled {
		t.Fatalf("cooldown went wrong: %+v", v)
	}

	f.clk.Advance(90*time.Second + 200*time.Millisecond)
	if got := f.c.Snapshot().ExpiresInText(); got != "08:30" {
		t.Fatalf("ExpiresInText() = %q", got)
	}
}

func TestChangeEmail(t *testing.T) {
	f := newFixture()
	f.toCodeEntry(t)

	f.c.ChangeEmail()

	v := f.c.Snapshot()
	if v.Step != StepEmail || v.Email != "user@example.com" {
		t.Fatalf("unexpected view %+v", v)
	}
}

func TestLoadingAndClose(t *testing.T) {
	f := newFixture()
	f.auth.block = make(chan struct{})
	f.auth.entered = make(chan struct{})

	done := make(chan struct{})
	go func() {
		f.c.SubmitEmail(context.Background(), "user@example.com", "")
		close(done)
	}()
	<-f.auth.entered

	v := f.c.Snapshot()
	if !v.Loading || v.SubmitLabel != "Sending..." {
		t.Fatalf("expected loading view, got %+v", v)
	}

	// duplicate submission while loading is ignored
	f.c.SubmitEmail(context.Background(), "other@example.com", "")
	if len(f.auth.requests) != 1 {
		t.Fatalf("requests = %v", f.auth.requests)
	}

	f.c.Close()
	close(f.auth.block)
	<-done

	v = f.c.Snapshot()
	if v.Step != StepEmail || v.Loading || len(f.toasts.got) != 0 {
		t.Fatalf("late response must be dropped: %+v %+v", v, f.toasts.got)
	}
}

func TestFormatMMSS(t *testing.T) {
	tests := map[time.Duration]string{
		-time.Second:                   "00:00",
		0:                              "00:00",
		time.Millisecond:               "00:01",
		59 * time.Second:               "00:59",
		10 * time.Minute:               "10:00",
		9*time.Minute + 59*time.Second: "09:59",
	}

	for d, want := range tests {
		if got := FormatMMSS(d); got != want {
			t.Fatalf("FormatMMSS(%v) = %q, want %q", d, got, want)
		}
	}
}
