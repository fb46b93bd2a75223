// Package login drives the two-step one-time code sign in: email entry, then
// code entry, then hand-off to the authenticated area.
//
// The controller holds a mutex that is released while a request is in
// flight; the loading flag turns repeated submissions into no-ops meanwhile.
// Two timers run under different disciplines: the resend cooldown is a
// counter decremented by Tick, while the code expiry is recomputed from the
// wall clock on every Snapshot.
package login

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sync"
	"time"

	"github.com/shandysiswandi/gobudget/internal/client/api"
	"github.com/shandysiswandi/gobudget/internal/client/toast"
	"github.com/shandysiswandi/gobudget/internal/pkg/clock"
	"github.com/shandysiswandi/gobudget/internal/pkg/otp"
)

const (
	// ResendCooldown is the wait, in seconds, after a code is sent.
	ResendCooldown = 30
	// CodeTTL is how long a sent code is assumed valid.
	CodeTTL = 10 * time.Minute
)

const (
	msgInvalidEmail   = "Please enter a valid email address."
	msgOTPSent        = "OTP sent to your email. Please check your inbox/spam."
	msgOTPSentToast   = "OTP sent to your email."
	msgSendFailed     = "Failed to send OTP. Please check your email and try again."
	msgInvalidCode    = "Enter the 6-digit code we emailed you."
	msgVerified       = "Logged in successfully"
	msgVerifyFailed   = "Invalid or expired code. Please try again."
	msgVerifyToast    = "Invalid or expired code."
	msgResent         = "A new OTP has been sent to your email."
	msgResentToast    = "New OTP sent"
	msgResendFailed   = "Could not resend OTP. Please try again shortly."
	labelSend         = "Send OTP"
	labelSending      = "Sending..."
	labelVerify       = "Verify & Continue"
	labelVerifying    = "Verifying..."
	labelExpired      = "Code expired"
	labelNoCodeYet    = "Didn't get the code?"
	labelResendFormat = "Resend available in %ds"
)

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

type Step int

const (
	StepEmail Step = iota
	StepCode
)

func (s Step) String() string {
	if s == StepCode {
		return "code"
	}
	return "email"
}

type authClient interface {
	RequestOTP(ctx context.Context, email string) (*api.OTPRequested, error)
	VerifyOTP(ctx context.Context, email, code, name string) (*api.User, error)
}

type notifier interface {
	Success(text string) toast.Message
	Error(text string) toast.Message
	Info(text string) toast.Message
}

type Config struct {
	Auth   authClient
	Toasts notifier
	Clock  clock.Clocker
	// OnLogin is called once after a successful verification.
	OnLogin func(user *api.User)
}

type Controller struct {
	auth    authClient
	toasts  notifier
	clock   clock.Clocker
	onLogin func(user *api.User)

	mu        sync.Mutex
	step      Step
	email     string
	name      string
	code      string
	cooldown  int
	expiresAt time.Time
	loading   bool
	errMsg    string
	message   string
	closed    bool
}

func New(cfg Config) *Controller {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.OnLogin == nil {
		cfg.OnLogin = func(*api.User) {}
	}

	return &Controller{
		auth:    cfg.Auth,
		toasts:  cfg.Toasts,
		clock:   cfg.Clock,
		onLogin: cfg.OnLogin,
	}
}

// begin claims the controller for a network call. It fails when a call is
// already running or the view is gone.
func (c *Controller) begin() bool {
	if c.loading || c.closed {
		return false
	}
	c.loading = true
	c.errMsg = ""
	c.message = ""
	return true
}

func (c *Controller) fail(msg string) {
	c.errMsg = msg
	c.toasts.Error(msg)
}

func (c *Controller) applyRetryAfter(err error) {
	if ra := api.RetryAfter(err); ra > 0 {
		c.cooldown = ra
	}
}

func (c *Controller) startTimers() {
	c.cooldown = ResendCooldown
	c.expiresAt = c.clock.Now().Add(CodeTTL)
}

// SubmitEmail validates the address and asks the server for a code.
func (c *Controller) SubmitEmail(ctx context.Context, email, name string) {
	c.mu.Lock()
	if c.step != StepEmail || !c.begin() {
		c.mu.Unlock()
		return
	}

	c.email = email
	c.name = name

	if !emailPattern.MatchString(email) {
		c.loading = false
		c.fail(msgInvalidEmail)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	_, err := c.auth.RequestOTP(ctx, email)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = false
	if c.closed {
		return
	}

	if err != nil {
		c.applyRetryAfter(err)
		c.fail(messageOr(err, msgSendFailed))
		return
	}

	c.step = StepCode
	c.code = ""
	c.startTimers()
	c.message = msgOTPSent
	c.toasts.Success(msgOTPSentToast)
}

// SubmitCode verifies the code. Once the code has expired locally it is a
// no-op and never reaches the server.
func (c *Controller) SubmitCode(ctx context.Context, code string) {
	c.mu.Lock()
	if c.step != StepCode || c.expired(c.clock.Now()) || !c.begin() {
		c.mu.Unlock()
		return
	}

	c.code = code
	if !otp.Valid(code) {
		c.loading = false
		c.fail(msgInvalidCode)
		c.mu.Unlock()
		return
	}
	email, name := c.email, c.name
	c.mu.Unlock()

	user, err := c.auth.VerifyOTP(ctx, email, code, name)

	c.mu.Lock()
	c.loading = false
	if c.closed {
		c.mu.Unlock()
		return
	}

	if err != nil {
		c.errMsg = msgVerifyFailed
		c.toasts.Error(msgVerifyToast)
		c.mu.Unlock()
		return
	}

	c.toasts.Success(msgVerified)
	c.mu.Unlock()

	c.onLogin(user)
}

// Resend requests a fresh code without leaving code entry. It is a no-op
// outside code entry, while the cooldown runs or when no email is known.
func (c *Controller) Resend(ctx context.Context) {
	c.mu.Lock()
	if c.step != StepCode || c.cooldown > 0 || c.email == "" || !c.begin() {
		c.mu.Unlock()
		return
	}
	email := c.email
	c.mu.Unlock()

	_, err := c.auth.RequestOTP(ctx, email)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = false
	if c.closed {
		return
	}

	if err != nil {
		c.applyRetryAfter(err)
		c.fail(messageOr(err, msgResendFailed))
		return
	}

	c.startTimers()
	c.message = msgResent
	c.toasts.Info(msgResentToast)
}

// ChangeEmail returns to email entry, keeping the typed address.
func (c *Controller) ChangeEmail() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.step = StepEmail
}

// Tick advances the resend cooldown by one second. It reports whether the
// cooldown is still running.
func (c *Controller) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cooldown > 0 {
		c.cooldown--
	}
	return c.cooldown > 0
}

// Close tears the view down. Responses arriving later are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
}

func (c *Controller) expired(now time.Time) bool {
	return !c.expiresAt.IsZero() && now.After(c.expiresAt)
}

func messageOr(err error, fallback string) string {
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return fallback
}

// View is a render-ready snapshot of the controller.
type View struct {
	Step    Step
	Email   string
	Name    string
	Code    string
	Loading bool
	Error   string
	Message string

	CooldownSeconds int
	HasExpiry       bool
	ExpiresIn       time.Duration
	Expired         bool

	SubmitLabel    string
	VerifyLabel    string
	VerifyDisabled bool
	ResendHint     string
	ResendDisabled bool
}

// ExpiresInText renders the remaining code lifetime as MM:SS.
func (v View) ExpiresInText() string {
	return FormatMMSS(v.ExpiresIn)
}

// FormatMMSS renders d as MM:SS, rounding seconds up and clamping at zero.
func FormatMMSS(d time.Duration) string {
	total := max(0, int(math.Ceil(d.Seconds())))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	v := View{
		Step:            c.step,
		Email:           c.email,
		Name:            c.name,
		Code:            c.code,
		Loading:         c.loading,
		Error:           c.errMsg,
		Message:         c.message,
		CooldownSeconds: c.cooldown,
		HasExpiry:       !c.expiresAt.IsZero(),
		Expired:         c.expired(now),
	}
	if v.HasExpiry {
		v.ExpiresIn = max(0, c.expiresAt.Sub(now))
	}

	v.SubmitLabel = labelSend
	if c.loading {
		v.SubmitLabel = labelSending
	}

	switch {
	case c.loading:
		v.VerifyLabel = labelVerifying
	case v.Expired:
		v.VerifyLabel = labelExpired
	default:
		v.VerifyLabel = labelVerify
	}
	v.VerifyDisabled = c.loading || v.Expired

	v.ResendHint = labelNoCodeYet
	if c.cooldown > 0 {
		v.ResendHint = fmt.Sprintf(labelResendFormat, c.cooldown)
	}
	v.ResendDisabled = c.cooldown > 0 || c.loading

	return v
}
