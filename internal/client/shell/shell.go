// Package shell is the terminal front end of the budget client. It owns the
// toast bus and the one second ticker, routes between the login view and the
// dashboard, and renders both to a plain text stream.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gookit/color"
	"github.com/shandysiswandi/gobudget/internal/client/api"
	"github.com/shandysiswandi/gobudget/internal/client/login"
	"github.com/shandysiswandi/gobudget/internal/client/toast"
	"github.com/shandysiswandi/gobudget/internal/pkg/clock"
)

var errQuit = errors.New("shell: quit")

type backend interface {
	RequestOTP(ctx context.Context, email string) (*api.OTPRequested, error)
	VerifyOTP(ctx context.Context, email, code, name string) (*api.User, error)
	Me(ctx context.Context) (*api.User, error)
	Logout(ctx context.Context) error

	Transactions(ctx context.Context, f api.Filter) ([]api.Transaction, error)
	AddTransaction(ctx context.Context, in api.NewTransaction) (*api.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	Summary(ctx context.Context, f api.Filter) (*api.Summary, error)
	Categories(ctx context.Context, f api.Filter) ([]api.CategoryTotal, error)
	CategoryList(ctx context.Context) ([]string, error)
}

// Clock is a clock that can also drive the shell ticker.
type Clock interface {
	clock.Clocker
	NewTicker(d time.Duration) clock.Ticker
}

type Config struct {
	API      backend
	In       io.Reader
	Out      io.Writer
	Clock    Clock
	ToastTTL time.Duration
}

type Shell struct {
	api   backend
	in    *bufio.Scanner
	out   io.Writer
	clock Clock

	bus    *toast.Bus
	tray   *toast.Tray
	toasts <-chan toast.Message
	shown  uint64

	mu    sync.Mutex
	user  *api.User
	login *login.Controller
}

func New(cfg Config) *Shell {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	return &Shell{
		api:   cfg.API,
		in:    bufio.NewScanner(cfg.In),
		out:   cfg.Out,
		clock: cfg.Clock,
		bus:   toast.NewBus(toast.Options{Clock: cfg.Clock}),
		tray:  toast.NewTray(cfg.ToastTTL, cfg.Clock),
	}
}

// Run resolves the current session and then alternates between the login
// view and the dashboard until the user quits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	ch, unsub, err := s.bus.Subscribe()
	if err != nil {
		return err
	}
	s.toasts = ch
	defer func() {
		unsub()
		s.bus.Close()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.tick(ctx)

	user, err := s.api.Me(ctx)
	if err != nil && !errors.Is(err, api.ErrUnauthorized) {
		slog.WarnContext(ctx, "failed to load session", "error", err)
	}
	s.setUser(user)

	for {
		if s.currentUser() == nil {
			err = s.runLogin(ctx)
		} else {
			err = s.runDashboard(ctx)
		}

		switch {
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			s.flushToasts()
			return nil
		case err != nil:
			return err
		}
	}
}

func (s *Shell) tick(ctx context.Context) {
	t := s.clock.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			if c := s.activeLogin(); c != nil {
				c.Tick()
			}
		}
	}
}

func (s *Shell) setUser(u *api.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

func (s *Shell) currentUser() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.user
}

func (s *Shell) setLogin(c *login.Controller) {
	s.mu.Lock()
	s.login = c
	s.mu.Unlock()
}

func (s *Shell) activeLogin() *login.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.login
}

// readLine flushes pending toasts, prints the prompt and reads one line.
func (s *Shell) readLine(prompt string) (string, error) {
	s.flushToasts()
	fmt.Fprint(s.out, prompt)

	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) flushToasts() {
drain:
	for {
		select {
		case m, ok := <-s.toasts:
			if !ok {
				s.toasts = nil
				break drain
			}
			s.tray.Add(m)
		default:
			break drain
		}
	}

	for _, m := range s.tray.Visible() {
		if m.ID <= s.shown {
			continue
		}
		s.shown = m.ID
		fmt.Fprintln(s.out, renderToast(m))
	}
}

func renderToast(m toast.Message) string {
	switch m.Type {
	case toast.TypeSuccess:
		return color.Success.Sprint("[ok] " + m.Text)
	case toast.TypeError:
		return color.Error.Sprint("[error] " + m.Text)
	default:
		return color.Info.Sprint("[info] " + m.Text)
	}
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}
