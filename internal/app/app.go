package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/shandysiswandi/gobudget/internal/pkg/clock"
	"github.com/shandysiswandi/gobudget/internal/pkg/config"
	"github.com/shandysiswandi/gobudget/internal/pkg/goroutine"
	"github.com/shandysiswandi/gobudget/internal/pkg/hash"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
	"github.com/shandysiswandi/gobudget/internal/pkg/jwt"
	"github.com/shandysiswandi/gobudget/internal/pkg/mail"
	"github.com/shandysiswandi/gobudget/internal/pkg/messaging"
	"github.com/shandysiswandi/gobudget/internal/pkg/otp"
	"github.com/shandysiswandi/gobudget/internal/pkg/router"
	"github.com/shandysiswandi/gobudget/internal/pkg/uid"
	"github.com/shandysiswandi/gobudget/internal/pkg/validator"
)

// App holds the process wide dependencies and the HTTP server.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	codeHash  hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT
	denylist  *jwt.Denylist

	// resources
	mail      mail.Mail
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	closers []closer
}

// closer releases one resource during Stop, in slice order.
type closer struct {
	name string
	fn   func(context.Context) error
}

// exitOnError aborts startup; a half wired App is never returned.
func exitOnError(err error, what string, args ...any) {
	if err == nil {
		return
	}
	slog.Error("failed to init "+what, append([]any{"error", err}, args...)...)
	os.Exit(1)
}

// New builds the App from the config file and exits the process on any
// wiring failure. Order matters: later steps read fields set by earlier ones.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{ctx: ctx, cancel: cancel}

	for _, step := range []func(){
		a.initConfig,
		a.initInstrument,
		a.initLibraries,
		a.initJWT,
		a.initMail,
		a.initMessaging,
		a.initHTTPServer,
		a.initModules,
		a.initClosers,
	} {
		step()
	}

	return a
}
