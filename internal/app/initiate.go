package app

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/nats-io/nats.go"
	libOTP "github.com/pquerna/otp"
	"github.com/rs/cors"
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

// configPath resolves CONFIG_PATH, then the repo copy when LOCAL=true, then
// the container mount.
func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if os.Getenv("LOCAL") == "true" {
		return "./config/config.yaml"
	}
	return "/config/config.yaml"
}

func (a *App) initConfig() {
	cfg, err := config.NewViper(configPath())
	exitOnError(err, "config", "path", configPath())

	if tz := cfg.GetString("app.tz"); tz != "" {
		//nolint:errcheck,gosec // best effort
		os.Setenv("TZ", tz)
	}
	a.config = cfg
}

func (a *App) initInstrument() {
	c := a.config
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          c.GetBool("instrument.enabled"),
		ServiceName:      c.GetString("instrument.service_name"),
		ServiceVersion:   c.GetString("instrument.service_version"),
		Environment:      c.GetString("instrument.env"),
		OTLPEndpoint:     c.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       c.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: c.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  c.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       c.GetArray("instrument.log_mask_fields"),
	})
	exitOnError(err, "instrumentation")
	a.ins = ins
}

func (a *App) initLibraries() {
	c := a.config

	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.otp = otp.NewHOTPCode(libOTP.DigitsSix)
	a.goroutine = goroutine.NewManager(c.GetInt("app.server.max_goroutine"))

	driver := c.GetString("hash.driver")
	codeHash, err := hash.New(hash.Config{
		Driver:     driver,
		BcryptCost: c.GetInt("hash.bcrypt.cost"),
		Pepper:     c.GetString("hash.pepper"),
	})
	exitOnError(err, "code hash", "driver", driver)
	a.codeHash = codeHash

	v, err := validator.NewV10Validator()
	exitOnError(err, "validator")
	a.validator = v

	nodeID := c.GetInt64("app.node_id")
	snow, err := uid.NewSnowflake(nodeID)
	exitOnError(err, "snowflake", "node_id", nodeID)
	a.uid = snow
}

func (a *App) initJWT() {
	j, err := jwt.NewHS512(jwt.Config{
		Secret:    a.config.GetBinary("jwt.secret"),
		Issuer:    a.config.GetString("jwt.issuer"),
		Audiences: a.config.GetArray("jwt.audiences"),
		TTL:       a.config.GetHour("jwt.ttl_hours"),
		Clock:     a.clock,
		UUID:      a.uuid,
	})
	exitOnError(err, "jwt")

	a.jwt = j
	a.denylist = jwt.NewDenylist(a.clock)
}

func (a *App) initMail() {
	driver := a.config.GetString("mail.driver")
	m, err := mail.New(mail.Config{
		Driver: driver,
		SMTP: mail.SMTPConfig{
			Host:     a.config.GetString("mail.smtp.host"),
			Port:     a.config.GetInt("mail.smtp.port"),
			Username: a.config.GetString("mail.smtp.username"),
			Password: a.config.GetString("mail.smtp.password"),
			From:     a.config.GetString("mail.from"),
		},
	})
	exitOnError(err, "mail", "driver", driver)
	a.mail = m
}

// natsOptions maps messaging.nats.* onto connection options.
func natsOptions(c config.Config) []nats.Option {
	return []nats.Option{
		nats.Timeout(c.GetSecond("messaging.nats.timeout_seconds")),
		nats.MaxReconnects(c.GetInt("messaging.nats.max_reconnects")),
		nats.ReconnectWait(c.GetSecond("messaging.nats.reconnect_wait_seconds")),
		nats.RetryOnFailedConnect(c.GetBool("messaging.nats.retry_on_failed_connect")),
		nats.PingInterval(c.GetSecond("messaging.nats.ping_interval_seconds")),
		nats.MaxPingsOutstanding(c.GetInt("messaging.nats.max_pings_outstanding")),
	}
}

func (a *App) initMessaging() {
	driver := a.config.GetString("messaging.driver")
	msg, err := messaging.NewFromDriver(driver, messaging.FactoryOptions{
		Memory: messaging.MemoryConfig{Buffer: a.config.GetInt("messaging.memory.buffer")},
		NATS: messaging.NATSConfig{
			URL:     a.config.GetString("messaging.nats.url"),
			Name:    a.config.GetString("messaging.nats.name"),
			Options: natsOptions(a.config),
		},
	})
	exitOnError(err, "messaging", "driver", driver)
	a.messaging = msg
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (a *App) initHTTPServer() {
	c := a.config

	a.router = router.NewRouter(router.Config{
		Config:        c,
		Instrument:    a.ins,
		UUID:          a.uuid,
		JWT:           a.jwt,
		Revocations:   a.denylist,
		SessionCookie: strings.TrimSpace(c.GetString("modules.identity.session_cookie.name")),
	})
	a.router.GETRaw("/health", http.HandlerFunc(healthHandler))

	// Credentials are allowed so the browser sends the session cookie.
	handler := cors.New(cors.Options{
		AllowedOrigins:   c.GetArray("app.server.cors"),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              c.GetString("app.server.http.address"),
		Handler:           handler,
		ReadTimeout:       c.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: c.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      c.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       c.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []closer{
		{name: "instrument", fn: a.ins.Shutdown},
		{name: "messaging", fn: func(context.Context) error { return a.messaging.Close() }},
		{name: "mail", fn: func(context.Context) error { return a.mail.Close() }},
		{name: "config", fn: func(context.Context) error { return a.config.Close() }},
	}
}
