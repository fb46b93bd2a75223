package usecase

import (
	"bytes"
	"context"
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/shandysiswandi/gobudget/internal/notification/entity"
	"github.com/shandysiswandi/gobudget/internal/pkg/clock"
	"github.com/shandysiswandi/gobudget/internal/pkg/config"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
	"github.com/shandysiswandi/gobudget/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultAppName       = "GoBudget"
	defaultSupportEmail  = "support@gobudget.local"
	defaultRetryAttempts = 3
	defaultRetryBase     = 500 * time.Millisecond
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	otpHTML = htmltemplate.Must(htmltemplate.New("otp_code.html.tmpl").
		Option("missingkey=zero").ParseFS(templateFS, "templates/otp_code.html.tmpl"))
	otpText = texttemplate.Must(texttemplate.New("otp_code.txt.tmpl").
		Option("missingkey=zero").ParseFS(templateFS, "templates/otp_code.txt.tmpl"))
)

type repoMail interface {
	Send(ctx context.Context, msg entity.Email) error
}

type Usecase struct {
	cfg       config.Config
	clock     clock.Clocker
	validator validator.Validator
	repoMail  repoMail
	ins       instrument.Instrumentation
}

type Dependency struct {
	Config     config.Config
	Clock      clock.Clocker
	Validator  validator.Validator
	RepoMail   repoMail
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		cfg:       dep.Config,
		clock:     dep.Clock,
		validator: dep.Validator,
		repoMail:  dep.RepoMail,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

func (s *Usecase) appName() string {
	if v := s.cfg.GetString("app.name"); v != "" {
		return v
	}
	return defaultAppName
}

func (s *Usecase) supportEmail() string {
	if v := s.cfg.GetString("modules.notification.support_email"); v != "" {
		return v
	}
	return defaultSupportEmail
}

func (s *Usecase) retryAttempts() uint64 {
	if n := s.cfg.GetInt("modules.notification.retry.max_attempts"); n > 0 {
		return uint64(n)
	}
	return defaultRetryAttempts
}

func (s *Usecase) retryBase() time.Duration {
	if ms := s.cfg.GetInt64("modules.notification.retry.base_ms"); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultRetryBase
}

func renderOTP(data entity.OTPEmailData) (text, html string, err error) {
	var tb, hb bytes.Buffer

	if err := otpText.Execute(&tb, data); err != nil {
		return "", "", err
	}
	if err := otpHTML.Execute(&hb, data); err != nil {
		return "", "", err
	}

	return tb.String(), hb.String(), nil
}
