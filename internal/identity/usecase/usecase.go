package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shandysiswandi/gobudget/internal/identity/entity"
	"github.com/shandysiswandi/gobudget/internal/pkg/clock"
	"github.com/shandysiswandi/gobudget/internal/pkg/config"
	"github.com/shandysiswandi/gobudget/internal/pkg/hash"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
	"github.com/shandysiswandi/gobudget/internal/pkg/jwt"
	"github.com/shandysiswandi/gobudget/internal/pkg/otp"
	"github.com/shandysiswandi/gobudget/internal/pkg/uid"
	"github.com/shandysiswandi/gobudget/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultOTPTTL         = 10 * time.Minute
	defaultOTPCooldown    = 30 * time.Second
	defaultOTPMaxAttempts = 5
)

// OTPRequestedEvent carries a freshly issued code to the delivery channel.
type OTPRequestedEvent struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

type repoMessaging interface {
	PublishOTPRequested(ctx context.Context, msg OTPRequestedEvent) error
}

type repoStore interface {
	GetOTP(ctx context.Context, email string) (*entity.OTP, error)
	SaveOTP(ctx context.Context, o entity.OTP) error
	DeleteOTP(ctx context.Context, email string) error
	IncrementOTPAttempts(ctx context.Context, email string) (int, error)

	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	CreateUser(ctx context.Context, u entity.User) error
	UpdateUserLogin(ctx context.Context, id int64, name string, at time.Time) (*entity.User, error)
}

type revoker interface {
	Revoke(jti string, exp time.Time)
}

type Usecase struct {
	repoStore     repoStore
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	codeHash      hash.Hash
	otp           otp.Generator
	uid           uid.NumberID
	clock         clock.Clocker
	jwt           jwt.JWT
	denylist      revoker
	ins           instrument.Instrumentation

	// otpMu serialises issue and verification so attempt counting and
	// consumption cannot interleave.
	otpMu sync.Mutex
}

type Dependency struct {
	RepoStore     repoStore
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	CodeHash      hash.Hash
	OTP           otp.Generator
	UID           uid.NumberID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Denylist      revoker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoStore:     dep.RepoStore,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		codeHash:      dep.CodeHash,
		otp:           dep.OTP,
		uid:           dep.UID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		denylist:      dep.Denylist,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) otpTTL() time.Duration {
	if d := s.cfg.GetMinute("modules.identity.otp_ttl_minutes"); d > 0 {
		return d
	}
	return defaultOTPTTL
}

func (s *Usecase) otpCooldown() time.Duration {
	if d := s.cfg.GetSecond("modules.identity.otp_cooldown_seconds"); d > 0 {
		return d
	}
	return defaultOTPCooldown
}

func (s *Usecase) otpMaxAttempts() int {
	if n := s.cfg.GetInt("modules.identity.otp_max_attempts"); n > 0 {
		return n
	}
	return defaultOTPMaxAttempts
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
