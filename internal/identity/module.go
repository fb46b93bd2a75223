package identity

import (
	"github.com/shandysiswandi/gobudget/internal/identity/inbound"
	"github.com/shandysiswandi/gobudget/internal/identity/outbound/memory"
	"github.com/shandysiswandi/gobudget/internal/identity/outbound/mq"
	"github.com/shandysiswandi/gobudget/internal/identity/usecase"
	"github.com/shandysiswandi/gobudget/internal/pkg/clock"
	"github.com/shandysiswandi/gobudget/internal/pkg/config"
	"github.com/shandysiswandi/gobudget/internal/pkg/hash"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
	"github.com/shandysiswandi/gobudget/internal/pkg/jwt"
	"github.com/shandysiswandi/gobudget/internal/pkg/messaging"
	"github.com/shandysiswandi/gobudget/internal/pkg/otp"
	"github.com/shandysiswandi/gobudget/internal/pkg/router"
	"github.com/shandysiswandi/gobudget/internal/pkg/uid"
	"github.com/shandysiswandi/gobudget/internal/pkg/validator"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	CodeHash   hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
	Denylist   *jwt.Denylist              `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	store := memory.NewMemory(dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoStore:     store,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		CodeHash:      dep.CodeHash,
		OTP:           dep.OTP,
		UID:           dep.UID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Denylist:      dep.Denylist,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.CookieConfig{
		Name:   dep.Config.GetString("modules.identity.session_cookie.name"),
		Domain: dep.Config.GetString("modules.identity.session_cookie.domain"),
		Secure: dep.Config.GetBool("modules.identity.session_cookie.secure"),
	})

	return nil
}
