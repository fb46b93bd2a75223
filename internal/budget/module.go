package budget

import (
	"github.com/shandysiswandi/gobudget/internal/budget/inbound"
	"github.com/shandysiswandi/gobudget/internal/budget/outbound/memory"
	"github.com/shandysiswandi/gobudget/internal/budget/usecase"
	"github.com/shandysiswandi/gobudget/internal/pkg/clock"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
	"github.com/shandysiswandi/gobudget/internal/pkg/router"
	"github.com/shandysiswandi/gobudget/internal/pkg/uid"
	"github.com/shandysiswandi/gobudget/internal/pkg/validator"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoStore:  memory.NewMemory(dep.Instrument),
		Validator:  dep.Validator,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
