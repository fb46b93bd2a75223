package app

import (
	"log/slog"

	"github.com/shandysiswandi/gobudget/internal/budget"
	"github.com/shandysiswandi/gobudget/internal/identity"
	"github.com/shandysiswandi/gobudget/internal/notification"
)

// initModules registers every module switched on under modules.<name>.enabled.
func (a *App) initModules() {
	modules := []struct {
		name string
		init func() error
	}{
		{"identity", a.identityModule},
		{"notification", a.notificationModule},
		{"budget", a.budgetModule},
	}

	for _, m := range modules {
		if !a.config.GetBool("modules." + m.name + ".enabled") {
			slog.Info("module disabled", "module", m.name)
			continue
		}
		exitOnError(m.init(), "module", "module", m.name)
	}
}

func (a *App) identityModule() error {
	return identity.New(identity.Dependency{
		Router:     a.router,
		Messaging:  a.messaging,
		Config:     a.config,
		Instrument: a.ins,
		UID:        a.uid,
		CodeHash:   a.codeHash,
		Clock:      a.clock,
		OTP:        a.otp,
		Validator:  a.validator,
		JWT:        a.jwt,
		Denylist:   a.denylist,
	})
}

// notificationModule consumes identity events; its consumers stop when a.ctx
// is canceled in Stop.
func (a *App) notificationModule() error {
	return notification.New(notification.Dependency{
		Ctx:        a.ctx,
		Messaging:  a.messaging,
		Config:     a.config,
		Instrument: a.ins,
		UUID:       a.uuid,
		Clock:      a.clock,
		Goroutine:  a.goroutine,
		Validator:  a.validator,
		Mail:       a.mail,
	})
}

func (a *App) budgetModule() error {
	return budget.New(budget.Dependency{
		Router:     a.router,
		Instrument: a.ins,
		UID:        a.uid,
		Clock:      a.clock,
		Validator:  a.validator,
	})
}
