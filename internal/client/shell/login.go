package shell

import (
	"context"

	"github.com/gookit/color"
	"github.com/shandysiswandi/gobudget/internal/client/login"
)

const (
	cmdResend = "resend"
	cmdChange = "change"
	cmdQuit   = "quit"
)

func (s *Shell) runLogin(ctx context.Context) error {
	c := login.New(login.Config{
		Auth:    s.api,
		Toasts:  s.bus,
		Clock:   s.clock,
		OnLogin: s.setUser,
	})
	s.setLogin(c)
	defer func() {
		c.Close()
		s.setLogin(nil)
	}()

	s.println(color.Bold.Sprint("Sign in to GoBudget"))

	for s.currentUser() == nil {
		v := c.Snapshot()

		switch v.Step {
		case login.StepEmail:
			email, err := s.readLine("Email: ")
			if err != nil {
				return err
			}
			if email == cmdQuit {
				return errQuit
			}
			name, err := s.readLine("Name (optional): ")
			if err != nil {
				return err
			}

			c.SubmitEmail(ctx, email, name)

		case login.StepCode:
			s.renderCodeStep(v)

			line, err := s.readLine("Code: ")
			if err != nil {
				return err
			}

			switch line {
			case cmdQuit:
				return errQuit
			case cmdChange:
				c.ChangeEmail()
				continue
			case cmdResend:
				// the ticker may have run while the prompt was open
				if now := c.Snapshot(); now.ResendDisabled {
					s.println(color.Warn.Sprint(now.ResendHint))
					continue
				}
				c.Resend(ctx)
			default:
				c.SubmitCode(ctx, line)
			}
		}

		s.renderNotice(c.Snapshot())
	}

	return nil
}

func (s *Shell) renderCodeStep(v login.View) {
	if v.Expired {
		s.printf("%s Type %q for a new one.\n", color.Red.Sprint(v.VerifyLabel+"."), cmdResend)
	} else {
		s.printf("Enter the code sent to %s (expires in %s).\n", v.Email, v.ExpiresInText())
	}

	if v.ResendDisabled {
		s.println(v.ResendHint)
	} else {
		s.printf("%s Type %q.\n", v.ResendHint, cmdResend)
	}
	s.printf("Type %q to use a different email.\n", cmdChange)
}

func (s *Shell) renderNotice(v login.View) {
	switch {
	case v.Error != "":
		s.println(color.Red.Sprint(v.Error))
	case v.Message != "":
		s.println(color.Cyan.Sprint(v.Message))
	}
}
