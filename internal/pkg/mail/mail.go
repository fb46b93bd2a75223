package mail

import (
	"context"
	"errors"
	"io"
)

// ErrUnknownDriver is returned by New for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown mail driver")

// Message is a provider agnostic email payload.
type Message struct {
	// From overrides the configured sender when set.
	From    string
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	// TextBody is the plain text body.
	TextBody string
	// HTMLBody is the optional HTML alternative.
	HTMLBody string
}

// recipients returns To, Cc and Bcc combined.
func (m Message) recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Cc)+len(m.Bcc))
	out = append(out, m.To...)
	out = append(out, m.Cc...)
	return append(out, m.Bcc...)
}

// Mail abstracts an email provider.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}

// Config selects and configures a driver.
type Config struct {
	// Driver is "smtp" or "log".
	Driver string
	SMTP   SMTPConfig
}

// New builds the driver named by cfg.Driver. An empty driver selects "log".
func New(cfg Config) (Mail, error) {
	switch cfg.Driver {
	case "smtp":
		return NewSMTP(cfg.SMTP)
	case "", "log":
		return NewLog(cfg.SMTP.From), nil
	default:
		return nil, ErrUnknownDriver
	}
}
