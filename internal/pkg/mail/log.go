package mail

import (
	"cmp"
	"context"
	"log/slog"
)

// Log writes messages to the default slog logger instead of delivering them.
type Log struct {
	defaultFrom string
}

func NewLog(from string) *Log {
	return &Log{defaultFrom: from}
}

func (l *Log) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(msg.recipients()) == 0 {
		return ErrSMTPNoRecipients
	}

	slog.InfoContext(ctx, "mail delivered to log",
		"from", cmp.Or(msg.From, l.defaultFrom),
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.TextBody,
	)

	return nil
}

func (l *Log) Close() error {
	return nil
}
