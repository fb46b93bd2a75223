package mail

import (
	"bytes"
	"cmp"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
)

var (
	ErrSMTPHostPortRequired = errors.New("smtp host and port are required")
	ErrSMTPNoRecipients     = errors.New("no recipients provided")
	ErrSMTPNoSender         = errors.New("no sender provided")
)

const (
	ctText = "text/plain; charset=UTF-8"
	ctHTML = "text/html; charset=UTF-8"
)

type SMTPConfig struct {
	Host string
	Port int
	// PLAIN auth is used only when both are set.
	Username string
	Password string
	// From is used when a Message has no sender of its own.
	From string
}

// SMTP hands messages to a relay with net/smtp. Each Send opens its own
// connection, so there is nothing to release on Close.
type SMTP struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	s := &SMTP{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		from: cfg.From,
	}
	if cfg.Username != "" && cfg.Password != "" {
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return s, nil
}

func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	to := msg.recipients()
	if len(to) == 0 {
		return ErrSMTPNoRecipients
	}
	from := cmp.Or(msg.From, s.from)
	if from == "" {
		return ErrSMTPNoSender
	}

	return smtp.SendMail(s.addr, s.auth, from, to, buildRaw(from, msg))
}

func (s *SMTP) Close() error { return nil }

// buildRaw renders an RFC 5322 message. Bcc never appears in the headers.
// With both bodies set it is multipart/alternative, text part first.
func buildRaw(from string, msg Message) []byte {
	var head, body bytes.Buffer

	header := func(k, v string) { head.WriteString(k + ": " + v + "\r\n") }
	header("From", from)
	header("To", strings.Join(msg.To, ", "))
	if len(msg.Cc) > 0 {
		header("Cc", strings.Join(msg.Cc, ", "))
	}
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("MIME-Version", "1.0")

	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		mw := multipart.NewWriter(&body)
		//nolint:errcheck // boundary is always valid
		mw.SetBoundary(boundary())
		writePart(mw, ctText, msg.TextBody)
		writePart(mw, ctHTML, msg.HTMLBody)
		//nolint:errcheck // writes to a bytes.Buffer
		mw.Close()
		header("Content-Type", "multipart/alternative; boundary="+mw.Boundary())
	case msg.HTMLBody != "":
		body.WriteString(msg.HTMLBody)
		header("Content-Type", ctHTML)
	default:
		body.WriteString(msg.TextBody)
		header("Content-Type", ctText)
	}

	head.WriteString("\r\n")
	head.Write(body.Bytes())
	return head.Bytes()
}

func writePart(mw *multipart.Writer, contentType, content string) {
	w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {contentType}})
	if err != nil {
		return
	}
	//nolint:errcheck // writes to a bytes.Buffer
	w.Write([]byte(content))
}

func boundary() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "gobudget-boundary"
	}
	return "gobudget-" + hex.EncodeToString(b[:])
}
