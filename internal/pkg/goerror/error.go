// Package goerror carries the error taxonomy shared by usecases and the HTTP
// layer. An *Error knows its user-facing message, its category and the HTTP
// status it maps to.
package goerror

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Sentinels returned by stores and matched by usecases.
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource conflict")
)

type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

var typeNames = map[Type]string{
	TypeServer:     "server",
	TypeBusiness:   "business",
	TypeValidation: "validation",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Code selects the HTTP status of an error.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	CodeTooManyRequest
	CodeUnauthorized
	CodeForbidden
	CodeTimeout
)

var codeStatus = map[Code]int{
	CodeInternal:       http.StatusInternalServerError,
	CodeInvalidFormat:  http.StatusBadRequest,
	CodeInvalidInput:   http.StatusUnprocessableEntity,
	CodeNotFound:       http.StatusNotFound,
	CodeConflict:       http.StatusConflict,
	CodeTooManyRequest: http.StatusTooManyRequests,
	CodeUnauthorized:   http.StatusUnauthorized,
	CodeForbidden:      http.StatusForbidden,
	CodeTimeout:        http.StatusRequestTimeout,
}

func (c Code) String() string {
	return http.StatusText(c.status())
}

func (c Code) status() int {
	if s, ok := codeStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is the structured error understood by the router's error encoder.
type Error struct {
	cause      error
	msg        string
	kind       Type
	code       Code
	fields     map[string]string
	retryAfter time.Duration
}

// Error prefers the wrapped cause so logs keep the technical detail; clients
// only ever see Msg.
func (e *Error) Error() string {
	switch {
	case e.cause != nil:
		return e.cause.Error()
	case e.msg != "":
		return e.msg
	default:
		return e.kind.String() + " error"
	}
}

func (e *Error) String() string {
	return fmt.Sprintf("%s/%s: %q (cause: %v)", e.kind, e.code, e.msg, e.cause)
}

func (e *Error) Msg() string { return e.msg }
func (e *Error) Type() Type { return e.kind }
func (e *Error) Code() Code { return e.code }
func (e *Error) Fields() map[string]string { return e.fields }
func (e *Error) Unwrap() error { return e.cause }
func (e *Error) StatusCode() int { return e.code.status() }

// RetryAfter is the wait hint sent as the Retry-After header; zero means none.
func (e *Error) RetryAfter() time.Duration { return e.retryAfter }

// NewServer hides err behind a generic message.
func NewServer(err error) error {
	return &Error{cause: err, msg: "Internal server error", kind: TypeServer, code: CodeInternal}
}

func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, kind: TypeBusiness, code: code}
}

// NewTooManyRequest reports a throttled operation that may be retried after retryAfter.
func NewTooManyRequest(msg string, retryAfter time.Duration) error {
	return &Error{msg: msg, kind: TypeBusiness, code: CodeTooManyRequest, retryAfter: retryAfter}
}

// NewInvalidInput builds a 422. With a non-nil err the cause carries the
// details (e.g. a validator error); otherwise kv is read as field/message
// pairs. An odd kv is a programming mistake and degrades to a 400.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return &Error{cause: err, msg: "Validation error", kind: TypeValidation, code: CodeInvalidInput}
	}
	if len(kv)%2 != 0 {
		return NewInvalidFormat()
	}

	fields := make(map[string]string, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}

	return &Error{msg: "Validation error", kind: TypeValidation, code: CodeInvalidInput, fields: fields}
}

// NewInvalidFormat builds a 400 for an unreadable body. The first msg, if
// any, replaces the default message.
func NewInvalidFormat(msgs ...string) error {
	msg := "Invalid request body"
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	return &Error{msg: msg, kind: TypeValidation, code: CodeInvalidFormat}
}
