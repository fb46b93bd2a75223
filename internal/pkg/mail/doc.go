// Package mail sends email messages.
//
// Use cases work with the Mail interface and the Message payload. The SMTP
// driver delivers real mail; the log driver writes messages to the structured
// logger for local development.
package mail
