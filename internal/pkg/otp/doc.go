// Package otp produces short numeric login codes from the HOTP algorithm
// (RFC 4226) keyed by a fresh random secret per code.
package otp
