// Package hash provides helpers for hashing and verifying short lived secrets.
//
// One-time login codes are stored only as a digest. The plaintext is
// compared against the stored digest on verification, so a leaked store does
// not reveal active codes.
package hash
