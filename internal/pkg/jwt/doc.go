// Package jwt issues and verifies session tokens.
//
// It includes a typed Claims wrapper, a symmetric HS512 implementation, an
// in-memory denylist for revoked token IDs, and context helpers for the
// authenticated claims.
package jwt
