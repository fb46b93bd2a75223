// Package uid generates identifiers for users, transactions, and token IDs.
package uid

// StringID produces unique string identifiers.
type StringID interface {
	Generate() string
}

// NumberID produces unique, roughly time ordered numeric identifiers.
type NumberID interface {
	Generate() int64
}
