// Package messaging publishes and consumes events independently of the broker.
//
// Business code depends on the Messaging interface. NATS backs deployments
// with more than one process; the in-process memory driver serves single
// binary setups and tests.
package messaging
