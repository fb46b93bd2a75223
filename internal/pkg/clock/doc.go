// Package clock provides a tiny time abstraction.
//
// Code that reads the current time or waits on periodic ticks depends on
// Clocker and Ticker instead of calling the time package directly, so tests
// can drive time with Manual.
package clock
