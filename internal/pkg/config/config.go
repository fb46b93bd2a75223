// Package config exposes typed read access to runtime configuration.
//
// Business code depends on the Config interface; Viper is the file backed
// implementation used by the server.
package config

import (
	"io"
	"time"
)

// TimeConfig reads integer values and scales them to a duration unit.
type TimeConfig interface {
	// GetSecond reads key as a number of seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads key as a number of minutes.
	GetMinute(key string) time.Duration
	// GetHour reads key as a number of hours.
	GetHour(key string) time.Duration
	// GetDay reads key as a number of 24h days.
	GetDay(key string) time.Duration
}

// NumberConfig reads numeric values. Missing or malformed keys yield zero.
type NumberConfig interface {
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetUint16(key string) uint16
	GetUint32(key string) uint32
	GetUint64(key string) uint64
	GetFloat32(key string) float32
	GetFloat64(key string) float64
}

// Config is the read-only view over configuration used across the application.
type Config interface {
	io.Closer
	TimeConfig
	NumberConfig

	// GetBool reads key as a bool.
	GetBool(key string) bool

	// GetString reads key as a string.
	GetString(key string) string

	// GetBinary reads a base64 encoded value. Invalid input yields nil.
	GetBinary(key string) []byte

	// GetArray reads a comma separated list: <element1>,<element2>,...
	// Elements are trimmed and empty elements are dropped.
	GetArray(key string) []string

	// GetMap reads comma separated pairs: <key1>:<value1>,<key2>:<value2>,...
	GetMap(key string) map[string]string
}
