// Package instrument installs the process logger and the OpenTelemetry
// providers.
//
// Every log line is JSON with the keys ts, severity and file, carries the
// service name and the request correlation ID, and has sensitive fields
// replaced by Redacted before it reaches any sink. When instrumentation is
// enabled, records are also shipped over OTLP next to traces and metrics.
package instrument
