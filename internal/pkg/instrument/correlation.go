package instrument

import "context"

// HeaderCorrelationID carries the correlation ID over HTTP and message headers.
const HeaderCorrelationID = "X-Correlation-ID"

type correlationIDKey struct{}

// SetCorrelationID returns a copy of ctx carrying id.
func SetCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID returns the correlation ID on ctx, or "" when none is set.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}
