package reqid

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
)

type ctxKey struct{}

// Header carries the request id in and out of the HTTP server.
const Header = "X-Request-ID"

// New returns a fresh request id.
func New() string {
	return uuid.NewString()
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request id of ctx, or "-" outside a request.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return id
	}
	return "-"
}

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(ctx context.Context, module, action, message string) {
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, FromContext(ctx), message)
}
