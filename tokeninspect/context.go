package tokeninspect

import "context"

// contextKey is an unexported type for context keys to prevent collisions
type contextKey string

const (
	reportContextKey    contextKey = "github.com/Wang-tianhao/token-inspector-go/tokeninspect:report"
	requestIDContextKey contextKey = "github.com/Wang-tianhao/token-inspector-go/tokeninspect:request_id"
)

// WithReport stores the inspection report of the request's token in context.
func WithReport(ctx context.Context, report Report) context.Context {
	return context.WithValue(ctx, reportContextKey, report)
}

// GetReport retrieves the report stored by the HTTP middleware or gRPC interceptor.
func GetReport(ctx context.Context) (Report, bool) {
	report, ok := ctx.Value(reportContextKey).(Report)
	return report, ok
}

// WithRequestID stores a request ID in context for log correlation
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey).(string)
	return id, ok
}
