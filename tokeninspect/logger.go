package tokeninspect

import (
	"context"
	"log/slog"
	"time"
)

// InspectionEvent is the structured log entry emitted for every inspection
type InspectionEvent struct {
	Status        Status
	RequestID     string
	Source        string
	Algorithm     string
	TokenPreview  string // redacted before logging
	Claims        Claims
	ExpiresAt     string
	Now           string
	Expired       bool
	Verified      bool
	FailureReason string // error code
	Detail        string // underlying error text
	Latency       time.Duration
}

// LogValue implements slog.LogValuer for structured logging with redaction
func (e InspectionEvent) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("status", e.Status.String()),
		slog.String("source", e.Source),
	}
	if e.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", e.RequestID))
	}
	if e.TokenPreview != "" {
		attrs = append(attrs, slog.String("token", redactToken(e.TokenPreview)))
	}
	if e.Algorithm != "" {
		attrs = append(attrs, slog.String("algorithm", e.Algorithm))
	}

	switch e.Status {
	case StatusPresent:
		attrs = append(attrs,
			slog.Any("claims", map[string]any(e.Claims)),
			slog.String("expires_at", e.ExpiresAt),
			slog.String("now", e.Now),
			slog.Bool("expired", e.Expired),
			slog.Bool("verified", e.Verified),
		)
	case StatusMalformed, StatusUnavailable:
		attrs = append(attrs,
			slog.String("failure_reason", e.FailureReason),
			slog.String("error", e.Detail),
		)
	}
	if e.FailureReason != "" && e.Status == StatusPresent {
		attrs = append(attrs, slog.String("verify_failure", e.FailureReason), slog.String("error", e.Detail))
	}

	attrs = append(attrs, slog.Duration("latency", e.Latency))
	return slog.GroupValue(attrs...)
}

// redactToken redacts sensitive token data
func redactToken(token string) string {
	if len(token) == 0 {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:8] + "..."
}

// log emits the inspection event via the configured logger
func (i *Inspector) log(ctx context.Context, token string, report Report, latency time.Duration) {
	if i.logger == nil {
		return // Logging disabled
	}

	requestID, _ := GetRequestID(ctx)
	event := InspectionEvent{
		Status:       report.Status,
		RequestID:    requestID,
		Source:       report.Source,
		Algorithm:    report.Algorithm,
		TokenPreview: token,
		Claims:       report.Claims,
		ExpiresAt:    report.ExpiresAtString(),
		Now:          report.NowString(),
		Expired:      report.Expired,
		Verified:     report.Verified,
		Latency:      latency,
	}

	switch report.Status {
	case StatusAbsent:
		i.logger.InfoContext(ctx, "no token", "inspection", event)
	case StatusPresent:
		if report.VerifyErr != nil {
			event.FailureReason = string(CodeOf(report.VerifyErr))
			event.Detail = report.VerifyErr.Error()
		}
		if report.Expired || report.VerifyErr != nil {
			i.logger.WarnContext(ctx, "token inspected", "inspection", event)
		} else {
			i.logger.InfoContext(ctx, "token inspected", "inspection", event)
		}
	case StatusMalformed:
		event.FailureReason = string(CodeOf(report.Err))
		event.Detail = report.Err.Error()
		i.logger.WarnContext(ctx, "token malformed", "inspection", event)
	case StatusUnavailable:
		event.FailureReason = string(CodeOf(report.Err))
		event.Detail = report.Err.Error()
		i.logger.WarnContext(ctx, "token store unavailable", "inspection", event)
	}
}
