package logger

import (
	"context"
	"log/slog"
	"time"
)

// ContextKey is the type for context keys used in logging
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	OperationKey ContextKey = "operation"

	// Business context keys following OpenTelemetry semantic conventions
	// with a 'search.' prefix
	SourceTypeKey  ContextKey = "search.source_type"
	ItemIDKey      ContextKey = "search.item.id"
	QueryTermsKey  ContextKey = "search.query.terms"
	ReindexRunKey  ContextKey = "search.reindex.run_id"
	FingerprintKey ContextKey = "search.client.fingerprint"
)

// GlobalContext is the global ContextLogger instance
var GlobalContext *ContextLogger

// ContextLogger wraps a slog.Logger to add context-aware logging
type ContextLogger struct {
	logger *slog.Logger
}

// NewContextLogger creates a new ContextLogger wrapping the provided logger
func NewContextLogger(logger *slog.Logger) *ContextLogger {
	return &ContextLogger{logger: logger}
}

// WithContext adds context values to log entries and returns a new logger
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	args := make([]any, 0)

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		args = append(args, "request_id", requestID.(string))
	}

	if operation := ctx.Value(OperationKey); operation != nil {
		args = append(args, "operation", operation.(string))
	}

	if sourceType := ctx.Value(SourceTypeKey); sourceType != nil {
		args = append(args, string(SourceTypeKey), sourceType.(string))
	}

	if itemID := ctx.Value(ItemIDKey); itemID != nil {
		args = append(args, string(ItemIDKey), itemID.(string))
	}

	if terms := ctx.Value(QueryTermsKey); terms != nil {
		args = append(args, string(QueryTermsKey), terms.(string))
	}

	if runID := ctx.Value(ReindexRunKey); runID != nil {
		args = append(args, string(ReindexRunKey), runID.(string))
	}

	if fingerprint := ctx.Value(FingerprintKey); fingerprint != nil {
		args = append(args, string(FingerprintKey), fingerprint.(string))
	}

	return cl.logger.With(args...)
}

// LogDuration logs an operation completion with duration in milliseconds
func (cl *ContextLogger) LogDuration(ctx context.Context, operation string, durationMs int64) {
	cl.WithContext(ctx).Info("operation completed",
		"operation", operation,
		"duration_ms", durationMs,
	)
}

// LogError logs an operation failure with error details
func (cl *ContextLogger) LogError(ctx context.Context, operation string, err error) {
	cl.WithContext(ctx).Error("operation failed",
		"operation", operation,
		"error", err,
	)
}

// Context helper functions for business context

// WithSourceType adds the owning source type to context for observability
func WithSourceType(ctx context.Context, sourceType string) context.Context {
	return context.WithValue(ctx, SourceTypeKey, sourceType)
}

// WithItemID adds the searchable item ID to context for observability
func WithItemID(ctx context.Context, itemID string) context.Context {
	return context.WithValue(ctx, ItemIDKey, itemID)
}

// WithQueryTerms adds the normalized query terms to context for observability
func WithQueryTerms(ctx context.Context, terms string) context.Context {
	return context.WithValue(ctx, QueryTermsKey, terms)
}

// WithReindexRun adds the reindex run ID to context for observability
func WithReindexRun(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ReindexRunKey, runID)
}

// WithFingerprint adds the client fingerprint to context for observability
func WithFingerprint(ctx context.Context, fingerprint string) context.Context {
	return context.WithValue(ctx, FingerprintKey, fingerprint)
}

// LogDurationTime is a convenience function that takes time.Duration
func (cl *ContextLogger) LogDurationTime(ctx context.Context, operation string, duration time.Duration) {
	cl.LogDuration(ctx, operation, duration.Milliseconds())
}
