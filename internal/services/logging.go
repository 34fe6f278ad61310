package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

type contextKey string

// RequestIDKey is the context key handlers use to attach a request id
const RequestIDKey contextKey = "request_id"

// Operation outcomes reported in the status attribute
const (
	statusSuccess    = "success"
	statusRejected   = "rejected"
	statusInvalid    = "validation_error"
	statusNotFound   = "not_found"
	statusFailed     = "error"
	maxLoggedErrors  = 5
	callerSkipFrames = 3
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service     string
	Component   string
	EnableDebug bool
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// Logger exposes the underlying slog logger with service attributes attached
func (l *ServiceLogger) Logger() *slog.Logger {
	return l.logger
}

// classify maps an operation error onto a level and status.
// Rejected intents are routine and only show up with debug enabled.
func classify(err error) (slog.Level, string) {
	switch {
	case err == nil:
		return slog.LevelInfo, statusSuccess
	case IsInvalidIntent(err):
		return slog.LevelDebug, statusRejected
	case IsValidation(err), IsBusinessRule(err):
		return slog.LevelWarn, statusInvalid
	case IsNotFound(err):
		return slog.LevelInfo, statusNotFound
	default:
		return slog.LevelError, statusFailed
	}
}

// ===== OPERATION LOGGING =====

func (l *ServiceLogger) LogOperation(ctx context.Context, operation string, resourceID string, resourceType string, duration time.Duration, err error) {
	level, status := classify(err)
	if level == slog.LevelDebug && !l.config.EnableDebug {
		return
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("resource_id", resourceID),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		switch e := err.(type) {
		case ValidationErrors:
			attrs = append(attrs, slog.Int("validation_errors_count", len(e)))
		case *BusinessRuleError:
			attrs = append(attrs, slog.String("business_rule", e.Rule))
		}
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	if level == slog.LevelError {
		attrs = append(attrs, callerAttrs(callerSkipFrames)...)
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

func (l *ServiceLogger) logValidationErrors(ctx context.Context, operation string, validationErrors ValidationErrors) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Int("error_count", len(validationErrors)),
	}

	for i, err := range validationErrors {
		if i == maxLoggedErrors {
			break
		}
		attrs = append(attrs, slog.Group(fmt.Sprintf("error_%d", i+1),
			slog.String("field", err.Field),
			slog.String("message", err.Message),
			slog.Any("value", err.Value),
		))
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Validation failed", attrs...)
}

func (l *ServiceLogger) logBusinessRule(ctx context.Context, operation string, rule *BusinessRuleError) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("rule", rule.Rule),
		slog.String("message", rule.Message),
	}
	for key, value := range rule.Context {
		attrs = append(attrs, slog.Any("context_"+key, value))
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Business rule violation", attrs...)
}

// LogRecovery reports a panic caught on a background goroutine
func (l *ServiceLogger) LogRecovery(ctx context.Context, operation string, recovered any, stack []byte) {
	l.logger.LogAttrs(ctx, slog.LevelError, "Panic recovered",
		slog.String("operation", operation),
		slog.Any("panic_value", recovered),
		slog.String("stack_trace", string(stack)),
	)
}

func callerAttrs(skip int) []slog.Attr {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return nil
	}
	attrs := []slog.Attr{
		slog.String("caller_file", file),
		slog.Int("caller_line", line),
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		attrs = append(attrs, slog.String("caller_func", fn.Name()))
	}
	return attrs
}

// ===== OPERATION SCOPES =====

// OperationLog times one service operation and logs its outcome
type OperationLog struct {
	logger    *ServiceLogger
	operation string
	startTime time.Time
	ctx       context.Context
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation string) *OperationLog {
	return &OperationLog{
		logger:    l,
		operation: operation,
		startTime: time.Now(),
		ctx:       ctx,
	}
}

func (o *OperationLog) LogResult(resourceID string, resourceType string, err error) {
	o.logger.LogOperation(o.ctx, o.operation, resourceID, resourceType, time.Since(o.startTime), err)

	switch e := err.(type) {
	case ValidationErrors:
		o.logger.logValidationErrors(o.ctx, o.operation, e)
	case *BusinessRuleError:
		o.logger.logBusinessRule(o.ctx, o.operation, e)
	}
}
