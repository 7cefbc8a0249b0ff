// Package context carries simulation session tracing values
package context

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ctxKey int

// Context keys for session tracing
const (
	sessionIDKey ctxKey = iota
	deviceKey
	operationKey
	startTimeKey
)

const (
	unknownSession   = "unknown-session"
	unknownDevice    = "unknown-device"
	unknownOperation = "unknown-operation"
)

// WithSessionID adds a simulation session ID to the context
func WithSessionID(parent context.Context, sessionID string) context.Context {
	if sessionID == "" {
		sessionID = GenerateSessionID()
	}
	return context.WithValue(parent, sessionIDKey, sessionID)
}

// GetSessionID retrieves the session ID from context
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok && id != "" {
		return id
	}
	return unknownSession
}

// HasSessionID reports whether a session ID is set
func HasSessionID(ctx context.Context) bool {
	return GetSessionID(ctx) != unknownSession
}

// WithDevice adds the simulated device name to the context
func WithDevice(parent context.Context, device string) context.Context {
	return context.WithValue(parent, deviceKey, device)
}

// GetDevice retrieves the device name from context
func GetDevice(ctx context.Context) string {
	if d, ok := ctx.Value(deviceKey).(string); ok && d != "" {
		return d
	}
	return unknownDevice
}

// WithOperation adds an operation name to the context
func WithOperation(parent context.Context, operation string) context.Context {
	return context.WithValue(parent, operationKey, operation)
}

// GetOperation retrieves the operation name from context
func GetOperation(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey).(string); ok && op != "" {
		return op
	}
	return unknownOperation
}

// WithStartTime adds the operation start time to the context
func WithStartTime(parent context.Context, startTime time.Time) context.Context {
	return context.WithValue(parent, startTimeKey, startTime)
}

// GetStartTime retrieves the operation start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(startTimeKey).(time.Time)
	return t, ok
}

// GetDuration returns the time since the start time in context, or zero
func GetDuration(ctx context.Context) time.Duration {
	startTime, ok := GetStartTime(ctx)
	if !ok {
		return 0
	}
	return time.Since(startTime)
}

// GenerateSessionID creates a new unique session ID
func GenerateSessionID() string {
	return "sim_" + uuid.New().String()
}

// EnrichContext adds a session ID when missing and stamps the start time
func EnrichContext(parent context.Context) context.Context {
	ctx := parent
	if !HasSessionID(ctx) {
		ctx = WithSessionID(ctx, GenerateSessionID())
	}
	return WithStartTime(ctx, time.Now())
}

// TracingFields returns common tracing fields for structured logging
func TracingFields(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"session_id":  GetSessionID(ctx),
		"device":      GetDevice(ctx),
		"operation":   GetOperation(ctx),
		"duration_ms": GetDuration(ctx).Milliseconds(),
	}
}
