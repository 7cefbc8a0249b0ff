package logger

import (
	"context"

	dcontext "github.com/devsim/devsim/pkg/context"
)

// WithContext returns a logger that adds the session, device, operation and
// elapsed time carried by ctx to every entry
func WithContext(ctx context.Context, log Logger) Logger {
	if ctx == nil || log == nil {
		return log
	}
	return &contextualLogger{ctx: ctx, logger: log}
}

// ContextFields lists the tracing fields carried by ctx
func ContextFields(ctx context.Context) []Field {
	if ctx == nil {
		return nil
	}

	var fields []Field
	if dcontext.HasSessionID(ctx) {
		fields = append(fields, WithField("session_id", dcontext.GetSessionID(ctx)))
	}
	if device := dcontext.GetDevice(ctx); device != "unknown-device" {
		fields = append(fields, WithField("device", device))
	}
	if operation := dcontext.GetOperation(ctx); operation != "unknown-operation" {
		fields = append(fields, WithField("operation", operation))
	}
	if elapsed := dcontext.GetDuration(ctx); elapsed > 0 {
		fields = append(fields, WithField("duration_ms", elapsed.Milliseconds()))
	}
	return fields
}

type contextualLogger struct {
	ctx    context.Context
	logger Logger
	device bool
}

// fields drops the device field once WithDevice has put it in the prefix
func (cl *contextualLogger) fields(extra []Field) []Field {
	ctxFields := ContextFields(cl.ctx)
	merged := make([]Field, 0, len(ctxFields)+len(extra))
	for _, f := range ctxFields {
		if cl.device && f.Key == "device" {
			continue
		}
		merged = append(merged, f)
	}
	return append(merged, extra...)
}

func (cl *contextualLogger) Info(message string, fields ...Field) {
	cl.logger.Info(message, cl.fields(fields)...)
}

func (cl *contextualLogger) Error(message string, fields ...Field) {
	cl.logger.Error(message, cl.fields(fields)...)
}

func (cl *contextualLogger) Warn(message string, fields ...Field) {
	cl.logger.Warn(message, cl.fields(fields)...)
}

func (cl *contextualLogger) Debug(message string, fields ...Field) {
	cl.logger.Debug(message, cl.fields(fields)...)
}

func (cl *contextualLogger) Success(message string, fields ...Field) {
	cl.logger.Success(message, cl.fields(fields)...)
}

func (cl *contextualLogger) WithDevice(device string) Logger {
	return &contextualLogger{
		ctx:    cl.ctx,
		logger: cl.logger.WithDevice(device),
		device: true,
	}
}
