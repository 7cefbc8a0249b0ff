package logger_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	dcontext "github.com/devsim/devsim/pkg/context"
	"github.com/devsim/devsim/pkg/logger"
)

func TestCreateLogger(t *testing.T) {
	log := logger.CreateLogger("", "info")
	if log == nil {
		t.Fatal("expected logger to be created")
	}
}

func TestLogger_WithDevice(t *testing.T) {
	var buf bytes.Buffer
	log := logger.CreateLoggerWithOutput("", "info", &buf)

	log.WithDevice("Pixel 5").Info("rotated")

	output := buf.String()
	if !strings.Contains(output, "[Pixel 5] rotated") {
		t.Errorf("expected device prefix in log output, got %q", output)
	}
}

func TestCreateDeviceLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logger.CreateLoggerWithOutput("", "info", &buf)

	logger.CreateDeviceLogger(base, "iPhone 12").Info("loaded")

	if !strings.Contains(buf.String(), "[iPhone 12]") {
		t.Errorf("expected device name in output, got %q", buf.String())
	}
}

func TestLogger_Success(t *testing.T) {
	var buf bytes.Buffer
	log := logger.CreateLoggerWithOutput("", "info", &buf)

	log.Success("profile loaded")

	if !strings.Contains(buf.String(), "✅ profile loaded") {
		t.Error("expected success message in log output")
	}
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.CreateLoggerWithOutput("", "info", &buf)

	log.Info("geometry",
		logger.WithField("width", 1080),
		logger.WithField("height", 2280),
		logger.WithError(errors.New("boom")),
	)

	output := buf.String()
	if !strings.Contains(output, "{error=boom, height=2280, width=1080}") {
		t.Errorf("expected sorted fields, got %q", output)
	}
}

func TestLogger_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.CreateLoggerWithOutput("", "error", &buf)

	log.Debug("should not appear")
	log.Info("should not appear")
	log.Warn("should not appear")
	log.Error("should appear")

	output := buf.String()
	if strings.Contains(output, "should not appear") {
		t.Error("lower level logs should not appear with error level")
	}
	if !strings.Contains(output, "should appear") {
		t.Error("error level log should appear")
	}
}

func TestLogger_Discard(t *testing.T) {
	log := logger.Discard()
	log.Error("nobody listens")
	log.WithDevice("x").Info("still nobody")
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	base := logger.CreateLoggerWithOutput("", "info", &buf)

	ctx := dcontext.WithSessionID(context.Background(), "sim_test")
	ctx = dcontext.WithDevice(ctx, "Galaxy S10e")
	ctx = dcontext.WithOperation(ctx, "sweep")

	logger.WithContext(ctx, base).Info("sample")

	output := buf.String()
	for _, want := range []string{"[Galaxy S10e]", "session_id=sim_test", "operation=sweep"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in %q", want, output)
		}
	}
}

func TestContextFields(t *testing.T) {
	if fields := logger.ContextFields(context.Background()); len(fields) != 0 {
		t.Errorf("expected no fields for a bare context, got %v", fields)
	}

	ctx := dcontext.WithOperation(dcontext.WithSessionID(context.Background(), "sim_1"), "resolve")
	keys := map[string]interface{}{}
	for _, f := range logger.ContextFields(ctx) {
		keys[f.Key] = f.Value
	}
	if keys["session_id"] != "sim_1" || keys["operation"] != "resolve" {
		t.Errorf("unexpected fields %v", keys)
	}
	if _, ok := keys["device"]; ok {
		t.Error("device should be absent when not set")
	}
}

func TestWithContext_DevicePrefixWins(t *testing.T) {
	var buf bytes.Buffer
	base := logger.CreateLoggerWithOutput("", "info", &buf)
	ctx := dcontext.WithDevice(context.Background(), "From Context")

	logger.WithContext(ctx, base).WithDevice("Explicit").Warn("rotated")

	if !strings.Contains(buf.String(), "[Explicit]") || strings.Contains(buf.String(), "From Context") {
		t.Errorf("expected explicit device prefix only, got %q", buf.String())
	}
}

func TestConsoleLogger(t *testing.T) {
	var out, errOut bytes.Buffer
	console := logger.NewConsoleLogger(&out, &errOut)

	console.Info("listing devices")
	console.Error("no devices")

	if !strings.Contains(out.String(), "listing devices") {
		t.Errorf("info should go to out, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "no devices") {
		t.Errorf("error should go to err, got %q", errOut.String())
	}
}
