// Package logger provides enhanced logging with device-specific support
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Logger interface for abstracted logging
type Logger interface {
	Info(message string, fields ...Field)
	Error(message string, fields ...Field)
	Warn(message string, fields ...Field)
	Debug(message string, fields ...Field)
	Success(message string, fields ...Field)
	WithDevice(device string) Logger
}

// Field represents a structured logging field
type Field struct {
	Key   string
	Value interface{}
}

// WithField creates a new field
func WithField(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// WithError creates an error field
func WithError(err error) Field {
	return Field{Key: "error", Value: err}
}

// DeviceLogger implements Logger with device awareness
type DeviceLogger struct {
	logger     *logrus.Logger
	deviceName string
	mu         sync.RWMutex
}

// CustomFormatter formats logs with colors and emojis
type CustomFormatter struct {
	TimestampFormat string
	DisableColors   bool
}

// Format implements logrus.Formatter
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	phone := "📱"
	timestamp := entry.Time.Format(f.TimestampFormat)

	var levelColor *color.Color
	var levelText string

	switch entry.Level {
	case logrus.ErrorLevel:
		levelColor = color.New(color.FgRed, color.Bold)
		levelText = "ERROR"
	case logrus.WarnLevel:
		levelColor = color.New(color.FgYellow, color.Bold)
		levelText = "WARN"
	case logrus.InfoLevel:
		levelColor = color.New(color.FgCyan)
		levelText = "INFO"
	case logrus.DebugLevel:
		levelColor = color.New(color.FgWhite, color.Faint)
		levelText = "DEBUG"
	default:
		levelColor = color.New(color.FgGreen)
		levelText = "SUCCESS"
	}

	data := make(logrus.Fields, len(entry.Data))
	for k, v := range entry.Data {
		data[k] = v
	}

	devicePrefix := ""
	if device, ok := data["device"]; ok {
		if f.DisableColors {
			devicePrefix = fmt.Sprintf("[%v] ", device)
		} else {
			devicePrefix = fmt.Sprintf("[%s] ", color.New(color.FgBlue).Sprint(device))
		}
		delete(data, "device")
	}

	level := levelText
	if !f.DisableColors {
		level = levelColor.Sprint(levelText)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s: %s%s", phone, timestamp, level, devicePrefix, entry.Message)

	if len(data) > 0 {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
		}
		fields := " {" + strings.Join(parts, ", ") + "}"
		if f.DisableColors {
			b.WriteString(fields)
		} else {
			b.WriteString(color.New(color.FgWhite, color.Faint).Sprint(fields))
		}
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}

// CreateLogger creates a new logger instance writing to stderr and,
// optionally, to logFile.
func CreateLogger(logFile string, logLevel string) Logger {
	log := newLogrus(logLevel, false)
	log.SetOutput(os.Stderr)

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			log.SetOutput(io.MultiWriter(os.Stderr, file))
		}
	}

	return &DeviceLogger{
		logger: log,
	}
}

// CreateDeviceLogger creates a logger for a specific device
func CreateDeviceLogger(baseLogger Logger, deviceName string) Logger {
	if dl, ok := baseLogger.(*DeviceLogger); ok {
		return &DeviceLogger{
			logger:     dl.logger,
			deviceName: deviceName,
		}
	}
	return baseLogger.WithDevice(deviceName)
}

// CreateLoggerWithOutput creates a logger with custom output (for testing)
func CreateLoggerWithOutput(logFile string, logLevel string, output io.Writer) Logger {
	log := newLogrus(logLevel, true)
	log.SetOutput(output)

	return &DeviceLogger{
		logger: log,
	}
}

// Discard returns a logger that drops everything
func Discard() Logger {
	return CreateLoggerWithOutput("", "panic", io.Discard)
}

func newLogrus(logLevel string, disableColors bool) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	log.SetFormatter(&CustomFormatter{
		TimestampFormat: "15:04:05",
		DisableColors:   disableColors,
	})
	return log
}

// WithDevice creates a new logger with device context
func (l *DeviceLogger) WithDevice(device string) Logger {
	return &DeviceLogger{
		logger:     l.logger,
		deviceName: device,
	}
}

// convertFields converts Field slice to logrus.Fields
func (l *DeviceLogger) convertFields(fields []Field) logrus.Fields {
	result := make(logrus.Fields)
	if l.deviceName != "" {
		result["device"] = l.deviceName
	}
	for _, f := range fields {
		result[f.Key] = f.Value
	}
	return result
}

// Info logs an info message
func (l *DeviceLogger) Info(message string, fields ...Field) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.WithFields(l.convertFields(fields)).Info(message)
}

// Error logs an error message
func (l *DeviceLogger) Error(message string, fields ...Field) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.WithFields(l.convertFields(fields)).Error(message)
}

// Warn logs a warning message
func (l *DeviceLogger) Warn(message string, fields ...Field) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.WithFields(l.convertFields(fields)).Warn(message)
}

// Debug logs a debug message
func (l *DeviceLogger) Debug(message string, fields ...Field) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.WithFields(l.convertFields(fields)).Debug(message)
}

// Success logs a success message (info level with special formatting)
func (l *DeviceLogger) Success(message string, fields ...Field) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.WithFields(l.convertFields(fields)).Info("✅ " + message)
}

// ConsoleLogger provides plain console output for CLI commands
type ConsoleLogger struct {
	out io.Writer
	err io.Writer
}

// NewConsoleLogger creates a console logger for CLI output
func NewConsoleLogger(out, errOut io.Writer) *ConsoleLogger {
	return &ConsoleLogger{out: out, err: errOut}
}

// Info prints info message
func (c *ConsoleLogger) Info(message string) {
	fmt.Fprintf(c.out, "📱 %s %s\n", color.CyanString("[devsim]"), message)
}

// Error prints error message
func (c *ConsoleLogger) Error(message string) {
	fmt.Fprintf(c.err, "📱 %s %s\n", color.RedString("[devsim]"), message)
}

// Warn prints warning message
func (c *ConsoleLogger) Warn(message string) {
	fmt.Fprintf(c.out, "📱 %s %s\n", color.YellowString("[devsim]"), message)
}

// Success prints success message
func (c *ConsoleLogger) Success(message string) {
	fmt.Fprintf(c.out, "📱 %s ✅ %s\n", color.GreenString("[devsim]"), message)
}
