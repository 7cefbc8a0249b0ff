// Package mocks provides mock implementations of interfaces for testing.
package mocks

import (
	"fmt"
	"sync"

	"github.com/devsim/devsim/pkg/logger"
	"github.com/devsim/devsim/pkg/types"
)

// LogEntry is one message captured by MockLogger
type LogEntry struct {
	Level   string
	Device  string
	Message string
	Fields  []logger.Field
}

// MockLogger is a Logger that records every message
type MockLogger struct {
	mu      *sync.Mutex
	device  string
	entries *[]LogEntry
}

var _ logger.Logger = (*MockLogger)(nil)

// NewMockLogger creates a new recording logger
func NewMockLogger() *MockLogger {
	return &MockLogger{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

func (m *MockLogger) record(level, message string, fields []logger.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.entries = append(*m.entries, LogEntry{
		Level:   level,
		Device:  m.device,
		Message: message,
		Fields:  fields,
	})
}

func (m *MockLogger) Info(message string, fields ...logger.Field) {
	m.record("info", message, fields)
}

func (m *MockLogger) Error(message string, fields ...logger.Field) {
	m.record("error", message, fields)
}

func (m *MockLogger) Warn(message string, fields ...logger.Field) {
	m.record("warn", message, fields)
}

func (m *MockLogger) Debug(message string, fields ...logger.Field) {
	m.record("debug", message, fields)
}

func (m *MockLogger) Success(message string, fields ...logger.Field) {
	m.record("success", message, fields)
}

// WithDevice returns a logger sharing the same entries
func (m *MockLogger) WithDevice(device string) logger.Logger {
	return &MockLogger{mu: m.mu, device: device, entries: m.entries}
}

// Entries returns a copy of the recorded entries
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LogEntry(nil), (*m.entries)...)
}

// Count returns the number of entries at level
func (m *MockLogger) Count(level string) int {
	n := 0
	for _, e := range m.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// RecordingListener records simulation notifications in order as short
// strings such as "orientation landscape-left".
type RecordingListener struct {
	mu     sync.Mutex
	events []string
}

// NewRecordingListener creates an empty recorder
func NewRecordingListener() *RecordingListener {
	return &RecordingListener{}
}

func (r *RecordingListener) add(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *RecordingListener) OrientationChanged(o types.Orientation) {
	r.add("orientation %s", o)
}

func (r *RecordingListener) AutoRotationChanged(autoRotate bool) {
	r.add("auto-rotate %t", autoRotate)
}

func (r *RecordingListener) AllowedOrientationsChanged(allowed types.OrientationSet) {
	r.add("allowed %s", allowed)
}

func (r *RecordingListener) ResolutionChanged(res types.Resolution) {
	r.add("resolution %s", res)
}

func (r *RecordingListener) InsetsChanged(insets types.Insets) {
	r.add("insets %s", insets)
}

func (r *RecordingListener) SafeAreaChanged(area types.Rect) {
	r.add("safe-area %s", area)
}

func (r *RecordingListener) FullScreenChanged(fullScreen bool) {
	r.add("full-screen %t", fullScreen)
}

// Events returns the recorded notifications
func (r *RecordingListener) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// Reset forgets everything recorded so far
func (r *RecordingListener) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
