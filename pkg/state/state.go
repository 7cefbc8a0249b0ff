// Package state persists simulator sessions so a later run can resume them
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/devsim/devsim/pkg/logger"
	"github.com/devsim/devsim/pkg/orientation"
	"github.com/devsim/devsim/pkg/simulation"
	"github.com/devsim/devsim/pkg/types"
)

// ErrNoState is returned when a device has no saved session
var ErrNoState = errors.New("no saved session")

// SessionState is the persisted state of one simulated device
type SessionState struct {
	Device        string              `json:"device"`
	SessionID     string              `json:"sessionId"`
	Orientation   types.Orientation   `json:"orientation"`
	RotationAngle float64             `json:"rotationAngle"`
	AutoRotate    bool                `json:"autoRotate"`
	Allowed       []types.Orientation `json:"allowed"`
	FullScreen    bool                `json:"fullScreen"`
	ProcessID     int                 `json:"processId"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// Capture records the current state of sim
func Capture(sim *simulation.Simulation) SessionState {
	st := sim.State()
	return SessionState{
		Device:        st.Device,
		SessionID:     st.SessionID,
		Orientation:   st.Geometry.Orientation,
		RotationAngle: orientation.ToAngle(st.Physical),
		AutoRotate:    st.AutoRotate,
		Allowed:       st.Allowed,
		FullScreen:    sim.FullScreen(),
		ProcessID:     os.Getpid(),
		UpdatedAt:     time.Now(),
	}
}

// Options returns simulation options that recreate the saved state
func (s SessionState) Options() simulation.Options {
	return simulation.Options{
		AutoRotate:   s.AutoRotate,
		Allowed:      types.NewOrientationSet(s.Allowed...),
		Initial:      s.Orientation,
		InitialAngle: s.RotationAngle,
		Windowed:     !s.FullScreen,
	}
}

// Store keeps one state file per device in a directory
type Store struct {
	dir    string
	logger logger.Logger
	mu     sync.RWMutex
	states map[string]*SessionState
}

// NewStore creates a store rooted at dir. The directory is created on the
// first save.
func NewStore(dir string, log logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{
		dir:    dir,
		logger: log,
		states: make(map[string]*SessionState),
	}
}

// Dir returns the state directory
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the state of its device, replacing any earlier one
func (s *Store) Save(state SessionState) error {
	if strings.TrimSpace(state.Device) == "" {
		return fmt.Errorf("cannot save session without a device name")
	}
	if !state.Orientation.IsValid() {
		return fmt.Errorf("cannot save session of %s: invalid orientation %v", state.Device, state.Orientation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := s.saveStateFile(&state); err != nil {
		return err
	}
	s.states[fileKey(state.Device)] = &state

	s.logger.Debug("Session saved",
		logger.WithField("device", state.Device),
		logger.WithField("orientation", state.Orientation))
	return nil
}

// Load returns the saved state of device, ErrNoState if there is none
func (s *Store) Load(device string) (*SessionState, error) {
	key := fileKey(device)

	s.mu.RLock()
	if st, ok := s.states[key]; ok {
		s.mu.RUnlock()
		copied := *st
		return &copied, nil
	}
	s.mu.RUnlock()

	st, err := s.loadStateFile(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoState, device)
		}
		return nil, err
	}

	s.mu.Lock()
	s.states[key] = st
	s.mu.Unlock()

	copied := *st
	return &copied, nil
}

// Remove deletes the saved state of device
func (s *Store) Remove(device string) error {
	key := fileKey(device)

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, key)
	if err := os.Remove(s.stateFilePath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}

// Discover loads every saved session, keyed by device name. Unreadable
// files are logged and skipped.
func (s *Store) Discover() (map[string]*SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make(map[string]*SessionState)

	files, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return states, nil
		}
		return nil, fmt.Errorf("failed to read state directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		key := strings.TrimSuffix(file.Name(), ".json")
		st, err := s.loadStateFile(key)
		if err != nil {
			s.logger.Warn("Failed to load state file",
				logger.WithField("file", file.Name()),
				logger.WithError(err))
			continue
		}
		states[st.Device] = st
	}

	return states, nil
}

// fileKey maps a device name to a file name stem
func fileKey(device string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(device)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	key := strings.TrimSuffix(b.String(), "-")
	if key == "" {
		return "device"
	}
	return key
}

func (s *Store) stateFilePath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) loadStateFile(key string) (*SessionState, error) {
	data, err := os.ReadFile(s.stateFilePath(key))
	if err != nil {
		return nil, err
	}

	var st SessionState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return &st, nil
}

func (s *Store) saveStateFile(st *SessionState) error {
	path := s.stateFilePath(fileKey(st.Device))

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write atomically
	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename state file: %w", err)
	}
	return nil
}
