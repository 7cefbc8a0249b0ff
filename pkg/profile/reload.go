package profile

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/devsim/devsim/pkg/logger"
	"github.com/devsim/devsim/pkg/types"
	"github.com/fsnotify/fsnotify"
)

// ReloadManager watches the device directories of a Database and refreshes
// it when profile files change
type ReloadManager struct {
	db             *Database
	logger         logger.Logger
	watcher        *fsnotify.Watcher
	callbacks      []ReloadCallback
	lastReload     time.Time
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	mu             sync.RWMutex
	reloadMu       sync.Mutex
	inflight       sync.WaitGroup
	ctx            context.Context
	cancel         context.CancelFunc
	isWatching     bool
}

// ReloadCallback receives the refreshed device list, or the refresh error
type ReloadCallback func(ReloadEvent)

// ReloadEvent represents a device database reload
type ReloadEvent struct {
	Path      string                 `json:"path"`
	Timestamp time.Time              `json:"timestamp"`
	Devices   []*types.DeviceProfile `json:"devices,omitempty"`
	Error     error                  `json:"-"`
	EventType ReloadEventType        `json:"eventType"`
}

// ReloadEventType represents the type of reload event
type ReloadEventType string

const (
	ReloadEventTypeModified ReloadEventType = "modified"
	ReloadEventTypeCreated  ReloadEventType = "created"
	ReloadEventTypeRemoved  ReloadEventType = "removed"
	ReloadEventTypeError    ReloadEventType = "error"
)

// NewReloadManager creates a reload manager for db
func NewReloadManager(db *Database, log logger.Logger) *ReloadManager {
	return &ReloadManager{
		db:             db,
		logger:         log,
		debouncePeriod: 300 * time.Millisecond,
	}
}

// AddCallback adds a reload callback
func (rm *ReloadManager) AddCallback(callback ReloadCallback) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.callbacks = append(rm.callbacks, callback)
}

// StartWatching begins watching every existing device directory and its
// subdirectories
func (rm *ReloadManager) StartWatching() error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.isWatching {
		return ErrAlreadyWatching
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	watched := 0
	for _, dir := range rm.db.Directories() {
		n, err := addTree(watcher, dir, rm.db.Excluded)
		if err != nil {
			watcher.Close()
			return fmt.Errorf("failed to watch device directory %s: %w", dir, err)
		}
		watched += n
	}
	if watched == 0 {
		watcher.Close()
		return fmt.Errorf("no existing device directory to watch")
	}

	rm.watcher = watcher
	rm.ctx, rm.cancel = context.WithCancel(context.Background())
	rm.isWatching = true

	go rm.watchLoop(rm.ctx, watcher)

	rm.logger.Debug("Started watching device directories",
		logger.WithField("directories", watched))

	return nil
}

// addTree adds dir and its subdirectories except the skipped ones; a
// missing dir is skipped
func addTree(w *fsnotify.Watcher, dir string, skip func(string) bool) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	n := 0
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != dir && skip(path) {
			return fs.SkipDir
		}
		if err := w.Add(path); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

// StopWatching stops watching the device directories. It returns once a
// reload already under way has notified its callbacks.
func (rm *ReloadManager) StopWatching() error {
	rm.mu.Lock()
	if !rm.isWatching {
		rm.mu.Unlock()
		return nil
	}

	rm.cancel()
	rm.ctx, rm.cancel = nil, nil

	if rm.debounceTimer != nil {
		rm.debounceTimer.Stop()
		rm.debounceTimer = nil
	}

	if err := rm.watcher.Close(); err != nil {
		rm.logger.Warn("Error closing file watcher", logger.WithError(err))
	}
	rm.watcher = nil
	rm.isWatching = false
	rm.mu.Unlock()

	rm.inflight.Wait()
	rm.logger.Debug("Stopped watching device directories")
	return nil
}

// IsWatching returns whether the manager is currently watching
func (rm *ReloadManager) IsWatching() bool {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.isWatching
}

// TriggerReload refreshes the database right away
func (rm *ReloadManager) TriggerReload() {
	rm.logger.Debug("Manually triggering device reload")
	rm.reload("", ReloadEventTypeModified)
}

func (rm *ReloadManager) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer func() {
		if r := recover(); r != nil {
			rm.logger.Error("Device watcher panic recovered",
				logger.WithField("panic", r))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if rm.db.Excluded(event.Name) {
				continue
			}

			// New subdirectories are watched too
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if _, err := addTree(watcher, event.Name, rm.db.Excluded); err != nil {
						rm.logger.Warn("Failed to watch new directory",
							logger.WithField("dir", event.Name),
							logger.WithError(err))
					}
					rm.debounceReload(event.Name, ReloadEventTypeCreated)
					continue
				}
			}

			if !IsProfileFile(event.Name) {
				continue
			}

			rm.logger.Debug("Device profile event received",
				logger.WithField("event", event.String()))

			rm.debounceReload(event.Name, mapFsnotifyEvent(event.Op))

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}

			rm.logger.Error("Device watcher error", logger.WithError(err))
			rm.notifyCallbacks(ReloadEvent{
				Timestamp: time.Now(),
				Error:     err,
				EventType: ReloadEventTypeError,
			})
		}
	}
}

func mapFsnotifyEvent(op fsnotify.Op) ReloadEventType {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return ReloadEventTypeCreated
	case op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return ReloadEventTypeRemoved
	default:
		return ReloadEventTypeModified
	}
}

func (rm *ReloadManager) debounceReload(path string, eventType ReloadEventType) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if !rm.isWatching {
		return
	}

	if rm.debounceTimer != nil {
		rm.debounceTimer.Stop()
	}

	rm.debounceTimer = time.AfterFunc(rm.debouncePeriod, func() {
		rm.mu.RLock()
		if !rm.isWatching {
			rm.mu.RUnlock()
			return
		}
		rm.inflight.Add(1)
		rm.mu.RUnlock()

		defer rm.inflight.Done()
		rm.reload(path, eventType)
	})
}

// reload runs one refresh at a time so callbacks see events in order
func (rm *ReloadManager) reload(path string, eventType ReloadEventType) {
	rm.reloadMu.Lock()
	defer rm.reloadMu.Unlock()

	rm.mu.RLock()
	ctx := rm.ctx
	rm.mu.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}

	event := ReloadEvent{
		Path:      path,
		Timestamp: time.Now(),
		EventType: eventType,
	}

	if err := rm.db.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			rm.logger.Debug("Reload cancelled", logger.WithError(err))
			return
		}
		rm.logger.Error("Failed to reload device profiles", logger.WithError(err))
		event.Error = err
		event.EventType = ReloadEventTypeError
		rm.notifyCallbacks(event)
		return
	}

	rm.mu.Lock()
	rm.lastReload = event.Timestamp
	rm.mu.Unlock()

	event.Devices = rm.db.Devices()
	rm.logger.Info("Device profiles reloaded",
		logger.WithField("devices", len(event.Devices)))

	rm.notifyCallbacks(event)
}

func (rm *ReloadManager) notifyCallbacks(event ReloadEvent) {
	rm.mu.RLock()
	callbacks := make([]ReloadCallback, len(rm.callbacks))
	copy(callbacks, rm.callbacks)
	rm.mu.RUnlock()

	rm.logger.Debug("Notifying reload callbacks",
		logger.WithField("callbackCount", len(callbacks)),
		logger.WithField("eventType", event.EventType))

	for _, callback := range callbacks {
		rm.runCallback(callback, event)
	}
}

func (rm *ReloadManager) runCallback(cb ReloadCallback, event ReloadEvent) {
	defer func() {
		if r := recover(); r != nil {
			rm.logger.Error("Reload callback panic recovered",
				logger.WithField("panic", r))
		}
	}()
	cb(event)
}

// SetDebouncePeriod sets the debounce period for file change events
func (rm *ReloadManager) SetDebouncePeriod(period time.Duration) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.debouncePeriod = period
}

// GetLastReloadTime returns the timestamp of the last successful reload
func (rm *ReloadManager) GetLastReloadTime() time.Time {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.lastReload
}
