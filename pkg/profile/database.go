package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/devsim/devsim/pkg/logger"
	"github.com/devsim/devsim/pkg/types"
	"github.com/devsim/devsim/pkg/validation"
	"golang.org/x/sync/errgroup"
)

// LoadFailure records a profile file that could not be loaded
type LoadFailure struct {
	Path string
	Err  error
}

// Database indexes the device profiles found in a set of directories
type Database struct {
	dirs    []string
	log     logger.Logger
	exclude *Exclusions

	mu       sync.RWMutex
	devices  []*types.DeviceProfile
	byName   map[string]*types.DeviceProfile
	failures []LoadFailure
}

// NewDatabase creates an empty database over dirs. Duplicate directories
// are dropped. Call Refresh to load.
func NewDatabase(dirs []string, log logger.Logger) *Database {
	seen := make(map[string]bool)
	unique := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		key := filepath.Clean(dir)
		if abs, err := filepath.Abs(key); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, key)
	}

	// Defaults always compile
	exclude, _ := NewExclusions(nil)

	return &Database{
		dirs:    unique,
		log:     log,
		exclude: exclude,
		byName:  make(map[string]*types.DeviceProfile),
	}
}

// SetExclusions replaces the patterns of paths skipped while scanning
func (d *Database) SetExclusions(patterns []string) error {
	exclude, err := NewExclusions(patterns)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.exclude = exclude
	d.mu.Unlock()
	return nil
}

// Excluded reports whether path lies in a device directory and matches an
// exclusion pattern
func (d *Database) Excluded(path string) bool {
	d.mu.RLock()
	exclude := d.exclude
	d.mu.RUnlock()

	for _, dir := range d.dirs {
		rel, err := filepath.Rel(dir, path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		if exclude.Excluded(rel) {
			return true
		}
	}
	return false
}

// Directories returns the scanned directories
func (d *Database) Directories() []string {
	return append([]string(nil), d.dirs...)
}

// Refresh rescans every directory and replaces the loaded set. Missing
// directories are skipped and invalid files are logged and skipped. Only
// context cancellation aborts a refresh.
func (d *Database) Refresh(ctx context.Context) error {
	paths := d.scan()

	profiles := make([]*types.DeviceProfile, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			profiles[i], errs[i] = LoadFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("device refresh aborted: %w", err)
	}

	var failures []LoadFailure
	loaded := make([]*types.DeviceProfile, 0, len(paths))
	for i, path := range paths {
		if errs[i] != nil {
			d.log.Warn("Skipping invalid device profile",
				logger.WithField("path", path),
				logger.WithError(errs[i]))
			failures = append(failures, LoadFailure{Path: path, Err: errs[i]})
			continue
		}
		loaded = append(loaded, profiles[i])
	}

	sort.SliceStable(loaded, func(i, j int) bool {
		a, b := strings.ToLower(loaded[i].FriendlyName), strings.ToLower(loaded[j].FriendlyName)
		if a != b {
			return a < b
		}
		return loaded[i].Source < loaded[j].Source
	})

	dupes := validation.NewProfileValidator().ValidateMultiple(loaded)
	for _, w := range dupes.Issues(validation.ValidationLevelWarning) {
		d.log.Warn(w.Message, logger.WithField("device", w.Target))
	}

	byName := make(map[string]*types.DeviceProfile, len(loaded))
	devices := make([]*types.DeviceProfile, 0, len(loaded))
	for _, p := range loaded {
		key := strings.ToLower(p.FriendlyName)
		if _, ok := byName[key]; ok {
			continue
		}
		byName[key] = p
		devices = append(devices, p)
	}

	d.mu.Lock()
	d.devices = devices
	d.byName = byName
	d.failures = failures
	d.mu.Unlock()

	d.log.Debug("Device database refreshed",
		logger.WithField("devices", len(devices)),
		logger.WithField("failures", len(failures)))
	return nil
}

// scan lists the profile files under every directory, recursively
func (d *Database) scan() []string {
	d.mu.RLock()
	exclude := d.exclude
	d.mu.RUnlock()

	var paths []string
	for _, dir := range d.dirs {
		err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) && path == dir {
					d.log.Debug("Device directory does not exist", logger.WithField("dir", dir))
					return fs.SkipDir
				}
				d.log.Warn("Cannot read device directory entry",
					logger.WithField("path", path),
					logger.WithError(err))
				if entry != nil && entry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if rel, relErr := filepath.Rel(dir, path); relErr == nil && rel != "." && exclude.Excluded(rel) {
				if entry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if !entry.IsDir() && IsProfileFile(entry.Name()) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			d.log.Warn("Device directory scan failed",
				logger.WithField("dir", dir),
				logger.WithError(err))
		}
	}
	return paths
}

// Devices returns the loaded profiles sorted by friendly name
func (d *Database) Devices() []*types.DeviceProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*types.DeviceProfile(nil), d.devices...)
}

// Get looks a device up by friendly name, ignoring case
func (d *Database) Get(name string) (*types.DeviceProfile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if p, ok := d.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
}

// Failures returns the files skipped by the last refresh
func (d *Database) Failures() []LoadFailure {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]LoadFailure(nil), d.failures...)
}

// Files lists the profile files currently present under every directory
func (d *Database) Files() []string {
	return d.scan()
}
