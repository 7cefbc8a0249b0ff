package profile_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/devsim/devsim/pkg/logger"
	"github.com/devsim/devsim/pkg/profile"
)

func TestReloadManager_PicksUpNewProfile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "first.device.json"), deviceJSON("First", "Android"))

	db := profile.NewDatabase([]string{dir}, logger.Discard())
	if err := db.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	rm := profile.NewReloadManager(db, logger.Discard())
	rm.SetDebouncePeriod(20 * time.Millisecond)

	events := make(chan profile.ReloadEvent, 8)
	rm.AddCallback(func(e profile.ReloadEvent) { events <- e })

	if err := rm.StartWatching(); err != nil {
		t.Fatalf("failed to start watching: %v", err)
	}
	defer rm.StopWatching()

	if !rm.IsWatching() {
		t.Fatal("expected manager to be watching")
	}
	if err := rm.StartWatching(); !errors.Is(err, profile.ErrAlreadyWatching) {
		t.Errorf("expected ErrAlreadyWatching, got %v", err)
	}

	writeFile(t, filepath.Join(dir, "second.device.json"), deviceJSON("Second", "iOS"))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case e := <-events:
			if e.Error != nil {
				t.Fatalf("unexpected reload error: %v", e.Error)
			}
			if len(e.Devices) == 2 {
				if _, err := db.Get("second"); err != nil {
					t.Errorf("database not refreshed: %v", err)
				}
				if rm.GetLastReloadTime().IsZero() {
					t.Error("expected last reload time")
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestReloadManager_TriggerReload(t *testing.T) {
	dir := t.TempDir()
	db := profile.NewDatabase([]string{dir}, logger.Discard())
	rm := profile.NewReloadManager(db, logger.Discard())

	events := make(chan profile.ReloadEvent, 1)
	rm.AddCallback(func(e profile.ReloadEvent) { events <- e })

	writeFile(t, filepath.Join(dir, "x.device.json"), deviceJSON("X", "Android"))
	rm.TriggerReload()

	select {
	case e := <-events:
		if len(e.Devices) != 1 || e.EventType != profile.ReloadEventTypeModified {
			t.Errorf("unexpected event %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback not invoked")
	}
}

func TestReloadManager_CallbacksRunInOrder(t *testing.T) {
	db := profile.NewDatabase([]string{t.TempDir()}, logger.Discard())
	rm := profile.NewReloadManager(db, logger.Discard())

	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		rm.AddCallback(func(profile.ReloadEvent) { order = append(order, name) })
	}

	rm.TriggerReload()
	rm.TriggerReload()

	if got := strings.Join(order, ""); got != "abcabc" {
		t.Errorf("callbacks ran as %q, want abcabc", got)
	}
}

func TestReloadManager_StopWaitsForReload(t *testing.T) {
	dir := t.TempDir()
	db := profile.NewDatabase([]string{dir}, logger.Discard())
	rm := profile.NewReloadManager(db, logger.Discard())
	rm.SetDebouncePeriod(10 * time.Millisecond)

	started := make(chan struct{}, 1)
	var finished atomic.Bool
	rm.AddCallback(func(profile.ReloadEvent) {
		select {
		case started <- struct{}{}:
		default:
		}
		time.Sleep(200 * time.Millisecond)
		finished.Store(true)
	})

	if err := rm.StartWatching(); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "late.device.json"), deviceJSON("Late", "Android"))

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		rm.StopWatching()
		t.Fatal("reload never started")
	}

	if err := rm.StopWatching(); err != nil {
		t.Fatal(err)
	}
	if !finished.Load() {
		t.Error("StopWatching returned while a callback was still running")
	}
}

func TestReloadManager_CallbackPanicRecovered(t *testing.T) {
	db := profile.NewDatabase([]string{t.TempDir()}, logger.Discard())
	rm := profile.NewReloadManager(db, logger.Discard())

	done := make(chan struct{})
	rm.AddCallback(func(profile.ReloadEvent) { panic("boom") })
	rm.AddCallback(func(profile.ReloadEvent) { close(done) })

	rm.TriggerReload()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second callback not invoked")
	}
}

func TestReloadManager_NoDirectories(t *testing.T) {
	db := profile.NewDatabase([]string{filepath.Join(t.TempDir(), "missing")}, logger.Discard())
	rm := profile.NewReloadManager(db, logger.Discard())

	if err := rm.StartWatching(); err == nil {
		rm.StopWatching()
		t.Fatal("expected error without any directory")
	}
	if rm.IsWatching() {
		t.Error("manager should not be watching")
	}
	if err := rm.StopWatching(); err != nil {
		t.Errorf("stopping an idle manager should be a no-op, got %v", err)
	}
}
