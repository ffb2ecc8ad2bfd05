package preset_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/xtding233/equity-backend/internal/preset"
)

func TestWatchPathsDeduplicated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "presets", "a.yaml"), "iterations: 1\n")

	paths := preset.NewLoader(dir).WatchPaths()
	want := []string{
		filepath.Join(dir, "defaults.yaml"),
		filepath.Join(dir, "presets"),
		filepath.Join(dir, "presets", "a.yaml"),
	}
	sort.Strings(paths)
	sort.Strings(want)
	if len(paths) != len(want) {
		t.Fatalf("got %v want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("got %v want %v", paths, want)
		}
	}
}

func waitFor(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case p := <-ch:
			if p == want {
				return
			}
		case <-deadline:
			t.Fatalf("no change reported for %s", want)
		}
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets", "p.yaml")
	writeFile(t, path, "iterations: 1\n")
	l := preset.NewLoader(dir)

	changed := make(chan string, 16)
	w := preset.NewWatcher(l.WatchPaths, 10*time.Millisecond, func(p string) {
		select {
		case changed <- p:
		default:
		}
	})
	w.Start(context.Background())
	defer w.Stop()

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	waitFor(t, changed, path)

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	waitFor(t, changed, path)
}

func TestWatcherStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := preset.NewWatcher(func() []string { return nil }, time.Millisecond, nil)
	w.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher did not stop")
	}
}
