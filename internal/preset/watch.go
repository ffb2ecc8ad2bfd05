package preset

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xtding233/equity-backend/internal/sliceutil"
)

// Watcher polls file modification times and calls onChange for every path
// that changed, appeared or disappeared since the previous scan.
type Watcher struct {
	list     func() []string
	interval time.Duration
	onChange func(string)

	stopOnce  sync.Once
	stopCh    chan struct{}
	done      chan struct{}
	lastMTime map[string]time.Time
}

// NewWatcher watches the paths returned by list, which is re-evaluated on every
// scan so files added later are picked up.
func NewWatcher(list func() []string, interval time.Duration, onChange func(string)) *Watcher {
	return &Watcher{
		list:      list,
		interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// WatchPaths lists the defaults file, the preset directory and every preset file.
func (l *Loader) WatchPaths() []string {
	paths := []string{l.paths.DefaultsPath(), l.paths.PresetDir()}
	files, _ := filepath.Glob(filepath.Join(l.paths.PresetDir(), "*.yaml"))
	paths = append(paths, files...)
	return sliceutil.DedupBy(paths, func(a, b string) bool {
		return filepath.Clean(a) == filepath.Clean(b)
	})
}

// Start records the current state and polls in a goroutine until ctx is done
// or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.scan(true)
	ticker := time.NewTicker(w.interval)
	go func() {
		defer close(w.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher and waits for the polling goroutine to exit.
// It must only be called after Start.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.done
}

func (w *Watcher) scan(prime bool) {
	paths := w.list()
	current := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		current[p] = struct{}{}
		fi, err := os.Stat(p)
		if err != nil {
			w.forget(p, prime)
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		if prime {
			continue
		}
		if !ok || !mt.Equal(last) {
			w.notify(p)
		}
	}
	for p := range w.lastMTime {
		if _, ok := current[p]; !ok {
			w.forget(p, prime)
		}
	}
}

func (w *Watcher) forget(p string, prime bool) {
	if _, ok := w.lastMTime[p]; !ok {
		return
	}
	delete(w.lastMTime, p)
	if !prime {
		w.notify(p)
	}
}

func (w *Watcher) notify(p string) {
	if w.onChange != nil {
		w.onChange(p)
	}
}
