// Package watch re-runs a rebuild callback when files under a set of
// directories change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
)

// DefaultDebounce collapses bursts of editor saves into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Rebuild is invoked once at start and after each settled burst of changes.
type Rebuild func(ctx context.Context) error

// Watcher debounces filesystem events into rebuilds.
type Watcher struct {
	rebuild  Rebuild
	logger   *slog.Logger
	clock    clockwork.Clock
	debounce time.Duration
	ignore   map[string]struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period that must pass before a rebuild.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithClock replaces the real clock.
func WithClock(c clockwork.Clock) Option {
	return func(w *Watcher) { w.clock = c }
}

// WithIgnore drops events for the given files, typically the rebuild output.
// Hidden files are always ignored.
func WithIgnore(paths ...string) Option {
	return func(w *Watcher) {
		for _, p := range paths {
			w.ignore[normalize(p)] = struct{}{}
		}
	}
}

// New creates a Watcher for rebuild.
func New(rebuild Rebuild, logger *slog.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		rebuild:  rebuild,
		logger:   logger,
		clock:    clockwork.NewRealClock(),
		debounce: DefaultDebounce,
		ignore:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run rebuilds once, then watches dirs until ctx is cancelled. Rebuild errors
// are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, dirs ...string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Info("watching", "path", dir)
	}

	w.runRebuild(ctx, "initial")

	var (
		timer clockwork.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = w.clock.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.Chan()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			w.runRebuild(ctx, "change")
		}
	}
}

func (w *Watcher) runRebuild(ctx context.Context, reason string) {
	start := w.clock.Now()
	if err := w.rebuild(ctx); err != nil {
		w.logger.Warn("rebuild failed", "reason", reason, "error", err)
		return
	}
	w.logger.Info("rebuilt", "reason", reason, "duration", w.clock.Since(start))
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}
	_, skip := w.ignore[normalize(ev.Name)]
	return !skip
}

func normalize(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
