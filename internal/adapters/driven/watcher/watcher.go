// Package watcher imports text files dropped into a folder as narration jobs.
// Events are debounced per path so an editor's burst of writes yields one
// import, and a path already imported is not imported again until it is
// removed or renamed away.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

const defaultDebounce = 400 * time.Millisecond

// Importer turns a file into a job. driving.JobService satisfies it.
type Importer interface {
	Import(ctx context.Context, path string) (*domain.Job, error)
}

// ImportFunc is called after every import attempt.
type ImportFunc func(path string, job *domain.Job, err error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets a logger for watcher events.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithDebounce overrides the per-path debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithExtensions limits imports to the given extensions. Empty accepts all.
func WithExtensions(exts []string) Option {
	return func(w *Watcher) { w.extensions = exts }
}

// OnImport registers a callback run after every import attempt.
func OnImport(fn ImportFunc) Option {
	return func(w *Watcher) { w.onImport = fn }
}

// Watcher watches a single drop folder.
type Watcher struct {
	dir        string
	extensions []string
	importer   Importer
	debounce   time.Duration
	logger     *zap.Logger
	onImport   ImportFunc

	mu      sync.Mutex
	fs      *fsnotify.Watcher
	pending map[string]*time.Timer
	seen    map[string]bool
	started bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// New creates a watcher for dir.
func New(dir string, importer Importer, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      filepath.Clean(dir),
		importer: importer,
		debounce: defaultDebounce,
		logger:   zap.NewNop(),
		pending:  make(map[string]*time.Timer),
		seen:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the watched folder.
func (w *Watcher) Dir() string {
	return w.dir
}

// Start begins watching. The folder is created if missing. Watching runs
// in the background until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if w.importer == nil {
		return domain.ErrNotImplemented
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create watch dir: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.fs = fsw
	w.started = true
	w.done = make(chan struct{})
	w.logger.Debug("watcher started", zap.String("dir", w.dir), zap.Strings("extensions", w.extensions))

	w.wg.Add(1)
	go w.run(ctx, fsw, w.done)
	return nil
}

// Stop stops watching, cancels pending imports and waits for in-flight
// imports to finish. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.shutdown()
	w.wg.Wait()
}

// shutdown releases the fsnotify watcher without waiting on goroutines.
func (w *Watcher) shutdown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	for path, t := range w.pending {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.pending, path)
	}
	close(w.done)
	_ = w.fs.Close()
	w.fs = nil
	w.started = false
	w.logger.Debug("watcher stopped", zap.String("dir", w.dir))
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, done <-chan struct{}) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			w.shutdown()
			return
		case <-done:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handle(ctx, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	change, ok := toChange(ev)
	if !ok || filepath.Dir(change.Path) != w.dir {
		return
	}
	w.logger.Debug("watcher event", zap.Stringer("change", change.Type), zap.String("path", change.Path))

	switch change.Type {
	case domain.ChangeCreated, domain.ChangeUpdated:
		if !w.accepts(change.Path) {
			return
		}
		if info, err := os.Stat(change.Path); err != nil || info.IsDir() {
			return
		}
		w.schedule(ctx, change.Path)
	case domain.ChangeDeleted:
		w.cancel(change.Path)
		w.forget(change.Path)
	}
}

// toChange maps an fsnotify event to a file change. Chmod-only events are dropped.
func toChange(ev fsnotify.Event) (domain.FileChange, bool) {
	path := filepath.Clean(ev.Name)
	switch {
	case ev.Has(fsnotify.Create):
		return domain.FileChange{Type: domain.ChangeCreated, Path: path}, true
	case ev.Has(fsnotify.Write):
		return domain.FileChange{Type: domain.ChangeUpdated, Path: path}, true
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return domain.FileChange{Type: domain.ChangeDeleted, Path: path}, true
	default:
		return domain.FileChange{}, false
	}
}

func (w *Watcher) accepts(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if len(w.extensions) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, e := range w.extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// schedule (re)arms the debounce timer for path. Each armed timer holds
// one wait group slot until it fires or is stopped.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started || w.seen[path] {
		return
	}
	if t, ok := w.pending[path]; ok && t.Stop() {
		w.wg.Done()
	}

	w.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		if w.claim(path, &t) {
			w.importFile(ctx, path)
		}
	})
	w.pending[path] = t
}

// claim is called by a fired timer. It reports whether *t is still the
// live timer for path and marks path as imported. A timer that was
// re-armed, cancelled or outlived Stop loses its claim. *t is read under
// mu because schedule assigns it while holding mu.
func (w *Watcher) claim(path string, t **time.Timer) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending[path] != *t {
		return false
	}
	delete(w.pending, path)
	if !w.started || w.seen[path] {
		return false
	}
	w.seen[path] = true
	return true
}

// forget lets path be imported again.
func (w *Watcher) forget(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.seen, path)
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.pending, path)
	}
}

func (w *Watcher) importFile(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}
	job, err := w.importer.Import(ctx, path)
	if err != nil {
		// A failed import is retried on the next save.
		w.forget(path)
		w.logger.Warn("import failed", zap.String("path", path), zap.Error(err))
	} else {
		w.logger.Info("imported", zap.String("path", path), zap.String("job", job.ID))
	}
	if w.onImport != nil {
		w.onImport(path, job, err)
	}
}
