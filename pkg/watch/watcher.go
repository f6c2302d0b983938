// Package watch regenerates barrels when sources or settings change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"autobarrel/pkg/errors"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// Change is one debounced batch of file system events.
type Change struct {
	Paths         []string
	ConfigChanged bool
}

// Handler is called from Run's goroutine, one batch at a time.
type Handler func(ctx context.Context, change Change)

// Watcher watches a folder tree and an optional config file.
type Watcher struct {
	root       string
	configPath string
	watcher    *fsnotify.Watcher

	// Debounce is the quiet period before a batch is delivered.
	Debounce time.Duration
	// SkipDir reports directories that should not be watched. By default
	// hidden directories and node_modules are skipped.
	SkipDir func(path string) bool

	mu      sync.Mutex
	ignored map[string]bool
	pending map[string]bool
	config  bool
	timer   *time.Timer
	fire    chan struct{}

	logger *zap.Logger
}

// New creates a watcher for root. configPath may be empty.
func New(root, configPath string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", root)
	}
	if configPath != "" {
		if configPath, err = filepath.Abs(configPath); err != nil {
			return nil, errors.Wrapf(err, "failed to resolve %s", configPath)
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		root:       absRoot,
		configPath: configPath,
		watcher:    fw,
		Debounce:   DefaultDebounce,
		SkipDir:    defaultSkipDir,
		ignored:    map[string]bool{},
		pending:    map[string]bool{},
		fire:       make(chan struct{}, 1),
		logger:     logger,
	}, nil
}

// Ignore drops events for the given files, typically the barrels the
// handler writes itself.
func (w *Watcher) Ignore(paths ...string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			w.ignored[abs] = true
		}
	}
}

// Run watches until ctx is done, then closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	defer w.watcher.Close()

	if err := w.addTree(w.root); err != nil {
		return err
	}
	if w.configPath != "" {
		dir := filepath.Dir(w.configPath)
		if err := w.watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch config directory %s", dir)
		}
	}

	w.logger.Info("Watching for changes",
		zap.String("root", w.root),
		zap.String("config", w.configPath))

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))

		case <-w.fire:
			if change, ok := w.drain(); ok {
				handler(ctx, change)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	path := filepath.Clean(event.Name)
	isConfig := w.configPath != "" && path == w.configPath
	if !isConfig && !w.inRoot(path) {
		return
	}

	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addTree(path); err != nil {
				w.logger.Warn("Failed to watch new directory", zap.String("directory", path), zap.Error(err))
			}
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ignored[path] {
		w.logger.Debug("Ignoring own write", zap.String("file", path))
		return
	}

	w.logger.Debug("Detected change", zap.String("file", path), zap.String("op", event.Op.String()))
	if isConfig {
		w.config = true
	} else {
		w.pending[path] = true
	}
	w.scheduleLocked()
}

// scheduleLocked restarts the debounce timer. w.mu must be held.
func (w *Watcher) scheduleLocked() {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.Debounce, func() {
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) drain() (Change, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 && !w.config {
		return Change{}, false
	}

	change := Change{ConfigChanged: w.config, Paths: make([]string, 0, len(w.pending))}
	for p := range w.pending {
		change.Paths = append(change.Paths, p)
	}
	sort.Strings(change.Paths)

	w.pending = map[string]bool{}
	w.config = false
	return change, true
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) inRoot(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// addTree watches dir and every directory below it that SkipDir allows.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "failed to walk %s", path)
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.SkipDir != nil && w.SkipDir(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		return nil
	})
}

func defaultSkipDir(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") || name == "node_modules"
}
