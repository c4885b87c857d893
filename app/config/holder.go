package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/go-pkgz/lgr"
)

// Holder keeps the current suite and reloads it from file on demand or on change.
type Holder struct {
	mu        sync.RWMutex
	suite     *Suite
	path      string // empty for the embedded default suite
	validator Validator
	onReload  func(Suite)
}

// NewHolder loads the suite from path, or the embedded default if path is empty.
func NewHolder(path string, validator Validator) (*Holder, error) {
	h := &Holder{path: path, validator: validator}
	s, err := h.load()
	if err != nil {
		return nil, err
	}
	h.suite = s
	return h, nil
}

// Current returns the active suite.
func (h *Holder) Current() Suite {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return *h.suite
}

// Path returns the suite file path, empty for the embedded suite.
func (h *Holder) Path() string { return h.path }

// OnReload sets a callback invoked after each successful reload.
func (h *Holder) OnReload(fn func(Suite)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReload = fn
}

// Reload re-reads the suite file. On error the previous suite stays active.
func (h *Holder) Reload() error {
	s, err := h.load()
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.suite = s
	fn := h.onReload
	h.mu.Unlock()

	log.Printf("[INFO] suite reloaded from %s", h.path)
	if fn != nil {
		fn(*s)
	}
	return nil
}

func (h *Holder) load() (*Suite, error) {
	if h.path == "" {
		return Parse(defaultSuite, FormatYAML, h.validator)
	}
	return Load(h.path, h.validator)
}

// reloadDelay collapses the burst of events a single save produces.
const reloadDelay = 100 * time.Millisecond

// Watch starts watching the suite file and reloads it on change until ctx is canceled.
// Watching the embedded suite is an error.
func (h *Holder) Watch(ctx context.Context) error {
	if h.path == "" {
		return errors.New("suite file path not set")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("can't start suite watcher: %w", err)
	}
	// the directory is watched since editors save with an atomic rename
	if err := fw.Add(filepath.Dir(h.path)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("can't watch %s: %w", filepath.Dir(h.path), err)
	}

	log.Printf("[INFO] watching suite file %s for changes", h.path)
	go h.watch(ctx, fw)
	return nil
}

func (h *Holder) watch(ctx context.Context, fw *fsnotify.Watcher) {
	defer fw.Close()

	pending := time.NewTimer(reloadDelay)
	pending.Stop()
	defer pending.Stop()

	name := filepath.Base(h.path)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[DEBUG] suite watcher stopped")
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) == name && ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				pending.Reset(reloadDelay)
			}
		case <-pending.C:
			if err := h.Reload(); err != nil {
				log.Printf("[WARN] suite reload failed, keeping previous: %v", err)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			log.Printf("[WARN] suite watcher: %v", err)
		}
	}
}
