package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Holder provides thread-safe access to the current catalog with hot reload support.
type Holder struct {
	mu       sync.RWMutex
	catalog  *Catalog
	path     string
	logger   *zap.Logger
	onChange []func(*Catalog, error)
}

// NewHolder loads the catalog at path. An empty path, or a path that does not
// exist, serves the built-in catalog; a present but invalid file is an error.
func NewHolder(path string, logger *zap.Logger) (*Holder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Holder{logger: logger}
	path = strings.TrimSpace(path)
	if path == "" {
		h.catalog = Default()
		return h, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: absolute path: %w", err)
	}
	h.path = abs
	c, err := Load(abs)
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Warn("catalog file not found, serving built-in catalog", zap.String("path", abs))
		c = Default()
	case err != nil:
		return nil, err
	}
	h.catalog = c
	return h, nil
}

// NewStaticHolder wraps a fixed catalog (tests and embedding).
func NewStaticHolder(c *Catalog) *Holder {
	if c == nil {
		c = Default()
	}
	return &Holder{catalog: c, logger: zap.NewNop()}
}

// Get returns the current catalog. Callers must treat it as read-only.
func (h *Holder) Get() *Catalog {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.catalog
}

// Path returns the absolute catalog path, or "" for a built-in catalog.
func (h *Holder) Path() string { return h.path }

// OnChange registers a callback invoked after every reload attempt.
func (h *Holder) OnChange(fn func(*Catalog, error)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// Reload re-reads the catalog file. On failure the previous catalog stays active.
func (h *Holder) Reload() error {
	if h.path == "" {
		return nil
	}
	next, err := Load(h.path)
	if err == nil {
		h.mu.Lock()
		prev := h.catalog
		h.catalog = next
		h.mu.Unlock()
		h.logger.Info("catalog reloaded",
			zap.String("path", h.path),
			zap.Int("plans", len(next.Plans)),
			zap.Int("add_ons", len(next.AddOns)),
			zap.Int("add_ons_before", len(prev.AddOns)),
			zap.Int("gallery", len(next.Gallery)),
		)
	} else {
		h.logger.Error("catalog reload failed, keeping previous catalog", zap.String("path", h.path), zap.Error(err))
	}
	h.mu.RLock()
	listeners := append([]func(*Catalog, error){}, h.onChange...)
	current := h.catalog
	h.mu.RUnlock()
	for _, fn := range listeners {
		fn(current, err)
	}
	if err != nil {
		return fmt.Errorf("catalog: reload: %w", err)
	}
	return nil
}

// Watch reloads the catalog whenever its file is written or recreated. It blocks
// until ctx is cancelled.
func (h *Holder) Watch(ctx context.Context) error {
	if h.path == "" {
		<-ctx.Done()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: create watcher: %w", err)
	}
	defer watcher.Close()
	// watch the directory; editors save atomically via rename
	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		return fmt.Errorf("catalog: watch directory: %w", err)
	}
	h.logger.Info("watching catalog file", zap.String("path", h.path))

	name := filepath.Base(h.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				_ = h.Reload()
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.logger.Error("catalog watcher error", zap.Error(werr))
		}
	}
}
