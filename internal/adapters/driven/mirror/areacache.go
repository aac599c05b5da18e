// Package mirror provides a watched, memoising area lookup over the
// on-disk sources mirror.
package mirror

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/debsources/internal/core/domain"
	"github.com/custodia-labs/debsources/internal/core/ports/driven"
	"github.com/custodia-labs/debsources/internal/logger"
	"github.com/custodia-labs/debsources/internal/navigation"
)

var log = logger.Named("mirror")

var _ driven.AreaFinder = (*AreaCache)(nil)

// ErrAlreadyWatching is returned by Watch when a watcher is running.
var ErrAlreadyWatching = errors.New("mirror: already watching")

// AreaCache wraps a DiskAreaFinder. While Watch is running, hits are
// memoised and the package directory of each hit is watched; removing or
// renaming a version (or the whole package) drops the memoised entries.
// Without a watcher every lookup goes to disk.
type AreaCache struct {
	sourcesDir string
	disk       *navigation.DiskAreaFinder

	mu      sync.RWMutex
	areas   map[string]string   // "pkg/version" -> area
	watched map[string]struct{} // watched package directories
	watcher *fsnotify.Watcher
}

// NewAreaCache creates a cache over the mirror rooted at sourcesDir.
func NewAreaCache(sourcesDir string) *AreaCache {
	return &AreaCache{
		sourcesDir: sourcesDir,
		disk:       navigation.NewDiskAreaFinder(sourcesDir),
		areas:      make(map[string]string),
		watched:    make(map[string]struct{}),
	}
}

func cacheKey(pkg, version string) string {
	return pkg + "/" + version
}

// FindArea returns the area holding pkg/version.
func (c *AreaCache) FindArea(pkg, version string) (string, bool) {
	key := cacheKey(pkg, version)

	c.mu.RLock()
	area, ok := c.areas[key]
	watching := c.watcher != nil
	c.mu.RUnlock()
	if ok {
		return area, true
	}

	area, ok = c.disk.FindArea(pkg, version)
	if !ok || !watching {
		return area, ok
	}

	pkgDir := filepath.Join(c.sourcesDir, area, domain.PackagePrefix(pkg), pkg)
	if !c.remember(key, area, pkgDir, version) {
		return "", false
	}
	return area, true
}

// remember watches pkgDir and memoises key. The version directory is
// checked again once the watch is in place: a removal that landed before
// the watch produced no event, so it must not be memoised. It reports
// whether the version still exists.
func (c *AreaCache) remember(key, area, pkgDir, version string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.watcher == nil {
		return true
	}
	if _, seen := c.watched[pkgDir]; !seen {
		if err := c.watcher.Add(pkgDir); err != nil {
			log.Warn("cannot watch %s: %v", pkgDir, err)
			return dirExists(filepath.Join(pkgDir, version))
		}
		c.watched[pkgDir] = struct{}{}
	}
	if !dirExists(filepath.Join(pkgDir, version)) {
		return false
	}
	c.areas[key] = area
	return true
}

func dirExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Cached returns the number of memoised entries.
func (c *AreaCache) Cached() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.areas)
}

// Watch starts watching the mirror until ctx is cancelled.
func (c *AreaCache) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.watcher != nil {
		c.mu.Unlock()
		w.Close()
		return ErrAlreadyWatching
	}
	c.watcher = w
	c.mu.Unlock()

	log.Debug("watching %s", c.sourcesDir)
	go c.loop(ctx, w)
	return nil
}

func (c *AreaCache) loop(ctx context.Context, w *fsnotify.Watcher) {
	defer c.stop(w)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			c.handleFsEvent(event)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("watch error: %v", err)
		}
	}
}

// stop closes w and forgets everything memoised while it ran.
func (c *AreaCache) stop(w *fsnotify.Watcher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.watcher == w {
		c.watcher = nil
		c.areas = make(map[string]string)
		c.watched = make(map[string]struct{})
	}
	w.Close()
}

// Close stops watching. It is safe to call when not watching.
func (c *AreaCache) Close() error {
	c.mu.RLock()
	w := c.watcher
	c.mu.RUnlock()
	if w != nil {
		c.stop(w)
	}
	return nil
}

// handleFsEvent drops memoised entries invalidated by event and reports
// how many were dropped.
func (c *AreaCache) handleFsEvent(event fsnotify.Event) int {
	if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return 0
	}

	rel, err := filepath.Rel(c.sourcesDir, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return 0
	}
	// area/prefix/package[/version]
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 3 {
		return 0
	}
	pkg := parts[2]

	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	if len(parts) >= 4 {
		key := cacheKey(pkg, parts[3])
		if _, ok := c.areas[key]; ok {
			delete(c.areas, key)
			dropped++
		}
	} else {
		for key := range c.areas {
			if strings.HasPrefix(key, pkg+"/") {
				delete(c.areas, key)
				dropped++
			}
		}
		delete(c.watched, filepath.Join(c.sourcesDir, parts[0], parts[1], pkg))
	}
	if dropped > 0 {
		log.Debug("%s removed, dropped %d cached area(s)", rel, dropped)
	}
	return dropped
}
