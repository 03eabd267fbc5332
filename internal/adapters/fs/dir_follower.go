package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/frdsource/internal/ports"
)

// DefaultFollowPattern matches the raw files written by the DAQ file broker.
const DefaultFollowPattern = "*.raw"

// DirFollower reports input files appearing in a directory. Files already
// present when Run starts are reported first, in name order.
type DirFollower struct {
	dir     string
	pattern string
	logger  ports.Logger
	seen    map[string]struct{}
}

// NewDirFollower creates a follower for dir. Only base names matching
// pattern (filepath.Match syntax) are reported.
func NewDirFollower(dir, pattern string, logger ports.Logger) (*DirFollower, error) {
	if pattern == "" {
		pattern = DefaultFollowPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("follow pattern %q: %w", pattern, err)
	}
	return &DirFollower{dir: dir, pattern: pattern, logger: ports.OrNoop(logger), seen: make(map[string]struct{})}, nil
}

// Run sends matching paths on out until ctx is cancelled. Writers are
// expected to create files under a non-matching name and rename them into
// place once complete.
func (d *DirFollower) Run(ctx context.Context, out chan<- string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch before listing so nothing created in between is missed; the seen
	// set drops the duplicates.
	if err := watcher.Add(d.dir); err != nil {
		return fmt.Errorf("watch %s: %w", d.dir, err)
	}
	d.logger.Info("following directory", ports.String("dir", d.dir), ports.String("pattern", d.pattern))

	existing, err := d.list()
	if err != nil {
		return err
	}
	for _, path := range existing {
		if !d.send(ctx, out, path) {
			return ctx.Err()
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) {
				continue
			}
			if !d.match(ev.Name) {
				continue
			}
			if info, err := os.Stat(ev.Name); err != nil || !info.Mode().IsRegular() {
				continue
			}
			if !d.send(ctx, out, ev.Name) {
				return ctx.Err()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.logger.Warn("watcher error", ports.Err(err))
		}
	}
}

func (d *DirFollower) list() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", d.dir, err)
	}
	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(d.dir, e.Name())
		if d.match(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (d *DirFollower) match(path string) bool {
	ok, _ := filepath.Match(d.pattern, filepath.Base(path))
	return ok
}

// send delivers path once. It returns false if ctx was cancelled first.
func (d *DirFollower) send(ctx context.Context, out chan<- string, path string) bool {
	if _, dup := d.seen[path]; dup {
		return true
	}
	d.seen[path] = struct{}{}
	d.logger.Debug("new input file", ports.String("path", path))
	select {
	case out <- path:
		return true
	case <-ctx.Done():
		return false
	}
}
