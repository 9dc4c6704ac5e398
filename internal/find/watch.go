package vexyglob

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchHandler processes one result produced while watching.
type WatchHandler func(ctx context.Context, res Result) error

// WatchChanges monitors the root for created or modified entries and invokes
// handler for each one that passes the same filters as Find (including the
// content regex, when set). It blocks until ctx is done or the handler
// returns an error.
//
// New directories are added to the watch as they appear; hidden and ignored
// directories are not watched, matching the traversal rules.
func WatchChanges(ctx context.Context, opts Options, handler WatchHandler) error {
	r, err := compile(opts)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return &SearchError{Path: r.root, Err: err}
	}
	defer watcher.Close()

	root := filepath.Clean(r.root)
	var chain *ignoreChain
	if !opts.IgnoreGit {
		chain = newRootChain(root, opts.CustomIgnoreFiles)
	}

	watchDir := func(dir string) {
		if err := watcher.Add(dir); err != nil {
			r.logger.Debug("cannot watch directory", zap.String("path", dir), zap.Error(err))
		}
	}

	// Seed the watch with the existing directory tree.
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root {
			if !opts.Hidden && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if chain != nil && chain.Ignored(path, true) {
				return filepath.SkipDir
			}
		}
		watchDir(path)
		return nil
	})
	if err != nil {
		return &SearchError{Path: root, Err: err}
	}

	// Results flow through the same bounded stream as Find so the handler
	// applies backpressure to the event processing.
	s := newStream(64)
	c := s.core
	go func() {
		defer func() {
			close(c.results)
			close(c.done)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				r.handleWatchEvent(event, root, chain, watchDir, c)
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.logger.Debug("watch error", zap.Error(werr))
			}
		}
	}()

	for res := range c.results {
		if err := handler(ctx, res); err != nil {
			s.Close()
			return err
		}
	}
	return ctx.Err()
}

func (r *request) handleWatchEvent(event fsnotify.Event, root string, chain *ignoreChain, watchDir func(string), c *streamCore) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	path := event.Name
	base := filepath.Base(path)
	if !r.opts.Hidden && strings.HasPrefix(base, ".") {
		return
	}
	if chain != nil && chain.Ignored(path, false) {
		return
	}

	info, err := os.Lstat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		if event.Op&fsnotify.Create != 0 {
			watchDir(path)
		}
		return
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	task := entryTask{
		path:     path,
		rel:      rel,
		depth:    strings.Count(rel, "/") + 1,
		isDir:    false,
		modeType: info.Mode() & os.ModeType,
	}
	if !r.matchEntry(task) {
		return
	}

	if r.content != nil {
		r.grepFile(path, c)
		return
	}
	select {
	case c.results <- Result{Path: path}:
	case <-c.stop:
	}
}
