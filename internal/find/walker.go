package vexyglob

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/karrick/godirwalk"
	"go.uber.org/zap"
)

// errWalkStopped aborts the traversal when the consumer cancels. It never
// reaches the caller.
var errWalkStopped = errors.New("walk stopped")

// entryTask is one directory entry handed from the traversal goroutine to
// the worker pool.
type entryTask struct {
	path     string // full path as discovered
	rel      string // slash-separated path relative to the root
	depth    int    // root children are depth 1
	isDir    bool
	modeType os.FileMode
}

// run starts the producer side: one traversal goroutine feeding a task
// channel, plus the worker pool filtering entries into the stream's bounded
// result channel. Every send selects against the stop channel, so a closed,
// cancelled or abandoned stream halts the pool within one blocked send.
//
// The goroutines capture only the stream core, never the Stream handle;
// otherwise a consumer that walked away would keep the handle reachable and
// its cleanup could never fire.
func (r *request) run(ctx context.Context, s *Stream) {
	c := s.core
	tasks := make(chan entryTask, r.threads)

	var workerWg sync.WaitGroup
	for i := 0; i < r.threads; i++ {
		workerWg.Add(1)
		go r.worker(&workerWg, tasks, c)
	}

	// Context cancellation releases workers blocked mid-send, not just the
	// traversal goroutine.
	unhook := context.AfterFunc(ctx, c.signalStop)

	go func() {
		err := r.walk(ctx, tasks, c.stop)
		close(tasks)
		workerWg.Wait()
		unhook()
		if err != nil && !errors.Is(err, errWalkStopped) && !errors.Is(err, context.Canceled) {
			c.setErr(&SearchError{Path: r.root, Err: err})
		}
		close(c.results)
		close(c.done)
	}()
}

// walk traverses depth-first from the root, pruning hidden, ignored,
// too-deep and foreign-filesystem directories, and enqueues every surviving
// entry. Per-entry I/O errors are logged and skipped.
func (r *request) walk(ctx context.Context, tasks chan<- entryTask, stop <-chan struct{}) error {
	root := filepath.Clean(r.root)

	var rootDev uint64
	var haveRootDev bool
	if r.opts.SameFileSystem {
		if info, err := os.Lstat(root); err == nil {
			rootDev, haveRootDev = deviceID(info)
		}
	}

	// Ignore chains per directory. The walk is preorder, so a directory's
	// chain exists before its children are visited.
	chains := map[string]*ignoreChain{}
	if !r.opts.IgnoreGit {
		chains[root] = newRootChain(root, r.opts.CustomIgnoreFiles)
	}

	return godirwalk.Walk(root, &godirwalk.Options{
		Unsorted:            true,
		FollowSymbolicLinks: r.opts.FollowSymlinks,
		Callback: func(path string, de *godirwalk.Dirent) error {
			select {
			case <-stop:
				return errWalkStopped
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if path == root {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)
			depth := strings.Count(rel, "/") + 1
			base := de.Name()
			isDir := de.IsDir()

			if !r.opts.Hidden && strings.HasPrefix(base, ".") {
				if isDir {
					return filepath.SkipDir
				}
				return nil
			}

			if !r.opts.IgnoreGit {
				chain := chains[filepath.Dir(path)]
				if chain.Ignored(path, isDir) {
					r.logger.Debug("ignored entry", zap.String("path", path))
					if isDir {
						return filepath.SkipDir
					}
					return nil
				}
				if isDir {
					chains[path] = chain.descend(path)
				}
			}

			prune := false
			if isDir {
				if r.opts.MaxDepth > 0 && depth >= r.opts.MaxDepth {
					prune = true
				}
				if haveRootDev {
					if info, err := os.Lstat(path); err == nil {
						if dev, ok := deviceID(info); ok && dev != rootDev {
							r.logger.Debug("skipping foreign filesystem", zap.String("path", path))
							return filepath.SkipDir
						}
					}
				}
			}
			task := entryTask{
				path:     path,
				rel:      rel,
				depth:    depth,
				isDir:    isDir,
				modeType: de.ModeType(),
			}
			select {
			case tasks <- task:
			case <-stop:
				return errWalkStopped
			case <-ctx.Done():
				return ctx.Err()
			}

			if prune {
				return filepath.SkipDir
			}
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			r.logger.Debug("skipping entry", zap.String("path", path), zap.Error(err))
			return godirwalk.SkipNode
		},
	})
}

// worker filters entries and emits results. Once the stop channel closes it
// keeps draining tasks without doing work, so the traversal goroutine never
// blocks on a dead pool.
func (r *request) worker(wg *sync.WaitGroup, tasks <-chan entryTask, c *streamCore) {
	defer wg.Done()
	for task := range tasks {
		select {
		case <-c.stop:
			continue
		default:
		}

		if !r.matchEntry(task) {
			continue
		}

		if r.content != nil {
			if task.isDir || task.modeType&os.ModeType != 0 {
				continue
			}
			r.grepFile(task.path, c)
			continue
		}

		select {
		case c.results <- Result{Path: task.path}:
		case <-c.stop:
		}
	}
}

// matchEntry applies every per-entry filter. Entries failing a stat are
// skipped silently.
func (r *request) matchEntry(t entryTask) bool {
	if t.depth < r.opts.MinDepth {
		return false
	}
	if r.pattern != nil && !r.pattern.Match(t.rel) {
		return false
	}
	if r.exclude.Match(t.rel) {
		return false
	}

	switch r.opts.FileType {
	case TypeFile:
		if t.isDir || t.modeType&os.ModeType != 0 {
			return false
		}
	case TypeDir:
		if !t.isDir {
			return false
		}
	case TypeSymlink:
		if t.modeType&os.ModeSymlink == 0 {
			return false
		}
	}

	if r.exts != nil {
		ext := strings.TrimPrefix(filepath.Ext(t.rel), ".")
		if ext == "" {
			return false
		}
		if _, ok := r.exts[ext]; !ok {
			return false
		}
	}

	if r.needStat() {
		info, err := os.Lstat(t.path)
		if err != nil {
			r.logger.Debug("skipping entry", zap.String("path", t.path), zap.Error(err))
			return false
		}
		if !r.matchStat(info) {
			return false
		}
	}
	return true
}

func (r *request) needStat() bool {
	o := &r.opts
	return o.MinSize > 0 || o.MaxSize > 0 ||
		!o.MTimeAfter.IsZero() || !o.MTimeBefore.IsZero() ||
		!o.ATimeAfter.IsZero() || !o.ATimeBefore.IsZero() ||
		!o.CTimeAfter.IsZero() || !o.CTimeBefore.IsZero()
}

func (r *request) matchStat(info os.FileInfo) bool {
	o := &r.opts

	// Size bounds apply to regular files only.
	if info.Mode().IsRegular() {
		if o.MinSize > 0 && info.Size() < o.MinSize {
			return false
		}
		if o.MaxSize > 0 && info.Size() > o.MaxSize {
			return false
		}
	}

	if !inWindow(info.ModTime(), o.MTimeAfter, o.MTimeBefore) {
		return false
	}
	if !o.ATimeAfter.IsZero() || !o.ATimeBefore.IsZero() {
		if !inWindow(accessTime(info), o.ATimeAfter, o.ATimeBefore) {
			return false
		}
	}
	if !o.CTimeAfter.IsZero() || !o.CTimeBefore.IsZero() {
		if !inWindow(changeTime(info), o.CTimeAfter, o.CTimeBefore) {
			return false
		}
	}
	return true
}

func inWindow(t, after, before time.Time) bool {
	if !after.IsZero() && t.Before(after) {
		return false
	}
	if !before.IsZero() && t.After(before) {
		return false
	}
	return true
}
