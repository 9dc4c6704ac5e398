package vexyglob

import (
	"os"
	"runtime"
	"sort"
	"sync"
)

// Result is one item produced by a find or search operation.
//
// In path-only mode just Path is set. In content-search mode every result is
// one regex match on one line: LineNumber is 1-indexed, LineText is the full
// line without its terminator, and Matches holds the matched substrings in
// order. The shape never changes within one stream.
type Result struct {
	Path       string
	LineNumber int
	LineText   string
	Matches    []string
}

// IsContentMatch reports whether the result carries a content match.
func (r Result) IsContentMatch() bool { return r.LineNumber > 0 }

// streamCore is the state shared between the Stream handle and the producer
// goroutines. Producers hold only the core, never the Stream, so an
// abandoned handle becomes unreachable while work is still in flight and its
// cleanup can release the pool.
type streamCore struct {
	results chan Result
	stop    chan struct{}
	done    chan struct{}

	cancel sync.Once

	mu  sync.Mutex
	err error
}

// signalStop closes the stop channel at most once. Safe to call from the
// consumer, a context callback and the GC cleanup concurrently.
func (c *streamCore) signalStop() {
	c.cancel.Do(func() { close(c.stop) })
}

// setErr records the first fatal error.
func (c *streamCore) setErr(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}

// Stream is the live handle over an in-flight operation. It owns the
// receiving end of the bounded result channel and the shared stop signal;
// the worker pool owns the sending end.
//
// A Stream is finite and not restartable. Call Close to release the workers
// promptly; a Stream that merely becomes unreachable is cancelled by a GC
// cleanup, so abandonment releases blocked producers at their next send once
// the collector notices. Keep the Stream reachable while receiving from
// Results — checking Err after the loop, as the examples do, is enough.
type Stream struct {
	core *streamCore
}

func newStream(capacity int) *Stream {
	core := &streamCore{
		results: make(chan Result, capacity),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	s := &Stream{core: core}
	// The cleanup must not capture s, or the handle stays reachable forever.
	runtime.AddCleanup(s, func(c *streamCore) { c.signalStop() }, core)
	return s
}

// Next blocks until the next result is available. It returns false when the
// stream is exhausted; after that Err reports any fatal error the producers
// hit.
func (s *Stream) Next() (Result, bool) {
	r, ok := <-s.core.results
	return r, ok
}

// Results exposes the stream as a receive channel for range loops. The
// channel closes when the producers finish or the stream is closed.
func (s *Stream) Results() <-chan Result {
	return s.core.results
}

// Err returns the fatal error observed by the producers, if any. Valid once
// the stream is exhausted or closed.
func (s *Stream) Err() error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	return s.core.err
}

// Close signals cancellation, discards the remaining results and waits for
// the worker pool to exit. Closing is idempotent; the cancellation flag is
// set at most once and never cleared.
func (s *Stream) Close() error {
	s.core.signalStop()
	for range s.core.results {
		// Drain so blocked producers observe the stop signal and exit.
	}
	<-s.core.done
	return s.Err()
}

// Collect drains the stream into a slice, then sorts when a key is given.
// This trades the constant-memory streaming guarantee for random access and
// deterministic order.
//
// The sort is stable: ties keep discovery order. Sizes treat directories and
// unreadable paths as zero.
func (s *Stream) Collect(key SortKey) ([]Result, error) {
	var out []Result
	for r := range s.core.results {
		out = append(out, r)
	}
	<-s.core.done
	if err := s.Err(); err != nil {
		return nil, err
	}
	sortResults(out, key)
	return out, nil
}

func sortResults(rs []Result, key SortKey) {
	switch key {
	case SortNone:
	case SortByName:
		sort.SliceStable(rs, func(i, j int) bool {
			return baseName(rs[i].Path) < baseName(rs[j].Path)
		})
	case SortByPath:
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].Path < rs[j].Path
		})
	case SortBySize:
		sortByStat(rs, func(info os.FileInfo) int64 {
			if info.IsDir() {
				return 0
			}
			return info.Size()
		})
	case SortByMTime:
		sortByStat(rs, func(info os.FileInfo) int64 {
			return info.ModTime().UnixNano()
		})
	}
}

// sortByStat stats every path once up front so the comparator stays cheap,
// then sorts results and keys together. Failed stats sort as zero.
func sortByStat(rs []Result, key func(os.FileInfo) int64) {
	type keyed struct {
		res Result
		key int64
	}
	items := make([]keyed, len(rs))
	for i, r := range rs {
		items[i].res = r
		if info, err := os.Lstat(r.Path); err == nil {
			items[i].key = key(info)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].key < items[j].key })
	for i, it := range items {
		rs[i] = it.res
	}
}

func baseName(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' || p[i] == os.PathSeparator {
			return p[i+1:]
		}
	}
	return p
}
