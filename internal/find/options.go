// Package vexyglob provides gitignore-aware parallel file finding and
// content search with streaming results.
package vexyglob

import (
	"os"
	"regexp"
	"runtime"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// File type filter values, matching the conventional fd/find letters.
const (
	TypeFile    = "f"
	TypeDir     = "d"
	TypeSymlink = "l"
)

// Traversal selects the directory traversal order.
type Traversal int

const (
	// TraversalDFS is depth-first order, the only order the walker supports.
	TraversalDFS Traversal = iota
	// TraversalBFS is breadth-first order. Requesting it fails with
	// UnsupportedOperationError.
	TraversalBFS
)

// SortKey selects the sort order applied by Collect. Sorting forces eager
// collection of all results.
type SortKey string

const (
	SortNone    SortKey = ""
	SortByName  SortKey = "name"
	SortByPath  SortKey = "path"
	SortBySize  SortKey = "size"
	SortByMTime SortKey = "mtime"
)

// Options describes one find or search operation. The zero value searches
// the current directory for everything, respecting ignore files.
//
// Options is read once when the operation starts and never mutated
// afterwards; the same value may be reused across calls.
type Options struct {
	// Root is the directory to start from. Defaults to ".".
	Root string

	// Pattern is the glob matched against paths relative to Root. A pattern
	// without a separator matches base names when it is a literal, and
	// root-level entries when it contains glob metacharacters; use "**/" to
	// match at any depth. Defaults to "*" (everything).
	Pattern string

	// Content, when non-empty, switches to content search: each result is
	// one regex match on one line of one matching file.
	Content string

	// FileType filters by entry type: TypeFile, TypeDir or TypeSymlink.
	FileType string

	// Extensions filters files by extension, without the leading dot.
	Extensions []string

	// Exclude holds glob patterns removed from the results. Bare names match
	// at any depth.
	Exclude []string

	// MaxDepth bounds recursion; 0 means unlimited. MinDepth suppresses
	// results closer to the root than the given depth (root children are
	// depth 1).
	MaxDepth int
	MinDepth int

	// MinSize and MaxSize bound file sizes in bytes; 0 means unbounded.
	// Directories are never size-filtered.
	MinSize int64
	MaxSize int64

	// Time windows. Zero values mean unbounded. CTime uses the platform
	// change time where available and falls back to the modification time.
	MTimeAfter  time.Time
	MTimeBefore time.Time
	ATimeAfter  time.Time
	ATimeBefore time.Time
	CTimeAfter  time.Time
	CTimeBefore time.Time

	// Hidden includes dotfiles and dot-directories.
	Hidden bool

	// IgnoreGit disables .gitignore/.ignore/.fdignore handling.
	IgnoreGit bool

	// CustomIgnoreFiles lists extra ignore files (gitignore syntax) applied
	// at the root. Missing files are skipped.
	CustomIgnoreFiles []string

	// CaseSensitive overrides case handling for both the path pattern and
	// the content regex. When nil, smart case applies per pattern: an
	// all-lowercase pattern matches case-insensitively, a pattern with any
	// uppercase letter matches exactly.
	CaseSensitive *bool

	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool

	// SameFileSystem prunes directories on other filesystems.
	SameFileSystem bool

	// Threads is the worker count. 0 means runtime.NumCPU().
	Threads int

	// BufferSize overrides the result channel capacity. 0 picks a capacity
	// tuned to the workload.
	BufferSize int

	// Sort selects the Collect sort order.
	Sort SortKey

	// Traversal must be TraversalDFS.
	Traversal Traversal

	// Logger, when nil, is built from LogLevel.
	Logger   *zap.Logger
	LogLevel LogLevel
}

// request is a compiled, validated Options. It is the immutable input handed
// to the worker pool.
type request struct {
	opts    Options
	root    string
	pattern *patternMatcher // nil matches everything
	exclude *excludeSet     // nil excludes nothing
	content *regexp.Regexp  // nil means path-only results
	exts    map[string]struct{}
	threads int
	logger  *zap.Logger
}

// smartCase resolves effective case sensitivity for one pattern: an explicit
// override wins, otherwise any uppercase letter makes the pattern sensitive.
func smartCase(pattern string, override *bool) bool {
	if override != nil {
		return *override
	}
	for _, r := range pattern {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// normalizeExtensions strips leading dots and drops empty values.
func normalizeExtensions(exts []string) map[string]struct{} {
	if len(exts) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.TrimPrefix(strings.TrimSpace(e), ".")
		if e != "" {
			out[e] = struct{}{}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// compile validates opts and resolves every pattern before any goroutine
// starts. All pattern failures surface here as PatternError.
func compile(opts Options) (*request, error) {
	if opts.Traversal != TraversalDFS {
		return nil, &UnsupportedOperationError{Op: "breadth-first traversal"}
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	if _, err := os.Lstat(root); err != nil {
		return nil, &SearchError{Path: root, Err: err}
	}

	r := &request{
		opts:    opts,
		root:    root,
		exts:    normalizeExtensions(opts.Extensions),
		threads: opts.Threads,
		logger:  opts.Logger,
	}
	if r.threads <= 0 {
		r.threads = runtime.NumCPU()
	}
	if r.logger == nil {
		r.logger = createLogger(opts.LogLevel)
	}

	pattern := opts.Pattern
	if pattern != "" && pattern != "*" && pattern != "**" {
		pm, err := newPatternMatcher(pattern, smartCase(pattern, opts.CaseSensitive))
		if err != nil {
			return nil, &PatternError{Pattern: pattern, Err: err}
		}
		r.pattern = pm
	}

	if len(opts.Exclude) > 0 {
		ex, err := newExcludeSet(opts.Exclude, smartCaseAll(opts.Exclude, opts.CaseSensitive))
		if err != nil {
			return nil, err
		}
		r.exclude = ex
	}

	if opts.Content != "" {
		expr := norm.NFC.String(opts.Content)
		if !smartCase(opts.Content, opts.CaseSensitive) {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &PatternError{Pattern: opts.Content, Err: err}
		}
		r.content = re
	}

	return r, nil
}

// smartCaseAll resolves one shared sensitivity for the exclude set: sensitive
// if any pattern carries an uppercase letter, unless overridden.
func smartCaseAll(patterns []string, override *bool) bool {
	if override != nil {
		return *override
	}
	for _, p := range patterns {
		if smartCase(p, nil) {
			return true
		}
	}
	return false
}

// capacity returns the result channel capacity for this workload. Content
// matches arrive slowly and are large, so the channel stays small; sorted
// runs collect everything anyway and benefit from a deep channel; plain
// enumeration scales with the worker count.
func (r *request) capacity() int {
	if r.opts.BufferSize > 0 {
		return r.opts.BufferSize
	}
	switch {
	case r.content != nil:
		return 500
	case r.opts.Sort != SortNone:
		return 10000
	default:
		n := r.threads
		if n < 1 {
			n = 1
		}
		if n > 8 {
			n = 8
		}
		return 1000 * n
	}
}
