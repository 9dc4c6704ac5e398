package vexyglob

import (
	"context"

	internal "github.com/vexyart/vexyglob/internal/find"
)

// Re-export the core types from the internal package.
type (
	// Options describes one find or search operation.
	Options = internal.Options

	// Result is one streamed item: a path, or a content match.
	Result = internal.Result

	// Stream is the lazy handle over an in-flight operation.
	Stream = internal.Stream

	// GlobOptions configures Glob and IGlob.
	GlobOptions = internal.GlobOptions

	// SortKey selects the Collect sort order.
	SortKey = internal.SortKey

	// Traversal selects the traversal order.
	Traversal = internal.Traversal

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel

	// WatchHandler processes one result produced while watching.
	WatchHandler = internal.WatchHandler

	// PatternError reports a malformed glob or content regex.
	PatternError = internal.PatternError

	// SearchError reports a fatal I/O or permission failure.
	SearchError = internal.SearchError

	// UnsupportedOperationError reports a request the engine cannot serve.
	UnsupportedOperationError = internal.UnsupportedOperationError
)

// Re-export the constants.
const (
	TypeFile    = internal.TypeFile
	TypeDir     = internal.TypeDir
	TypeSymlink = internal.TypeSymlink

	TraversalDFS = internal.TraversalDFS
	TraversalBFS = internal.TraversalBFS

	SortNone    = internal.SortNone
	SortByName  = internal.SortByName
	SortByPath  = internal.SortByPath
	SortBySize  = internal.SortBySize
	SortByMTime = internal.SortByMTime

	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug
)

// Find starts a find or search operation and returns its result stream.
func Find(ctx context.Context, opts Options) (*Stream, error) {
	return internal.Find(ctx, opts)
}

// FindAll runs Find eagerly, sorted by opts.Sort when set.
func FindAll(ctx context.Context, opts Options) ([]Result, error) {
	return internal.FindAll(ctx, opts)
}

// Search streams content matches inside files matching opts.Pattern.
func Search(ctx context.Context, contentRegex string, opts Options) (*Stream, error) {
	return internal.Search(ctx, contentRegex, opts)
}

// SearchAll runs Search eagerly.
func SearchAll(ctx context.Context, contentRegex string, opts Options) ([]Result, error) {
	return internal.SearchAll(ctx, contentRegex, opts)
}

// Glob returns all paths matching pattern, eagerly, in path order.
func Glob(ctx context.Context, pattern string, gopts GlobOptions) ([]string, error) {
	return internal.Glob(ctx, pattern, gopts)
}

// IGlob returns a lazy stream of paths matching pattern.
func IGlob(ctx context.Context, pattern string, gopts GlobOptions) (*Stream, error) {
	return internal.IGlob(ctx, pattern, gopts)
}

// WatchChanges invokes handler for filesystem changes passing the filters.
func WatchChanges(ctx context.Context, opts Options, handler WatchHandler) error {
	return internal.WatchChanges(ctx, opts, handler)
}

// ParseTime converts a human-readable time expression to an absolute time.
var ParseTime = internal.ParseTime

// ParseSize converts a human-readable size like "10k" to a byte count.
var ParseSize = internal.ParseSize

// IsVexyGlobError reports whether err belongs to this package's taxonomy.
var IsVexyGlobError = internal.IsVexyGlobError
