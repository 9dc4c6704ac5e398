package vexyglob

import (
	"context"
	"strings"
)

// Find starts a find or search operation and returns its result stream.
//
// Option translation happens synchronously: an invalid glob or content regex
// fails with PatternError and an inaccessible root with SearchError before
// any worker starts. Results carry no order; pass a SortKey to Collect or
// use FindAll for deterministic output.
func Find(ctx context.Context, opts Options) (*Stream, error) {
	r, err := compile(opts)
	if err != nil {
		return nil, err
	}
	s := newStream(r.capacity())
	r.run(ctx, s)
	return s, nil
}

// FindAll runs Find eagerly and returns the collected results, sorted by
// opts.Sort when set.
func FindAll(ctx context.Context, opts Options) ([]Result, error) {
	s, err := Find(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s.Collect(opts.Sort)
}

// Search streams content matches for contentRegex inside files matching
// opts.Pattern. Every result is a content match.
func Search(ctx context.Context, contentRegex string, opts Options) (*Stream, error) {
	opts.Content = contentRegex
	if opts.FileType == "" {
		opts.FileType = TypeFile
	}
	return Find(ctx, opts)
}

// SearchAll runs Search eagerly.
func SearchAll(ctx context.Context, contentRegex string, opts Options) ([]Result, error) {
	opts.Content = contentRegex
	if opts.FileType == "" {
		opts.FileType = TypeFile
	}
	return FindAll(ctx, opts)
}

// GlobOptions configures the Glob and IGlob convenience calls.
type GlobOptions struct {
	// Recursive lets the pattern match at any depth by prefixing "**/"
	// when the pattern has no "**" of its own.
	Recursive bool

	// RootDir is the directory to search. Defaults to ".".
	RootDir string

	// IncludeHidden includes dotfiles.
	IncludeHidden bool
}

// Glob returns all paths matching pattern, eagerly, in path order. It is the
// analogue of the standard library glob call.
func Glob(ctx context.Context, pattern string, gopts GlobOptions) ([]string, error) {
	opts := globFindOptions(pattern, gopts)
	opts.Sort = SortByPath
	results, err := FindAll(ctx, opts)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(results))
	for i, r := range results {
		paths[i] = r.Path
	}
	return paths, nil
}

// IGlob returns a lazy stream of paths matching pattern, the analogue of a
// streaming iglob call.
func IGlob(ctx context.Context, pattern string, gopts GlobOptions) (*Stream, error) {
	return Find(ctx, globFindOptions(pattern, gopts))
}

func globFindOptions(pattern string, gopts GlobOptions) Options {
	if gopts.Recursive && !strings.Contains(pattern, "**") {
		pattern = "**/" + pattern
	}
	root := gopts.RootDir
	if root == "" {
		root = "."
	}
	return Options{
		Pattern: pattern,
		Root:    root,
		Hidden:  gopts.IncludeHidden,
	}
}
