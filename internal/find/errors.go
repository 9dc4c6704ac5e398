package vexyglob

import (
	"errors"
	"fmt"
)

// PatternError reports a malformed glob or content regex. It is returned
// before any traversal work starts.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// SearchError reports an I/O or permission failure that aborted the whole
// operation. Per-entry failures are skipped silently and never surface as a
// SearchError.
type SearchError struct {
	Path string
	Err  error
}

func (e *SearchError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("search failed at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("search failed: %v", e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// UnsupportedOperationError reports a request the traversal engine cannot
// perform, such as breadth-first ordering.
type UnsupportedOperationError struct {
	Op string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation: %s", e.Op)
}

// IsVexyGlobError reports whether err belongs to this package's error
// taxonomy. Useful for catch-all handling in callers that do not care which
// of the three categories occurred.
func IsVexyGlobError(err error) bool {
	var pe *PatternError
	var se *SearchError
	var ue *UnsupportedOperationError
	return errors.As(err, &pe) || errors.As(err, &se) || errors.As(err, &ue)
}
