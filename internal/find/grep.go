package vexyglob

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"go.uber.org/zap"
)

const (
	// binarySniffLen is how much of a file is inspected for NUL bytes
	// before line search starts.
	binarySniffLen = 8192

	// maxLineLen bounds a single scanned line. Longer lines are treated
	// like binary content and end the search for that file.
	maxLineLen = 1024 * 1024
)

// grepFile streams regex matches for one file into the result channel. All
// I/O errors are per-entry: they are logged and the file is skipped, never
// aborting the operation.
func (r *request) grepFile(path string, c *streamCore) {
	f, err := os.Open(path)
	if err != nil {
		r.logger.Debug("cannot open file", zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 64*1024)
	if isBinary(br) {
		return
	}

	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, 64*1024), maxLineLen)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !r.content.MatchString(line) {
			continue
		}
		res := Result{
			Path:       path,
			LineNumber: lineNo,
			LineText:   line,
			Matches:    r.content.FindAllString(line, -1),
		}
		select {
		case c.results <- res:
		case <-c.stop:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		r.logger.Debug("search aborted", zap.String("path", path), zap.Error(err))
	}
}

// isBinary peeks at the head of the reader and reports whether it contains a
// NUL byte, the same heuristic grep family tools use.
func isBinary(br *bufio.Reader) bool {
	head, err := br.Peek(binarySniffLen)
	if err != nil && err != io.EOF {
		return true
	}
	return bytes.IndexByte(head, 0) >= 0
}
