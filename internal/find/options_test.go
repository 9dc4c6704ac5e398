package vexyglob

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestSmartCase(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		override *bool
		want     bool
	}{
		{"lowercase is insensitive", "*.py", nil, false},
		{"uppercase is sensitive", "README.md", nil, true},
		{"single uppercase rune is sensitive", "*.Py", nil, true},
		{"override forces sensitive", "*.py", boolPtr(true), true},
		{"override forces insensitive", "README.md", boolPtr(false), false},
		{"empty pattern is insensitive", "", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, smartCase(tt.pattern, tt.override))
		})
	}
}

func TestSmartCaseAll(t *testing.T) {
	assert.False(t, smartCaseAll([]string{"*.log", "node_modules"}, nil))
	assert.True(t, smartCaseAll([]string{"*.log", "Build"}, nil))
	assert.False(t, smartCaseAll([]string{"Build"}, boolPtr(false)))
	assert.True(t, smartCaseAll(nil, boolPtr(true)))
}

func TestNormalizeExtensions(t *testing.T) {
	assert.Nil(t, normalizeExtensions(nil))
	assert.Nil(t, normalizeExtensions([]string{"", "  ", "."}))

	got := normalizeExtensions([]string{"py", ".go", " rs "})
	require.Len(t, got, 3)
	assert.Contains(t, got, "py")
	assert.Contains(t, got, "go")
	assert.Contains(t, got, "rs")
}

func TestCompileDefaults(t *testing.T) {
	r, err := compile(Options{Root: t.TempDir()})
	require.NoError(t, err)

	assert.Nil(t, r.pattern)
	assert.Nil(t, r.exclude)
	assert.Nil(t, r.content)
	assert.Greater(t, r.threads, 0)
	assert.NotNil(t, r.logger)
}

func TestCompileSkipsMatchAllPatterns(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"", "*", "**"} {
		r, err := compile(Options{Root: dir, Pattern: p})
		require.NoError(t, err)
		assert.Nil(t, r.pattern, "pattern %q should compile to nil matcher", p)
	}
}

func TestCompileRejectsBreadthFirst(t *testing.T) {
	_, err := compile(Options{Root: t.TempDir(), Traversal: TraversalBFS})
	require.Error(t, err)

	var uerr *UnsupportedOperationError
	require.True(t, errors.As(err, &uerr))
	assert.Contains(t, uerr.Error(), "breadth-first")
}

func TestCompileRejectsMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-dir")
	_, err := compile(Options{Root: missing})
	require.Error(t, err)

	var serr *SearchError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, missing, serr.Path)
}

func TestCompileRejectsBadPatterns(t *testing.T) {
	dir := t.TempDir()

	_, err := compile(Options{Root: dir, Pattern: "[invalid"})
	var perr *PatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "[invalid", perr.Pattern)

	_, err = compile(Options{Root: dir, Content: "(unclosed"})
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "(unclosed", perr.Pattern)

	_, err = compile(Options{Root: dir, Exclude: []string{"[bad"}})
	require.True(t, errors.As(err, &perr))
}

func TestCompileContentSmartCase(t *testing.T) {
	dir := t.TempDir()

	r, err := compile(Options{Root: dir, Content: "error"})
	require.NoError(t, err)
	assert.True(t, r.content.MatchString("An ERROR occurred"))

	r, err = compile(Options{Root: dir, Content: "Error"})
	require.NoError(t, err)
	assert.False(t, r.content.MatchString("an error occurred"))
	assert.True(t, r.content.MatchString("an Error occurred"))

	r, err = compile(Options{Root: dir, Content: "error", CaseSensitive: boolPtr(true)})
	require.NoError(t, err)
	assert.False(t, r.content.MatchString("An ERROR occurred"))
}

func TestCapacity(t *testing.T) {
	dir := t.TempDir()

	r, err := compile(Options{Root: dir, Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, 500, r.capacity())

	r, err = compile(Options{Root: dir, Sort: SortByPath})
	require.NoError(t, err)
	assert.Equal(t, 10000, r.capacity())

	r, err = compile(Options{Root: dir, Threads: 2})
	require.NoError(t, err)
	assert.Equal(t, 2000, r.capacity())

	r, err = compile(Options{Root: dir, Threads: 32})
	require.NoError(t, err)
	assert.Equal(t, 8000, r.capacity())

	r, err = compile(Options{Root: dir, BufferSize: 42, Sort: SortByPath})
	require.NoError(t, err)
	assert.Equal(t, 42, r.capacity())
}

func TestIsVexyGlobError(t *testing.T) {
	assert.True(t, IsVexyGlobError(&PatternError{Pattern: "["}))
	assert.True(t, IsVexyGlobError(&SearchError{Path: "/x"}))
	assert.True(t, IsVexyGlobError(&UnsupportedOperationError{Op: "bfs"}))
	assert.False(t, IsVexyGlobError(errors.New("plain")))
	assert.False(t, IsVexyGlobError(nil))
}
