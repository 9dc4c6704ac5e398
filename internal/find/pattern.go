package vexyglob

import (
	"path"
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

// patternMatcher matches paths relative to the search root. Literal patterns
// take a string-comparison fast path; everything else compiles through the
// shared pattern cache.
type patternMatcher struct {
	literal       string
	hasSeparator  bool
	caseSensitive bool
	globs         []glob.Glob
}

// isLiteralPattern reports whether the pattern contains no glob syntax.
func isLiteralPattern(p string) bool {
	return !strings.ContainsAny(p, "*?[]{}!")
}

// newPatternMatcher compiles pattern with the given case sensitivity.
//
// Patterns starting with "**/" additionally match at the root: "**/*.py"
// matches both "a.py" and "sub/c.py".
func newPatternMatcher(pattern string, caseSensitive bool) (*patternMatcher, error) {
	m := &patternMatcher{
		hasSeparator:  strings.ContainsRune(pattern, '/'),
		caseSensitive: caseSensitive,
	}

	if isLiteralPattern(pattern) {
		m.literal = pattern
		return m, nil
	}

	for _, variant := range patternVariants(pattern) {
		g, err := compileCached(variant, caseSensitive)
		if err != nil {
			return nil, err
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// patternVariants expands a leading "**/" so the remainder also matches
// root-level entries, mirroring gitignore-style recursive globs.
func patternVariants(pattern string) []string {
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
		return []string{pattern, rest}
	}
	return []string{pattern}
}

// Match reports whether the slash-separated relative path matches.
func (m *patternMatcher) Match(rel string) bool {
	if m.literal != "" {
		if m.hasSeparator {
			return foldSuffix(rel, m.literal, m.caseSensitive)
		}
		base := path.Base(rel)
		if m.caseSensitive {
			return base == m.literal
		}
		return strings.EqualFold(base, m.literal)
	}

	candidate := rel
	if !m.caseSensitive {
		candidate = strings.ToLower(rel)
	}
	for _, g := range m.globs {
		if g.Match(candidate) {
			return true
		}
	}
	return false
}

func foldSuffix(s, suffix string, caseSensitive bool) bool {
	if caseSensitive {
		return strings.HasSuffix(s, suffix)
	}
	return strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
}

// excludeSet removes matching paths from the results. Bare-name patterns are
// anchored at any depth, so "*.log" excludes logs in every directory.
type excludeSet struct {
	caseSensitive bool
	globs         []glob.Glob
}

func newExcludeSet(patterns []string, caseSensitive bool) (*excludeSet, error) {
	set := &excludeSet{caseSensitive: caseSensitive}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		adjusted := p
		if !strings.ContainsRune(p, '/') {
			adjusted = "**/" + p
		}
		for _, variant := range patternVariants(adjusted) {
			g, err := compileCached(variant, caseSensitive)
			if err != nil {
				return nil, &PatternError{Pattern: p, Err: err}
			}
			set.globs = append(set.globs, g)
		}
	}
	if len(set.globs) == 0 {
		return nil, nil
	}
	return set, nil
}

func (s *excludeSet) Match(rel string) bool {
	if s == nil {
		return false
	}
	candidate := rel
	if !s.caseSensitive {
		candidate = strings.ToLower(rel)
	}
	for _, g := range s.globs {
		if g.Match(candidate) {
			return true
		}
	}
	return false
}

// --------------------------------------------------------------------------
// Process-wide pattern cache
// --------------------------------------------------------------------------

// patternCacheSize caps the number of cached compilations.
const patternCacheSize = 1000

// commonPatterns are pre-compiled when the cache initializes, so the first
// call with a typical pattern pays no compilation cost.
var commonPatterns = []string{
	"*.py", "*.rs", "*.js", "*.ts", "*.jsx", "*.tsx",
	"*.c", "*.cpp", "*.h", "*.hpp", "*.java", "*.go",
	"*.rb", "*.php", "*.swift", "*.kt", "*.scala",
	"*.json", "*.yaml", "*.yml", "*.toml", "*.xml",
	"*.csv", "*.txt", "*.md", "*.rst",
	"*.html", "*.css", "*.scss", "*.sass", "*.less",
	"**/*.py", "**/*.rs", "**/*.js", "**/*.ts", "**/*.go",
	"**/node_modules/**", "**/.git/**", "**/target/**",
	"**/__pycache__/**", "**/.venv/**",
}

type patternKey struct {
	pattern       string
	caseSensitive bool
}

// patternCache is the one piece of process-wide state: compiled globs keyed
// by pattern and case sensitivity, initialized once and shared by every
// request. Eviction is oldest-first once the cap is reached.
type patternCache struct {
	mu      sync.RWMutex
	entries map[patternKey]glob.Glob
	order   []patternKey
}

var (
	cacheOnce   sync.Once
	globalCache *patternCache
)

func getPatternCache() *patternCache {
	cacheOnce.Do(func() {
		c := &patternCache{
			entries: make(map[patternKey]glob.Glob, patternCacheSize),
		}
		for _, p := range commonPatterns {
			for _, cs := range []bool{true, false} {
				if g, err := compilePattern(p, cs); err == nil {
					key := patternKey{pattern: p, caseSensitive: cs}
					c.entries[key] = g
					c.order = append(c.order, key)
				}
			}
		}
		globalCache = c
	})
	return globalCache
}

// compileCached returns the compiled glob for pattern, compiling and caching
// it on first use.
func compileCached(pattern string, caseSensitive bool) (glob.Glob, error) {
	c := getPatternCache()
	key := patternKey{pattern: pattern, caseSensitive: caseSensitive}

	c.mu.RLock()
	g, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return g, nil
	}

	g, err := compilePattern(pattern, caseSensitive)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.entries[key]; ok {
		g = existing
	} else {
		if len(c.order) >= patternCacheSize {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.entries[key] = g
		c.order = append(c.order, key)
	}
	c.mu.Unlock()
	return g, nil
}

// compilePattern compiles with '/' as the separator, so "*" never crosses
// directory boundaries. Case-insensitive patterns are folded at compile time
// and matched against folded paths.
func compilePattern(pattern string, caseSensitive bool) (glob.Glob, error) {
	if !caseSensitive {
		pattern = strings.ToLower(pattern)
	}
	return glob.Compile(pattern, '/')
}
