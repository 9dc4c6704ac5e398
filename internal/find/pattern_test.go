package vexyglob

import "testing"

func TestPatternMatcher(t *testing.T) {
	tests := []struct {
		name          string
		pattern       string
		caseSensitive bool
		rel           string
		want          bool
	}{
		// Literal patterns match the base name at any depth.
		{"literal base at root", "readme.md", false, "readme.md", true},
		{"literal base nested", "readme.md", false, "docs/readme.md", true},
		{"literal folds case", "readme.md", false, "docs/README.MD", true},
		{"literal sensitive mismatch", "README.md", true, "readme.md", false},
		{"literal sensitive match", "README.md", true, "sub/README.md", true},
		{"literal other name", "readme.md", false, "readme.txt", false},

		// Literal patterns with a separator match as a path suffix.
		{"literal path suffix", "src/main.go", true, "project/src/main.go", true},
		{"literal path suffix folds", "src/main.go", false, "project/SRC/MAIN.GO", true},
		{"literal path suffix miss", "src/main.go", true, "src/other.go", false},

		// Globs are anchored and "*" never crosses a separator.
		{"star stays at root", "*.py", false, "a.py", true},
		{"star does not recurse", "*.py", false, "sub/c.py", false},
		{"question mark", "a?.py", false, "ab.py", true},
		{"character class", "[ab].py", false, "b.py", true},
		{"alternatives", "*.{yml,yaml}", false, "config.yaml", true},

		// "**/" prefixed globs also match at the root.
		{"doublestar nested", "**/*.py", false, "sub/deep/c.py", true},
		{"doublestar at root", "**/*.py", false, "a.py", true},
		{"doublestar miss", "**/*.py", false, "a.txt", false},

		// Case folding on glob patterns.
		{"glob folds path", "*.py", false, "A.PY", true},
		{"glob sensitive", "*.py", true, "A.PY", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := newPatternMatcher(tt.pattern, tt.caseSensitive)
			if err != nil {
				t.Fatalf("newPatternMatcher(%q): %v", tt.pattern, err)
			}
			if got := m.Match(tt.rel); got != tt.want {
				t.Errorf("pattern %q against %q: got %v, want %v",
					tt.pattern, tt.rel, got, tt.want)
			}
		})
	}
}

func TestPatternMatcherRejectsBadGlob(t *testing.T) {
	if _, err := newPatternMatcher("[unclosed", true); err == nil {
		t.Fatal("expected error for unclosed character class")
	}
}

func TestExcludeSet(t *testing.T) {
	set, err := newExcludeSet([]string{"node_modules", "*.log", "build/cache"}, false)
	if err != nil {
		t.Fatalf("newExcludeSet: %v", err)
	}

	tests := []struct {
		rel  string
		want bool
	}{
		// Bare names anchor at any depth.
		{"node_modules", true},
		{"web/node_modules", true},
		{"a.log", true},
		{"sub/deep/b.log", true},
		{"a.txt", false},
		// Patterns with a separator stay anchored at the root.
		{"build/cache", true},
		{"other/build/cache", false},
	}
	for _, tt := range tests {
		if got := set.Match(tt.rel); got != tt.want {
			t.Errorf("exclude match %q: got %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestExcludeSetEmpty(t *testing.T) {
	set, err := newExcludeSet([]string{"", "  "}, false)
	if err != nil {
		t.Fatalf("newExcludeSet: %v", err)
	}
	if set != nil {
		t.Fatal("expected nil set for blank patterns")
	}
	if set.Match("anything") {
		t.Fatal("nil set must match nothing")
	}
}

func TestPatternCachePrewarmed(t *testing.T) {
	c := getPatternCache()
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range []string{"*.py", "**/*.go"} {
		if _, ok := c.entries[patternKey{pattern: p, caseSensitive: true}]; !ok {
			t.Errorf("common pattern %q missing from cache", p)
		}
	}
}

func TestPatternCacheStoresCompilations(t *testing.T) {
	const pattern = "*.vexyglob-cache-test"
	if _, err := compileCached(pattern, true); err != nil {
		t.Fatalf("compileCached: %v", err)
	}

	c := getPatternCache()
	c.mu.RLock()
	_, ok := c.entries[patternKey{pattern: pattern, caseSensitive: true}]
	c.mu.RUnlock()
	if !ok {
		t.Fatal("compiled pattern not cached")
	}
}
