package vexyglob

import (
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
)

// ignoreFileNames are the per-directory ignore files honored during
// traversal, in precedence order.
var ignoreFileNames = []string{".gitignore", ".ignore", ".fdignore"}

// ignoreChain stacks ignore matchers from the root down to the current
// directory. Matching semantics come entirely from the gitignore library;
// the chain only decides which files apply where.
type ignoreChain struct {
	parent   *ignoreChain
	matchers []gitignore.IgnoreMatcher
}

// newRootChain loads the root directory's ignore files plus any custom
// ignore files. Missing custom files are skipped silently.
func newRootChain(root string, customFiles []string) *ignoreChain {
	chain := (*ignoreChain)(nil).descend(root)
	for _, f := range customFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if m, err := gitignore.NewGitIgnore(f, root); err == nil {
			if chain == nil {
				chain = &ignoreChain{}
			}
			chain.matchers = append(chain.matchers, m)
		}
	}
	return chain
}

// descend returns the chain for a subdirectory, loading its ignore files.
// When the directory carries none, the parent chain is reused as-is.
func (c *ignoreChain) descend(dir string) *ignoreChain {
	var matchers []gitignore.IgnoreMatcher
	for _, name := range ignoreFileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if m, err := gitignore.NewGitIgnore(p); err == nil {
			matchers = append(matchers, m)
		}
	}
	if len(matchers) == 0 {
		return c
	}
	return &ignoreChain{parent: c, matchers: matchers}
}

// Ignored reports whether any matcher in the chain ignores the path.
func (c *ignoreChain) Ignored(path string, isDir bool) bool {
	for chain := c; chain != nil; chain = chain.parent {
		for _, m := range chain.matchers {
			if m.Match(path, isDir) {
				return true
			}
		}
	}
	return false
}
