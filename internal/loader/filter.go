package loader

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FilterOptions defines criteria for excluding files during discovery.
type FilterOptions struct {
	// ExcludeDirs is a list of directory names to exclude.
	// Matching is segment-aware: ".git" excludes ".git/foo" and
	// "sub/.git/bar", but not ".github/foo".
	ExcludeDirs []string

	// ExcludePatterns is a list of doublestar patterns matched against
	// the slash-separated path relative to the walk root, e.g.
	// "zuul.d/legacy/**" or "**/*.generated.yaml".
	ExcludePatterns []string
}

// DefaultExcludeDirs returns the directory names skipped by default when
// walking a repository tree.
func DefaultExcludeDirs() []string {
	return []string{
		".git",
		".tox",
		".venv",
		"node_modules",
		"vendor",
	}
}

// excludedDir returns true if name matches one of the excluded directory
// segments.
func excludedDir(name string, excludes []string) bool {
	for _, exclude := range excludes {
		if name == exclude {
			return true
		}
	}
	return false
}

// excludedPath returns true if the relative path matches any exclude
// pattern. Invalid patterns never match.
func excludedPath(relPath string, patterns []string) bool {
	relPath = strings.ReplaceAll(relPath, "\\", "/")
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}
