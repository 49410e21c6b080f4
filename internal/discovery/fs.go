package discovery

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoSamples indicates that the sample glob matched nothing.
var ErrNoSamples = errors.New("no samples discovered")

// Samples returns the files matching pattern, relative to root when possible
// and sorted lexicographically.
func Samples(root, pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty sample pattern")
	}
	full := pattern
	if !filepath.IsAbs(full) {
		full = filepath.Join(root, pattern)
	}

	found, err := filepath.Glob(full)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(found) == 0 {
		return nil, ErrNoSamples
	}

	paths := make([]string, 0, len(found))
	for _, m := range found {
		paths = append(paths, mustRelOrClean(root, m))
	}
	sort.Strings(paths)
	return paths, nil
}

// ResumeFrom drops entries from the front of paths until one equals start.
// An empty start returns paths unchanged; a start that never matches
// returns an empty list.
func ResumeFrom(paths []string, start string) []string {
	if start == "" {
		return paths
	}
	want := filepath.Clean(start)
	for i, p := range paths {
		if p == start || filepath.Clean(p) == want {
			return paths[i:]
		}
	}
	return []string{}
}

// Descriptors resolves descriptor paths against root in the order given.
// A path listed twice runs twice. Files are not checked for existence here:
// an unreadable descriptor is reported as a failed test, not a discovery
// error.
func Descriptors(root string, paths []string) []string {
	resolved := make([]string, 0, len(paths))
	for _, input := range paths {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		cleaned := input
		if !filepath.IsAbs(cleaned) {
			cleaned = filepath.Join(root, cleaned)
		}
		resolved = append(resolved, mustRelOrClean(root, cleaned))
	}
	return resolved
}

func mustRelOrClean(root, path string) string {
	if root == "" {
		return filepath.Clean(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Clean(path)
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return filepath.Clean(path)
	}
	return rel
}
