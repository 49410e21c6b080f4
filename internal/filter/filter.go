package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Pattern represents a compiled filter condition supporting substring and regex matching.
type Pattern struct {
	raw   string
	regex *regexp.Regexp
	lower string
}

// Compile transforms raw pattern strings into Pattern values. A pattern
// wrapped in slashes is a regular expression; anything else is a
// case-insensitive substring.
func Compile(patterns []string) ([]Pattern, error) {
	result := make([]Pattern, 0, len(patterns))
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") && len(raw) >= 2 {
			expr := raw[1 : len(raw)-1]
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("compile regexp %q: %w", raw, err)
			}
			result = append(result, Pattern{raw: raw, regex: re})
			continue
		}
		result = append(result, Pattern{raw: raw, lower: strings.ToLower(raw)})
	}
	return result, nil
}

// String returns the pattern as it was written.
func (p Pattern) String() string {
	return p.raw
}

// Match reports whether the pattern matches the supplied string.
func (p Pattern) Match(s string) bool {
	if s == "" {
		return false
	}
	if p.regex != nil {
		return p.regex.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), p.lower)
}

// Set is a pair of include/exclude pattern lists.
type Set struct {
	Only []Pattern
	Skip []Pattern
}

// NewSet compiles only and skip patterns into a Set.
func NewSet(only, skip []string) (Set, error) {
	o, err := Compile(only)
	if err != nil {
		return Set{}, err
	}
	s, err := Compile(skip)
	if err != nil {
		return Set{}, err
	}
	return Set{Only: o, Skip: s}, nil
}

// Keep reports whether path survives the filters. Patterns are tested against
// both the full path and its base name.
func (s Set) Keep(path string) bool {
	if len(s.Only) > 0 && !matchesAny(path, s.Only) {
		return false
	}
	if len(s.Skip) > 0 && matchesAny(path, s.Skip) {
		return false
	}
	return true
}

// Paths returns the paths that survive the filters, preserving order.
func (s Set) Paths(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		if s.Keep(p) {
			result = append(result, p)
		}
	}
	return result
}

func matchesAny(path string, patterns []Pattern) bool {
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if pattern.Match(path) || pattern.Match(base) {
			return true
		}
	}
	return false
}
