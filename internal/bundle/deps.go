// Package bundle copies non-system dynamic libraries next to an executable
// and rewrites recorded link paths to loader-relative form.
package bundle

import (
	"regexp"
	"strings"
)

// Kind classifies one line of dependency-listing output.
type Kind int

const (
	// KindNone is a dependency left untouched, usually a system library.
	KindNone Kind = iota
	// KindLocal is an absolute path under /usr/local or /opt/local.
	KindLocal
	// KindRPath is an @rpath-relative reference.
	KindRPath
)

func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindRPath:
		return "rpath"
	default:
		return "none"
	}
}

var (
	localLine = regexp.MustCompile(`\s+/((usr|opt)/local/.*) \(.*\)$`)
	rpathLine = regexp.MustCompile(`\s+(@rpath(.*)) \(.*\)$`)
)

// LoaderPrefix is prepended to a bundled library's file name to form its
// loader-relative path.
const LoaderPrefix = "@loader_path/../libs/"

// Dependency is one linked library recorded in a binary.
type Dependency struct {
	// Referrer is the binary whose listing produced this line.
	Referrer string
	// Recorded is the path exactly as the binary stores it.
	Recorded string
	Kind     Kind
	// Component is the local path without its leading slash, or the part
	// of an @rpath reference after "@rpath".
	Component string
}

// ParseLine classifies one line of `otool -XL` output. Lines that match
// neither grammar return false.
func ParseLine(line string) (Dependency, bool) {
	line = strings.TrimRight(line, "\r\n")
	if m := localLine.FindStringSubmatch(line); m != nil && m[1] != "" {
		return Dependency{Recorded: "/" + m[1], Kind: KindLocal, Component: m[1]}, true
	}
	if m := rpathLine.FindStringSubmatch(line); m != nil && m[2] != "" {
		return Dependency{Recorded: m[1], Kind: KindRPath, Component: m[2]}, true
	}
	return Dependency{}, false
}

// RPathToken is the name fragment used to find an @rpath library on disk:
// the component without surrounding slashes, cut at its first dot.
func RPathToken(component string) string {
	token := strings.Trim(component, "/")
	token, _, _ = strings.Cut(token, ".")
	return token
}

// LoaderPath returns the loader-relative path for a bundled library name.
func LoaderPath(name string) string {
	return LoaderPrefix + name
}
