// Package descriptor parses regression test descriptor files.
//
// A descriptor is plain text. Lines starting with '#' are comments. The first
// remaining line names the input file to play; every line after it is one
// line of expected player output.
package descriptor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoTarget is returned when a descriptor has no non-comment line.
var ErrNoTarget = errors.New("descriptor names no input file")

// Descriptor is one parsed test case.
type Descriptor struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Target   string   `json:"target"`
	Expected []string `json:"expected"`
}

// Parser loads descriptor files from disk.
type Parser struct {
	Root string
}

// NewParser constructs a Parser that resolves descriptor paths relative to root.
func NewParser(root string) *Parser {
	return &Parser{Root: root}
}

// Load reads and parses the descriptor at relPath.
func (p *Parser) Load(relPath string) (Descriptor, error) {
	full := relPath
	if !filepath.IsAbs(full) && p.Root != "" {
		full = filepath.Join(p.Root, relPath)
	}
	f, err := os.Open(full)
	if err != nil {
		return Descriptor{}, fmt.Errorf("open descriptor %q: %w", relPath, err)
	}
	defer f.Close()
	return Decode(f, relPath)
}

// Decode parses a descriptor from r. displayPath names the file in errors and
// is the source of the test name.
func Decode(r io.Reader, displayPath string) (Descriptor, error) {
	d := Descriptor{
		Name: Name(displayPath),
		Path: displayPath,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	haveTarget := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		if !haveTarget {
			d.Target = strings.TrimRight(line, " \t\r\n")
			haveTarget = true
			continue
		}
		d.Expected = append(d.Expected, line)
	}
	if err := scanner.Err(); err != nil {
		return Descriptor{}, fmt.Errorf("read descriptor %q: %w", displayPath, err)
	}
	if !haveTarget || d.Target == "" {
		return Descriptor{}, fmt.Errorf("parse descriptor %q: %w", displayPath, ErrNoTarget)
	}
	return d, nil
}

// Name derives a test name from a descriptor path: the base name up to its
// first dot.
func Name(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}
