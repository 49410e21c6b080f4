package tester

import (
	"strings"
	"unicode"
)

// HeaderWidth is the column the result tag is aligned to.
const HeaderWidth = 70

// SplitLines splits text into lines, treating "\r\n", "\r" and "\n" alike.
// A trailing line break does not produce an empty final line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// Normalize strips trailing whitespace from every line and terminates each
// with a single "\n", so platform newline or trailing-space differences
// never show up in a diff.
func Normalize(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimRightFunc(line, unicode.IsSpace) + "\n"
	}
	return out
}

// HeaderLine pads name with dots up to HeaderWidth and appends tag.
func HeaderLine(name, tag string) string {
	pad := HeaderWidth - len(name)
	if pad < 0 {
		pad = 0
	}
	return name + strings.Repeat(".", pad) + tag + "\n"
}

func indent(lines []string, pad string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(pad)
		b.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
