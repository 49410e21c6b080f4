package diff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Context is the number of unchanged lines shown around each hunk.
const Context = 3

// Unified returns a unified diff from expected to actual, labelled
// "expected" and "actual". Both inputs are sequences of lines that already
// carry their terminating newline. An empty string means no difference.
func Unified(expected, actual []string) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        expected,
		B:        actual,
		FromFile: "expected",
		ToFile:   "actual",
		Context:  Context,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("diff output: %w", err)
	}
	return text, nil
}
