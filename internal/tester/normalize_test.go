package tester

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/bgricker/swfkit/internal/diff"
)

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\r\nb"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\rb"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\n\nb"))
}

func TestNormalize(t *testing.T) {
	assert.Nil(t, Normalize(nil))
	assert.Equal(t, []string{"a\n", "b\n", "\n"}, Normalize([]string{"a  ", "b\r", " \t"}))
}

func TestHeaderLine(t *testing.T) {
	got := HeaderLine("frame1", TagOK)
	assert.Equal(t, "frame1"+strings.Repeat(".", 64)+"[OK]\n", got)

	long := strings.Repeat("x", 80)
	assert.Equal(t, long+"[failed]\n", HeaderLine(long, TagFailed))
}

func TestHeaderLineAlignsTag(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[a-z_0-9]{1,69}`).Draw(t, "name")
		line := HeaderLine(name, TagOK)
		if idx := strings.Index(line, TagOK); idx != HeaderWidth {
			t.Fatalf("tag at column %d for %q", idx, name)
		}
	})
}

// Output that differs from the baseline only in trailing whitespace or line
// endings must never produce a diff.
func TestNormalizeHidesWhitespaceAndNewlineDifferences(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[A-Za-z0-9 ]{0,20}[A-Za-z0-9]`), 0, 10).Draw(t, "lines")
		var b strings.Builder
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString(rapid.SampledFrom([]string{"", " ", "  ", "\t"}).Draw(t, "trailing"))
			b.WriteString(rapid.SampledFrom([]string{"\n", "\r\n"}).Draw(t, "eol"))
		}

		actual := Normalize(SplitLines(b.String()))
		expected := Normalize(lines)

		delta, err := diff.Unified(expected, actual)
		if err != nil {
			t.Fatalf("diff: %v", err)
		}
		if delta != "" {
			t.Fatalf("unexpected diff for %q:\n%s", b.String(), delta)
		}
	})
}
