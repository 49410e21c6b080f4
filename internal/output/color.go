package output

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/bgricker/swfkit/internal/config"
)

// UseColor decides whether output written to w should be colored. In auto
// mode that means w is a terminal and NO_COLOR is unset.
func UseColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(w)
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
