// Package output renders test, run, bundle and listing results for humans
// or machines.
package output

import (
	"fmt"
	"io"

	"github.com/bgricker/swfkit/internal/config"
	"github.com/bgricker/swfkit/internal/report"
)

// Renderer writes final reports.
type Renderer interface {
	RenderTests(results []report.TestResult, summary report.TestSummary) error
	RenderRun(results []report.SampleResult, summary report.RunSummary) error
	RenderBundle(rep report.BundleReport) error
	RenderList(list Listing) error
}

// Listing is what `list` shows: the inputs a run or test invocation would use.
type Listing struct {
	Samples []string `json:"samples"`
	Tests   []string `json:"tests"`
}

// New returns the renderer for format. colorize only affects pretty output.
func New(format string, out io.Writer, colorize bool) (Renderer, error) {
	switch format {
	case "", config.FormatPretty:
		return NewPretty(out, colorize), nil
	case config.FormatJSON:
		return NewJSON(out), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
