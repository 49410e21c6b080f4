package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/bgricker/swfkit/internal/report"
)

// Progress draws a progress bar while tests run. It satisfies
// tester.Observer.
type Progress struct {
	bar *progressbar.ProgressBar
	out io.Writer
}

// NewProgress creates a bar for total tests writing to out.
func NewProgress(total int, out io.Writer) *Progress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(out),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &Progress{bar: bar, out: out}
}

// TestStarted is a no-op; the bar advances when a test finishes.
func (p *Progress) TestStarted(int, int, string) {}

// TestFinished advances the bar and updates the pass/fail counts.
func (p *Progress) TestFinished(_ report.TestResult, summary report.TestSummary) {
	p.bar.Describe(describe(summary.Passed, summary.Failed))
	_ = p.bar.Set(summary.Total)
}

// Finish completes the bar.
func (p *Progress) Finish() {
	_ = p.bar.Finish()
}

func describe(passed, failed int) string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[ok: %d", passed) +
		" | " +
		color.RedString("failed: %d]", failed)
}
