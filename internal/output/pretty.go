package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/bgricker/swfkit/internal/report"
	"github.com/bgricker/swfkit/internal/tester"
)

// PrettyRenderer renders results in the plain-text layout people read.
type PrettyRenderer struct {
	out  io.Writer
	ok   *color.Color
	fail *color.Color
	dim  *color.Color
}

// NewPretty creates a PrettyRenderer writing to out.
func NewPretty(out io.Writer, colorize bool) *PrettyRenderer {
	p := &PrettyRenderer{
		out:  out,
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
		dim:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.ok, p.fail, p.dim} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// RenderTests prints the pass count followed by every test's report.
func (p *PrettyRenderer) RenderTests(results []report.TestResult, summary report.TestSummary) error {
	if _, err := fmt.Fprintf(p.out, "Test results: %d/%d\n", summary.Passed, summary.Total); err != nil {
		return err
	}
	for _, res := range results {
		if _, err := io.WriteString(p.out, p.colorTag(res.Report)); err != nil {
			return err
		}
	}
	return nil
}

// RenderRun prints the closing line of a batch run. The per-sample output
// has already been streamed.
func (p *PrettyRenderer) RenderRun(_ []report.SampleResult, summary report.RunSummary) error {
	failed := fmt.Sprintf("%d non-zero exit", summary.Failed)
	if summary.Failed > 0 {
		failed = p.fail.Sprint(failed)
	}
	_, err := fmt.Fprintf(p.out, "Ran %d samples: %s ok, %s\n", summary.Total, p.ok.Sprint(summary.Succeeded), failed)
	return err
}

// RenderBundle lists copied libraries, rewrites and failures.
func (p *PrettyRenderer) RenderBundle(rep report.BundleReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Bundled %s into %s\n", rep.Target, rep.BundleDir)
	if len(rep.Copied) == 0 {
		b.WriteString(p.dim.Sprint("  no libraries copied") + "\n")
	}
	for _, lib := range rep.Copied {
		fmt.Fprintf(&b, "  %s %s\n", p.ok.Sprint("copied"), lib)
	}
	for _, rw := range rep.Rewrites {
		if rw.ID {
			fmt.Fprintf(&b, "  id     %s -> %s\n", rw.File, rw.New)
			continue
		}
		fmt.Fprintf(&b, "  change %s: %s -> %s\n", rw.File, rw.Old, rw.New)
	}
	for _, f := range rep.Failures {
		fmt.Fprintf(&b, "  %s %s (%s): %s\n", p.fail.Sprint("failed"), f.Dependency, f.File, f.Error)
	}
	_, err := io.WriteString(p.out, b.String())
	return err
}

// RenderList prints samples and test descriptors under headings.
func (p *PrettyRenderer) RenderList(list Listing) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Samples (%d)\n", len(list.Samples))
	for _, s := range list.Samples {
		fmt.Fprintf(&b, "  • %s\n", s)
	}
	fmt.Fprintf(&b, "Tests (%d)\n", len(list.Tests))
	for _, t := range list.Tests {
		fmt.Fprintf(&b, "  • %s\n", t)
	}
	_, err := io.WriteString(p.out, b.String())
	return err
}

// colorTag colors the [OK] or [failed] tag that ends a report's header line.
func (p *PrettyRenderer) colorTag(text string) string {
	header, rest, found := strings.Cut(text, "\n")
	switch {
	case strings.HasSuffix(header, tester.TagOK):
		header = strings.TrimSuffix(header, tester.TagOK) + p.ok.Sprint(tester.TagOK)
	case strings.HasSuffix(header, tester.TagFailed):
		header = strings.TrimSuffix(header, tester.TagFailed) + p.fail.Sprint(tester.TagFailed)
	}
	if !found {
		return header
	}
	return header + "\n" + rest
}
