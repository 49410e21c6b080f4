// Package tester runs descriptor-driven regression tests against the player
// and judges its output against the expected baseline.
package tester

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/bgricker/swfkit/internal/descriptor"
	"github.com/bgricker/swfkit/internal/diff"
	"github.com/bgricker/swfkit/internal/player"
	"github.com/bgricker/swfkit/internal/report"
)

const (
	TagOK     = "[OK]"
	TagFailed = "[failed]"
)

// Invoker runs the player once. *player.Player satisfies it.
type Invoker interface {
	Run(ctx context.Context, args []string, target string) (player.Invocation, error)
}

// Observer is notified as tests start and finish.
type Observer interface {
	TestStarted(index, total int, path string)
	TestFinished(result report.TestResult, summary report.TestSummary)
}

// Options configure a Tester.
type Options struct {
	Player   Invoker
	Args     []string
	Parser   *descriptor.Parser
	Logger   hclog.Logger
	Observer Observer
	Now      func() time.Time
}

// Tester executes descriptors sequentially. Tests are independent and
// results keep input order.
type Tester struct {
	opts Options
}

// New creates a Tester with the supplied options.
func New(opts Options) *Tester {
	if opts.Parser == nil {
		opts.Parser = descriptor.NewParser("")
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Args = append([]string{}, opts.Args...)
	return &Tester{opts: opts}
}

// Run executes every descriptor in paths and returns per-test results and the
// aggregate summary. Individual failures never stop the batch.
func (t *Tester) Run(ctx context.Context, paths []string) ([]report.TestResult, report.TestSummary) {
	var summary report.TestSummary
	results := make([]report.TestResult, 0, len(paths))

	for i, path := range paths {
		if t.opts.Observer != nil {
			t.opts.Observer.TestStarted(i, len(paths), path)
		}

		result := t.RunOne(ctx, path)
		summary.Add(result)
		results = append(results, result)

		if t.opts.Observer != nil {
			t.opts.Observer.TestFinished(result, summary)
		}
	}

	return results, summary
}

// RunOne parses and executes a single descriptor.
func (t *Tester) RunOne(ctx context.Context, path string) report.TestResult {
	d, err := t.opts.Parser.Load(path)
	if err != nil {
		t.opts.Logger.Debug("descriptor not loaded", "path", path, "error", err)
		return report.TestResult{
			Name:       descriptor.Name(path),
			Descriptor: path,
			Status:     report.StatusFailed,
			Report: HeaderLine(descriptor.Name(path), TagFailed) +
				fmt.Sprintf("  Couldn't load test file %s\n", path) +
				fmt.Sprintf("  %v\n", err),
		}
	}
	return t.Check(ctx, d)
}

// Check runs the player for d and compares its output to d.Expected.
func (t *Tester) Check(ctx context.Context, d descriptor.Descriptor) report.TestResult {
	result := report.TestResult{
		Name:       d.Name,
		Descriptor: d.Path,
		Target:     d.Target,
	}

	t.opts.Logger.Debug("running test", "name", d.Name, "target", d.Target, "args", t.opts.Args)

	start := t.opts.Now()
	inv, err := t.opts.Player.Run(ctx, t.opts.Args, d.Target)
	result.Duration = t.opts.Now().Sub(start)
	result.DurationMS = result.Duration.Milliseconds()

	if err != nil {
		result.Status = report.StatusFailed
		result.ExitCode = -1
		result.Report = HeaderLine(d.Name, TagFailed) + fmt.Sprintf("  could not run player: %v\n", err)
		return result
	}

	result.ExitCode = inv.ExitCode
	result.Output = inv.Output

	actual := Normalize(SplitLines(inv.Output))
	expected := Normalize(d.Expected)

	if inv.ExitCode != 0 {
		result.Status = report.StatusFailed
		result.Report = HeaderLine(d.Name, TagFailed) +
			fmt.Sprintf("  command returned status code %d\n", inv.ExitCode) +
			"  command output:\n" +
			indent(actual, "    ")
		return result
	}

	delta, err := diff.Unified(expected, actual)
	if err != nil {
		result.Status = report.StatusFailed
		result.Report = HeaderLine(d.Name, TagFailed) + fmt.Sprintf("  %v\n", err)
		return result
	}

	if delta == "" {
		result.Status = report.StatusPassed
		result.Report = HeaderLine(d.Name, TagOK)
		return result
	}

	result.Status = report.StatusFailed
	result.Diff = delta
	result.Report = HeaderLine(d.Name, TagFailed) + indent(SplitLines(delta), "    ")
	return result
}
