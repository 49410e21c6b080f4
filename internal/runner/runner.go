// Package runner plays each sample file once for manual inspection.
package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/bgricker/swfkit/internal/player"
	"github.com/bgricker/swfkit/internal/report"
)

// Invoker runs the player once. *player.Player satisfies it.
type Invoker interface {
	Run(ctx context.Context, args []string, target string) (player.Invocation, error)
	CommandLine(args []string, target string) string
}

// Options configure how the runner executes samples.
type Options struct {
	Player Invoker
	Args   []string
	// Stdout receives the "Running:" banner. The player is expected to echo
	// its output to the same writer while it runs. Nil discards.
	Stdout io.Writer
	Logger hclog.Logger
}

// Runner executes samples sequentially.
type Runner struct {
	opts Options
}

// New creates a runner with the supplied options.
func New(opts Options) *Runner {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	opts.Args = append([]string{}, opts.Args...)
	return &Runner{opts: opts}
}

// Run plays each sample in order, continuing past non-zero exits. Output the
// player left without a final newline, including no output at all, is
// closed with one. The first failure to start the player aborts the run and
// is returned alongside the results gathered so far.
func (r *Runner) Run(ctx context.Context, samples []string) ([]report.SampleResult, report.RunSummary, error) {
	var summary report.RunSummary
	results := make([]report.SampleResult, 0, len(samples))

	for _, sample := range samples {
		fmt.Fprintf(r.opts.Stdout, "Running: %s\n", sample)
		r.opts.Logger.Debug("starting player", "command", r.opts.Player.CommandLine(r.opts.Args, sample))

		inv, err := r.opts.Player.Run(ctx, r.opts.Args, sample)
		if err != nil {
			return results, summary, fmt.Errorf("run %q: %w", sample, err)
		}

		if !inv.Terminated {
			fmt.Fprintln(r.opts.Stdout)
		}
		if !inv.Success() {
			r.opts.Logger.Debug("player exited non-zero", "sample", sample, "status", inv.ExitCode)
		}

		result := report.SampleResult{
			Path:       sample,
			ExitCode:   inv.ExitCode,
			Output:     inv.Output,
			Duration:   inv.Duration,
			DurationMS: inv.Duration.Milliseconds(),
		}
		summary.Add(result)
		results = append(results, result)
	}

	return results, summary, nil
}
