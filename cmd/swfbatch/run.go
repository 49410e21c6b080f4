package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bgricker/swfkit/internal/config"
	"github.com/bgricker/swfkit/internal/discovery"
	"github.com/bgricker/swfkit/internal/runner"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [start-file]",
		Short: "Play every sample once, optionally resuming from start-file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSamples,
	}
}

func runSamples(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	samples, err := findSamples(s)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		samples = discovery.ResumeFrom(samples, args[0])
	}

	if len(samples) == 0 && s.cfg.Format == config.FormatPretty {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching samples")
		return nil
	}

	stream := cmd.OutOrStdout()
	if s.cfg.Format == config.FormatJSON {
		stream = io.Discard
	}

	r := runner.New(runner.Options{
		Player: s.player(stream),
		Args:   s.cfg.Player.RunArgs,
		Stdout: stream,
		Logger: s.logger,
	})
	results, summary, err := r.Run(cmd.Context(), samples)
	if err != nil {
		return err
	}

	return s.renderer.RenderRun(results, summary)
}

// findSamples globs the configured samples and applies --only/--skip. No
// matches is an empty list, not an error.
func findSamples(s *session) ([]string, error) {
	samples, err := discovery.Samples(s.root, s.cfg.Samples.Glob)
	if err != nil {
		if errors.Is(err, discovery.ErrNoSamples) {
			return nil, nil
		}
		return nil, err
	}
	return s.filters.Paths(samples), nil
}
