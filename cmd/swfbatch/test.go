package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bgricker/swfkit/internal/descriptor"
	"github.com/bgricker/swfkit/internal/discovery"
	"github.com/bgricker/swfkit/internal/output"
	"github.com/bgricker/swfkit/internal/tester"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [descriptor...]",
		Short: "Run descriptor tests and diff player output against expectations",
		RunE:  runTests,
	}
	cmd.Flags().Bool("strict", false, "exit non-zero when any test fails")
	cmd.Flags().Bool("progress", false, "show a progress bar on stderr while tests run")
	return cmd
}

func runTests(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("parse --strict: %w", err)
	}
	showProgress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return fmt.Errorf("parse --progress: %w", err)
	}

	paths := args
	if len(paths) == 0 {
		printUsage(cmd)
		paths = s.cfg.Tests
	}
	paths = s.filters.Paths(discovery.Descriptors(s.root, paths))

	opts := tester.Options{
		Player: s.player(nil),
		Args:   s.cfg.Player.TestArgs,
		Parser: descriptor.NewParser(s.root),
		Logger: s.logger,
	}

	var bar *output.Progress
	if showProgress && output.IsTerminal(cmd.ErrOrStderr()) {
		bar = output.NewProgress(len(paths), cmd.ErrOrStderr())
		opts.Observer = bar
	}

	results, summary := tester.New(opts).Run(cmd.Context(), paths)
	if bar != nil {
		bar.Finish()
	}

	if err := s.renderer.RenderTests(results, summary); err != nil {
		return err
	}

	if strict && summary.Failed > 0 {
		return fmt.Errorf("%d of %d tests failed", summary.Failed, summary.Total)
	}
	return nil
}

func printUsage(cmd *cobra.Command) {
	errOut := cmd.ErrOrStderr()
	fmt.Fprintln(errOut, "swfbatch test: runs automated tests against the player")
	fmt.Fprintln(errOut, "usage:")
	fmt.Fprintf(errOut, "  %s [list of test files]\n", cmd.CommandPath())
	fmt.Fprintln(errOut, "If no files are given, runs the list of known tests that should pass.")
	fmt.Fprintln(errOut)
}
