package main

import (
	"github.com/spf13/cobra"

	"github.com/bgricker/swfkit/internal/discovery"
	"github.com/bgricker/swfkit/internal/output"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [descriptor...]",
		Short: "List the samples and test descriptors that run and test would use",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	samples, err := findSamples(s)
	if err != nil {
		return err
	}

	tests := args
	if len(tests) == 0 {
		tests = s.cfg.Tests
	}
	tests = s.filters.Paths(discovery.Descriptors(s.root, tests))

	return s.renderer.RenderList(output.Listing{Samples: samples, Tests: tests})
}
