package main

import (
	"fmt"

	"github.com/bgricker/swfkit/internal/config"
	"github.com/spf13/cobra"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	stringFlags := []struct {
		name string
		dst  *config.StringFlag
	}{
		{"player", &values.Player},
		{"samples", &values.SampleGlob},
		{"format", &values.Format},
		{"color", &values.Color},
	}
	for _, f := range stringFlags {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetString(f.name)
		if err != nil {
			return values, fmt.Errorf("parse --%s: %w", f.name, err)
		}
		*f.dst = config.StringFlag{Value: v, Set: true}
	}

	sliceFlags := []struct {
		name string
		dst  *config.SliceFlag
	}{
		{"player-arg", &values.PlayerArgs},
		{"only", &values.Only},
		{"skip", &values.Skip},
	}
	for _, f := range sliceFlags {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetStringArray(f.name)
		if err != nil {
			return values, fmt.Errorf("parse --%s: %w", f.name, err)
		}
		*f.dst = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return values, fmt.Errorf("parse --verbose: %w", err)
		}
		values.Verbose = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("quiet") {
		v, err := flags.GetBool("quiet")
		if err != nil {
			return values, fmt.Errorf("parse --quiet: %w", err)
		}
		values.Quiet = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
