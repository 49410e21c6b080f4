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
		{"bundle-dir", &values.BundleDir},
		{"toolchain", &values.Toolchain},
		{"lib-base-path", &values.LibBasePath},
		{"local-lib-dir", &values.LocalLibDir},
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

	boolFlags := []struct {
		name string
		dst  *config.BoolFlag
	}{
		{"verbose", &values.Verbose},
		{"quiet", &values.Quiet},
	}
	for _, f := range boolFlags {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetBool(f.name)
		if err != nil {
			return values, fmt.Errorf("parse --%s: %w", f.name, err)
		}
		*f.dst = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
