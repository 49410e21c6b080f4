package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "swfbatch",
		Short:         "swfbatch runs SWF samples and regression tests through the player",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	persistent := cmd.PersistentFlags()
	persistent.String("player", "", "player executable (default ./gameswf_test_ogl)")
	persistent.StringArray("player-arg", nil, "argument passed to the player before the input file (repeatable)")
	persistent.String("samples", "", "glob locating sample files")
	persistent.StringArray("only", nil, "include only matching files")
	persistent.StringArray("skip", nil, "exclude matching files")
	persistent.String("format", "pretty", "output format (pretty|json)")
	persistent.String("color", "auto", "colorize output (auto|always|never)")
	persistent.BoolP("verbose", "v", false, "log debug detail to stderr")
	persistent.BoolP("quiet", "q", false, "log warnings only")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newTestCmd())

	return cmd
}
