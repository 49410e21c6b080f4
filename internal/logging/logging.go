package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Options select the logger's name, verbosity and destination.
type Options struct {
	Name    string
	Verbose bool
	Quiet   bool
	Output  io.Writer
}

// New creates the tool logger. Info is the default level, Debug with
// Verbose, Warn with Quiet.
func New(opts Options) hclog.Logger {
	level := hclog.Info
	if opts.Verbose {
		level = hclog.Debug
	} else if opts.Quiet {
		level = hclog.Warn
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:            opts.Name,
		Level:           level,
		Output:          output,
		DisableTime:     true,
		IncludeLocation: false,
	})
}
