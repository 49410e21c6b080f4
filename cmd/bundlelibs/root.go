package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bgricker/swfkit/internal/bundle"
	"github.com/bgricker/swfkit/internal/config"
	"github.com/bgricker/swfkit/internal/logging"
	"github.com/bgricker/swfkit/internal/output"
	"github.com/bgricker/swfkit/internal/toolchain"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundlelibs executable",
		Short: "Copy non-system dylibs beside an executable and relink them loader-relative",
		Long: "Recursively copies /usr/local and /opt/local libraries an executable links against\n" +
			"into <executable>/../libs and rewrites link paths to @loader_path/../libs/<name>.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: %s executable", cmd.Name())
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runBundle,
	}

	flags := cmd.Flags()
	flags.String("bundle-dir", "", "directory receiving copied libraries (default <executable>/../libs)")
	flags.String("toolchain", "", "cross-compilation prefix for otool and install_name_tool")
	flags.String("lib-base-path", "", "root prepended to recorded library paths (default /)")
	flags.String("local-lib-dir", "", "directory under the base path searched for @rpath libraries")
	flags.String("format", "pretty", "output format (pretty|json)")
	flags.String("color", "auto", "colorize output (auto|always|never)")
	flags.BoolP("verbose", "v", false, "log debug detail to stderr")
	flags.BoolP("quiet", "q", false, "log warnings only; hides the tool commands")

	return cmd
}

func runBundle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer, err := output.New(cfg.Format, out, output.UseColor(cfg.Color, out))
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Name:    "bundlelibs",
		Verbose: cfg.Verbose,
		Quiet:   cfg.Quiet,
		Output:  cmd.ErrOrStderr(),
	})

	tools := toolchain.Resolve(cfg.Bundle.Toolchain)
	b := bundle.New(bundle.Options{
		BundleDir:   cfg.Bundle.Dir,
		LibBasePath: cfg.Bundle.LibBasePath,
		LocalLibDir: cfg.Bundle.LocalLibDir,
		Lister:      bundle.Otool{Path: tools.Otool, Logger: logger},
		Rewriter:    bundle.InstallNameTool{Path: tools.InstallNameTool, Logger: logger},
		Tools:       tools,
		Prober:      toolchain.ShellProber{},
		Logger:      logger,
	})

	rep, err := b.Bundle(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return renderer.RenderBundle(rep)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("determine working directory: %w", err)
	}
	if err := config.LoadDotEnv(root); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyEnv(&cfg, os.Getenv)

	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyFlags(&cfg, flags)
	return cfg, nil
}
