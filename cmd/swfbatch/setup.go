package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/bgricker/swfkit/internal/config"
	"github.com/bgricker/swfkit/internal/filter"
	"github.com/bgricker/swfkit/internal/logging"
	"github.com/bgricker/swfkit/internal/output"
	"github.com/bgricker/swfkit/internal/player"
)

// session holds what every subcommand needs after config resolution.
type session struct {
	cfg      config.Config
	root     string
	logger   hclog.Logger
	filters  filter.Set
	renderer output.Renderer
}

func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("determine working directory: %w", err)
	}

	if err := config.LoadDotEnv(root); err != nil {
		return config.Config{}, "", err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyEnv(&cfg, os.Getenv)

	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyFlags(&cfg, flags)

	return cfg, root, nil
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	filters, err := filter.NewSet(cfg.Only, cfg.Skip)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	renderer, err := output.New(cfg.Format, out, output.UseColor(cfg.Color, out))
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Options{
		Name:    "swfbatch",
		Verbose: cfg.Verbose,
		Quiet:   cfg.Quiet,
		Output:  cmd.ErrOrStderr(),
	})

	return &session{cfg: cfg, root: root, logger: logger, filters: filters, renderer: renderer}, nil
}

// player builds the configured player. A non-nil echo receives its output
// while it runs.
func (s *session) player(echo io.Writer) *player.Player {
	return player.New(player.Options{
		Path: s.cfg.Player.Path,
		Dir:  s.root,
		Env:  s.cfg.Player.Env,
		Echo: echo,
	})
}
