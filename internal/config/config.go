package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-directory configuration file.
const FileName = ".swfkit.yml"

// Config captures tool options sourced from defaults, config files, the
// environment and flags. It is passed explicitly to every component.
type Config struct {
	Player  PlayerConfig  `yaml:"player"`
	Samples SamplesConfig `yaml:"samples"`
	Tests   []string      `yaml:"tests"`

	Only []string `yaml:"only"`
	Skip []string `yaml:"skip"`

	Format  string `yaml:"format"`
	Color   string `yaml:"color"`
	Verbose bool   `yaml:"verbose"`
	Quiet   bool   `yaml:"quiet"`

	Bundle BundleConfig `yaml:"bundle"`
}

// PlayerConfig describes how the player executable is invoked.
type PlayerConfig struct {
	Path     string   `yaml:"path"`
	RunArgs  []string `yaml:"run_args"`
	TestArgs []string `yaml:"test_args"`
	// Env is added to the player's inherited environment.
	Env map[string]string `yaml:"env"`
}

// SamplesConfig locates the sample files used by the batch runner.
type SamplesConfig struct {
	Glob string `yaml:"glob"`
}

// BundleConfig controls the library bundler.
type BundleConfig struct {
	Dir         string `yaml:"dir"`
	Toolchain   string `yaml:"toolchain"`
	LibBasePath string `yaml:"lib_base_path"`
	LocalLibDir string `yaml:"local_lib_dir"`
}

const (
	// FormatPretty renders human readable output.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	DefaultPlayer      = "./gameswf_test_ogl"
	DefaultSampleGlob  = "samples/*.swf"
	DefaultLibBasePath = "/"
	DefaultLocalLibDir = "usr/local/lib"
)

// KnownPassingTests lists descriptors that are expected to pass. Breaking one
// of these is a regression.
var KnownPassingTests = []string{
	"tests/frame1.txt",
	"tests/frame2.txt",
	"tests/test_basic_types.txt",
	"tests/test_currentframe.txt",
	"tests/test_delete_references.txt",
	"tests/test_forin_array.txt",
	"tests/test_motion_exec_order.txt",
	"tests/test_string.txt",
	"tests/test_undefined_v6.txt",
	"tests/test_undefined_v7.txt",
}

// Default returns the baseline configuration used when nothing else specifies values.
func Default() Config {
	return Config{
		Player: PlayerConfig{
			Path:     DefaultPlayer,
			RunArgs:  []string{"-v"},
			TestArgs: []string{"-r", "0", "-1", "-t", "10", "-v"},
		},
		Samples: SamplesConfig{Glob: DefaultSampleGlob},
		Tests:   append([]string{}, KnownPassingTests...),
		Format:  FormatPretty,
		Color:   ColorAuto,
		Bundle: BundleConfig{
			LibBasePath: DefaultLibBasePath,
			LocalLibDir: DefaultLocalLibDir,
		},
	}
}

// Load reads .swfkit.yml from root when present. Missing files are ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg = merge(cfg, fileCfg)
	return cfg, nil
}

func merge(base, override Config) Config {
	out := base

	if override.Player.Path != "" {
		out.Player.Path = override.Player.Path
	}
	if len(override.Player.RunArgs) > 0 {
		out.Player.RunArgs = append([]string{}, override.Player.RunArgs...)
	}
	if len(override.Player.TestArgs) > 0 {
		out.Player.TestArgs = append([]string{}, override.Player.TestArgs...)
	}
	if len(override.Player.Env) > 0 {
		env := make(map[string]string, len(base.Player.Env)+len(override.Player.Env))
		for k, v := range base.Player.Env {
			env[k] = v
		}
		for k, v := range override.Player.Env {
			env[k] = v
		}
		out.Player.Env = env
	}
	if override.Samples.Glob != "" {
		out.Samples.Glob = override.Samples.Glob
	}
	if len(override.Tests) > 0 {
		out.Tests = append([]string{}, override.Tests...)
	}
	if len(override.Only) > 0 {
		out.Only = append([]string{}, override.Only...)
	}
	if len(override.Skip) > 0 {
		out.Skip = append([]string{}, override.Skip...)
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.Color != "" {
		out.Color = override.Color
	}
	if override.Verbose {
		out.Verbose = true
	}
	if override.Quiet {
		out.Quiet = true
	}

	if override.Bundle.Dir != "" {
		out.Bundle.Dir = override.Bundle.Dir
	}
	if override.Bundle.Toolchain != "" {
		out.Bundle.Toolchain = override.Bundle.Toolchain
	}
	if override.Bundle.LibBasePath != "" {
		out.Bundle.LibBasePath = override.Bundle.LibBasePath
	}
	if override.Bundle.LocalLibDir != "" {
		out.Bundle.LocalLibDir = override.Bundle.LocalLibDir
	}

	return out
}

// ApplyFlags mutates cfg by applying values from CLI flags when they are present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.Player.Set {
		cfg.Player.Path = flags.Player.Value
	}
	if len(flags.PlayerArgs.Values) > 0 {
		cfg.Player.RunArgs = append([]string{}, flags.PlayerArgs.Values...)
		cfg.Player.TestArgs = append([]string{}, flags.PlayerArgs.Values...)
	}
	if flags.SampleGlob.Set {
		cfg.Samples.Glob = flags.SampleGlob.Value
	}
	if len(flags.Only.Values) > 0 {
		cfg.Only = append([]string{}, flags.Only.Values...)
	}
	if len(flags.Skip.Values) > 0 {
		cfg.Skip = append([]string{}, flags.Skip.Values...)
	}
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if flags.Color.Set {
		cfg.Color = flags.Color.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
	if flags.Quiet.Set {
		cfg.Quiet = flags.Quiet.Value
	}
	if flags.BundleDir.Set {
		cfg.Bundle.Dir = flags.BundleDir.Value
	}
	if flags.Toolchain.Set {
		cfg.Bundle.Toolchain = flags.Toolchain.Value
	}
	if flags.LibBasePath.Set {
		cfg.Bundle.LibBasePath = flags.LibBasePath.Value
	}
	if flags.LocalLibDir.Set {
		cfg.Bundle.LocalLibDir = flags.LocalLibDir.Value
	}
}

// FlagValues captures CLI flag state with knowledge of whether each flag was set explicitly.
type FlagValues struct {
	Player      StringFlag
	PlayerArgs  SliceFlag
	SampleGlob  StringFlag
	Only        SliceFlag
	Skip        SliceFlag
	Format      StringFlag
	Color       StringFlag
	Verbose     BoolFlag
	Quiet       BoolFlag
	BundleDir   StringFlag
	Toolchain   StringFlag
	LibBasePath StringFlag
	LocalLibDir StringFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// SliceFlag represents a slice flag and whether it captured values via CLI.
type SliceFlag struct {
	Values []string
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}
