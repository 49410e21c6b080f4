package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Player.Path != DefaultPlayer {
		t.Fatalf("expected default player, got %q", cfg.Player.Path)
	}
	if len(cfg.Tests) != len(KnownPassingTests) {
		t.Fatalf("expected built-in test list, got %v", cfg.Tests)
	}
	if cfg.Bundle.LibBasePath != "/" {
		t.Fatalf("expected lib base path '/', got %q", cfg.Bundle.LibBasePath)
	}
}

func TestLoadMergesFile(t *testing.T) {
	root := t.TempDir()
	doc := []byte(`player:
  path: bin/player
  test_args: ["-v"]
  env:
    SDL_VIDEODRIVER: dummy
tests:
  - tests/only.txt
format: json
bundle:
  toolchain: x86_64-apple-darwin15
`)
	if err := os.WriteFile(filepath.Join(root, FileName), doc, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Player.Path != "bin/player" {
		t.Fatalf("player path not merged: %q", cfg.Player.Path)
	}
	if len(cfg.Player.TestArgs) != 1 || cfg.Player.TestArgs[0] != "-v" {
		t.Fatalf("test args not merged: %v", cfg.Player.TestArgs)
	}
	if len(cfg.Player.RunArgs) != 1 || cfg.Player.RunArgs[0] != "-v" {
		t.Fatalf("run args should keep default, got %v", cfg.Player.RunArgs)
	}
	if cfg.Player.Env["SDL_VIDEODRIVER"] != "dummy" {
		t.Fatalf("player env not merged: %v", cfg.Player.Env)
	}
	if len(cfg.Tests) != 1 || cfg.Tests[0] != "tests/only.txt" {
		t.Fatalf("tests not merged: %v", cfg.Tests)
	}
	if cfg.Format != FormatJSON {
		t.Fatalf("format not merged: %q", cfg.Format)
	}
	if cfg.Bundle.Toolchain != "x86_64-apple-darwin15" {
		t.Fatalf("toolchain not merged: %q", cfg.Bundle.Toolchain)
	}
	if cfg.Bundle.LocalLibDir != DefaultLocalLibDir {
		t.Fatalf("local lib dir should keep default, got %q", cfg.Bundle.LocalLibDir)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("player: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(root); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyFlagsOverridesOnlySetValues(t *testing.T) {
	cfg := Default()
	ApplyFlags(&cfg, FlagValues{
		Player:      StringFlag{Value: "other", Set: true},
		PlayerArgs:  SliceFlag{Values: []string{"-q"}},
		Format:      StringFlag{Value: "ignored", Set: false},
		LibBasePath: StringFlag{Value: "/sysroot", Set: true},
	})
	if cfg.Player.Path != "other" {
		t.Fatalf("player path not applied: %q", cfg.Player.Path)
	}
	if cfg.Player.RunArgs[0] != "-q" || cfg.Player.TestArgs[0] != "-q" {
		t.Fatalf("player args not applied: %v / %v", cfg.Player.RunArgs, cfg.Player.TestArgs)
	}
	if cfg.Format != FormatPretty {
		t.Fatalf("unset flag should not override format, got %q", cfg.Format)
	}
	if cfg.Bundle.LibBasePath != "/sysroot" {
		t.Fatalf("lib base path not applied: %q", cfg.Bundle.LibBasePath)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvToolchain:   "i386-apple-darwin",
		EnvLibBasePath: "/opt/cross",
	}
	cfg := Default()
	ApplyEnv(&cfg, func(k string) string { return env[k] })

	if cfg.Bundle.Toolchain != "i386-apple-darwin" {
		t.Fatalf("toolchain from env: %q", cfg.Bundle.Toolchain)
	}
	if cfg.Bundle.LibBasePath != "/opt/cross" {
		t.Fatalf("lib base path from env: %q", cfg.Bundle.LibBasePath)
	}
	if cfg.Player.Path != DefaultPlayer {
		t.Fatalf("player should be untouched, got %q", cfg.Player.Path)
	}
}

func TestLoadDotEnv(t *testing.T) {
	root := t.TempDir()
	if err := LoadDotEnv(root); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}

	const key = "SWFKIT_TEST_DOTENV_VALUE"
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte(key+"=from-file\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv(key, "")
	os.Unsetenv(key)

	if err := LoadDotEnv(root); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}
