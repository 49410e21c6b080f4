package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables consulted when building a Config.
const (
	EnvToolchain   = "TOOLCHAIN"
	EnvLibBasePath = "LIB_BASE_PATH"
	EnvPlayer      = "SWFKIT_PLAYER"
)

// LoadDotEnv loads root/.env into the process environment when present.
// Variables that are already set are left alone.
func LoadDotEnv(root string) error {
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %q: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment values onto cfg. getenv is usually os.Getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvToolchain); v != "" {
		cfg.Bundle.Toolchain = v
	}
	if v := getenv(EnvLibBasePath); v != "" {
		cfg.Bundle.LibBasePath = v
	}
	if v := getenv(EnvPlayer); v != "" {
		cfg.Player.Path = v
	}
}
