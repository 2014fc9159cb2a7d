package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"huemcp/internal/domain"
)

// Defaults for the container invocation. The openhue CLI ships as a Docker
// image and reads its bridge credentials from /.openhue inside the container;
// the host side of that mount lives under the user's home directory.
const (
	DefaultRuntime   = "docker"
	DefaultImage     = "openhue/cli"
	DefaultMountPath = "/.openhue"
	configDirName    = ".openhue"
)

// userHomeDirFunc resolves the current user's home directory. Package-level
// so tests can inject a failing resolver.
var userHomeDirFunc = os.UserHomeDir

// Default returns the built-in configuration, deriving the host config
// directory from the current user's home directory.
func Default() (domain.Config, error) {
	home, err := userHomeDirFunc()
	if err != nil {
		return domain.Config{}, fmt.Errorf("config: resolve home directory: %w", err)
	}
	return domain.Config{
		Runtime:   DefaultRuntime,
		Image:     DefaultImage,
		ConfigDir: filepath.Join(home, configDirName),
		MountPath: DefaultMountPath,
	}, nil
}

// Load reads a YAML config file and applies it on top of the defaults, so a
// file only needs to name the settings it overrides. Returns an error if the
// file is missing or not valid YAML.
func Load(path string) (domain.Config, error) {
	cfg, err := Default()
	if err != nil {
		return domain.Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("config load: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("config parse: %w", err)
	}
	CleanPaths(&cfg)
	return cfg, nil
}

// CleanPaths applies filepath.Clean to the host config directory to mitigate
// path traversal through a crafted config file.
func CleanPaths(cfg *domain.Config) {
	if cfg == nil {
		return
	}
	cfg.ConfigDir = filepath.Clean(cfg.ConfigDir)
}
