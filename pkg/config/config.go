// Package config loads the optional pipbuilddeps TOML configuration.
//
// The config file provides defaults that command-line flags override:
//
//	pip = "pip3.11"
//	extra_args = ["--index-url", "https://mirror.example/simple"]
//	scratch_root = "/var/tmp"
//	output_file = "requirements-build.in"
//
// The default location is $XDG_CONFIG_HOME/pipbuilddeps/config.toml
// (falling back to ~/.config/pipbuilddeps/config.toml). A missing file
// is not an error.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"pipbuilddeps/pkg/errors"
)

// appName is used for the config directory name.
const appName = "pipbuilddeps"

// Config holds tool-wide defaults read from the TOML config file.
type Config struct {
	// Pip is the downloader binary to invoke. Empty means "pip".
	Pip string `toml:"pip"`

	// ExtraArgs are appended to every pip download invocation.
	ExtraArgs []string `toml:"extra_args"`

	// ScratchRoot is the parent directory for scratch workspaces.
	// Empty means the system temporary directory.
	ScratchRoot string `toml:"scratch_root"`

	// OutputFile is the default output file. Empty means stdout.
	OutputFile string `toml:"output_file"`
}

// Load reads the config file at path. If path is empty, the default
// location is tried. A missing file yields the zero Config.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultPath()
		if path == "" {
			return Config{}, nil
		}
	}

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file %s does not exist", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config file %s", path)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig,
			"unknown key %q in config file %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// defaultPath returns the XDG config file location, or empty if no home
// directory can be determined.
func defaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
