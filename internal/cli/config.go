package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// fileConfig mirrors the optional config file at
// $XDG_CONFIG_HOME/pomviz/config.toml. All fields are optional; values act
// as flag defaults and are overridden by flags given on the command line.
type fileConfig struct {
	Repository string `toml:"repository"`
	Depth      *int   `toml:"depth"`
	Graphviz   string `toml:"graphviz"`
	Output     string `toml:"output"`
	CacheTTL   string `toml:"cache_ttl"` // Go duration string, e.g. "48h"
}

// configPath returns the config file location under the user config dir.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// loadFileConfig reads and parses the config file at path. A missing file is
// not an error and yields a zero config.
func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, err
	}
	return cfg, nil
}

// applyFileConfig fills opts from the config file for every flag the user did
// not set explicitly. Config errors are logged and ignored; a broken config
// file must not take the command down.
func applyFileConfig(cmd *cobra.Command, opts *visualizeOptions, logger *log.Logger) {
	path, err := configPath()
	if err != nil {
		return
	}
	cfg, err := loadFileConfig(path)
	if err != nil {
		logger.Warnf("ignoring config file %s: %v", path, err)
		return
	}
	mergeConfig(cfg, opts, cmd.Flags().Changed, logger)
}

// mergeConfig copies config values into opts for flags not set on the
// command line.
func mergeConfig(cfg fileConfig, opts *visualizeOptions, changed func(string) bool, logger *log.Logger) {
	if cfg.Repository != "" && !changed("repo") {
		opts.repo = cfg.Repository
	}
	if cfg.Depth != nil && !changed("depth") {
		opts.depth = *cfg.Depth
	}
	if cfg.Graphviz != "" && !changed("graphviz") {
		opts.graphviz = cfg.Graphviz
	}
	if cfg.Output != "" && !changed("output") {
		opts.output = cfg.Output
	}
	if cfg.CacheTTL != "" {
		ttl, err := time.ParseDuration(cfg.CacheTTL)
		if err != nil {
			logger.Warnf("invalid cache_ttl %q in config: %v", cfg.CacheTTL, err)
		} else {
			opts.cacheTTL = ttl
		}
	}
}
