package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

type Config struct {
	Schema            int    `json:"schema"`
	Root              string `json:"root"`
	SearchTimeoutMS   int    `json:"search_timeout_ms,omitempty"`
	RefreshIntervalMS int    `json:"refresh_interval_ms,omitempty"`
	LogFile           string `json:"log_file,omitempty"`
}

const CurrentConfigSchema = 1

const (
	DefaultRoot              = "/"
	DefaultSearchTimeoutMS   = 1000
	DefaultRefreshIntervalMS = 100
)

func DefaultConfig() *Config {
	return &Config{
		Schema:            CurrentConfigSchema,
		Root:              DefaultRoot,
		SearchTimeoutMS:   DefaultSearchTimeoutMS,
		RefreshIntervalMS: DefaultRefreshIntervalMS,
	}
}

func Load(configPath string) (*Config, error) {
	paths := getConfigPaths(configPath)

	for _, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		cfg := DefaultConfig()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}

		cfg.applyDefaults()
		cfg.expandPaths()
		return cfg, nil
	}

	return DefaultConfig(), nil
}

func getConfigPaths(explicit string) []string {
	home, _ := os.UserHomeDir()

	var paths []string

	if explicit != "" {
		paths = append(paths, explicit)
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "tcd", "config.json"))

	return paths
}

func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if c.SearchTimeoutMS <= 0 {
		c.SearchTimeoutMS = DefaultSearchTimeoutMS
	}
	if c.RefreshIntervalMS <= 0 {
		c.RefreshIntervalMS = DefaultRefreshIntervalMS
	}
}

func (c *Config) expandPaths() {
	c.Root = expandHome(c.Root)
	c.LogFile = expandHome(c.LogFile)
}

func expandHome(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, path[1:])
}

// SearchTimeout is the type-ahead reset delay.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.SearchTimeoutMS) * time.Millisecond
}

// RefreshInterval is how often the browser redraws without input.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMS) * time.Millisecond
}
