package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"samm/internal/domain"
	"samm/internal/games"

	"gopkg.in/yaml.v3"
)

// URLConfig replaces built-in download locations for one game
type URLConfig struct {
	Loader       string            `yaml:"loader,omitempty"`
	Codes        string            `yaml:"codes,omitempty"`
	Patches      string            `yaml:"patches,omitempty"`
	Dependencies map[string]string `yaml:"dependencies,omitempty"`
}

// Config holds global application settings
type Config struct {
	LinkMethod    domain.LinkMethod    `yaml:"-"`
	LinkMethodStr string               `yaml:"link_method"`
	ExtLibsPath   string               `yaml:"ext_libs_path,omitempty"`
	PayloadDir    string               `yaml:"payload_dir,omitempty"`
	LogLevel      string               `yaml:"log_level"`
	Profiles      map[string]string    `yaml:"profiles,omitempty"` // Active profile per game
	URLs          map[string]URLConfig `yaml:"urls,omitempty"`
}

// Load reads config.yaml from configDir. A missing file gives the defaults.
func Load(configDir string) (*Config, error) {
	cfg := &Config{
		LinkMethod: domain.LinkCopy,
		LogLevel:   "info",
	}

	data, err := os.ReadFile(filepath.Join(configDir, "config.yaml"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config: %v", domain.ErrInvalidConfig, err)
	}

	if cfg.LinkMethodStr != "" {
		cfg.LinkMethod = domain.ParseLinkMethod(cfg.LinkMethodStr)
	}

	return cfg, nil
}

// Save writes config.yaml to configDir
func (c *Config) Save(configDir string) error {
	c.LinkMethodStr = c.LinkMethod.String()

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// URLOverrides converts the urls section into registry overrides. Unknown
// game keys are ignored.
func (c *Config) URLOverrides() map[domain.GameID]games.URLOverrides {
	if len(c.URLs) == 0 {
		return nil
	}
	out := make(map[domain.GameID]games.URLOverrides, len(c.URLs))
	for key, u := range c.URLs {
		id := domain.ParseGameID(key)
		if id == domain.GameNone {
			continue
		}
		out[id] = games.URLOverrides{
			Loader: u.Loader,
			Codes:  u.Codes,
			Patch:  u.Patches,
			Deps:   u.Dependencies,
		}
	}
	return out
}

// ActiveProfile returns the profile selected for a game, or fallback
func (c *Config) ActiveProfile(id domain.GameID, fallback string) string {
	if name := c.Profiles[id.String()]; name != "" {
		return name
	}
	return fallback
}

// SetActiveProfile selects the profile used for a game
func (c *Config) SetActiveProfile(id domain.GameID, name string) {
	if c.Profiles == nil {
		c.Profiles = make(map[string]string)
	}
	c.Profiles[id.String()] = name
}
