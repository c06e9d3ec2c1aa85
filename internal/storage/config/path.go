// Package config reads and writes the YAML files under the config directory.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const appName = "samm"

// Dirs are the roots everything else is placed under
type Dirs struct {
	Config string // config.yaml, games.yaml, profiles, version stamps
	Data   string // history database, logs, external libraries
}

// DefaultDirs follows the XDG base directory layout
func DefaultDirs() (Dirs, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Dirs{}, err
	}
	dirs := Dirs{
		Config: filepath.Join(home, ".config", appName),
		Data:   filepath.Join(home, ".local", "share", appName),
	}
	if x := os.Getenv("XDG_CONFIG_HOME"); filepath.IsAbs(x) {
		dirs.Config = filepath.Join(x, appName)
	}
	if x := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(x) {
		dirs.Data = filepath.Join(x, appName)
	}
	return dirs, nil
}

// ExtLibsDir is where dependencies are installed unless configured otherwise
func (d Dirs) ExtLibsDir(c *Config) string {
	if c != nil && c.ExtLibsPath != "" {
		return c.ExtLibsPath
	}
	return filepath.Join(d.Data, "extlib")
}

// ParseGameDir validates a game directory given on the command line and
// returns it cleaned. It must be absolute, free of parent traversal and an
// existing directory.
func ParseGameDir(path string) (string, error) {
	if path == "" {
		return "", errors.New("game path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		return "", errors.New("game path must be absolute")
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return "", errors.New("game path contains invalid traversal")
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New("game path does not exist")
		}
		return "", err
	}

	if !info.IsDir() {
		return "", errors.New("game path is a file, not a directory")
	}

	return filepath.Clean(path), nil
}
