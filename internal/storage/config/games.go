package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"samm/internal/domain"

	"gopkg.in/yaml.v3"
)

// GameEntry is a remembered installation
type GameEntry struct {
	Path string `yaml:"path"`
}

// GamesFile is the games.yaml structure: where each game was last found
// and which one is current
type GamesFile struct {
	Current string               `yaml:"current,omitempty"`
	Games   map[string]GameEntry `yaml:"games"`
}

// LoadGames reads games.yaml from configDir
func LoadGames(configDir string) (*GamesFile, error) {
	gf := &GamesFile{Games: make(map[string]GameEntry)}

	data, err := os.ReadFile(filepath.Join(configDir, "games.yaml"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return gf, nil
		}
		return nil, fmt.Errorf("reading games.yaml: %w", err)
	}

	if err := yaml.Unmarshal(data, gf); err != nil {
		return nil, fmt.Errorf("%w: parsing games.yaml: %v", domain.ErrInvalidConfig, err)
	}
	if gf.Games == nil {
		gf.Games = make(map[string]GameEntry)
	}
	return gf, nil
}

// Remember stores the install directory of a game and makes it current
func (gf *GamesFile) Remember(id domain.GameID, path string) {
	gf.Games[id.String()] = GameEntry{Path: path}
	gf.Current = id.String()
}

// Forget drops a game
func (gf *GamesFile) Forget(id domain.GameID) error {
	if _, ok := gf.Games[id.String()]; !ok {
		return fmt.Errorf("%s: %w", id, domain.ErrGameNotFound)
	}
	delete(gf.Games, id.String())
	if gf.Current == id.String() {
		gf.Current = ""
	}
	return nil
}

// Path returns the remembered directory of a game, or ""
func (gf *GamesFile) Path(id domain.GameID) string {
	return gf.Games[id.String()].Path
}

// CurrentID returns the current game, or GameNone
func (gf *GamesFile) CurrentID() domain.GameID {
	return domain.ParseGameID(gf.Current)
}

// Save writes games.yaml to configDir
func (gf *GamesFile) Save(configDir string) error {
	data, err := yaml.Marshal(gf)
	if err != nil {
		return fmt.Errorf("marshaling games: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, "games.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing games.yaml: %w", err)
	}
	return nil
}
