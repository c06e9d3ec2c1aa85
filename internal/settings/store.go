package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"samm/internal/domain"

	"github.com/rs/zerolog"
)

// Store loads and saves profiles for one game
type Store struct {
	game       *domain.Game
	configRoot string
	notifier   domain.Notifier
	log        zerolog.Logger
}

// NewStore creates a store for the session's current game. configRoot is
// where the per-game profile directories are recreated when missing.
func NewStore(game *domain.Game, configRoot string, notifier domain.Notifier, log zerolog.Logger) *Store {
	return &Store{
		game:       game,
		configRoot: configRoot,
		notifier:   notifier,
		log:        log.With().Str("component", "settings").Str("game", game.ID.String()).Logger(),
	}
}

func (s *Store) env(gs *GameSettings) MigrationEnv {
	dir := s.game.Directory
	if gs != nil && gs.GamePath != "" {
		dir = gs.GamePath
	}
	return MigrationEnv{
		GameDir:           s.game.Directory,
		RuntimeConfigPath: s.game.RuntimeConfigPath(dir),
	}
}

// Load returns the profile at path, migrated to the current version. It
// always returns a usable record: a broken profile is reported and replaced
// by the defaults.
func (s *Store) Load(path string) *GameSettings {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		gs, err := Decode(data)
		if err != nil {
			s.log.Error().Err(err).Str("path", path).Msg("profile is not valid JSON")
			s.notifier.Notify(domain.LevelError, "Profile", fmt.Sprintf("Failed to read profile %s: %v", filepath.Base(path), err))
			return s.fresh()
		}
		s.upgrade(gs)
		return gs
	case !errors.Is(err, fs.ErrNotExist):
		s.log.Error().Err(err).Str("path", path).Msg("reading profile")
		s.notifier.Notify(domain.LevelError, "Profile", fmt.Sprintf("Failed to read profile %s: %v", filepath.Base(path), err))
		return s.fresh()
	}

	if legacyPath := s.game.LoaderIniPath(); legacyPath != "" {
		if _, statErr := os.Stat(legacyPath); statErr == nil {
			legacy, err := LoadLegacy(legacyPath)
			if err == nil {
				s.log.Info().Str("path", legacyPath).Msg("converting legacy loader settings")
				gs := ConvertFromLegacy(legacy, s.game.Directory)
				s.upgrade(gs)
				return gs
			}
			s.log.Warn().Err(err).Str("path", legacyPath).Msg("legacy loader settings unreadable")
		}
	}

	return s.fresh()
}

// fresh is the first-boot record, seeded from the game's own config when present
func (s *Store) fresh() *GameSettings {
	gs := Defaults()
	gs.GamePath = s.game.Directory
	if path := s.env(gs).RuntimeConfigPath; path != "" {
		if rc, err := LoadRuntimeConfig(path); err == nil {
			ApplyRuntime(gs, rc)
		}
	}
	return gs
}

func (s *Store) upgrade(gs *GameSettings) {
	from := gs.SettingsVersion
	if err := Upgrade(gs, s.env(gs)); err != nil {
		s.log.Warn().Err(err).Int("from", from).Msg("settings upgrade incomplete")
		return
	}
	if from != gs.SettingsVersion {
		s.log.Debug().Int("from", from).Int("to", gs.SettingsVersion).Msg("settings upgraded")
	}
}

// Save writes the profile to path and regenerates the game's runtime config.
// When the profile directory is gone it is recreated under the config root
// and the write retried once; a second failure is only logged.
func (s *Store) Save(gs *GameSettings, path string) error {
	data, err := Encode(gs)
	if err != nil {
		return &domain.SerializationError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		if _, statErr := os.Stat(filepath.Dir(path)); errors.Is(statErr, fs.ErrNotExist) {
			s.retrySave(data, path)
		} else {
			s.log.Error().Err(err).Str("path", path).Msg("writing profile")
		}
	}

	return s.WriteRuntimeConfig(gs)
}

func (s *Store) retrySave(data []byte, path string) {
	dir := filepath.Join(s.configRoot, s.game.Abbreviation)
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.log.Error().Err(err).Str("dir", dir).Msg("recreating profiles directory")
		return
	}
	retry := filepath.Join(dir, filepath.Base(path))
	if err := os.WriteFile(retry, data, 0644); err != nil {
		s.log.Error().Err(err).Str("path", retry).Msg("writing profile after recreating directory")
		return
	}
	s.log.Info().Str("path", retry).Msg("profile saved to recreated directory")
}

// WriteRuntimeConfig regenerates the game's runtime config from the profile.
// Nothing is written when the profile's game path is not a directory.
func (s *Store) WriteRuntimeConfig(gs *GameSettings) error {
	info, err := os.Stat(gs.GamePath)
	if gs.GamePath == "" || err != nil || !info.IsDir() {
		s.notifier.Notify(domain.LevelError, "Game Config",
			fmt.Sprintf("The game path %q does not exist. The game config was not written.", gs.GamePath))
		return fmt.Errorf("%w: %q", domain.ErrGameDirMissing, gs.GamePath)
	}

	path := s.game.RuntimeConfigPath(gs.GamePath)
	if path == "" {
		return nil
	}
	rc, err := loadOrNewRuntimeConfig(path)
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("existing game config unreadable, rewriting")
		rc = NewRuntimeConfig()
	}
	if err := ToRuntime(gs, rc).Save(path); err != nil {
		return fmt.Errorf("writing game config: %w", err)
	}
	return nil
}

// ListProfiles returns the profile names in the profiles directory, sorted
func (s *Store) ListProfiles() ([]string, error) {
	entries, err := os.ReadDir(s.game.ProfilesDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(names)
	return names, nil
}

// ConvertLegacyProfile turns the loader ini into the default profile. It does
// nothing when there is no legacy ini or the default profile already exists,
// and reports whether a profile was written.
func (s *Store) ConvertLegacyProfile() (bool, error) {
	legacyPath := s.game.LoaderIniPath()
	if legacyPath == "" {
		return false, nil
	}
	if _, err := os.Stat(legacyPath); err != nil {
		return false, nil
	}

	target := s.game.ProfilePath(s.game.DefaultProfile)
	if _, err := os.Stat(target); err == nil {
		return false, nil
	}

	legacy, err := LoadLegacy(legacyPath)
	if err != nil {
		return false, err
	}
	gs := ConvertFromLegacy(legacy, s.game.Directory)
	if err := Upgrade(gs, s.env(gs)); err != nil {
		return false, err
	}

	if err := os.MkdirAll(s.game.ProfilesDir, 0755); err != nil {
		return false, fmt.Errorf("creating profiles directory: %w", err)
	}
	data, err := Encode(gs)
	if err != nil {
		return false, &domain.SerializationError{Path: target, Err: err}
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return false, fmt.Errorf("writing profile: %w", err)
	}
	s.log.Info().Str("from", legacyPath).Str("to", target).Msg("legacy profile converted")
	return true, nil
}
