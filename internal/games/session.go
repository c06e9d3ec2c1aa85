package games

import (
	"os"
	"path/filepath"

	"samm/internal/domain"
)

// Session tracks the game selected for this process. The registry stays
// untouched; the session holds its own copy with the resolved directory.
type Session struct {
	registry *Registry
	current  *domain.Game
}

// NewSession creates a session with no current game
func NewSession(registry *Registry) *Session {
	return &Session{registry: registry}
}

// Registry returns the registry the session selects from
func (s *Session) Registry() *Registry {
	return s.registry
}

// Select makes id the current game installed at dir and records whether
// its loader library is already in the mod directory
func (s *Session) Select(id domain.GameID, dir string) (*domain.Game, error) {
	g, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	g.Directory = dir
	g.Loader.Installed = loaderPresent(&g)
	s.current = &g
	return s.current, nil
}

// Current returns the selected game, or nil when detection has not happened
func (s *Session) Current() *domain.Game {
	return s.current
}

// CurrentID returns the selected game's id, or GameNone
func (s *Session) CurrentID() domain.GameID {
	if s.current == nil {
		return domain.GameNone
	}
	return s.current.ID
}

func loaderPresent(g *domain.Game) bool {
	if g.Loader.LoaderDLLName == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(g.ModDirectory(), g.Loader.LoaderDLLName))
	return err == nil && !info.IsDir()
}
