// Package games holds the built-in descriptors of supported titles and the
// session that tracks which one is current.
package games

import (
	"fmt"
	"path/filepath"

	"samm/internal/domain"
)

// Paths are the roots the registry derives per-game locations from
type Paths struct {
	ConfigRoot    string // Profiles and version stamps live under here
	ExtLibsRoot   string // Dependencies are installed to <ExtLibsRoot>/<name>
	PayloadSource PayloadSource
}

// URLOverrides replace built-in remote locations for one game
type URLOverrides struct {
	Loader string
	Codes  string
	Patch  string
	Deps   map[string]string
}

// Registry is the immutable table of supported games. Lookups return
// copies, so callers cannot modify the table.
type Registry struct {
	games []domain.Game
}

// NewRegistry builds the registry from the built-in descriptors. Every
// dependency path is assigned here, before any installer can see it.
func NewRegistry(paths Paths, overrides map[domain.GameID]URLOverrides) *Registry {
	builtin := builtinGames(paths.ConfigRoot)
	for i := range builtin {
		g := &builtin[i]
		if ov, ok := overrides[g.ID]; ok {
			applyOverrides(g, ov)
		}
		if paths.PayloadSource != nil {
			g.Loader.Payload = paths.PayloadSource.Payload(g.Loader.Name)
		}
		for j := range g.Dependencies {
			dep := &g.Dependencies[j]
			dep.Path = filepath.Join(paths.ExtLibsRoot, dep.Name)
			if paths.PayloadSource != nil {
				dep.Payload = paths.PayloadSource.Payload(dep.Name)
			}
		}
	}
	return &Registry{games: builtin}
}

func applyOverrides(g *domain.Game, ov URLOverrides) {
	if ov.Loader != "" {
		g.Loader.URL = ov.Loader
	}
	if ov.Codes != "" {
		g.CodeURL = ov.Codes
	}
	if ov.Patch != "" {
		g.PatchURL = ov.Patch
	}
	for j := range g.Dependencies {
		if u, ok := ov.Deps[g.Dependencies[j].Name]; ok && u != "" {
			g.Dependencies[j].URL = u
		}
	}
}

// Get returns a copy of the descriptor for id
func (r *Registry) Get(id domain.GameID) (domain.Game, error) {
	for _, g := range r.games {
		if g.ID == id {
			return cloneGame(g), nil
		}
	}
	return domain.Game{}, fmt.Errorf("%s: %w", id, domain.ErrGameNotFound)
}

// Supported returns copies of the games that can be detected, in detection order
func (r *Registry) Supported() []domain.Game {
	var out []domain.Game
	for _, g := range r.games {
		if g.ID == domain.GameSA2 {
			continue // loader packaging for SA2 is not published yet
		}
		out = append(out, cloneGame(g))
	}
	return out
}

// All returns copies of every known game, supported or not
func (r *Registry) All() []domain.Game {
	out := make([]domain.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, cloneGame(g))
	}
	return out
}

func cloneGame(g domain.Game) domain.Game {
	g.Executables = append([]string(nil), g.Executables...)
	g.ConfigFiles = append([]string(nil), g.ConfigFiles...)
	g.Dependencies = append([]domain.Dependency(nil), g.Dependencies...)
	return g
}
