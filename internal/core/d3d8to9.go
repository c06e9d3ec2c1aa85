package core

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"samm/internal/domain"
)

const (
	d3d8to9Dependency = "D3D8M"
	d3d8to9TargetName = "d3d8.dll"
)

// D3D8to9State describes the Direct3D 8 to 9 shim for one game directory
type D3D8to9State struct {
	Available bool // The shim has been installed as a dependency
	Enabled   bool // The shim is in the game directory
	Outdated  bool // The copy in the game directory differs from the dependency
}

func d3d8to9Paths(game *domain.Game) (src, dst string, ok bool) {
	if game == nil || game.Directory == "" {
		return "", "", false
	}
	for _, dep := range game.Dependencies {
		if dep.Name == d3d8to9Dependency {
			src, found := LibraryPath(dep)
			if !found {
				src = dep.LibraryFile()
			}
			return src, filepath.Join(game.Directory, d3d8to9TargetName), true
		}
	}
	return "", "", false
}

// D3D8to9Status inspects the shim for the game
func (i *Installer) D3D8to9Status(game *domain.Game) D3D8to9State {
	src, dst, ok := d3d8to9Paths(game)
	if !ok {
		return D3D8to9State{}
	}
	deployed, err := i.linker.IsDeployed(dst)
	if err != nil {
		i.log.Warn().Err(err).Str("path", dst).Msg("checking d3d8to9")
	}
	state := D3D8to9State{
		Available: fileExists(src),
		Enabled:   deployed,
	}
	if state.Available && state.Enabled {
		state.Outdated = !sameContents(src, dst)
	}
	return state
}

// EnableD3D8to9 places the shim in the game directory, replacing an older copy
func (i *Installer) EnableD3D8to9(game *domain.Game) error {
	src, dst, ok := d3d8to9Paths(game)
	if !ok {
		return fmt.Errorf("%w: no graphics shim for this game", domain.ErrGameNotFound)
	}
	if !fileExists(src) {
		return fmt.Errorf("%s is not installed: %w", d3d8to9Dependency, os.ErrNotExist)
	}
	if err := i.linker.Deploy(src, dst); err != nil {
		return err
	}
	i.log.Info().Str("game", game.ID.String()).Str("path", dst).Msg("d3d8to9 enabled")
	return nil
}

// DisableD3D8to9 removes the shim from the game directory
func (i *Installer) DisableD3D8to9(game *domain.Game) error {
	_, dst, ok := d3d8to9Paths(game)
	if !ok {
		return fmt.Errorf("%w: no graphics shim for this game", domain.ErrGameNotFound)
	}
	if err := i.linker.Undeploy(dst); err != nil {
		return err
	}
	i.log.Info().Str("game", game.ID.String()).Stringer("method", i.linker.Method()).Msg("d3d8to9 disabled")
	return nil
}

// sameContents compares two files, by size first
func sameContents(a, b string) bool {
	ia, errA := os.Stat(a)
	ib, errB := os.Stat(b)
	if errA != nil || errB != nil {
		return false
	}
	if os.SameFile(ia, ib) {
		return true
	}
	if ia.Size() != ib.Size() {
		return false
	}
	da, errA := os.ReadFile(a)
	db, errB := os.ReadFile(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(da, db)
}
