package core_test

import (
	"os"
	"path/filepath"
	"testing"

	"samm/internal/core"
	"samm/internal/domain"
	"samm/internal/linker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installShim(t *testing.T, f *fixture, content string) string {
	t.Helper()
	src := filepath.Join(f.paths.ExtLibsRoot, "D3D8M", "D3D8M.dll")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
	require.NoError(t, os.WriteFile(src, []byte(content), 0644))
	return src
}

func TestD3D8to9_EnableDisable(t *testing.T) {
	f := newFixture(t, nil)
	target := filepath.Join(f.gameDir, "d3d8.dll")

	assert.Equal(t, core.D3D8to9State{}, f.installer.D3D8to9Status(f.game))
	assert.Error(t, f.installer.EnableD3D8to9(f.game), "nothing to enable before the dependency is installed")

	installShim(t, f, "shim v1")
	assert.Equal(t, core.D3D8to9State{Available: true}, f.installer.D3D8to9Status(f.game))

	require.NoError(t, f.installer.EnableD3D8to9(f.game))
	assert.Equal(t, "shim v1", readString(t, target))
	assert.Equal(t, core.D3D8to9State{Available: true, Enabled: true}, f.installer.D3D8to9Status(f.game))

	require.NoError(t, f.installer.DisableD3D8to9(f.game))
	assert.NoFileExists(t, target)
	require.NoError(t, f.installer.DisableD3D8to9(f.game), "disabling twice is fine")
}

func TestD3D8to9_Outdated(t *testing.T) {
	f := newFixture(t, nil)
	installShim(t, f, "shim v1")
	require.NoError(t, f.installer.EnableD3D8to9(f.game))

	installShim(t, f, "shim v2")
	assert.True(t, f.installer.D3D8to9Status(f.game).Outdated)

	installShim(t, f, "shim v3 with a different size")
	assert.True(t, f.installer.D3D8to9Status(f.game).Outdated)

	require.NoError(t, f.installer.EnableD3D8to9(f.game))
	assert.False(t, f.installer.D3D8to9Status(f.game).Outdated)
}

func TestD3D8to9_GameWithoutShim(t *testing.T) {
	f := newFixture(t, nil)
	game := *f.game
	game.Dependencies = nil

	err := f.installer.EnableD3D8to9(&game)
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
	assert.Equal(t, core.D3D8to9State{}, f.installer.D3D8to9Status(&game))
}

func TestD3D8to9_FollowsLinkMethod(t *testing.T) {
	f := newFixture(t, nil)
	inst := core.NewInstaller(f.fetcher, core.NewExtractor(), fakeCommits{}, f.reporter,
		core.WithLinker(linker.NewSymlink()))
	assert.Equal(t, domain.LinkSymlink, inst.LinkMethod())
	src := installShim(t, f, "shim v1")
	target := filepath.Join(f.gameDir, "d3d8.dll")

	require.NoError(t, inst.EnableD3D8to9(f.game))
	info, err := os.Lstat(target)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "shim is linked, not copied")
	assert.Equal(t, core.D3D8to9State{Available: true, Enabled: true}, inst.D3D8to9Status(f.game))

	require.NoError(t, inst.DisableD3D8to9(f.game))
	assert.NoFileExists(t, target)
	assert.FileExists(t, src, "disabling leaves the installed dependency alone")
	assert.Equal(t, core.D3D8to9State{Available: true}, inst.D3D8to9Status(f.game))
}

func TestD3D8to9_SymlinkIgnoresForeignFile(t *testing.T) {
	f := newFixture(t, nil)
	inst := core.NewInstaller(f.fetcher, core.NewExtractor(), fakeCommits{}, f.reporter,
		core.WithLinker(linker.NewSymlink()))
	installShim(t, f, "shim v1")
	target := filepath.Join(f.gameDir, "d3d8.dll")
	require.NoError(t, os.WriteFile(target, []byte("someone else's d3d8"), 0644))

	assert.False(t, inst.D3D8to9Status(f.game).Enabled)
	assert.ErrorIs(t, inst.DisableD3D8to9(f.game), domain.ErrLinkFailed)
	assert.Equal(t, "someone else's d3d8", readString(t, target))
}

func TestD3D8to9_LowercaseShim(t *testing.T) {
	f := newFixture(t, nil)
	src := filepath.Join(f.paths.ExtLibsRoot, "D3D8M", "d3d8m.dll")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
	require.NoError(t, os.WriteFile(src, []byte("lower"), 0644))

	require.NoError(t, f.installer.EnableD3D8to9(f.game))
	assert.Equal(t, "lower", readString(t, filepath.Join(f.gameDir, "d3d8.dll")))
}
