package linker_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"samm/internal/domain"
	"samm/internal/linker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLib(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCopyLinker_ReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "mods", "SADXModLoader.dll")
	dst := filepath.Join(dir, "System", "CHRMODELS.dll")
	writeLib(t, src, "loader v2")
	writeLib(t, dst, "original")

	l := linker.NewCopy()
	require.NoError(t, l.Deploy(src, dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "loader v2", string(content))

	// Only the deployed file remains in the directory
	entries, err := os.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	deployed, err := l.IsDeployed(dst)
	require.NoError(t, err)
	assert.True(t, deployed)
}

func TestCopyLinker_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := linker.NewCopy().Deploy(filepath.Join(dir, "nope.dll"), filepath.Join(dir, "d3d8.dll"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLinkFailed))
}

func TestCopyLinker_Undeploy(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "d3d8.dll")
	writeLib(t, dst, "shim")

	l := linker.NewCopy()
	require.NoError(t, l.Undeploy(dst))
	require.NoError(t, l.Undeploy(dst), "removing twice is not an error")

	deployed, err := l.IsDeployed(dst)
	require.NoError(t, err)
	assert.False(t, deployed)
}

func TestSymlinkLinker_Deploy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "extlib", "d3d8m.dll")
	dst := filepath.Join(dir, "game", "d3d8.dll")
	writeLib(t, src, "shim")

	l := linker.NewSymlink()
	require.NoError(t, l.Deploy(src, dst))

	info, err := os.Lstat(dst)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0)

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "shim", string(content))
}

func TestSymlinkLinker_UndeployLeavesRegularFiles(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "d3d8.dll")
	writeLib(t, dst, "user installed")

	err := linker.NewSymlink().Undeploy(dst)
	require.Error(t, err)

	_, statErr := os.Stat(dst)
	assert.NoError(t, statErr)
}

func TestHardlinkLinker_Deploy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.dll")
	dst := filepath.Join(dir, "dst.dll")
	writeLib(t, src, "content")
	writeLib(t, dst, "old")

	l := linker.NewHardlink()
	require.NoError(t, l.Deploy(src, dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))

	srcInfo, err := os.Stat(src)
	require.NoError(t, err)
	dstInfo, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, os.SameFile(srcInfo, dstInfo))
}

func TestNew_ReturnsCorrectLinker(t *testing.T) {
	assert.Equal(t, domain.LinkSymlink, linker.New(domain.LinkSymlink).Method())
	assert.Equal(t, domain.LinkHardlink, linker.New(domain.LinkHardlink).Method())
	assert.Equal(t, domain.LinkCopy, linker.New(domain.LinkCopy).Method())
	assert.Equal(t, domain.LinkCopy, linker.New(domain.LinkMethod(42)).Method())
}
