package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"samm/internal/domain"
	"samm/internal/storage/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultValues(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, domain.LinkCopy, cfg.LinkMethod)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Nil(t, cfg.URLOverrides())
	assert.Equal(t, "Default", cfg.ActiveProfile(domain.GameSADX, "Default"))
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
link_method: symlink
log_level: debug
ext_libs_path: /opt/samm/extlib
profiles:
  sadx: Speedrun
urls:
  sadx:
    loader: https://mirror.example/SADXModLoader.7z
    dependencies:
      BASS: https://mirror.example/bass.zip
  dreamcast:
    loader: ignored
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, domain.LinkSymlink, cfg.LinkMethod)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/opt/samm/extlib", cfg.ExtLibsPath)
	assert.Equal(t, "Speedrun", cfg.ActiveProfile(domain.GameSADX, "Default"))

	overrides := cfg.URLOverrides()
	require.Len(t, overrides, 1)
	assert.Equal(t, "https://mirror.example/SADXModLoader.7z", overrides[domain.GameSADX].Loader)
	assert.Equal(t, "https://mirror.example/bass.zip", overrides[domain.GameSADX].Deps["BASS"])
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("link_method: [oops"), 0644))

	_, err := config.Load(dir)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	cfg.LinkMethod = domain.LinkHardlink
	cfg.SetActiveProfile(domain.GameSADX, "Casual")
	require.NoError(t, cfg.Save(dir))

	loaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.LinkHardlink, loaded.LinkMethod)
	assert.Equal(t, "Casual", loaded.ActiveProfile(domain.GameSADX, "Default"))
}

func TestGamesFile(t *testing.T) {
	dir := t.TempDir()

	gf, err := config.LoadGames(dir)
	require.NoError(t, err)
	assert.Empty(t, gf.Games)
	assert.Equal(t, domain.GameNone, gf.CurrentID())

	gf.Remember(domain.GameSADX, "/games/sadx")
	require.NoError(t, gf.Save(dir))

	loaded, err := config.LoadGames(dir)
	require.NoError(t, err)
	assert.Equal(t, "/games/sadx", loaded.Path(domain.GameSADX))
	assert.Equal(t, domain.GameSADX, loaded.CurrentID())
	assert.Empty(t, loaded.Path(domain.GameSA2))

	require.NoError(t, loaded.Forget(domain.GameSADX))
	assert.Equal(t, domain.GameNone, loaded.CurrentID())
	assert.ErrorIs(t, loaded.Forget(domain.GameSADX), domain.ErrGameNotFound)
}

func TestLoadGames_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "games.yaml"), []byte("games: [1, 2"), 0644))

	_, err := config.LoadGames(dir)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
