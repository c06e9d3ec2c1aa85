package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCmd_Structure(t *testing.T) {
	assert.Equal(t, "profile", profileCmd.Use)
	assert.Equal(t, "apply [name]", profileApplyCmd.Use)
	assert.NotEmpty(t, profileApplyCmd.Long)
}

func TestProfile_ApplyWritesGameConfig(t *testing.T) {
	configDir, _ := useTempDirs(t)
	dir := fakeGameDir(t)
	_, err := executeCommand(t, "game", "set", dir)
	require.NoError(t, err)

	out, err := executeCommand(t, "profile", "apply")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied")
	assert.FileExists(t, filepath.Join(configDir, "SADX", "Default.json"))
	assert.FileExists(t, filepath.Join(dir, "sonicDX.ini"))

	out, err = executeCommand(t, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "* Default")

	out, err = executeCommand(t, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"SettingsVersion": 2`)
	assert.Contains(t, out, dir)
}

func TestProfile_UseUnknown(t *testing.T) {
	useTempDirs(t)
	_, err := executeCommand(t, "game", "set", fakeGameDir(t))
	require.NoError(t, err)

	_, err = executeCommand(t, "profile", "use", "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile not found")
}

func TestProfile_Use(t *testing.T) {
	useTempDirs(t)
	_, err := executeCommand(t, "game", "set", fakeGameDir(t))
	require.NoError(t, err)
	_, err = executeCommand(t, "profile", "apply", "Speedrun")
	require.NoError(t, err)

	out, err := executeCommand(t, "profile", "use", "Speedrun")
	require.NoError(t, err)
	assert.Contains(t, out, "Active profile: Speedrun")

	out, err = executeCommand(t, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "* Speedrun")
	assert.NotContains(t, out, "* Default")
}

func TestProfile_ConvertLegacy(t *testing.T) {
	configDir, _ := useTempDirs(t)
	dir := fakeGameDir(t)
	_, err := executeCommand(t, "game", "set", dir)
	require.NoError(t, err)

	out, err := executeCommand(t, "profile", "convert")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to convert")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mods"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mods", "SADXModLoader.ini"),
		[]byte("HorizontalResolution=1920\nVerticalResolution=1080\nMod1=Dreamcast Conversion\n"), 0644))

	out, err = executeCommand(t, "profile", "convert")
	require.NoError(t, err)
	assert.Contains(t, out, "Converted")

	data, err := os.ReadFile(filepath.Join(configDir, "SADX", "Default.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Dreamcast Conversion")
}
