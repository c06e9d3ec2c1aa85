package settings_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"samm/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	gs := settings.Defaults()

	assert.Equal(t, settings.VersionCurrent, gs.SettingsVersion)
	assert.Equal(t, 640, gs.Graphics.HorizontalResolution)
	assert.Equal(t, settings.ScreenBorderless, gs.Graphics.ScreenMode)
	assert.Equal(t, -1, gs.TestSpawn.SaveIndex)
	assert.False(t, gs.Patches.DisableCDCheck)
	assert.True(t, gs.Patches.CrashGuard)
	assert.NotNil(t, gs.EnabledMods)
	assert.NotNil(t, gs.EnabledCodes)
}

func TestDecode_MissingFieldsKeepDefaults(t *testing.T) {
	gs, err := settings.Decode([]byte(`{"Graphics":{"HorizontalResolution":1920}}`))
	require.NoError(t, err)

	assert.Equal(t, settings.VersionLegacy, gs.SettingsVersion)
	assert.Equal(t, 1920, gs.Graphics.HorizontalResolution)
	assert.Equal(t, 480, gs.Graphics.VerticalResolution)
	assert.Equal(t, 100, gs.Sound.SEVolume)
	assert.Empty(t, gs.EnabledMods)
	assert.NotNil(t, gs.EnabledMods)
}

func TestDecode_NullListsBecomeEmpty(t *testing.T) {
	gs, err := settings.Decode([]byte(`{"SettingsVersion":2,"EnabledMods":null,"EnabledCodes":null}`))
	require.NoError(t, err)

	assert.NotNil(t, gs.EnabledMods)
	assert.NotNil(t, gs.EnabledCodes)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := settings.Decode([]byte(`{"SettingsVersion":`))
	assert.Error(t, err)
}

func TestEncode_UsesProfileFieldNames(t *testing.T) {
	gs := settings.Defaults()
	gs.EnabledMods = []string{"Dreamcast Conversion"}

	data, err := settings.Encode(gs)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"SettingsVersion": 2`)
	assert.Contains(t, s, `"GameFrameRate"`)
	assert.Contains(t, s, `"Dreamcast Conversion"`)
	assert.True(t, strings.HasPrefix(s, "{\n  "))

	back, err := settings.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, gs, back)
}

func TestScreenMode_String(t *testing.T) {
	assert.Equal(t, "windowed", settings.ScreenWindowed.String())
	assert.Equal(t, "borderless", settings.ScreenBorderless.String())
	assert.Equal(t, "unknown", settings.ScreenMode(42).String())
}

func TestLoadLegacy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SADXModLoader.ini")
	content := `HorizontalResolution=1280
VerticalResolution=720
WindowedFullscreen=False
CustomWindowSize=True
WindowWidth=1024
SEVolume=55
TestSpawnSaveID=3
DisableCDCheck=True
FovFix=False
Mod1=DreamcastConversion
Mod2=SmoothCam
Mod4=Orphan
Code1=Infinite Lives
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	legacy, err := settings.LoadLegacy(path)
	require.NoError(t, err)

	assert.Equal(t, 1280, legacy.HorizontalResolution)
	assert.Equal(t, 720, legacy.VerticalResolution)
	assert.False(t, legacy.WindowedFullscreen)
	assert.True(t, legacy.CustomWindowSize)
	assert.Equal(t, 55, legacy.SEVolume)
	assert.Equal(t, 3, legacy.TestSpawnSaveID)
	assert.True(t, legacy.DisableCDCheck)
	assert.False(t, legacy.FovFix)
	// Unset keys keep the loader's defaults
	assert.True(t, legacy.EnableVsync)
	assert.Equal(t, -1, legacy.TestSpawnLevel)
	// Numbered lists stop at the first gap
	assert.Equal(t, []string{"DreamcastConversion", "SmoothCam"}, legacy.Mods)
	assert.Equal(t, []string{"Infinite Lives"}, legacy.EnabledCodes)
}

func TestLoadLegacy_Missing(t *testing.T) {
	_, err := settings.LoadLegacy(filepath.Join(t.TempDir(), "nope.ini"))
	assert.Error(t, err)
}
