package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// MigrationEnv is what the upgrade steps may consult outside the record itself
type MigrationEnv struct {
	GameDir           string // Resolved install directory of the current game
	RuntimeConfigPath string // Game's runtime config, may not exist
}

// upgradeStep brings a record from version N to N+1
type upgradeStep func(gs *GameSettings, env MigrationEnv) error

// upgradeSteps is indexed by the version a step upgrades from
var upgradeSteps = []upgradeStep{
	VersionLegacy: upgradeFromLegacy,
	VersionLaunch: upgradeFromLaunch,
}

// Upgrade runs every step between the record's version and VersionCurrent, in
// order. A record already at or past the current version is left alone.
func Upgrade(gs *GameSettings, env MigrationEnv) error {
	for gs.SettingsVersion < VersionCurrent {
		from := gs.SettingsVersion
		if from < 0 || from >= len(upgradeSteps) {
			return fmt.Errorf("no upgrade from settings version %d", from)
		}
		if err := upgradeSteps[from](gs, env); err != nil {
			return fmt.Errorf("upgrading settings from version %d: %w", from, err)
		}
		gs.SettingsVersion = from + 1
	}
	return nil
}

func upgradeFromLegacy(gs *GameSettings, env MigrationEnv) error {
	if gs.GamePath == "" {
		gs.GamePath = env.GameDir
	}
	return nil
}

// upgradeFromLaunch re-reads the options that moved to the game's own config
func upgradeFromLaunch(gs *GameSettings, env MigrationEnv) error {
	if env.RuntimeConfigPath == "" {
		return nil
	}
	rc, err := LoadRuntimeConfig(env.RuntimeConfigPath)
	if err != nil {
		if _, statErr := os.Stat(env.RuntimeConfigPath); errors.Is(statErr, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	ApplyRuntime(gs, rc)
	return nil
}

// ConvertFromLegacy builds a version 1 record from the old loader ini
func ConvertFromLegacy(legacy *LegacySettings, gameDir string) *GameSettings {
	gs := Defaults()
	gs.SettingsVersion = VersionLaunch
	gs.GamePath = gameDir

	g := &gs.Graphics
	g.SelectedScreen = legacy.ScreenNum
	g.HorizontalResolution = legacy.HorizontalResolution
	g.VerticalResolution = legacy.VerticalResolution
	g.Enable43ResolutionRatio = legacy.ForceAspectRatio
	g.EnableVsync = legacy.EnableVsync
	g.EnablePauseOnInactive = legacy.PauseWhenInactive
	g.EnableBorderless = legacy.WindowedFullscreen
	g.EnableScreenScaling = legacy.StretchFullscreen
	g.EnableCustomWindow = legacy.CustomWindowSize
	g.CustomWindowWidth = legacy.WindowWidth
	g.CustomWindowHeight = legacy.WindowHeight
	g.EnableKeepResolutionRatio = legacy.MaintainWindowAspectRatio
	g.EnableResizableWindow = legacy.ResizableWindow
	g.FillModeBackground = legacy.BackgroundFillMode
	g.FillModeFMV = legacy.FmvFillMode
	g.EnableUIScaling = legacy.ScaleHud
	g.EnableForcedMipmapping = legacy.AutoMipmap
	g.EnableForcedTextureFilter = legacy.TextureFilter
	switch {
	case legacy.CustomWindowSize:
		g.ScreenMode = ScreenCustomWindow
	case legacy.WindowedFullscreen:
		g.ScreenMode = ScreenBorderless
	default:
		g.ScreenMode = ScreenWindowed
	}

	gs.Controller.EnabledInputMod = legacy.InputModEnabled

	gs.Sound.EnableBassMusic = legacy.EnableBassMusic
	gs.Sound.EnableBassSFX = legacy.EnableBassSFX
	gs.Sound.SEVolume = legacy.SEVolume

	ts := &gs.TestSpawn
	ts.LevelIndex = legacy.TestSpawnLevel
	ts.ActIndex = legacy.TestSpawnAct
	ts.CharacterIndex = legacy.TestSpawnCharacter
	ts.EventIndex = legacy.TestSpawnEvent
	ts.GameModeIndex = legacy.TestSpawnGameMode
	ts.SaveIndex = legacy.TestSpawnSaveID
	ts.UsePosition = legacy.TestSpawnPositionEnabled
	ts.XPosition = legacy.TestSpawnX
	ts.YPosition = legacy.TestSpawnY
	ts.ZPosition = legacy.TestSpawnZ
	ts.Rotation = legacy.TestSpawnRotation
	ts.GameTextLanguage = legacy.TextLanguage
	ts.GameVoiceLanguage = legacy.VoiceLanguage
	ts.UseLevel = legacy.TestSpawnLevel > -1
	ts.UseCharacter = legacy.TestSpawnCharacter > -1
	ts.UseEvent = legacy.TestSpawnEvent > -1
	ts.UseGameMode = legacy.TestSpawnGameMode > -1
	ts.UseSave = legacy.TestSpawnSaveID > -1

	p := &gs.Patches
	p.HRTFSound = legacy.HRTFSound
	p.KeepCamSettings = legacy.CCEF
	p.FixVertexColorRendering = legacy.PolyBuff
	p.MaterialColorFix = legacy.MaterialColorFix
	p.NodeLimit = legacy.NodeLimit
	p.FOVFix = legacy.FovFix
	p.SkyChaseResolutionFix = legacy.SCFix
	p.Chaos2CrashFix = legacy.Chaos2CrashFix
	p.ChunkSpecularFix = legacy.ChunkSpecFix
	p.E102NGonFix = legacy.E102PolyFix
	p.ChaoPanelFix = legacy.ChaoPanelFix
	p.PixelOffSetFix = legacy.PixelOffSetFix
	p.LightFix = legacy.LightFix
	p.KillGBIX = legacy.KillGbix
	p.DisableCDCheck = legacy.DisableCDCheck
	p.ExtendedSaveSupport = legacy.ExtendedSaveSupport

	gs.DebugSettings = Debug{
		EnableDebugConsole:  legacy.DebugConsole,
		EnableDebugScreen:   legacy.DebugScreen,
		EnableDebugFile:     legacy.DebugFile,
		EnableDebugCrashLog: legacy.DebugCrashLog,
	}

	gs.EnabledMods = append([]string{}, legacy.Mods...)
	gs.EnabledCodes = append([]string{}, legacy.EnabledCodes...)
	return gs
}
