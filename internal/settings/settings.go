// Package settings holds the structured per-profile game settings, the
// legacy formats they are migrated from, and the store that persists them.
package settings

import (
	"encoding/json"
)

// Settings schema versions
const (
	VersionLegacy  = 0 // Original loader ini
	VersionLaunch  = 1 // First structured version
	VersionCurrent = 2 // Writes the runtime config, sole source of truth
)

// ScreenMode is how the game window is presented
type ScreenMode int

const (
	ScreenWindowed ScreenMode = iota
	ScreenFullscreen
	ScreenBorderless
	ScreenCustomWindow
)

func (m ScreenMode) String() string {
	switch m {
	case ScreenWindowed:
		return "windowed"
	case ScreenFullscreen:
		return "fullscreen"
	case ScreenBorderless:
		return "borderless"
	case ScreenCustomWindow:
		return "custom"
	default:
		return "unknown"
	}
}

// Fill modes for backgrounds and FMVs
const (
	FillStretch = 0
	FillFit     = 1
	FillFill    = 2
)

// Game languages
const (
	LanguageJapanese = 0
	LanguageEnglish  = 1
	LanguageFrench   = 2
	LanguageSpanish  = 3
	LanguageGerman   = 4
)

// Graphics holds display settings
type Graphics struct {
	SelectedScreen            int        `json:"SelectedScreen"`
	HorizontalResolution      int        `json:"HorizontalResolution"`
	VerticalResolution        int        `json:"VerticalResolution"`
	Enable43ResolutionRatio   bool       `json:"Enable43ResolutionRatio"`
	EnableVsync               bool       `json:"EnableVsync"`
	EnablePauseOnInactive     bool       `json:"EnablePauseOnInactive"`
	CustomWindowWidth         int        `json:"CustomWindowWidth"`
	CustomWindowHeight        int        `json:"CustomWindowHeight"`
	EnableKeepResolutionRatio bool       `json:"EnableKeepResolutionRatio"`
	EnableResizableWindow     bool       `json:"EnableResizableWindow"`
	FillModeBackground        int        `json:"FillModeBackground"`
	FillModeFMV               int        `json:"FillModeFMV"`
	ModeTextureFiltering      int        `json:"ModeTextureFiltering"`
	ModeUIFiltering           int        `json:"ModeUIFiltering"`
	EnableUIScaling           bool       `json:"EnableUIScaling"`
	EnableForcedMipmapping    bool       `json:"EnableForcedMipmapping"`
	EnableForcedTextureFilter bool       `json:"EnableForcedTextureFilter"`
	ScreenMode                ScreenMode `json:"ScreenMode"`
	GameFrameRate             int        `json:"GameFrameRate"`
	GameFogMode               int        `json:"GameFogMode"`
	GameClipLevel             int        `json:"GameClipLevel"`
	ShowMouseInFullscreen     bool       `json:"ShowMouseInFullscreen"`

	// Superseded by ScreenMode, kept so older profiles round-trip.
	EnableCustomWindow  bool `json:"EnableCustomWindow"`
	EnableBorderless    bool `json:"EnableBorderless"`
	EnableScreenScaling bool `json:"EnableScreenScaling"`
}

// Controller holds input settings
type Controller struct {
	EnabledInputMod     bool `json:"EnabledInputMod"`
	VanillaMouseUseDrag bool `json:"VanillaMouseUseDrag"`
	VanillaMouseStart   int  `json:"VanillaMouseStart"`
	VanillaMouseAttack  int  `json:"VanillaMouseAttack"`
	VanillaMouseJump    int  `json:"VanillaMouseJump"`
	VanillaMouseAction  int  `json:"VanillaMouseAction"`
	VanillaMouseFlute   int  `json:"VanillaMouseFlute"`
}

// Sound holds audio settings
type Sound struct {
	EnableGameMusic   bool `json:"EnableGameMusic"`
	EnableGameSound   bool `json:"EnableGameSound"`
	EnableGameSound3D bool `json:"EnableGameSound3D"`
	EnableBassMusic   bool `json:"EnableBassMusic"`
	EnableBassSFX     bool `json:"EnableBassSFX"`
	GameMusicVolume   int  `json:"GameMusicVolume"`
	GameSoundVolume   int  `json:"GameSoundVolume"`
	SEVolume          int  `json:"SEVolume"`
}

// TestSpawn holds the loader's test-spawn launch options
type TestSpawn struct {
	UseCharacter      bool    `json:"UseCharacter"`
	UseLevel          bool    `json:"UseLevel"`
	UseEvent          bool    `json:"UseEvent"`
	UseGameMode       bool    `json:"UseGameMode"`
	UseSave           bool    `json:"UseSave"`
	LevelIndex        int     `json:"LevelIndex"`
	ActIndex          int     `json:"ActIndex"`
	CharacterIndex    int     `json:"CharacterIndex"`
	EventIndex        int     `json:"EventIndex"`
	GameModeIndex     int     `json:"GameModeIndex"`
	SaveIndex         int     `json:"SaveIndex"`
	GameTextLanguage  int     `json:"GameTextLanguage"`
	GameVoiceLanguage int     `json:"GameVoiceLanguage"`
	UseManual         bool    `json:"UseManual"`
	UsePosition       bool    `json:"UsePosition"`
	XPosition         float32 `json:"XPosition"`
	YPosition         float32 `json:"YPosition"`
	ZPosition         float32 `json:"ZPosition"`
	Rotation          int     `json:"Rotation"`
}

// Patches holds the loader's built-in fixes
type Patches struct {
	HRTFSound               bool `json:"HRTFSound"`
	KeepCamSettings         bool `json:"KeepCamSettings"`
	FixVertexColorRendering bool `json:"FixVertexColorRendering"`
	MaterialColorFix        bool `json:"MaterialColorFix"`
	NodeLimit               bool `json:"NodeLimit"`
	FOVFix                  bool `json:"FOVFix"`
	SkyChaseResolutionFix   bool `json:"SkyChaseResolutionFix"`
	Chaos2CrashFix          bool `json:"Chaos2CrashFix"`
	ChunkSpecularFix        bool `json:"ChunkSpecularFix"`
	E102NGonFix             bool `json:"E102NGonFix"`
	ChaoPanelFix            bool `json:"ChaoPanelFix"`
	PixelOffSetFix          bool `json:"PixelOffSetFix"`
	LightFix                bool `json:"LightFix"`
	KillGBIX                bool `json:"KillGBIX"`
	DisableCDCheck          bool `json:"DisableCDCheck"`
	ExtendedSaveSupport     bool `json:"ExtendedSaveSupport"`
	CrashGuard              bool `json:"CrashGuard"`
}

// Debug holds loader debug output toggles
type Debug struct {
	EnableDebugConsole  bool `json:"EnableDebugConsole"`
	EnableDebugScreen   bool `json:"EnableDebugScreen"`
	EnableDebugFile     bool `json:"EnableDebugFile"`
	EnableDebugCrashLog bool `json:"EnableDebugCrashLog"`
}

// GameSettings is one profile's structured settings record
type GameSettings struct {
	SettingsVersion int        `json:"SettingsVersion"`
	Graphics        Graphics   `json:"Graphics"`
	Controller      Controller `json:"Controller"`
	Sound           Sound      `json:"Sound"`
	TestSpawn       TestSpawn  `json:"TestSpawn"`
	Patches         Patches    `json:"Patches"`
	DebugSettings   Debug      `json:"DebugSettings"`
	GamePath        string     `json:"GamePath"`
	EnabledMods     []string   `json:"EnabledMods"`
	EnabledCodes    []string   `json:"EnabledCodes"`
}

// Defaults returns a record at the current version with every default set
func Defaults() *GameSettings {
	return &GameSettings{
		SettingsVersion: VersionCurrent,
		Graphics: Graphics{
			SelectedScreen:            1,
			HorizontalResolution:      640,
			VerticalResolution:        480,
			EnableVsync:               true,
			EnablePauseOnInactive:     true,
			CustomWindowWidth:         640,
			CustomWindowHeight:        480,
			FillModeBackground:        FillFill,
			FillModeFMV:               FillFit,
			EnableUIScaling:           true,
			EnableForcedMipmapping:    true,
			EnableForcedTextureFilter: true,
			ScreenMode:                ScreenBorderless,
			EnableBorderless:          true,
			EnableScreenScaling:       true,
		},
		Controller: Controller{
			EnabledInputMod: true,
		},
		Sound: Sound{
			EnableGameMusic:   true,
			EnableGameSound:   true,
			EnableGameSound3D: true,
			EnableBassMusic:   true,
			GameMusicVolume:   100,
			GameSoundVolume:   100,
			SEVolume:          100,
		},
		TestSpawn: TestSpawn{
			LevelIndex:        -1,
			CharacterIndex:    -1,
			EventIndex:        -1,
			GameModeIndex:     -1,
			SaveIndex:         -1,
			GameTextLanguage:  LanguageEnglish,
			GameVoiceLanguage: LanguageEnglish,
		},
		Patches: Patches{
			HRTFSound:               true,
			KeepCamSettings:         true,
			FixVertexColorRendering: true,
			MaterialColorFix:        true,
			NodeLimit:               true,
			FOVFix:                  true,
			SkyChaseResolutionFix:   true,
			Chaos2CrashFix:          true,
			ChunkSpecularFix:        true,
			E102NGonFix:             true,
			ChaoPanelFix:            true,
			PixelOffSetFix:          true,
			LightFix:                true,
			KillGBIX:                true,
			ExtendedSaveSupport:     true,
			CrashGuard:              true,
		},
		DebugSettings: Debug{
			EnableDebugCrashLog: true,
		},
		EnabledMods:  []string{},
		EnabledCodes: []string{},
	}
}

// Decode parses a profile over the defaults, so fields absent from older
// files keep their default values. A file without SettingsVersion is v0.
func Decode(data []byte) (*GameSettings, error) {
	gs := Defaults()
	gs.SettingsVersion = VersionLegacy
	if err := json.Unmarshal(data, gs); err != nil {
		return nil, err
	}
	if gs.SettingsVersion < VersionLegacy {
		gs.SettingsVersion = VersionLegacy
	}
	if gs.EnabledMods == nil {
		gs.EnabledMods = []string{}
	}
	if gs.EnabledCodes == nil {
		gs.EnabledCodes = []string{}
	}
	return gs, nil
}

// Encode renders the profile as indented JSON
func Encode(gs *GameSettings) ([]byte, error) {
	return json.MarshalIndent(gs, "", "  ")
}
