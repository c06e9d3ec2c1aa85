package settings

import (
	"fmt"
	"strconv"

	"samm/internal/domain"

	"gopkg.in/ini.v1"
)

// LegacySettings is the flat loader ini that predates structured profiles.
// It is only ever read, as a migration source.
type LegacySettings struct {
	ScreenNum                 int  `ini:"ScreenNum"`
	HorizontalResolution      int  `ini:"HorizontalResolution"`
	VerticalResolution        int  `ini:"VerticalResolution"`
	ForceAspectRatio          bool `ini:"ForceAspectRatio"`
	EnableVsync               bool `ini:"EnableVsync"`
	PauseWhenInactive         bool `ini:"PauseWhenInactive"`
	WindowedFullscreen        bool `ini:"WindowedFullscreen"`
	StretchFullscreen         bool `ini:"StretchFullscreen"`
	CustomWindowSize          bool `ini:"CustomWindowSize"`
	WindowWidth               int  `ini:"WindowWidth"`
	WindowHeight              int  `ini:"WindowHeight"`
	MaintainWindowAspectRatio bool `ini:"MaintainWindowAspectRatio"`
	ResizableWindow           bool `ini:"ResizableWindow"`
	BackgroundFillMode        int  `ini:"BackgroundFillMode"`
	FmvFillMode               int  `ini:"FmvFillMode"`
	ScaleHud                  bool `ini:"ScaleHud"`
	AutoMipmap                bool `ini:"AutoMipmap"`
	TextureFilter             bool `ini:"TextureFilter"`

	InputModEnabled bool `ini:"InputModEnabled"`

	EnableBassMusic bool `ini:"EnableBassMusic"`
	EnableBassSFX   bool `ini:"EnableBassSFX"`
	SEVolume        int  `ini:"SEVolume"`

	TestSpawnLevel           int     `ini:"TestSpawnLevel"`
	TestSpawnAct             int     `ini:"TestSpawnAct"`
	TestSpawnCharacter       int     `ini:"TestSpawnCharacter"`
	TestSpawnEvent           int     `ini:"TestSpawnEvent"`
	TestSpawnGameMode        int     `ini:"TestSpawnGameMode"`
	TestSpawnSaveID          int     `ini:"TestSpawnSaveID"`
	TestSpawnPositionEnabled bool    `ini:"TestSpawnPositionEnabled"`
	TestSpawnX               float32 `ini:"TestSpawnX"`
	TestSpawnY               float32 `ini:"TestSpawnY"`
	TestSpawnZ               float32 `ini:"TestSpawnZ"`
	TestSpawnRotation        int     `ini:"TestSpawnRotation"`
	TextLanguage             int     `ini:"TextLanguage"`
	VoiceLanguage            int     `ini:"VoiceLanguage"`

	HRTFSound           bool `ini:"HRTFSound"`
	CCEF                bool `ini:"CCEF"`
	PolyBuff            bool `ini:"PolyBuff"`
	MaterialColorFix    bool `ini:"MaterialColorFix"`
	NodeLimit           bool `ini:"NodeLimit"`
	FovFix              bool `ini:"FovFix"`
	SCFix               bool `ini:"SCFix"`
	Chaos2CrashFix      bool `ini:"Chaos2CrashFix"`
	ChunkSpecFix        bool `ini:"ChunkSpecFix"`
	E102PolyFix         bool `ini:"E102PolyFix"`
	ChaoPanelFix        bool `ini:"ChaoPanelFix"`
	PixelOffSetFix      bool `ini:"PixelOffSetFix"`
	LightFix            bool `ini:"LightFix"`
	KillGbix            bool `ini:"KillGbix"`
	DisableCDCheck      bool `ini:"DisableCDCheck"`
	ExtendedSaveSupport bool `ini:"ExtendedSaveSupport"`

	DebugConsole  bool `ini:"DebugConsole"`
	DebugScreen   bool `ini:"DebugScreen"`
	DebugFile     bool `ini:"DebugFile"`
	DebugCrashLog bool `ini:"DebugCrashLog"`

	Mods         []string `ini:"-"`
	EnabledCodes []string `ini:"-"`
}

// legacyDefaults mirrors what the loader assumes for keys it never wrote
func legacyDefaults() LegacySettings {
	return LegacySettings{
		ScreenNum:            1,
		HorizontalResolution: 640,
		VerticalResolution:   480,
		EnableVsync:          true,
		PauseWhenInactive:    true,
		WindowedFullscreen:   true,
		StretchFullscreen:    true,
		WindowWidth:          640,
		WindowHeight:         480,
		BackgroundFillMode:   FillFill,
		FmvFillMode:          FillFit,
		ScaleHud:             true,
		AutoMipmap:           true,
		TextureFilter:        true,
		InputModEnabled:      true,
		EnableBassMusic:      true,
		SEVolume:             100,
		TestSpawnLevel:       -1,
		TestSpawnCharacter:   -1,
		TestSpawnEvent:       -1,
		TestSpawnGameMode:    -1,
		TestSpawnSaveID:      -1,
		TextLanguage:         LanguageEnglish,
		VoiceLanguage:        LanguageEnglish,
		HRTFSound:            true,
		CCEF:                 true,
		PolyBuff:             true,
		MaterialColorFix:     true,
		NodeLimit:            true,
		FovFix:               true,
		SCFix:                true,
		Chaos2CrashFix:       true,
		ChunkSpecFix:         true,
		E102PolyFix:          true,
		ChaoPanelFix:         true,
		PixelOffSetFix:       true,
		LightFix:             true,
		KillGbix:             true,
		ExtendedSaveSupport:  true,
		DebugCrashLog:        true,
	}
}

// LoadLegacy reads a loader ini. Keys the file lacks keep the loader's defaults.
func LoadLegacy(path string) (*LegacySettings, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, &domain.SerializationError{Path: path, Err: err}
	}
	return legacyFromFile(f, path)
}

// ParseLegacy reads a loader ini from memory
func ParseLegacy(data []byte) (*LegacySettings, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, &domain.SerializationError{Path: "<memory>", Err: err}
	}
	return legacyFromFile(f, "<memory>")
}

func legacyFromFile(f *ini.File, path string) (*LegacySettings, error) {
	legacy := legacyDefaults()
	sec := f.Section("")
	if err := sec.MapTo(&legacy); err != nil {
		return nil, &domain.SerializationError{Path: path, Err: fmt.Errorf("mapping keys: %w", err)}
	}
	legacy.Mods = numberedKeys(sec, "Mod")
	legacy.EnabledCodes = numberedKeys(sec, "Code")
	return &legacy, nil
}

// numberedKeys collects prefix1, prefix2, ... until the first gap
func numberedKeys(sec *ini.Section, prefix string) []string {
	values := []string{}
	for i := 1; ; i++ {
		name := prefix + strconv.Itoa(i)
		if !sec.HasKey(name) {
			return values
		}
		values = append(values, sec.Key(name).String())
	}
}
