package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"samm/internal/domain"

	"gopkg.in/ini.v1"
)

// RuntimeSection is the ini section the game reads its options from
const RuntimeSection = "sonicDX"

// iniFormatMu guards ini.PrettyFormat, which ini.v1 only offers as a
// package variable
var iniFormatMu sync.Mutex

// writeCompact serializes f without spaces around '=', which the game's parser
// rejects. The global format setting is restored before returning.
func writeCompact(f *ini.File, w io.Writer) error {
	iniFormatMu.Lock()
	defer iniFormatMu.Unlock()

	prev := ini.PrettyFormat
	ini.PrettyFormat = false
	defer func() { ini.PrettyFormat = prev }()

	_, err := f.WriteTo(w)
	return err
}

// RuntimeConfig is the game's own config file (sonicDX.ini)
type RuntimeConfig struct {
	FrameRate    int `ini:"framerate"`
	FogEmulation int `ini:"fogemulation"`
	ClipLevel    int `ini:"cliplevel"`
	FullScreen   int `ini:"screen"`
	Sound3D      int `ini:"sound3d"`
	SEVoice      int `ini:"sevoice"`
	BGM          int `ini:"bgm"`
	BGMVolume    int `ini:"bgmv"`
	VoiceVolume  int `ini:"voicev"`
	MouseMode    int `ini:"mousemode"`
	MouseStart   int `ini:"mousestart"`
	MouseAttack  int `ini:"mouseattack"`
	MouseJump    int `ini:"mousejump"`
	MouseAction  int `ini:"mouseaction"`
	MouseFlute   int `ini:"mouseflute"`

	file *ini.File `ini:"-"`
}

// NewRuntimeConfig returns the values the game starts with when it has no file
func NewRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		FrameRate:   1,
		FullScreen:  1,
		Sound3D:     1,
		SEVoice:     1,
		BGM:         1,
		BGMVolume:   100,
		VoiceVolume: 100,
	}
}

// LoadRuntimeConfig reads path. Sections and keys this type does not know
// about are kept and written back by Save.
func LoadRuntimeConfig(path string) (*RuntimeConfig, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, &domain.SerializationError{Path: path, Err: err}
	}
	rc := NewRuntimeConfig()
	if err := f.Section(RuntimeSection).MapTo(rc); err != nil {
		return nil, &domain.SerializationError{Path: path, Err: fmt.Errorf("mapping keys: %w", err)}
	}
	rc.file = f
	return rc, nil
}

// loadOrNewRuntimeConfig returns the existing config at path, or the
// defaults when there is no file yet
func loadOrNewRuntimeConfig(path string) (*RuntimeConfig, error) {
	rc, err := LoadRuntimeConfig(path)
	if err == nil {
		return rc, nil
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		return NewRuntimeConfig(), nil
	}
	return nil, err
}

// Save writes the config to path through a temporary file in the same directory
func (rc *RuntimeConfig) Save(path string) error {
	f := rc.file
	if f == nil {
		f = ini.Empty()
	}
	if err := f.Section(RuntimeSection).ReflectFrom(rc); err != nil {
		return &domain.SerializationError{Path: path, Err: err}
	}

	var buf bytes.Buffer
	if err := writeCompact(f, &buf); err != nil {
		return &domain.SerializationError{Path: path, Err: err}
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	rc.file = f
	return nil
}

// ToRuntime derives the game's config from a profile, on top of base
func ToRuntime(gs *GameSettings, base *RuntimeConfig) *RuntimeConfig {
	rc := base
	if rc == nil {
		rc = NewRuntimeConfig()
	}

	rc.FrameRate = gs.Graphics.GameFrameRate + 1
	rc.FogEmulation = gs.Graphics.GameFogMode
	rc.ClipLevel = gs.Graphics.GameClipLevel
	switch gs.Graphics.ScreenMode {
	case ScreenFullscreen, ScreenBorderless:
		rc.FullScreen = 1
	default:
		rc.FullScreen = 0
	}

	rc.MouseMode = boolInt(gs.Controller.VanillaMouseUseDrag)
	rc.MouseStart = gs.Controller.VanillaMouseStart
	rc.MouseAttack = gs.Controller.VanillaMouseAttack
	rc.MouseJump = gs.Controller.VanillaMouseJump
	rc.MouseAction = gs.Controller.VanillaMouseAction
	rc.MouseFlute = gs.Controller.VanillaMouseFlute

	rc.BGM = boolInt(gs.Sound.EnableGameMusic)
	rc.SEVoice = boolInt(gs.Sound.EnableGameSound)
	rc.Sound3D = boolInt(gs.Sound.EnableGameSound3D)
	rc.BGMVolume = gs.Sound.GameMusicVolume
	rc.VoiceVolume = gs.Sound.GameSoundVolume
	return rc
}

// ApplyRuntime copies the game's config into the Graphics, Controller and
// Sound parts of a profile. The screen mode is not derived back: the game
// only knows windowed or not.
func ApplyRuntime(gs *GameSettings, rc *RuntimeConfig) {
	gs.Graphics.GameFrameRate = max(rc.FrameRate-1, 0)
	gs.Graphics.GameFogMode = rc.FogEmulation
	gs.Graphics.GameClipLevel = rc.ClipLevel

	gs.Controller.VanillaMouseUseDrag = rc.MouseMode == 1
	gs.Controller.VanillaMouseStart = rc.MouseStart
	gs.Controller.VanillaMouseAttack = rc.MouseAttack
	gs.Controller.VanillaMouseJump = rc.MouseJump
	gs.Controller.VanillaMouseAction = rc.MouseAction
	gs.Controller.VanillaMouseFlute = rc.MouseFlute

	gs.Sound.EnableGameMusic = rc.BGM == 1
	gs.Sound.EnableGameSound = rc.SEVoice == 1
	gs.Sound.EnableGameSound3D = rc.Sound3D == 1
	gs.Sound.GameMusicVolume = rc.BGMVolume
	gs.Sound.GameSoundVolume = rc.VoiceVolume
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// writeFileAtomic writes data next to path and renames it into place
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
