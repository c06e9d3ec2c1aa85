package games

import (
	"os"
	"path/filepath"
)

// PayloadSource supplies the offline fallback bytes for a loader or dependency
type PayloadSource interface {
	Payload(name string) []byte
}

// Embedded returns the payloads compiled into the binary. Normal builds
// carry none; build with -tags embedded to include internal/games/payload.
func Embedded() PayloadSource {
	return embeddedSource{}
}

type embeddedSource struct{}

func (embeddedSource) Payload(name string) []byte {
	return embeddedPayload(name)
}

// DirSource reads payloads from <dir>/<name>.zip, <name>.7z or <name>.dll,
// for installs that ship the offline files next to the binary.
type DirSource struct {
	Dir string
}

// Payload returns the first matching file's contents, or nil
func (s DirSource) Payload(name string) []byte {
	for _, ext := range []string{".zip", ".7z", ".dll"} {
		data, err := os.ReadFile(filepath.Join(s.Dir, name+ext))
		if err == nil && len(data) > 0 {
			return data
		}
	}
	return nil
}

// ChainSource returns the first non-empty payload from its sources
type ChainSource []PayloadSource

// Payload implements PayloadSource
func (c ChainSource) Payload(name string) []byte {
	for _, src := range c {
		if src == nil {
			continue
		}
		if data := src.Payload(name); len(data) > 0 {
			return data
		}
	}
	return nil
}
