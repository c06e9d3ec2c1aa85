//go:build embedded

package games

import (
	"embed"
	"path"
)

// Offline payloads - populated at build time.
// To build with embedded files:
//  1. Place <Name>.zip, <Name>.7z or <Name>.dll in internal/games/payload/
//  2. Run: go build -tags embedded ./cmd/samm

//go:embed payload/*
var payloadFS embed.FS

func embeddedPayload(name string) []byte {
	for _, ext := range []string{".zip", ".7z", ".dll"} {
		data, err := payloadFS.ReadFile(path.Join("payload", name+ext))
		if err == nil && len(data) > 0 {
			return data
		}
	}
	return nil
}
