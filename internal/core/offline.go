package core

import (
	"fmt"
	"os"
	"path/filepath"

	"samm/internal/domain"
)

// installOffline puts an embedded payload into dir. Archives are extracted;
// anything else is written as dllName.
func (i *Installer) installOffline(name string, payload []byte, dir, dllName string) bool {
	log := i.log.With().Str("component", name).Str("dir", dir).Logger()
	if err := extractPayload(i.extractor, payload, dir, dllName); err != nil {
		log.Error().Err(err).Msg("offline install failed")
		return false
	}
	log.Info().Msg("installed from offline payload")
	return true
}

func extractPayload(extractor ArchiveExtractor, payload []byte, dir, dllName string) error {
	if len(payload) == 0 {
		return domain.ErrNoPayload
	}
	if dir == "" {
		return fmt.Errorf("%w: no destination", domain.ErrGameDirMissing)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	format := SniffFormat(payload)
	if format == "" {
		if err := os.WriteFile(filepath.Join(dir, dllName), payload, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", dllName, err)
		}
		return nil
	}

	tmp, err := os.MkdirTemp("", "samm-payload-")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	archive := filepath.Join(tmp, "payload."+format)
	if err := os.WriteFile(archive, payload, 0644); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}
	return extractor.Extract(archive, dir)
}
