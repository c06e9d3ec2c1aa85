package linker

import (
	"os"
	"path/filepath"

	"samm/internal/domain"
)

// HardlinkLinker deploys using hard links; src and dst must share a filesystem
type HardlinkLinker struct{}

// NewHardlink creates a new hardlink linker
func NewHardlink() *HardlinkLinker {
	return &HardlinkLinker{}
}

// Deploy replaces dst with a hard link to src
func (l *HardlinkLinker) Deploy(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return linkErr("creating directory for", dst, err)
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return linkErr("removing", dst, err)
	}
	if err := os.Link(src, dst); err != nil {
		return linkErr("linking", dst, err)
	}
	return nil
}

// Undeploy removes dst
func (l *HardlinkLinker) Undeploy(dst string) error {
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return linkErr("removing", dst, err)
	}
	return nil
}

// IsDeployed checks if dst exists; a hard link looks like any other file
func (l *HardlinkLinker) IsDeployed(dst string) (bool, error) {
	return exists(dst)
}

// Method returns the link method
func (l *HardlinkLinker) Method() domain.LinkMethod {
	return domain.LinkHardlink
}
