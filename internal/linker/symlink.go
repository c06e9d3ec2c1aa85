package linker

import (
	"fmt"
	"os"
	"path/filepath"

	"samm/internal/domain"
)

// SymlinkLinker deploys using symbolic links. Some Wine prefixes do not
// follow links for libraries loaded by the game.
type SymlinkLinker struct{}

// NewSymlink creates a new symlink linker
func NewSymlink() *SymlinkLinker {
	return &SymlinkLinker{}
}

// Deploy replaces dst with a link to src
func (l *SymlinkLinker) Deploy(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return linkErr("creating directory for", dst, err)
	}
	abs, err := filepath.Abs(src)
	if err != nil {
		return linkErr("resolving", src, err)
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return linkErr("removing", dst, err)
	}
	if err := os.Symlink(abs, dst); err != nil {
		return linkErr("linking", dst, err)
	}
	return nil
}

// Undeploy removes the symlink at dst. Regular files are left alone.
func (l *SymlinkLinker) Undeploy(dst string) error {
	info, err := os.Lstat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return linkErr("checking", dst, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return linkErr("removing", dst, fmt.Errorf("not a symlink"))
	}
	if err := os.Remove(dst); err != nil {
		return linkErr("removing", dst, err)
	}
	return nil
}

// IsDeployed checks if dst is a symlink
func (l *SymlinkLinker) IsDeployed(dst string) (bool, error) {
	info, err := os.Lstat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

// Method returns the link method
func (l *SymlinkLinker) Method() domain.LinkMethod {
	return domain.LinkSymlink
}
