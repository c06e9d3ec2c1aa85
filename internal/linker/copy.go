package linker

import (
	"io"
	"os"
	"path/filepath"

	"samm/internal/domain"
)

// CopyLinker deploys by copying, replacing dst in a single rename
type CopyLinker struct{}

// NewCopy creates a new copy linker
func NewCopy() *CopyLinker {
	return &CopyLinker{}
}

// Deploy copies src over dst
func (l *CopyLinker) Deploy(src, dst string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return linkErr("creating directory for", dst, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return linkErr("opening", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return linkErr("stat", src, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return linkErr("creating temp file for", dst, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return linkErr("copying to", dst, err)
	}
	if err := tmp.Close(); err != nil {
		return linkErr("writing", dst, err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return linkErr("chmod", dst, err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return linkErr("replacing", dst, err)
	}
	return nil
}

// Undeploy removes dst
func (l *CopyLinker) Undeploy(dst string) error {
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return linkErr("removing", dst, err)
	}
	return nil
}

// IsDeployed checks if dst exists
func (l *CopyLinker) IsDeployed(dst string) (bool, error) {
	return exists(dst)
}

// Method returns the link method
func (l *CopyLinker) Method() domain.LinkMethod {
	return domain.LinkCopy
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
