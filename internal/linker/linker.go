// Package linker places library files into a game directory.
package linker

import (
	"fmt"

	"samm/internal/domain"
)

// Linker puts a file at dst that resolves to the contents of src
type Linker interface {
	Deploy(src, dst string) error
	Undeploy(dst string) error
	IsDeployed(dst string) (bool, error)
	Method() domain.LinkMethod
}

// New creates a linker for the given method. Copy is the default because the
// loader replaces files the game maps at startup.
func New(method domain.LinkMethod) Linker {
	switch method {
	case domain.LinkHardlink:
		return NewHardlink()
	case domain.LinkSymlink:
		return NewSymlink()
	default:
		return NewCopy()
	}
}

func linkErr(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", domain.ErrLinkFailed, op, path, err)
}
