// Package fsadapter provides file creators for the generated artifacts.
package fsadapter

import "io"

// FileCreator is interface for saving files to underlying filesystem.
type FileCreator interface {
	Create(string) (io.WriteCloser, error)
}
