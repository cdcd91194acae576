package asset

import (
	"errors"
	"os"
	"path/filepath"
)

var ErrNoWritableFS = errors.New("asset: no writable file system registered")

type WriteableFileSystem interface {
	WriteFile(path Path, data []byte) error
}

type writableFS struct {
	base Path
}

func (f *writableFS) WriteFile(path Path, data []byte) error {
	full := filepath.Join(string(f.base), filepath.FromSlash(string(path)))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

// NewWritableFS writes files below basepath on the local disk.
func NewWritableFS(basepath Path) WriteableFileSystem {
	return &writableFS{
		base: basepath,
	}
}
