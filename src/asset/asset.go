// Package asset resolves the editor's image assets. Reads go through a
// prioritized list of read-only file systems; the exported meme goes to a
// single writable file system.
package asset

import (
	"fmt"
	"io/fs"
	"sync"

	"golang.org/x/exp/slices"
)

// Path is a slash separated path relative to the registered file systems.
type Path string

type fsWrapper struct {
	FileSystem fs.FS
	Priority   int
}

type assetManagerImpl struct {
	mu          sync.RWMutex
	FileSystems []*fsWrapper
	WriteFS     WriteableFileSystem
}

var assetManager = newAssetManagerImpl()

func newAssetManagerImpl() *assetManagerImpl {
	return &assetManagerImpl{
		FileSystems: []*fsWrapper{},
	}
}

// RegisterFileSystem adds a file system to search. Lower priority values
// are searched first; equal priorities keep registration order.
func RegisterFileSystem(filesystem fs.FS, priority int) error {
	if filesystem == nil {
		return fmt.Errorf("asset: nil file system")
	}
	return assetManager.AddFS(&fsWrapper{FileSystem: filesystem, Priority: priority})
}

// RegisterWritableFileSystem sets where WriteFile stores files.
func RegisterWritableFileSystem(filesystem WriteableFileSystem) {
	assetManager.mu.Lock()
	defer assetManager.mu.Unlock()
	assetManager.WriteFS = filesystem
}

// ReadFile returns the file from the first registered file system that has it.
func ReadFile(path Path) ([]byte, error) {
	return assetManager.ReadFile(path)
}

// WriteFile stores data through the registered writable file system.
func WriteFile(path Path, data []byte) error {
	assetManager.mu.RLock()
	wfs := assetManager.WriteFS
	assetManager.mu.RUnlock()
	if wfs == nil {
		return ErrNoWritableFS
	}
	if err := wfs.WriteFile(path, data); err != nil {
		return fmt.Errorf("asset: write %s: %w", path, err)
	}
	log().Info("asset: wrote file", "path", path, "bytes", len(data))
	return nil
}

// WalkFiles walks every registered file system in priority order. Returning
// fs.SkipAll from fn stops the walk.
func WalkFiles(fn fs.WalkDirFunc) error {
	return assetManager.WalkFiles(fn)
}

// Reset forgets all registered file systems. Used by tests.
func Reset() {
	assetManager = newAssetManagerImpl()
}

func (a *assetManagerImpl) AddFS(wrapper *fsWrapper) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.FileSystems = append(a.FileSystems, wrapper)
	slices.SortStableFunc(a.FileSystems, func(a, b *fsWrapper) int {
		return a.Priority - b.Priority
	})
	return nil
}

func (a *assetManagerImpl) fileSystems() []*fsWrapper {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.FileSystems)
}

func (a *assetManagerImpl) ReadFile(path Path) ([]byte, error) {
	for _, fsys := range a.fileSystems() {
		data, err := fs.ReadFile(fsys.FileSystem, string(path))
		if err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("asset: unable to find %s in any registered file system: %w", path, fs.ErrNotExist)
}

func (a *assetManagerImpl) WalkFiles(fn fs.WalkDirFunc) error {
	for _, fsys := range a.fileSystems() {
		stopped := false
		err := fs.WalkDir(fsys.FileSystem, ".", func(path string, d fs.DirEntry, err error) error {
			ret := fn(path, d, err)
			if ret == fs.SkipAll {
				stopped = true
			}
			return ret
		})
		if err != nil {
			return err
		}
		if stopped {
			return nil
		}
	}
	return nil
}
