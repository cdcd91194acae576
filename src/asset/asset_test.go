package asset_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/bradbev/memeland/src/asset"

	"github.com/psanford/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T, files map[string][]byte) *memfs.FS {
	rootFS := memfs.New()
	for name, data := range files {
		if dir := path.Dir(name); dir != "." {
			require.NoError(t, rootFS.MkdirAll(dir, 0777))
		}
		require.NoError(t, rootFS.WriteFile(name, data, 0777))
	}
	return rootFS
}

func pngBytes(t *testing.T, w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestReadFilePriority(t *testing.T) {
	defer asset.Reset()
	low := newTestFS(t, map[string][]byte{"a.txt": []byte("low"), "only-low.txt": []byte("x")})
	high := newTestFS(t, map[string][]byte{"a.txt": []byte("high")})
	require.NoError(t, asset.RegisterFileSystem(low, 10))
	require.NoError(t, asset.RegisterFileSystem(high, 0))

	data, err := asset.ReadFile("a.txt")
	assert.NoError(t, err)
	assert.Equal(t, "high", string(data))

	data, err = asset.ReadFile("only-low.txt")
	assert.NoError(t, err)
	assert.Equal(t, "x", string(data))

	_, err = asset.ReadFile("missing.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWalkFiles(t *testing.T) {
	defer asset.Reset()
	require.NoError(t, asset.RegisterFileSystem(newTestFS(t, map[string][]byte{"x/1.png": nil}), 0))
	require.NoError(t, asset.RegisterFileSystem(newTestFS(t, map[string][]byte{"y/2.png": nil}), 1))

	var files []string
	err := asset.WalkFiles(func(path string, d fs.DirEntry, err error) error {
		if d != nil && !d.IsDir() {
			files = append(files, path)
		}
		return err
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"x/1.png", "y/2.png"}, files)

	files = nil
	err = asset.WalkFiles(func(path string, d fs.DirEntry, err error) error {
		if d != nil && !d.IsDir() {
			files = append(files, path)
			return fs.SkipAll
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"x/1.png"}, files)
}

type writeFS struct {
	fs *memfs.FS
}

func (f *writeFS) WriteFile(path asset.Path, data []byte) error {
	return f.fs.WriteFile(string(path), data, 0777)
}

func TestWriteFile(t *testing.T) {
	defer asset.Reset()
	assert.ErrorIs(t, asset.WriteFile("meme.png", []byte("x")), asset.ErrNoWritableFS)

	wfs := &writeFS{fs: memfs.New()}
	asset.RegisterWritableFileSystem(wfs)
	require.NoError(t, asset.WriteFile("meme.png", []byte("png")))

	data, err := fs.ReadFile(wfs.fs, "meme.png")
	assert.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestNewWritableFS(t *testing.T) {
	dir := t.TempDir()
	wfs := asset.NewWritableFS(asset.Path(dir))
	require.NoError(t, wfs.WriteFile("out/meme.png", []byte("data")))

	data, err := os.ReadFile(filepath.Join(dir, "out", "meme.png"))
	assert.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestWalkFilesSkipDir(t *testing.T) {
	defer asset.Reset()
	require.NoError(t, asset.RegisterFileSystem(newTestFS(t, map[string][]byte{
		"a/1.png": nil,
		"b/2.png": nil,
	}), 0))

	var files []string
	err := asset.WalkFiles(func(path string, d fs.DirEntry, err error) error {
		if d.IsDir() && path != "." {
			return fs.SkipDir
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	assert.NoError(t, err, "skipping the last directory is not an error")
	assert.Empty(t, files)
}

func TestCatalog(t *testing.T) {
	defer asset.Reset()
	assert.Equal(t, []asset.Path{
		"assets/background1.jpg",
		"assets/background2.jpg",
		"assets/background3.webp",
	}, asset.Backgrounds())
	assert.Equal(t, []asset.Path{"assets/chill-guy.png"}, asset.People())

	require.NoError(t, asset.RegisterFileSystem(newTestFS(t, map[string][]byte{
		"assets/backgrounds/z.PNG":     nil,
		"assets/backgrounds/a.jpeg":    nil,
		"assets/backgrounds/notes.txt": nil,
		"assets/backgrounds/old/x.png": nil,
		"assets/people/doge.webp":      nil,
		"assets/elsewhere.png":         nil,
		"thumbs/assets/people/y.png":   nil,
	}), 0))
	require.NoError(t, asset.RegisterFileSystem(newTestFS(t, map[string][]byte{
		"assets/backgrounds/a.jpeg": nil,
	}), 1))

	assert.Equal(t, []asset.Path{
		"assets/background1.jpg",
		"assets/background2.jpg",
		"assets/background3.webp",
		"assets/backgrounds/a.jpeg",
		"assets/backgrounds/z.PNG",
	}, asset.Backgrounds())
	assert.Equal(t, []asset.Path{"assets/chill-guy.png", "assets/people/doge.webp"}, asset.People())
}

func TestDecode(t *testing.T) {
	defer asset.Reset()
	require.NoError(t, asset.RegisterFileSystem(newTestFS(t, map[string][]byte{
		"assets/chill-guy.png": pngBytes(t, 3, 2),
		"assets/broken.png":    []byte("not an image"),
	}), 0))

	img, err := asset.Decode("assets/chill-guy.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	_, err = asset.Decode("assets/broken.png")
	assert.ErrorIs(t, err, asset.ErrDecode)

	_, err = asset.Decode("assets/missing.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoaderDecodesRegisteredFiles(t *testing.T) {
	defer asset.Reset()
	require.NoError(t, asset.RegisterFileSystem(newTestFS(t, map[string][]byte{
		"assets/chill-guy.png": pngBytes(t, 5, 5),
	}), 0))

	l := asset.NewLoader()
	defer l.Close()
	token, err := l.Request(asset.SlotOverlay, "assets/chill-guy.png")
	require.NoError(t, err)

	r := <-l.Results()
	assert.NoError(t, r.Err)
	assert.Equal(t, token, r.Token)
	assert.Equal(t, asset.SlotOverlay, r.Slot)
	assert.True(t, l.Accept(r))
	assert.Equal(t, image.Rect(0, 0, 5, 5), r.Image.Bounds())
}
