package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var ErrDecode = errors.New("asset: cannot decode image")

// Decode reads an image asset. PNG, JPEG and WebP are supported.
func Decode(path Path) (image.Image, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrDecode, path, err)
	}
	log().Debug("asset: decoded", "path", path, "format", format, "size", img.Bounds().Size())
	return img, nil
}
