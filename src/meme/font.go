package meme

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type faceKey struct {
	bold, italic bool
	size         float64
}

// fontBook parses the Go font family once and hands out faces per
// weight, slant and size. Faces are not safe for concurrent drawing.
type fontBook struct {
	mu    sync.Mutex
	fonts map[[2]bool]*opentype.Font
	faces map[faceKey]font.Face
}

var fonts = &fontBook{
	fonts: map[[2]bool]*opentype.Font{},
	faces: map[faceKey]font.Face{},
}

func ttfFor(bold, italic bool) []byte {
	switch {
	case bold && italic:
		return gobolditalic.TTF
	case bold:
		return gobold.TTF
	case italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

func (b *fontBook) face(bold, italic bool, size float64) (font.Face, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := faceKey{bold: bold, italic: italic, size: size}
	if face, ok := b.faces[key]; ok {
		return face, nil
	}
	tt, ok := b.fonts[[2]bool{bold, italic}]
	if !ok {
		var err error
		tt, err = opentype.Parse(ttfFor(bold, italic))
		if err != nil {
			return nil, err
		}
		b.fonts[[2]bool{bold, italic}] = tt
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	b.faces[key] = face
	return face, nil
}

// textMetrics is the unscaled box of a caption: the advance width and the
// line box from ascent to descent.
type textMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

func (m textMetrics) Height() float64 {
	return m.Ascent + m.Descent
}

func measureText(content string, style TextStyle) (textMetrics, error) {
	face, err := fonts.face(style.Bold, style.Italic, style.FontSize)
	if err != nil {
		return textMetrics{}, err
	}
	fm := face.Metrics()
	adv := font.MeasureString(face, content)
	return textMetrics{
		Width:   float64(adv) / 64,
		Ascent:  float64(fm.Ascent) / 64,
		Descent: float64(fm.Descent) / 64,
	}, nil
}
