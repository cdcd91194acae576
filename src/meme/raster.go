package meme

import (
	"image"
	"image/color"
	"math"
	"reflect"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// handleStroke is the outline colour of the selection box and handles.
var handleStroke = color.NRGBA{R: 0x00, G: 0xa1, B: 0xff, A: 0xff}

// maxCacheEntries bounds each rasterizer cache; a full cache is dropped.
const maxCacheEntries = 32

type scaledKey struct {
	src  image.Image
	w, h int
}

type textKey struct {
	content  string
	fontSize float64
	bold     bool
	italic   bool
	scaleX   float64
	scaleY   float64
	paint    TextPaint
}

type textRaster struct {
	img *image.NRGBA
	pad float64
}

// Rasterizer flattens a Composition into pixels. It keeps resampled
// images and caption passes between calls so an interactive view can redraw
// every frame. A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	scaled map[scaledKey]*image.NRGBA
	text   map[textKey]textRaster
}

func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		scaled: map[scaledKey]*image.NRGBA{},
		text:   map[textKey]textRaster{},
	}
}

// Rasterize draws every visible layer of c, bottom first, onto a
// transparent canvas of c.Dims pixels.
func (r *Rasterizer) Rasterize(c Composition) (*image.RGBA, error) {
	dc, err := r.draw(c)
	if err != nil {
		return nil, err
	}
	return dc.Image().(*image.RGBA), nil
}

func (r *Rasterizer) draw(c Composition) (*gg.Context, error) {
	if c.Dims.IsZero() {
		return nil, ErrNoSurface
	}
	dc := gg.NewContext(c.Dims.Width, c.Dims.Height)
	for _, l := range c.Layers {
		if !l.Visible() {
			continue
		}
		switch l.Kind {
		case LayerBackground, LayerOverlay:
			r.drawImage(dc, l)
		case LayerTextStroke, LayerTextFill:
			if err := r.drawText(dc, l); err != nil {
				return nil, err
			}
		case LayerHandles:
			drawHandles(dc, l)
		}
	}
	return dc, nil
}

func (r *Rasterizer) drawImage(dc *gg.Context, l Layer) {
	w, h := int(math.Round(l.Bounds.W)), int(math.Round(l.Bounds.H))
	if l.Image == nil || w <= 0 || h <= 0 {
		return
	}
	dc.DrawImage(r.resized(l.Image, w, h), int(math.Round(l.Bounds.X)), int(math.Round(l.Bounds.Y)))
}

func (r *Rasterizer) resized(src image.Image, w, h int) *image.NRGBA {
	if !reflect.TypeOf(src).Comparable() {
		return imaging.Resize(src, w, h, imaging.Linear)
	}
	key := scaledKey{src: src, w: w, h: h}
	if img, ok := r.scaled[key]; ok {
		return img
	}
	if len(r.scaled) >= maxCacheEntries {
		r.scaled = map[scaledKey]*image.NRGBA{}
	}
	img := imaging.Resize(src, w, h, imaging.Linear)
	r.scaled[key] = img
	return img
}

func (r *Rasterizer) drawText(dc *gg.Context, l Layer) error {
	g := l.Geometry
	if g == nil || g.Content == "" {
		return nil
	}
	key := textKey{
		content:  g.Content,
		fontSize: g.FontSize,
		bold:     g.Bold,
		italic:   g.Italic,
		scaleX:   g.ScaleX,
		scaleY:   g.ScaleY,
		paint:    l.Paint,
	}
	tr, ok := r.text[key]
	if !ok {
		var err error
		tr, err = rasterizeTextPass(g, l.Paint)
		if err != nil {
			return err
		}
		if len(r.text) >= maxCacheEntries {
			r.text = map[textKey]textRaster{}
		}
		r.text[key] = tr
	}
	x := g.Origin.X - tr.pad*g.ScaleX
	y := g.Origin.Y - tr.pad*g.ScaleY
	dc.DrawImage(tr.img, int(math.Round(x)), int(math.Round(y)))
	return nil
}

// rasterizeTextPass renders one caption pass into its own image. The image
// is padded so a stroke can extend past the glyph box; pad is in unscaled
// pixels.
func rasterizeTextPass(g *TextGeometry, p TextPaint) (textRaster, error) {
	pad := 1
	if p.Mode == PaintStroke {
		pad += int(math.Ceil(p.Width / 2))
	}
	mask, err := glyphMask(g, pad)
	if err != nil {
		return textRaster{}, err
	}
	if p.Mode == PaintStroke {
		mask = strokeRing(mask, p.Width)
	}
	img := colorize(mask, p.Color)

	sx, sy := g.ScaleX, g.ScaleY
	if sx <= 0 {
		sx = 1
	}
	if sy <= 0 {
		sy = 1
	}
	if sx != 1 || sy != 1 {
		b := img.Bounds()
		w := int(math.Max(1, math.Round(float64(b.Dx())*sx)))
		h := int(math.Max(1, math.Round(float64(b.Dy())*sy)))
		img = imaging.Resize(img, w, h, imaging.Linear)
	}
	return textRaster{img: img, pad: float64(pad)}, nil
}

// glyphMask draws the caption's coverage with its top-left at (pad, pad).
func glyphMask(g *TextGeometry, pad int) (*image.Alpha, error) {
	face, err := fonts.face(g.Bold, g.Italic, g.FontSize)
	if err != nil {
		return nil, err
	}
	m, err := measureText(g.Content, TextStyle{FontSize: g.FontSize, Bold: g.Bold, Italic: g.Italic})
	if err != nil {
		return nil, err
	}
	w := int(math.Ceil(m.Width)) + 2*pad
	h := int(math.Ceil(m.Height())) + 2*pad
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(pad), Y: fixed.I(pad) + face.Metrics().Ascent},
	}
	d.DrawString(g.Content)
	return mask, nil
}

// strokeRing turns a coverage mask into a centred outline of the given
// width: the difference between the mask dilated and eroded by width/2
// with a square window. Widths under two pixels are drawn at reduced
// opacity.
func strokeRing(mask *image.Alpha, width float64) *image.Alpha {
	b := mask.Bounds()
	out := image.NewAlpha(b)
	if width <= 0 {
		return out
	}
	reach := int(math.Max(1, math.Round(width/2)))
	hi := morph(mask, reach, maxByte, 0)
	lo := morph(mask, reach, minByte, 0xff)
	strength := clamp(width/2, 0, 1)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := out.PixOffset(x, y)
			if d := hi.Pix[i] - lo.Pix[i]; d > 0 {
				out.Pix[i] = uint8(math.Round(float64(d) * strength))
			}
		}
	}
	return out
}

func maxByte(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

func minByte(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

// morph filters src with a (2r+1) square window, one axis at a time, so
// each pixel costs 4r+2 samples. Pixels outside src count as empty.
func morph(src *image.Alpha, r int, pick func(a, b uint8) uint8, init uint8) *image.Alpha {
	b := src.Bounds()
	at := func(img *image.Alpha, x, y int) uint8 {
		if !(image.Point{X: x, Y: y}).In(b) {
			return 0
		}
		return img.Pix[img.PixOffset(x, y)]
	}
	pass := func(from *image.Alpha, dx, dy int) *image.Alpha {
		to := image.NewAlpha(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				v := init
				for k := -r; k <= r; k++ {
					v = pick(v, at(from, x+k*dx, y+k*dy))
				}
				to.Pix[to.PixOffset(x, y)] = v
			}
		}
		return to
	}
	return pass(pass(src, 1, 0), 0, 1)
}

func colorize(mask *image.Alpha, c color.NRGBA) *image.NRGBA {
	b := mask.Bounds()
	img := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := mask.Pix[mask.PixOffset(x, y)]
			if a == 0 {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(uint16(a) * uint16(c.A) / 0xff)})
		}
	}
	return img
}

func drawHandles(dc *gg.Context, l Layer) {
	b := l.Bounds
	dc.SetLineWidth(1)
	dc.SetColor(handleStroke)
	dc.DrawRectangle(b.X, b.Y, b.W, b.H)
	dc.Stroke()
	for _, h := range l.Handles {
		dc.DrawRectangle(h.Rect.X, h.Rect.Y, h.Rect.W, h.Rect.H)
		dc.SetColor(color.White)
		dc.FillPreserve()
		dc.SetColor(handleStroke)
		dc.Stroke()
	}
}
