package meme

import (
	"image"
	"image/color"

	"golang.org/x/exp/slices"
)

// LayerKind identifies a layer in the render stack.
type LayerKind int

const (
	LayerBackground LayerKind = iota
	LayerOverlay
	LayerTextStroke
	LayerTextFill
	LayerHandles
)

func (k LayerKind) String() string {
	switch k {
	case LayerBackground:
		return "background"
	case LayerOverlay:
		return "overlay"
	case LayerTextStroke:
		return "text-stroke"
	case LayerTextFill:
		return "text-fill"
	case LayerHandles:
		return "handles"
	}
	return "unknown"
}

// TextGeometry is what both caption passes share: content, placement and
// the face (size, weight, slant).
type TextGeometry struct {
	Content  string
	Origin   Rect
	FontSize float64
	Bold     bool
	Italic   bool
	ScaleX   float64
	ScaleY   float64
}

// PaintMode says which half of the caption a pass paints.
type PaintMode int

const (
	PaintStroke PaintMode = iota
	PaintFill
)

// TextPaint is the per-pass paint recipe.
type TextPaint struct {
	Mode  PaintMode
	Color color.NRGBA
	Width float64
}

// Corner names one of the four resize handles. There are no edge handles.
type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// Handle is a square resize control centred on a corner of the selection.
type Handle struct {
	Corner Corner
	Rect   Rect
}

// HandleSize is the edge length of a resize handle.
const HandleSize = 10

// Layer is one entry of the render stack.
type Layer struct {
	Kind    LayerKind
	Element ElementID
	Bounds  Rect

	// Image is set for background and overlay layers.
	Image image.Image

	// Geometry and Paint are set for the two caption passes. Both passes of
	// one render point at the same Geometry.
	Geometry *TextGeometry
	Paint    TextPaint

	// Handles is set for the handle overlay.
	Handles []Handle
}

// Visible reports whether drawing the layer changes any pixel. A stroke
// pass with zero width is kept in the stack but draws nothing.
func (l Layer) Visible() bool {
	if l.Kind == LayerTextStroke {
		return l.Paint.Width > 0
	}
	return true
}

// Composition is the ordered layer stack for one canvas, bottom first.
type Composition struct {
	Dims   CanvasDimensions
	Layers []Layer
}

// VisibleLayers drops layers that draw nothing.
func (c Composition) VisibleLayers() []Layer {
	var out []Layer
	for _, l := range c.Layers {
		if l.Visible() {
			out = append(out, l)
		}
	}
	return out
}

// Handles returns the handle overlay if the composition has one.
func (c Composition) Handles() (Layer, bool) {
	i := slices.IndexFunc(c.Layers, func(l Layer) bool { return l.Kind == LayerHandles })
	if i < 0 {
		return Layer{}, false
	}
	return c.Layers[i], true
}

// WithoutHandles returns a copy with the handle overlay detached.
func (c Composition) WithoutHandles() Composition {
	layers := slices.Clone(c.Layers)
	layers = slices.DeleteFunc(layers, func(l Layer) bool { return l.Kind == LayerHandles })
	return Composition{Dims: c.Dims, Layers: layers}
}

// Kinds lists the layer kinds bottom to top.
func (c Composition) Kinds() []LayerKind {
	kinds := make([]LayerKind, 0, len(c.Layers))
	for _, l := range c.Layers {
		kinds = append(kinds, l.Kind)
	}
	return kinds
}

// Preview overrides the drawn bounds of one element while a gesture is in
// progress, without committing anything to the scene.
type Preview struct {
	Element ElementID
	Bounds  Rect
}

// RenderOption adjusts a single Render call.
type RenderOption func(*renderOptions)

type renderOptions struct {
	preview *Preview
}

// WithPreview draws p.Element at p.Bounds instead of its committed place.
func WithPreview(p Preview) RenderOption {
	return func(o *renderOptions) {
		o.preview = &p
	}
}

// Render builds the layer stack for the current state: background,
// overlay, caption stroke pass, caption fill pass and, when something is
// selected, the handle overlay.
func (s *Scene) Render(dims CanvasDimensions, opts ...RenderOption) Composition {
	var o renderOptions
	for _, opt := range opts {
		opt(&o)
	}
	bounds := func(id ElementID) (Rect, bool) {
		if o.preview != nil && o.preview.Element == id && s.Present(id) {
			return o.preview.Bounds, true
		}
		return s.Bounds(id, dims)
	}

	comp := Composition{Dims: dims}
	if b, ok := bounds(ElementBackground); ok {
		comp.Layers = append(comp.Layers, Layer{
			Kind:    LayerBackground,
			Element: ElementBackground,
			Bounds:  b,
			Image:   s.background.Image,
		})
	}
	if b, ok := bounds(ElementOverlay); ok {
		comp.Layers = append(comp.Layers, Layer{
			Kind:    LayerOverlay,
			Element: ElementOverlay,
			Bounds:  b,
			Image:   s.overlay.Image,
		})
	}
	if b, ok := bounds(ElementText); ok {
		style := s.text.Style
		geom := &TextGeometry{
			Content:  s.text.Content,
			Origin:   b,
			FontSize: style.FontSize,
			Bold:     style.Bold,
			Italic:   style.Italic,
			ScaleX:   s.text.Transform.Scale.X,
			ScaleY:   s.text.Transform.Scale.Y,
		}
		if o.preview != nil && o.preview.Element == ElementText {
			if base, ok := s.Bounds(ElementText, dims); ok && base.W > 0 && base.H > 0 {
				geom.ScaleX *= b.W / base.W
				geom.ScaleY *= b.H / base.H
			}
		}
		comp.Layers = append(comp.Layers,
			Layer{
				Kind:     LayerTextStroke,
				Element:  ElementText,
				Bounds:   b,
				Geometry: geom,
				Paint: TextPaint{
					Mode:  PaintStroke,
					Color: mustColor(style.StrokeColor),
					Width: style.StrokeWidth,
				},
			},
			Layer{
				Kind:     LayerTextFill,
				Element:  ElementText,
				Bounds:   b,
				Geometry: geom,
				Paint: TextPaint{
					Mode:  PaintFill,
					Color: mustColor(style.FillColor),
				},
			},
		)
	}
	if s.selected != ElementNone {
		if b, ok := bounds(s.selected); ok {
			comp.Layers = append(comp.Layers, Layer{
				Kind:    LayerHandles,
				Element: s.selected,
				Bounds:  b,
				Handles: cornerHandles(b),
			})
		}
	}
	return comp
}

func cornerHandles(b Rect) []Handle {
	const half = HandleSize / 2.0
	at := func(c Corner, x, y float64) Handle {
		return Handle{Corner: c, Rect: Rect{X: x - half, Y: y - half, W: HandleSize, H: HandleSize}}
	}
	return []Handle{
		at(CornerTopLeft, b.X, b.Y),
		at(CornerTopRight, b.X+b.W, b.Y),
		at(CornerBottomLeft, b.X, b.Y+b.H),
		at(CornerBottomRight, b.X+b.W, b.Y+b.H),
	}
}

// HandleAt returns the resize handle of the selected element under a
// canvas point.
func (s *Scene) HandleAt(x, y float64, dims CanvasDimensions) (Corner, bool) {
	if s.selected == ElementNone {
		return 0, false
	}
	b, ok := s.Bounds(s.selected, dims)
	if !ok {
		return 0, false
	}
	for _, h := range cornerHandles(b) {
		if h.Rect.Contains(x, y) {
			return h.Corner, true
		}
	}
	return 0, false
}
