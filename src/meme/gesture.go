package meme

import (
	"github.com/deeean/go-vector/vector2"
)

// MinResizeFactor is the smallest factor a single resize can shrink by.
const MinResizeFactor = 0.05

type gestureKind int

const (
	gestureIdle gestureKind = iota
	gesturePress
	gestureDrag
	gestureResize
)

// Gesture turns raw pointer events on the canvas into scene transitions.
// Selection happens on pointer down; a drag or resize only previews until
// the pointer is released, which commits exactly one move or resize.
type Gesture struct {
	scene  *Scene
	kind   gestureKind
	target ElementID
	corner Corner
	start  vector2.Vector2
	last   vector2.Vector2
	origin Rect
}

func NewGesture(scene *Scene) *Gesture {
	return &Gesture{scene: scene}
}

func (g *Gesture) reset() {
	g.kind = gestureIdle
	g.target = ElementNone
}

// Active reports whether a pointer is held down on an element or handle.
func (g *Gesture) Active() bool {
	return g.kind != gestureIdle
}

// Dragging reports whether a move or resize preview is in progress.
func (g *Gesture) Dragging() bool {
	return g.kind == gestureDrag || g.kind == gestureResize
}

// PointerDown starts an interaction at a canvas point. Pressing outside the
// canvas, or on canvas where no element is drawn, clears the selection.
func (g *Gesture) PointerDown(x, y float64, dims CanvasDimensions) {
	g.reset()
	g.start = vector2.Vector2{X: x, Y: y}
	g.last = g.start

	if !dims.Contains(x, y) {
		g.scene.ClickOutside()
		return
	}
	if corner, ok := g.scene.HandleAt(x, y, dims); ok {
		b, _ := g.scene.Bounds(g.scene.Selected(), dims)
		g.kind = gestureResize
		g.target = g.scene.Selected()
		g.corner = corner
		g.origin = b
		return
	}
	id := g.scene.HitTest(x, y, dims)
	if id == ElementNone {
		g.scene.ClickOutside()
		return
	}
	if err := g.scene.OnInteractionStart(id); err != nil {
		Logger().Warn("scene: interaction start rejected", "element", id, "err", err)
		return
	}
	b, _ := g.scene.Bounds(id, dims)
	g.kind = gesturePress
	g.target = id
	g.origin = b
}

// PointerMove updates the preview. Any movement of a pressed element
// turns the press into a drag.
func (g *Gesture) PointerMove(x, y float64) {
	if g.kind == gestureIdle {
		return
	}
	g.last = vector2.Vector2{X: x, Y: y}
	if g.kind == gesturePress && (x != g.start.X || y != g.start.Y) {
		g.kind = gestureDrag
	}
}

// PointerUp ends the interaction and commits a finished drag or resize.
func (g *Gesture) PointerUp(x, y float64) error {
	g.PointerMove(x, y)
	defer g.reset()

	p, ok := g.Preview()
	if !ok {
		return nil
	}
	switch g.kind {
	case gestureDrag:
		return g.scene.MoveElement(g.target, p.Bounds.X, p.Bounds.Y)
	case gestureResize:
		t, err := g.scene.transform(g.target)
		if err != nil {
			return err
		}
		sx := t.Scale.X * p.Bounds.W / g.origin.W
		sy := t.Scale.Y * p.Bounds.H / g.origin.H
		return g.scene.ResizeElement(g.target, p.Bounds.X, p.Bounds.Y, sx, sy)
	}
	return nil
}

// Cancel abandons the interaction without committing anything.
func (g *Gesture) Cancel() {
	g.reset()
}

// Preview returns the uncommitted bounds of the element being dragged or
// resized.
func (g *Gesture) Preview() (Preview, bool) {
	dx, dy := g.last.X-g.start.X, g.last.Y-g.start.Y
	switch g.kind {
	case gestureDrag:
		b := g.origin
		b.X += dx
		b.Y += dy
		return Preview{Element: g.target, Bounds: b}, true
	case gestureResize:
		if g.origin.W <= 0 || g.origin.H <= 0 {
			return Preview{}, false
		}
		return Preview{Element: g.target, Bounds: ResizeBounds(g.origin, g.corner, dx, dy)}, true
	}
	return Preview{}, false
}

// ResizeBounds moves one corner of b by (dx, dy) while the opposite corner
// stays put. The aspect ratio is kept by projecting the moved corner onto
// the box diagonal.
func ResizeBounds(b Rect, corner Corner, dx, dy float64) Rect {
	if b.W <= 0 || b.H <= 0 {
		return b
	}
	sx, sy := 1.0, 1.0
	if corner == CornerTopLeft || corner == CornerBottomLeft {
		sx = -1
	}
	if corner == CornerTopLeft || corner == CornerTopRight {
		sy = -1
	}
	ex, ey := b.W+sx*dx, b.H+sy*dy
	f := (ex*b.W + ey*b.H) / (b.W*b.W + b.H*b.H)
	if f < MinResizeFactor {
		f = MinResizeFactor
	}
	w, h := b.W*f, b.H*f

	out := Rect{W: w, H: h}
	if sx > 0 {
		out.X = b.X
	} else {
		out.X = b.X + b.W - w
	}
	if sy > 0 {
		out.Y = b.Y
	} else {
		out.Y = b.Y + b.H - h
	}
	return out
}
