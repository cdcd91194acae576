package meme

import (
	"errors"
	"fmt"
	"image"

	"github.com/deeean/go-vector/vector2"
)

// ElementID names one of the fixed scene elements. The set is closed:
// a scene never holds more than one background, one overlay and one caption.
type ElementID int

const (
	ElementNone ElementID = iota
	ElementBackground
	ElementOverlay
	ElementText
)

func (id ElementID) String() string {
	switch id {
	case ElementNone:
		return "none"
	case ElementBackground:
		return "background"
	case ElementOverlay:
		return "overlay"
	case ElementText:
		return "text"
	default:
		return fmt.Sprintf("ElementID(%d)", int(id))
	}
}

// Valid reports whether id names a real element (not ElementNone).
func (id ElementID) Valid() bool {
	return id == ElementBackground || id == ElementOverlay || id == ElementText
}

var (
	ErrUnknownElement = errors.New("unknown element")
	ErrNotRendered    = errors.New("element is not rendered")
	ErrInvalidScale   = errors.New("scale must be positive")
)

// OverlaySize is the logical edge length of the overlay ("person") image.
const OverlaySize = 250

// Rect is an axis aligned box in canvas units.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Image returns the smallest integer rectangle covering r.
func (r Rect) Image() image.Rectangle {
	return image.Rect(floor(r.X), floor(r.Y), ceil(r.X+r.W), ceil(r.Y+r.H))
}

// Transform is the committed placement of an element. Scale stays 1x1
// unless a corner-handle resize has been committed.
type Transform struct {
	Location vector2.Vector2
	Scale    vector2.Vector2
}

func newTransform(x, y float64) Transform {
	return Transform{
		Location: vector2.Vector2{X: x, Y: y},
		Scale:    vector2.Vector2{X: 1, Y: 1},
	}
}

// bounds places a base size at the transform's location.
func (t Transform) bounds(baseW, baseH float64) Rect {
	return Rect{
		X: t.Location.X,
		Y: t.Location.Y,
		W: baseW * t.Scale.X,
		H: baseH * t.Scale.Y,
	}
}

// imageElement is the background or overlay slot.
type imageElement struct {
	Image     image.Image
	Transform Transform
}

func (e *imageElement) loaded() bool {
	return e.Image != nil
}

// caption is the single logical text element. Both render passes are
// derived from it.
type caption struct {
	Content   string
	Style     TextStyle
	Transform Transform
}

func (c *caption) visible() bool {
	return c.Content != ""
}
