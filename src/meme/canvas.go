package meme

import "errors"

// MinCanvasSize is the floor for the square canvas edge.
const MinCanvasSize = 500

var ErrNoSurface = errors.New("rendering surface is not initialized")

// CanvasDimensions is the pixel size of the drawing surface. A laid out
// canvas is always square.
type CanvasDimensions struct {
	Width  int
	Height int
}

// CanvasForContainer derives the canvas from the measured width of the
// container it lives in. Zero and negative widths floor at MinCanvasSize.
func CanvasForContainer(containerWidth int) CanvasDimensions {
	edge := containerWidth
	if edge < MinCanvasSize {
		edge = MinCanvasSize
	}
	return CanvasDimensions{Width: edge, Height: edge}
}

// IsZero reports whether the surface was never laid out.
func (d CanvasDimensions) IsZero() bool {
	return d.Width <= 0 || d.Height <= 0
}

func (d CanvasDimensions) Rect() Rect {
	return Rect{W: float64(d.Width), H: float64(d.Height)}
}

func (d CanvasDimensions) Contains(x, y float64) bool {
	return d.Rect().Contains(x, y)
}
