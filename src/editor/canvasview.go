package editor

import (
	"image"
	"image/color"

	"github.com/bradbev/memeland/src/meme"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// pointerState is one frame of left mouse button input in screen pixels.
type pointerState struct {
	X, Y         int
	JustPressed  bool
	JustReleased bool
	// Captured is set when imgui wants the mouse this frame.
	Captured bool
}

// canvasView hosts the scene on screen: it lays the canvas out to the right
// of the control panel, turns pointer input into gestures and keeps the
// on-screen raster up to date.
type canvasView struct {
	scene      *meme.Scene
	gesture    *meme.Gesture
	rasterizer *meme.Rasterizer

	origin image.Point
	dims   meme.CanvasDimensions
	view   *ebiten.Image
}

func newCanvasView(scene *meme.Scene, rasterizer *meme.Rasterizer) *canvasView {
	return &canvasView{
		scene:      scene,
		gesture:    meme.NewGesture(scene),
		rasterizer: rasterizer,
	}
}

// Layout places the canvas in the area right of the panel. The canvas is
// square and never smaller than meme.MinCanvasSize.
func (c *canvasView) Layout(windowWidth, panelWidth int) {
	c.origin = image.Pt(panelWidth, 0)
	dims := meme.CanvasForContainer(windowWidth - panelWidth)
	if dims != c.dims {
		Logger().Debug("editor: canvas resized", "width", dims.Width, "height", dims.Height)
		c.dims = dims
	}
}

func (c *canvasView) Dims() meme.CanvasDimensions {
	return c.dims
}

// toCanvas converts a screen point to canvas coordinates.
func (c *canvasView) toCanvas(x, y int) (float64, float64) {
	return float64(x - c.origin.X), float64(y - c.origin.Y)
}

// Pointer feeds one frame of input to the gesture. A press that imgui
// captures landed on the control panel or menu, which counts as a click
// outside the canvas.
func (c *canvasView) Pointer(p pointerState) {
	x, y := c.toCanvas(p.X, p.Y)
	switch {
	case p.JustPressed && !p.Captured:
		c.gesture.PointerDown(x, y, c.dims)
	case p.JustPressed:
		if !c.gesture.Active() {
			c.scene.ClickOutside()
		}
	case p.JustReleased:
		if err := c.gesture.PointerUp(x, y); err != nil {
			Logger().Warn("editor: committing gesture failed", "err", err)
		}
	case c.gesture.Active():
		c.gesture.PointerMove(x, y)
	}
}

// Composition is what the view shows this frame, including any gesture
// preview and the handle overlay.
func (c *canvasView) Composition() meme.Composition {
	if p, ok := c.gesture.Preview(); ok {
		return c.scene.Render(c.dims, meme.WithPreview(p))
	}
	return c.scene.Render(c.dims)
}

func (c *canvasView) Draw(screen *ebiten.Image) {
	if c.dims.IsZero() {
		return
	}
	img, err := c.rasterizer.Rasterize(c.Composition())
	if err != nil {
		Logger().Warn("editor: rasterizing view failed", "err", err)
		return
	}
	if c.view == nil || c.view.Bounds().Size() != img.Bounds().Size() {
		if c.view != nil {
			c.view.Dispose()
		}
		c.view = ebiten.NewImage(c.dims.Width, c.dims.Height)
	}
	c.view.WritePixels(img.Pix)

	x, y := float32(c.origin.X), float32(c.origin.Y)
	vector.DrawFilledRect(screen, x, y, float32(c.dims.Width), float32(c.dims.Height), color.White, false)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(c.origin.X), float64(c.origin.Y))
	screen.DrawImage(c.view, op)
}
