package meme_test

import (
	"testing"

	"github.com/bradbev/memeland/src/meme"
	"github.com/stretchr/testify/assert"
)

func overlayScene() *meme.Scene {
	s := meme.NewScene()
	s.SetOverlay(solid(10, 10, green))
	return s
}

func TestGestureClickSelects(t *testing.T) {
	s := overlayScene()
	g := meme.NewGesture(s)

	g.PointerDown(200, 200, dims)
	assert.Equal(t, meme.ElementOverlay, s.Selected(), "selection happens on press")
	assert.True(t, g.Active())
	assert.False(t, g.Dragging())

	assert.NoError(t, g.PointerUp(200, 200))
	assert.False(t, g.Active())
	assert.Equal(t, 100.0, s.State().Overlay.Transform.Location.X)
}

func TestGestureDragCommitsOnRelease(t *testing.T) {
	s := overlayScene()
	g := meme.NewGesture(s)

	g.PointerDown(150, 150, dims)
	g.PointerMove(160, 165)
	g.PointerMove(170, 180)
	assert.True(t, g.Dragging())

	p, ok := g.Preview()
	assert.True(t, ok)
	assert.Equal(t, meme.Rect{X: 120, Y: 130, W: 250, H: 250}, p.Bounds)
	assert.Equal(t, 100.0, s.State().Overlay.Transform.Location.X, "nothing is committed mid drag")

	assert.NoError(t, g.PointerUp(170, 180))
	loc := s.State().Overlay.Transform.Location
	assert.Equal(t, 120.0, loc.X)
	assert.Equal(t, 130.0, loc.Y)
	assert.Equal(t, meme.ElementOverlay, s.Selected())
}

func TestGestureCancel(t *testing.T) {
	s := overlayScene()
	g := meme.NewGesture(s)
	g.PointerDown(150, 150, dims)
	g.PointerMove(300, 300)
	g.Cancel()
	assert.NoError(t, g.PointerUp(300, 300))
	assert.Equal(t, 100.0, s.State().Overlay.Transform.Location.X)
}

func TestGestureResizeBottomRight(t *testing.T) {
	s := overlayScene()
	assert.NoError(t, s.Select(meme.ElementOverlay))
	g := meme.NewGesture(s)

	g.PointerDown(350, 350, dims)
	g.PointerMove(400, 400)
	assert.NoError(t, g.PointerUp(400, 400))

	st := s.State().Overlay.Transform
	assert.InDelta(t, 1.2, st.Scale.X, 1e-9)
	assert.InDelta(t, 1.2, st.Scale.Y, 1e-9)
	assert.Equal(t, 100.0, st.Location.X)
	assert.Equal(t, 100.0, st.Location.Y)
}

func TestGestureResizeTopLeft(t *testing.T) {
	s := overlayScene()
	assert.NoError(t, s.Select(meme.ElementOverlay))
	g := meme.NewGesture(s)

	g.PointerDown(100, 100, dims)
	g.PointerMove(150, 150)
	assert.NoError(t, g.PointerUp(150, 150))

	b, _ := s.Bounds(meme.ElementOverlay, dims)
	assert.InDelta(t, 150, b.X, 1e-9)
	assert.InDelta(t, 150, b.Y, 1e-9)
	assert.InDelta(t, 200, b.W, 1e-9)
	assert.InDelta(t, 350, b.X+b.W, 1e-9, "the opposite corner stays put")
}

func TestGestureClickOutsideClears(t *testing.T) {
	s := overlayScene()
	g := meme.NewGesture(s)

	assert.NoError(t, s.Select(meme.ElementOverlay))
	g.PointerDown(600, 600, dims)
	assert.Equal(t, meme.ElementNone, s.Selected())
	assert.False(t, g.Active())

	assert.NoError(t, s.Select(meme.ElementOverlay))
	g.PointerDown(10, 490, dims)
	assert.Equal(t, meme.ElementNone, s.Selected(), "empty canvas counts as outside")
}

func TestResizeBoundsKeepsRatio(t *testing.T) {
	b := meme.Rect{X: 0, Y: 0, W: 200, H: 100}
	r := meme.ResizeBounds(b, meme.CornerBottomRight, 100, 0)
	assert.InDelta(t, r.W/r.H, 2, 1e-9)

	r = meme.ResizeBounds(b, meme.CornerTopRight, 0, 1000)
	assert.InDelta(t, b.W*meme.MinResizeFactor, r.W, 1e-9)
	assert.InDelta(t, b.Y+b.H, r.Y+r.H, 1e-9)

	assert.Equal(t, meme.Rect{W: 0, H: 5}, meme.ResizeBounds(meme.Rect{H: 5}, meme.CornerTopLeft, 3, 3))
}
