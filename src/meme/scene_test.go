package meme_test

import (
	"testing"

	"github.com/bradbev/memeland/src/meme"
	"github.com/stretchr/testify/assert"
)

var dims = meme.CanvasForContainer(0)

func TestNewScene(t *testing.T) {
	s := meme.NewScene()
	st := s.State()
	assert.False(t, st.Background.Loaded)
	assert.False(t, st.Overlay.Loaded)
	assert.Equal(t, meme.ElementNone, st.Selected)
	assert.Equal(t, 100.0, st.Overlay.Transform.Location.X)
	assert.Equal(t, 100.0, st.Overlay.Transform.Location.Y)
	assert.Equal(t, 50.0, st.Text.Transform.Location.X)
	assert.Equal(t, 50.0, st.Text.Transform.Location.Y)
	assert.Equal(t, meme.DefaultTextStyle(), st.Text.Style)
	assert.Empty(t, s.Render(dims).Layers)
}

func TestSetImageKeepsPosition(t *testing.T) {
	s := meme.NewScene()
	s.SetOverlay(solid(4, 4, red))
	assert.NoError(t, s.MoveElement(meme.ElementOverlay, 30, 40))

	s.SetOverlay(solid(8, 8, green))
	b, ok := s.Bounds(meme.ElementOverlay, dims)
	assert.True(t, ok)
	assert.Equal(t, meme.Rect{X: 30, Y: 40, W: meme.OverlaySize, H: meme.OverlaySize}, b)

	s.SetOverlay(nil)
	assert.True(t, s.Present(meme.ElementOverlay), "nil image must not unload the slot")
}

func TestBackgroundFillsCanvas(t *testing.T) {
	s := meme.NewScene()
	s.SetBackground(solid(3, 7, red))
	b, ok := s.Bounds(meme.ElementBackground, meme.CanvasForContainer(640))
	assert.True(t, ok)
	assert.Equal(t, meme.Rect{W: 640, H: 640}, b)
}

func TestStyleReadback(t *testing.T) {
	s := meme.NewScene()
	style := meme.TextStyle{
		FontSize:    42,
		Bold:        true,
		Italic:      true,
		FillColor:   "#ff0000",
		StrokeColor: "#00ff00",
		StrokeWidth: 3.5,
	}
	assert.NoError(t, s.SetText("hello", style))
	assert.Equal(t, style, s.TextStyle())
	assert.Equal(t, "hello", s.Caption())

	bad := style
	bad.FontSize = 500
	assert.ErrorIs(t, s.SetText("changed", bad), meme.ErrInvalidStyle)
	assert.Equal(t, style, s.TextStyle())
	assert.Equal(t, "hello", s.Caption(), "a rejected update changes nothing")
}

func TestEmptyTextRemovesLayersKeepsStyle(t *testing.T) {
	s := meme.NewScene()
	style := meme.DefaultTextStyle()
	style.StrokeWidth = 2
	style.FontSize = 33
	assert.NoError(t, s.SetText("caption", style))
	assert.Contains(t, s.Render(dims).Kinds(), meme.LayerTextFill)

	assert.NoError(t, s.SetText("", style))
	kinds := s.Render(dims).Kinds()
	assert.NotContains(t, kinds, meme.LayerTextStroke)
	assert.NotContains(t, kinds, meme.LayerTextFill)
	assert.Equal(t, style, s.TextStyle())
	assert.False(t, s.Present(meme.ElementText))
}

func TestSingleSelection(t *testing.T) {
	s := meme.NewScene()
	s.SetBackground(solid(2, 2, red))
	s.SetOverlay(solid(2, 2, green))

	assert.NoError(t, s.Select(meme.ElementBackground))
	assert.NoError(t, s.OnInteractionStart(meme.ElementOverlay))
	assert.Equal(t, meme.ElementOverlay, s.Selected())

	h, ok := s.Render(dims).Handles()
	assert.True(t, ok)
	assert.Equal(t, meme.ElementOverlay, h.Element)
	assert.Len(t, h.Handles, 4)

	s.ClickOutside()
	assert.Equal(t, meme.ElementNone, s.Selected())
	_, ok = s.Render(dims).Handles()
	assert.False(t, ok)
}

func TestSelectRejectsMissingElements(t *testing.T) {
	s := meme.NewScene()
	assert.ErrorIs(t, s.Select(meme.ElementOverlay), meme.ErrNotRendered)
	assert.ErrorIs(t, s.Select(meme.ElementID(42)), meme.ErrUnknownElement)
	assert.Equal(t, meme.ElementNone, s.Selected())
	assert.NoError(t, s.Select(meme.ElementNone))
}

func TestClearingCaptionDropsTextSelection(t *testing.T) {
	s := meme.NewScene()
	s.SetCaption("hi")
	assert.NoError(t, s.Select(meme.ElementText))
	s.SetCaption("")
	assert.Equal(t, meme.ElementNone, s.Selected())
}

func TestMoveAndResize(t *testing.T) {
	s := meme.NewScene()
	s.SetOverlay(solid(2, 2, red))
	assert.NoError(t, s.ResizeElement(meme.ElementOverlay, 10, 20, 2, 0.5))
	b, _ := s.Bounds(meme.ElementOverlay, dims)
	assert.Equal(t, meme.Rect{X: 10, Y: 20, W: 500, H: 125}, b)

	assert.ErrorIs(t, s.ResizeElement(meme.ElementOverlay, 0, 0, 0, 1), meme.ErrInvalidScale)
	assert.ErrorIs(t, s.MoveElement(meme.ElementNone, 0, 0), meme.ErrUnknownElement)
}

func TestHitTestTopmostFirst(t *testing.T) {
	s := meme.NewScene()
	s.SetBackground(solid(2, 2, red))
	s.SetOverlay(solid(2, 2, green))
	s.SetCaption("top")

	assert.Equal(t, meme.ElementText, s.HitTest(52, 55, dims))
	assert.Equal(t, meme.ElementOverlay, s.HitTest(200, 200, dims))
	assert.Equal(t, meme.ElementBackground, s.HitTest(450, 20, dims))
	assert.Equal(t, meme.ElementNone, s.HitTest(600, 20, dims))
}

func TestStateIsDetached(t *testing.T) {
	s := meme.NewScene()
	st := s.State()
	st.Text.Style.FontSize = 99
	st.Overlay.Transform.Location.X = -1
	assert.Equal(t, 20.0, s.TextStyle().FontSize)
	assert.Equal(t, 100.0, s.State().Overlay.Transform.Location.X)
}
