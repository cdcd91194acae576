package meme

import (
	"fmt"
	"image"

	"github.com/deeean/go-vector/vector2"
	"github.com/jinzhu/copier"
)

// Scene is the authoritative editor state for one session: the three
// optional elements and the single selection. It has one writer, the UI
// goroutine, and every mutation simply overwrites what was there before.
type Scene struct {
	background imageElement
	overlay    imageElement
	text       caption
	selected   ElementID
}

// NewScene returns an empty scene with the initial positions and caption
// style of a new session.
func NewScene() *Scene {
	return &Scene{
		background: imageElement{Transform: newTransform(0, 0)},
		overlay:    imageElement{Transform: newTransform(100, 100)},
		text: caption{
			Style:     DefaultTextStyle(),
			Transform: newTransform(50, 50),
		},
	}
}

// SetBackground installs a decoded background image. The position is kept.
// A nil image leaves the previous background in place.
func (s *Scene) SetBackground(img image.Image) {
	if img == nil {
		return
	}
	s.background.Image = img
}

// SetOverlay installs a decoded overlay image, like SetBackground.
func (s *Scene) SetOverlay(img image.Image) {
	if img == nil {
		return
	}
	s.overlay.Image = img
}

// SetText sets the caption content and style together. An invalid style is
// rejected and nothing changes. Empty content hides the caption but its
// style and position are remembered.
func (s *Scene) SetText(content string, style TextStyle) error {
	if err := style.Validate(); err != nil {
		return err
	}
	s.text.Style = style
	s.SetCaption(content)
	return nil
}

// SetCaption changes only the caption content.
func (s *Scene) SetCaption(content string) {
	s.text.Content = content
	if content == "" && s.selected == ElementText {
		s.setSelected(ElementNone)
	}
}

// SetTextStyle changes only the caption style.
func (s *Scene) SetTextStyle(style TextStyle) error {
	if err := style.Validate(); err != nil {
		return err
	}
	s.text.Style = style
	return nil
}

func (s *Scene) Caption() string      { return s.text.Content }
func (s *Scene) TextStyle() TextStyle { return s.text.Style }

func (s *Scene) transform(id ElementID) (*Transform, error) {
	switch id {
	case ElementBackground:
		return &s.background.Transform, nil
	case ElementOverlay:
		return &s.overlay.Transform, nil
	case ElementText:
		return &s.text.Transform, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownElement, id)
	}
}

// MoveElement commits a new top-left position for an element. It is called
// once when a drag ends, not for every pointer move.
func (s *Scene) MoveElement(id ElementID, x, y float64) error {
	t, err := s.transform(id)
	if err != nil {
		return err
	}
	t.Location = vector2.Vector2{X: x, Y: y}
	return nil
}

// ResizeElement commits the result of a corner-handle resize: the new
// top-left and the scale relative to the element's base size.
func (s *Scene) ResizeElement(id ElementID, x, y, scaleX, scaleY float64) error {
	t, err := s.transform(id)
	if err != nil {
		return err
	}
	if scaleX <= 0 || scaleY <= 0 {
		return fmt.Errorf("%w: %v x %v", ErrInvalidScale, scaleX, scaleY)
	}
	t.Location = vector2.Vector2{X: x, Y: y}
	t.Scale = vector2.Vector2{X: scaleX, Y: scaleY}
	return nil
}

// Present reports whether an element currently takes part in rendering.
func (s *Scene) Present(id ElementID) bool {
	switch id {
	case ElementBackground:
		return s.background.loaded()
	case ElementOverlay:
		return s.overlay.loaded()
	case ElementText:
		return s.text.visible()
	}
	return false
}

// Selected returns the element holding the transform handles.
func (s *Scene) Selected() ElementID {
	return s.selected
}

// Select makes id the only selected element. ElementNone clears the
// selection. Only rendered elements can be selected.
func (s *Scene) Select(id ElementID) error {
	if id == ElementNone {
		s.setSelected(ElementNone)
		return nil
	}
	if !id.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownElement, id)
	}
	if !s.Present(id) {
		return fmt.Errorf("%w: %v", ErrNotRendered, id)
	}
	s.setSelected(id)
	return nil
}

// OnInteractionStart is the single transition for both a click on an
// element and the start of a drag on it.
func (s *Scene) OnInteractionStart(id ElementID) error {
	return s.Select(id)
}

// ClickOutside handles a click that hit no element or landed outside the
// canvas.
func (s *Scene) ClickOutside() {
	s.setSelected(ElementNone)
}

func (s *Scene) setSelected(id ElementID) {
	if s.selected != id {
		Logger().Debug("scene: selection changed", "from", s.selected, "to", id)
	}
	s.selected = id
}

// Bounds returns where an element is drawn on a canvas of the given size.
// The second result is false for elements that are not rendered.
func (s *Scene) Bounds(id ElementID, dims CanvasDimensions) (Rect, bool) {
	if !s.Present(id) {
		return Rect{}, false
	}
	switch id {
	case ElementBackground:
		return s.background.Transform.bounds(float64(dims.Width), float64(dims.Height)), true
	case ElementOverlay:
		return s.overlay.Transform.bounds(OverlaySize, OverlaySize), true
	case ElementText:
		m, err := measureText(s.text.Content, s.text.Style)
		if err != nil {
			Logger().Warn("scene: measuring caption failed", "err", err)
			return Rect{}, false
		}
		return s.text.Transform.bounds(m.Width, m.Height()), true
	}
	return Rect{}, false
}

// hitOrder lists elements from the top of the stack down.
var hitOrder = []ElementID{ElementText, ElementOverlay, ElementBackground}

// HitTest returns the topmost rendered element under a canvas point, or
// ElementNone.
func (s *Scene) HitTest(x, y float64, dims CanvasDimensions) ElementID {
	for _, id := range hitOrder {
		if b, ok := s.Bounds(id, dims); ok && b.Contains(x, y) {
			return id
		}
	}
	return ElementNone
}

// ElementState is a read-only copy of an image slot.
type ElementState struct {
	Loaded    bool
	Transform Transform
}

// TextState is a read-only copy of the caption.
type TextState struct {
	Content   string
	Style     TextStyle
	Transform Transform
}

// State is a snapshot of the whole scene, detached from the live model.
type State struct {
	Background ElementState
	Overlay    ElementState
	Text       TextState
	Selected   ElementID
}

// State copies the current element state out of the scene.
func (s *Scene) State() State {
	st := State{Selected: s.selected}
	for _, pair := range []struct {
		to, from any
	}{
		{&st.Background, &s.background},
		{&st.Overlay, &s.overlay},
		{&st.Text, &s.text},
	} {
		if err := copier.Copy(pair.to, pair.from); err != nil {
			Logger().Warn("scene: snapshot copy failed", "err", err)
		}
	}
	st.Background.Loaded = s.background.loaded()
	st.Overlay.Loaded = s.overlay.loaded()
	return st
}
