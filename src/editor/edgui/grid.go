package edgui

import (
	"fmt"

	"github.com/inkyblackness/imgui-go/v4"
)

type GridItem interface {
	Name() string
	// Texture returns the preview to show; false draws a text button.
	Texture() (imgui.TextureID, bool)
}

type GridItemSelected interface {
	Selected() bool
}

type GridActionHandler interface {
	Clicked(item GridItem, index int)
}

// GridSpacing is the gap between cells.
const GridSpacing = 8

var highlight = imgui.Vec4{X: 0.0, Y: 0.63, Z: 1.0, W: 1.0}

// GridColumns is how many cells of the given size fit across avail.
func GridColumns(avail, cell, spacing float32) int {
	if cell <= 0 {
		return 1
	}
	cols := int((avail + spacing) / (cell + spacing))
	if cols < 1 {
		return 1
	}
	return cols
}

// DrawGrid lays items out as square buttons, wrapping to fit the window.
// Selected items are highlighted.
func DrawGrid[T GridItem](id string, items []T, cell float32, handler GridActionHandler) {
	cols := GridColumns(imgui.ContentRegionAvail().X, cell, GridSpacing)
	for i, item := range items {
		if i%cols != 0 {
			imgui.SameLineV(0, GridSpacing)
		}
		selected := false
		if sel, ok := any(item).(GridItemSelected); ok {
			selected = sel.Selected()
		}

		clicked := false
		imgui.PushID(fmt.Sprintf("%s/%d", id, i))
		func() {
			if selected {
				imgui.PushStyleColor(imgui.StyleColorButton, highlight)
				defer imgui.PopStyleColor()
			}
			size := imgui.Vec2{X: cell, Y: cell}
			if tex, ok := item.Texture(); ok {
				clicked = imgui.ImageButton(tex, size)
			} else {
				clicked = imgui.ButtonV(item.Name(), size)
			}
		}()
		imgui.PopID()

		if imgui.IsItemHovered() {
			imgui.SetTooltip(item.Name())
		}
		if clicked && handler != nil {
			handler.Clicked(item, i)
		}
	}
}
