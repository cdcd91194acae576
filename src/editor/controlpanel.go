package editor

import (
	"fmt"
	"path"

	"github.com/bradbev/memeland/src/asset"
	"github.com/bradbev/memeland/src/editor/edgui"
	"github.com/bradbev/memeland/src/meme"

	"github.com/inkyblackness/imgui-go/v4"
)

// pickItem is one catalog entry in a picker grid.
type pickItem struct {
	path     asset.Path
	thumbs   *thumbnailCache
	selected bool
}

func (p pickItem) Name() string                     { return path.Base(string(p.path)) }
func (p pickItem) Selected() bool                   { return p.selected }
func (p pickItem) Texture() (imgui.TextureID, bool) { return p.thumbs.Get(p.path) }

// picker requests the clicked asset for its slot.
type picker struct {
	ed   *ImguiEditor
	slot asset.Slot
}

func (p *picker) Clicked(item edgui.GridItem, _ int) {
	if it, ok := item.(pickItem); ok {
		p.ed.Pick(p.slot, it.path)
	}
}

// controlPanel is the fixed window on the left holding the pickers, the
// caption controls and the download button.
type controlPanel struct {
	ed      *ImguiEditor
	thumbs  *thumbnailCache
	pickers map[asset.Slot]*picker
}

func newControlPanel(ed *ImguiEditor) *controlPanel {
	return &controlPanel{
		ed:     ed,
		thumbs: newThumbnailCache(ed),
		pickers: map[asset.Slot]*picker{
			asset.SlotBackground: {ed: ed, slot: asset.SlotBackground},
			asset.SlotOverlay:    {ed: ed, slot: asset.SlotOverlay},
		},
	}
}

const panelFlags = imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

func (c *controlPanel) Draw() error {
	imgui.SetNextWindowPos(imgui.Vec2{X: 0, Y: menuBarHeight})
	imgui.SetNextWindowSize(imgui.Vec2{
		X: float32(c.ed.cfg.PanelWidth),
		Y: float32(c.ed.height - menuBarHeight),
	})
	defer imgui.End()
	if !imgui.BeginV("Meme", nil, panelFlags) {
		return nil
	}

	if imgui.BeginTabBar("ControlTabs") {
		if imgui.BeginTabItem("Background") {
			c.drawPicker(asset.SlotBackground, asset.Backgrounds())
			imgui.EndTabItem()
		}
		if imgui.BeginTabItem("Person") {
			c.drawPicker(asset.SlotOverlay, asset.People())
			imgui.EndTabItem()
		}
		if imgui.BeginTabItem("Text") {
			c.drawText()
			imgui.EndTabItem()
		}
		imgui.EndTabBar()
	}

	imgui.Separator()
	if imgui.Button("Download") {
		if err := c.ed.Download(); err != nil {
			Logger().Warn("editor: download failed", "err", err)
		}
	}
	if status := c.ed.Status(); status != "" {
		edgui.Text("%s", status)
	}
	return nil
}

func (c *controlPanel) drawPicker(slot asset.Slot, paths []asset.Path) {
	picked, _ := c.ed.Picked(slot)
	items := make([]pickItem, 0, len(paths))
	for _, p := range paths {
		items = append(items, pickItem{path: p, thumbs: c.thumbs, selected: p == picked})
	}
	edgui.DrawGrid(slot.String(), items, thumbnailSize, c.pickers[slot])
}

func (c *controlPanel) drawText() {
	scene := c.ed.scene

	caption := scene.Caption()
	edgui.WithItemWidth(-1, func() {
		if edgui.InputText("Text", &caption) {
			scene.SetCaption(caption)
		}
	})

	style := scene.TextStyle()
	changed := false
	edgui.WithIDPtr(&c.ed.scene, func() {
		changed = imgui.Checkbox("Bold", &style.Bold) || changed
		imgui.SameLine()
		changed = imgui.Checkbox("Italic", &style.Italic) || changed
		changed = edgui.ColorEditHex("Text colour", &style.FillColor) || changed
		changed = edgui.SliderInt("Font size", &style.FontSize, meme.MinFontSize, meme.MaxFontSize) || changed
		changed = edgui.SliderStep("Outline width", &style.StrokeWidth, meme.MinStrokeWidth, meme.MaxStrokeWidth, 0.1) || changed
		changed = edgui.ColorEditHex("Outline colour", &style.StrokeColor) || changed
	})
	if changed {
		if err := scene.SetTextStyle(style); err != nil {
			Logger().Warn("editor: style rejected", "err", err)
		}
	}

	imgui.Separator()
	edgui.Text("%s", placementLabel(scene.State()))
}

// placementLabel describes where the caption sits and whether it holds the
// handles.
func placementLabel(st meme.State) string {
	t := st.Text.Transform
	label := fmt.Sprintf("Position %.0f, %.0f  Scale %.2f x %.2f", t.Location.X, t.Location.Y, t.Scale.X, t.Scale.Y)
	if st.Text.Content == "" {
		return label + "  (hidden)"
	}
	if st.Selected == meme.ElementText {
		return label + "  (selected)"
	}
	return label
}
