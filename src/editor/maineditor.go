package editor

import (
	"bytes"
	"fmt"

	"github.com/bradbev/memeland/src/asset"
	"github.com/bradbev/memeland/src/config"
	"github.com/bradbev/memeland/src/editor/edgui"
	"github.com/bradbev/memeland/src/meme"

	"github.com/gabstv/ebiten-imgui/renderer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/inkyblackness/imgui-go/v4"
	"golang.org/x/exp/slices"
)

// menuBarHeight is the space the main menu bar takes at the top.
const menuBarHeight = 22

// ImguiEditor owns one editing session: the scene, the canvas view, the
// control panel and the background decoder.
type ImguiEditor struct {
	// Link to the ebiten-imgui/renderer.Manager instance that is running the editor
	Manager *renderer.Manager
	cfg     config.Config

	scene      *meme.Scene
	rasterizer *meme.Rasterizer
	canvas     *canvasView
	loader     *asset.Loader

	drawables []Drawable
	menus     menuManager
	clearItem *edgui.MenuItem

	width, height int
	status        string

	// texture handling
	nextTextureID    imgui.TextureID
	embeddedTextures map[any]embeddedTexture
}

type embeddedTexture struct {
	img *ebiten.Image
	id  imgui.TextureID
}

type Drawable interface {
	// Draw allows an item to render itself.
	// if the returned error is not nil the drawable
	// will be removed from the draw list
	Draw() error
}

func New(cfg config.Config, manager *renderer.Manager) *ImguiEditor {
	scene := meme.NewScene()
	rasterizer := meme.NewRasterizer()
	ed := &ImguiEditor{
		Manager:    manager,
		cfg:        cfg,
		scene:      scene,
		rasterizer: rasterizer,
		canvas:     newCanvasView(scene, rasterizer),
		loader:     asset.NewLoader(),

		// fontAtlas is at ID 1, start high enough to avoid other IDs
		nextTextureID:    100,
		embeddedTextures: map[any]embeddedTexture{},
	}

	ed.clearItem = &edgui.MenuItem{
		Text:   "Clear selection",
		Action: func(*edgui.MenuItem) { ed.scene.ClickOutside() },
	}
	ed.menus.AddMenu(edgui.Menu{
		Name: "File",
		Items: []*edgui.MenuItem{
			{
				Text: "Download meme",
				Action: func(*edgui.MenuItem) {
					if err := ed.Download(); err != nil {
						Logger().Warn("editor: download failed", "err", err)
					}
				},
			},
			ed.clearItem,
		},
	})
	ed.AddDrawable(newControlPanel(ed))
	return ed
}

func (e *ImguiEditor) Scene() *meme.Scene {
	return e.scene
}

// Update runs one imgui frame worth of editor work. It must be called
// between the manager's BeginFrame and EndFrame.
func (e *ImguiEditor) Update(deltaseconds float32) error {
	e.loader.Drain(e.install)

	e.clearItem.Disabled = e.scene.Selected() == meme.ElementNone
	e.menus.Draw()

	// iterate Drawables, then remove any that closed
	toRemove := map[Drawable]bool{}
	for _, d := range e.drawables {
		if err := d.Draw(); err != nil {
			Logger().Debug("editor: closing drawable", "err", err)
			toRemove[d] = true
		}
	}
	e.drawables = slices.DeleteFunc(e.drawables, func(d Drawable) bool {
		return toRemove[d]
	})
	return nil
}

func (e *ImguiEditor) AddDrawable(d Drawable) {
	if !slices.ContainsFunc(e.drawables, func(existing Drawable) bool {
		return d == existing
	}) {
		e.drawables = append(e.drawables, d)
	}
}

// Pointer routes a frame of mouse input to the canvas.
func (e *ImguiEditor) Pointer(p pointerState) {
	e.canvas.Pointer(p)
}

func (e *ImguiEditor) Layout(width, height int) {
	e.width, e.height = width, height
	e.canvas.Layout(width, e.cfg.PanelWidth)
}

func (e *ImguiEditor) Draw(screen *ebiten.Image) {
	e.canvas.Draw(screen)
}

// Pick requests an asset for a slot. The newest pick of a slot wins even if
// an older one finishes decoding later.
func (e *ImguiEditor) Pick(slot asset.Slot, path asset.Path) {
	if _, err := e.loader.Request(slot, path); err != nil {
		Logger().Warn("editor: pick rejected", "slot", slot, "path", path, "err", err)
	}
}

// Picked is the newest requested path of a slot.
func (e *ImguiEditor) Picked(slot asset.Slot) (asset.Path, bool) {
	return e.loader.Requested(slot)
}

func (e *ImguiEditor) install(r asset.Result) {
	switch r.Slot {
	case asset.SlotBackground:
		e.scene.SetBackground(r.Image)
	case asset.SlotOverlay:
		e.scene.SetOverlay(r.Image)
	}
	Logger().Info("editor: image installed", "slot", r.Slot, "path", r.Path)
}

// Download flattens the scene without handles and writes it through the
// writable file system. The selection is left as it is.
func (e *ImguiEditor) Download() error {
	var buf bytes.Buffer
	if err := e.scene.ExportPNG(&buf, e.rasterizer, e.canvas.Dims()); err != nil {
		e.setStatus("Download failed: %v", err)
		return err
	}
	if err := asset.WriteFile(asset.Path(e.cfg.OutputName), buf.Bytes()); err != nil {
		e.setStatus("Download failed: %v", err)
		return err
	}
	e.setStatus("Saved %s", e.cfg.OutputPath())
	return nil
}

func (e *ImguiEditor) setStatus(format string, args ...any) {
	e.status = fmt.Sprintf(format, args...)
	Logger().Info("editor: status", "message", e.status)
}

func (e *ImguiEditor) Status() string {
	return e.status
}

// Close stops the background decoder.
func (e *ImguiEditor) Close() {
	e.loader.Close()
}

// GetImguiTexture creates a new ebiten.Image of size width, height and registers
// the image into the imgui texture system.  The return values are
// the id that can be used with imgui.Image() and the img can be used with
// ebiten code.
// When called repeatedly with the same key, no real work will be done, and
// cached values are returned.  If the size changes then the old texture is
// disposed
func (e *ImguiEditor) GetImguiTexture(key any, width int, height int) (id imgui.TextureID, img *ebiten.Image) {
	if tex, exists := e.embeddedTextures[key]; exists {
		s := tex.img.Bounds().Size()
		if s.X == width && s.Y == height {
			return tex.id, tex.img
		}
		// size must have changed
		tex.img.Dispose()
	}

	newImg := ebiten.NewImage(width, height)
	e.Manager.Cache.SetTexture(e.nextTextureID, newImg)
	tex := embeddedTexture{
		img: newImg,
		id:  e.nextTextureID,
	}
	e.embeddedTextures[key] = tex
	e.nextTextureID++
	return tex.id, tex.img
}
