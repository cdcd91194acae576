package editor

import (
	"fmt"
	"image/color"

	"github.com/bradbev/memeland/src/config"

	"github.com/gabstv/ebiten-imgui/renderer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/inkyblackness/imgui-go/v4"
)

var backdrop = color.NRGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}

func NewEbitengineWrapper(cfg config.Config) *EbitengineWrapper {
	mgr := renderer.New(nil)

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("memeland")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	wrapper := &EbitengineWrapper{
		ImguiManager: mgr,
		Editor:       New(cfg, mgr),
	}

	return wrapper
}

// EbitengineWrapper adapts the editor to ebiten.Game.
type EbitengineWrapper struct {
	ImguiManager *renderer.Manager
	Editor       *ImguiEditor
	w, h         int
}

func (g *EbitengineWrapper) Draw(screen *ebiten.Image) {
	screen.Fill(backdrop)
	g.Editor.Draw(screen)

	dims := g.Editor.canvas.Dims()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("canvas %dx%d  TPS: %.1f", dims.Width, dims.Height, ebiten.ActualTPS()),
		g.Editor.cfg.PanelWidth+8, g.h-20)
	g.ImguiManager.Draw(screen)
}

func (g *EbitengineWrapper) Update() error {
	updateRate := float32(1.0 / 60.0)
	var err error

	g.ImguiManager.Update(updateRate)
	g.ImguiManager.BeginFrame()
	{
		err = g.Editor.Update(updateRate)
		g.Editor.Pointer(readPointer())
	}
	g.ImguiManager.EndFrame()
	return err
}

func (g *EbitengineWrapper) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w = outsideWidth
	g.h = outsideHeight
	g.ImguiManager.SetDisplaySize(float32(g.w), float32(g.h))
	g.Editor.Layout(g.w, g.h)
	return g.w, g.h
}

func readPointer() pointerState {
	x, y := ebiten.CursorPosition()
	return pointerState{
		X:            x,
		Y:            y,
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		Captured:     imgui.CurrentIO().WantCaptureMouse(),
	}
}
