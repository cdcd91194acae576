// edgui provides some helper functions for the editor UI
// The functions here should follow imgui style.

package edgui

import (
	"fmt"
	"math"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/lucasb-eyer/go-colorful"
)

func Text(format string, args ...any) {
	t := fmt.Sprintf(format, args...)
	imgui.Text(t)
}

func InputText(label string, text *string) bool {
	imgui.Text(label)
	imgui.SameLine()

	return imgui.InputText("##"+label, text)
}

func WithIDPtr[T any](ptr *T, body func()) {
	addr := fmt.Sprintf("%p", ptr)
	imgui.PushID(addr)
	defer imgui.PopID()
	body()
}

func WithItemWidth(width float32, body func()) {
	imgui.PushItemWidth(width)
	defer imgui.PopItemWidth()
	body()
}

// SliderInt edits a float64 that only takes whole values.
func SliderInt(label string, v *float64, min, max int) bool {
	i32 := int32(math.Round(*v))
	ret := imgui.SliderInt(label, &i32, int32(min), int32(max))
	if ret {
		*v = float64(i32)
	}
	return ret
}

// SliderStep edits a float64 in [min, max], snapped to multiples of step.
func SliderStep(label string, v *float64, min, max, step float64) bool {
	f32 := float32(*v)
	ret := imgui.SliderFloatV(label, &f32, float32(min), float32(max), "%.1f", imgui.SliderFlagsNone)
	if ret {
		*v = Snap(float64(f32), min, max, step)
	}
	return ret
}

// Snap rounds v to the nearest multiple of step and clamps it to [min, max].
func Snap(v, min, max, step float64) float64 {
	if step > 0 {
		v = math.Round(v/step) * step
		// drop float noise such as 0.30000000000000004
		v = math.Round(v*1e6) / 1e6
	}
	return math.Max(min, math.Min(max, v))
}

// ColorEditHex edits a "#rrggbb" colour with a picker. An unparsable value
// starts the picker at black.
func ColorEditHex(label string, hex *string) bool {
	rgb := HexToRGB(*hex)
	ret := imgui.ColorEdit3(label, &rgb)
	if ret {
		*hex = RGBToHex(rgb)
	}
	return ret
}

func HexToRGB(hex string) [3]float32 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return [3]float32{}
	}
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

func RGBToHex(rgb [3]float32) string {
	return colorful.Color{R: float64(rgb[0]), G: float64(rgb[1]), B: float64(rgb[2])}.Clamped().Hex()
}
