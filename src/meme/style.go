package meme

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	MinFontSize    = 10
	MaxFontSize    = 100
	MinStrokeWidth = 0
	MaxStrokeWidth = 20
)

var ErrInvalidStyle = errors.New("invalid text style")

// TextStyle holds every caption attribute the style controls can set.
// Colours are hex strings ("#rgb" or "#rrggbb").
type TextStyle struct {
	FontSize    float64
	Bold        bool
	Italic      bool
	FillColor   string
	StrokeColor string
	StrokeWidth float64
}

// DefaultTextStyle is the style a fresh caption starts with.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontSize:    20,
		FillColor:   "#ffffff",
		StrokeColor: "#000000",
		StrokeWidth: 0,
	}
}

// Validate checks the style against the control ranges. Values inside the
// ranges are accepted as they are.
func (s TextStyle) Validate() error {
	if s.FontSize < MinFontSize || s.FontSize > MaxFontSize {
		return fmt.Errorf("%w: font size %v outside [%d,%d]", ErrInvalidStyle, s.FontSize, MinFontSize, MaxFontSize)
	}
	if s.StrokeWidth < MinStrokeWidth || s.StrokeWidth > MaxStrokeWidth {
		return fmt.Errorf("%w: stroke width %v outside [%d,%d]", ErrInvalidStyle, s.StrokeWidth, MinStrokeWidth, MaxStrokeWidth)
	}
	if _, err := ParseHexColor(s.FillColor); err != nil {
		return fmt.Errorf("%w: fill colour: %v", ErrInvalidStyle, err)
	}
	if _, err := ParseHexColor(s.StrokeColor); err != nil {
		return fmt.Errorf("%w: stroke colour: %v", ErrInvalidStyle, err)
	}
	return nil
}

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque colour.
func ParseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 4 && strings.HasPrefix(hex, "#") {
		hex = "#" + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2) + strings.Repeat(hex[3:4], 2)
	}
	if len(hex) != 7 {
		return color.NRGBA{}, fmt.Errorf("colour %q is not #rgb or #rrggbb", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// mustColor is only used on already validated styles.
func mustColor(hex string) color.NRGBA {
	c, err := ParseHexColor(hex)
	if err != nil {
		Logger().Warn("scene: unparsable colour reached the renderer", "colour", hex, "err", err)
		return color.NRGBA{A: 0xff}
	}
	return c
}
