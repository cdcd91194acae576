package meme

import (
	"image"
	"io"
)

// ExportName is the file name a flattened meme is saved under.
const ExportName = "meme.png"

// Export flattens the scene at the canvas' native pixel size. The handle
// overlay is detached before rasterizing so it never reaches the output,
// and neither the selection nor any element is changed.
func (s *Scene) Export(dims CanvasDimensions) (*image.RGBA, error) {
	return s.ExportWith(NewRasterizer(), dims)
}

// ExportWith is Export using an existing rasterizer and its caches.
func (s *Scene) ExportWith(r *Rasterizer, dims CanvasDimensions) (*image.RGBA, error) {
	if dims.IsZero() {
		return nil, ErrNoSurface
	}
	comp := s.Render(dims).WithoutHandles()
	return r.Rasterize(comp)
}

// ExportPNG writes the flattened scene to w as PNG.
func (s *Scene) ExportPNG(w io.Writer, r *Rasterizer, dims CanvasDimensions) error {
	if dims.IsZero() {
		return ErrNoSurface
	}
	if r == nil {
		r = NewRasterizer()
	}
	dc, err := r.draw(s.Render(dims).WithoutHandles())
	if err != nil {
		return err
	}
	Logger().Info("scene: exported", "width", dims.Width, "height", dims.Height)
	return dc.EncodePNG(w)
}
