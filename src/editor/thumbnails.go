package editor

import (
	"github.com/bradbev/memeland/src/asset"

	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/inkyblackness/imgui-go/v4"
)

const thumbnailSize = 96

type thumbnail struct {
	id imgui.TextureID
	ok bool
}

// thumbnailCache decodes each catalog image once and keeps a square
// preview of it registered as an imgui texture. Images that fail to decode
// are remembered too, so they are not retried every frame.
type thumbnailCache struct {
	ed    *ImguiEditor
	items map[asset.Path]thumbnail
}

func newThumbnailCache(ed *ImguiEditor) *thumbnailCache {
	return &thumbnailCache{ed: ed, items: map[asset.Path]thumbnail{}}
}

func (t *thumbnailCache) Get(path asset.Path) (imgui.TextureID, bool) {
	if th, ok := t.items[path]; ok {
		return th.id, th.ok
	}
	img, err := asset.Decode(path)
	if err != nil {
		Logger().Warn("editor: thumbnail unavailable", "path", path, "err", err)
		t.items[path] = thumbnail{}
		return 0, false
	}
	small := imaging.Fill(img, thumbnailSize, thumbnailSize, imaging.Center, imaging.Linear)
	id, tex := t.ed.GetImguiTexture(path, thumbnailSize, thumbnailSize)
	tex.DrawImage(ebiten.NewImageFromImage(small), nil)
	t.items[path] = thumbnail{id: id, ok: true}
	return id, true
}
