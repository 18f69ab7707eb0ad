package dice

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a single paint instruction emitted by Object.Draw.
type Sprite struct {
	Object    *Object
	Texture   *ebiten.Image // nil for objects without a bound texture
	Transform [6]float64    // composed transform, sprite origin included
	Color     color.RGBA
}

// Renderer paints sprites. It performs no scene logic of its own.
type Renderer interface {
	DrawSprite(s Sprite)
}

// ScreenRenderer paints sprites onto an ebiten image.
type ScreenRenderer struct {
	Target *ebiten.Image
}

// DrawSprite draws the sprite's texture with its transform and tint.
// Sprites without a texture paint nothing.
func (r ScreenRenderer) DrawSprite(s Sprite) {
	if r.Target == nil || s.Texture == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM = geoM(s.Transform)
	op.ColorScale.ScaleWithColor(s.Color)
	r.Target.DrawImage(s.Texture, &op)
}

// geoM converts an [a, b, c, d, tx, ty] matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(s Sprite)

// DrawSprite calls f(s).
func (f RendererFunc) DrawSprite(s Sprite) {
	f(s)
}
