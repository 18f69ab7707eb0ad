package dice

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestGeoMMatchesAffine(t *testing.T) {
	m := [6]float64{0, 2, -2, 0, 50, 60}
	g := geoM(m)
	for _, p := range [][2]float64{{0, 0}, {1, 0}, {3, -4}} {
		gx, gy := g.Apply(p[0], p[1])
		wx, wy := transformPoint(m, p[0], p[1])
		assertNear(t, "x", gx, wx)
		assertNear(t, "y", gy, wy)
	}
}

func TestScreenRendererSkipsMissingTexture(t *testing.T) {
	// Neither call may panic.
	ScreenRenderer{}.DrawSprite(Sprite{Texture: ebiten.NewImage(1, 1)})
	ScreenRenderer{Target: ebiten.NewImage(4, 4)}.DrawSprite(Sprite{Transform: IdentityTransform})
}

func TestSpriteCarriesOriginOffset(t *testing.T) {
	tex := NewTextures()
	o := NewObject("o", "O")
	o.SetTexture(tex.AddSolid("sq", 10, 10, color.White))
	o.SetPosition(100, 100)

	var got Sprite
	o.Draw(RendererFunc(func(s Sprite) { got = s }), IdentityTransform)
	if got.Texture != o.Texture() {
		t.Error("sprite texture should be the object texture")
	}
	assertMatrix(t, "sprite", got.Transform, [6]float64{1, 0, 0, 1, 95, 95})
}
