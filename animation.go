package dice

import (
	"image/color"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values on an Object simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation, TweenColor) and call Update(dt) each frame, or hand it to
// Table.Animate. If the target is detached from its tree while the group
// runs, the group keeps writing to it; the tree does not own tweens.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  [4]func(float64)
	target *Object
	Done   bool
}

// Target returns the animated object.
func (g *TweenGroup) Target() *Object {
	return g.target
}

// Update advances all tweens by dt seconds and writes the values to the target.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.apply[i](float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition animates the object's local X and Y to (toX, toY).
func TweenPosition(n Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	o := n.Base()
	g := &TweenGroup{count: 2, target: o}
	g.tweens[0] = gween.New(float32(o.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(o.Y), float32(toY), duration, fn)
	g.apply[0] = func(v float64) { o.X = v }
	g.apply[1] = func(v float64) { o.Y = v }
	return g
}

// TweenScale animates ScaleX and ScaleY. A card flip is usually a TweenScale
// to (0, 1), a Flip, and a TweenScale back to (1, 1).
func TweenScale(n Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	o := n.Base()
	g := &TweenGroup{count: 2, target: o}
	g.tweens[0] = gween.New(float32(o.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(o.ScaleY), float32(toSY), duration, fn)
	g.apply[0] = func(v float64) { o.ScaleX = v }
	g.apply[1] = func(v float64) { o.ScaleY = v }
	return g
}

// TweenRotation animates Rotation (degrees).
func TweenRotation(n Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	o := n.Base()
	g := &TweenGroup{count: 1, target: o}
	g.tweens[0] = gween.New(float32(o.Rotation), float32(to), duration, fn)
	g.apply[0] = func(v float64) { o.Rotation = v }
	return g
}

// TweenColor animates all four channels of the tint color.
func TweenColor(n Node, to color.RGBA, duration float32, fn ease.TweenFunc) *TweenGroup {
	o := n.Base()
	g := &TweenGroup{count: 4, target: o}
	from := [4]uint8{o.Color.R, o.Color.G, o.Color.B, o.Color.A}
	dst := [4]uint8{to.R, to.G, to.B, to.A}
	fields := [4]*uint8{&o.Color.R, &o.Color.G, &o.Color.B, &o.Color.A}
	for i := range fields {
		field := fields[i]
		g.tweens[i] = gween.New(float32(from[i]), float32(dst[i]), duration, fn)
		g.apply[i] = func(v float64) { *field = channel(int(math.Round(v))) }
	}
	return g
}
