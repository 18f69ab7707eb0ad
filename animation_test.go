package dice

import (
	"image/color"
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	o := NewObject("pos", "")
	o.SetPosition(10, 20)

	g := TweenPosition(o, 100, 200, 1.0, ease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(o.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", o.X)
	}
	if math.Abs(o.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", o.Y)
	}
}

func TestTweenPositionOnCard(t *testing.T) {
	c := NewCard("c", "")
	g := TweenPosition(c, 40, 0, 0.5, ease.Linear)
	if g.Target() != &c.Object {
		t.Error("Target should be the card's object")
	}
	g.Update(0.5)
	if math.Abs(c.X-40) > 0.5 {
		t.Errorf("X = %f, want ~40", c.X)
	}
}

func TestTweenScaleReachesTarget(t *testing.T) {
	o := NewObject("scale", "")

	g := TweenScale(o, 2.0, 3.0, 0.5, ease.Linear)

	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(o.ScaleX-2.0) > 0.01 {
		t.Errorf("ScaleX = %f, want ~2.0", o.ScaleX)
	}
	if math.Abs(o.ScaleY-3.0) > 0.01 {
		t.Errorf("ScaleY = %f, want ~3.0", o.ScaleY)
	}
}

func TestTweenRotationDegrees(t *testing.T) {
	o := NewObject("rot", "")

	g := TweenRotation(o, 180, 1.0, ease.Linear)
	g.Update(0.5)
	if math.Abs(o.Rotation-90) > 0.05 {
		t.Errorf("Rotation midway = %f, want ~90", o.Rotation)
	}
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected done after full duration")
	}
	if math.Abs(o.Rotation-180) > 0.05 {
		t.Errorf("Rotation = %f, want ~180", o.Rotation)
	}
}

func TestTweenColorAllChannels(t *testing.T) {
	o := NewObject("color", "")
	o.SetColor(color.RGBA{R: 255, G: 0, B: 0, A: 255})

	g := TweenColor(o, color.RGBA{R: 0, G: 255, B: 128, A: 128}, 1.0, ease.Linear)
	g.Update(0.5)
	if o.Color.R < 126 || o.Color.R > 129 || o.Color.G < 126 || o.Color.G > 129 {
		t.Errorf("Color midway = %v, want ~(127, 127, ...)", o.Color)
	}
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if want := (color.RGBA{R: 0, G: 255, B: 128, A: 128}); o.Color != want {
		t.Errorf("Color = %v, want %v", o.Color, want)
	}
}

func TestTweenColorClampsOvershoot(t *testing.T) {
	o := NewObject("color", "")
	o.SetColor(color.RGBA{R: 0, G: 0, B: 0, A: 255})

	// OutBack overshoots the target before settling.
	g := TweenColor(o, color.RGBA{R: 255, G: 255, B: 255, A: 255}, 1.0, ease.OutBack)
	for i := 0; i < 10; i++ {
		g.Update(0.1)
		if o.Color.A != 255 {
			t.Fatalf("alpha = %d, want 255 throughout", o.Color.A)
		}
	}
	if o.Color.R != 255 {
		t.Errorf("R = %d, want 255", o.Color.R)
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	o := NewObject("done", "")
	g := TweenPosition(o, 50, 50, 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}

	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}

	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Updating a finished group is a no-op.
	o.X = 7
	g.Update(0.1)
	if !g.Done || o.X != 7 {
		t.Fatal("finished group should not write again")
	}
}

func TestTweenDetachedTargetKeepsAnimating(t *testing.T) {
	p := NewObject("p", "")
	c := NewObject("c", "")
	p.AddChild(c)

	g := TweenPosition(c, 100, 0, 1.0, ease.Linear)
	g.Update(0.5)
	p.RemoveChild("c")
	g.Update(0.5)

	if !g.Done || math.Abs(c.X-100) > 0.5 {
		t.Errorf("detached target X = %f, Done = %v; want ~100, true", c.X, g.Done)
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	// Spot-check: linear vs OutCubic at the midpoint should differ.
	oL := NewObject("linear", "")
	oC := NewObject("cubic", "")

	gL := TweenPosition(oL, 100, 0, 1.0, ease.Linear)
	gC := TweenPosition(oC, 100, 0, 1.0, ease.OutCubic)

	gL.Update(0.5)
	gC.Update(0.5)

	if math.Abs(oL.X-oC.X) < 1.0 {
		t.Errorf("easing curves should produce different values at midpoint: linear=%f cubic=%f", oL.X, oC.X)
	}
}

func TestTweenGroupUpdateZeroAlloc(t *testing.T) {
	o := NewObject("alloc", "")
	g := TweenPosition(o, 100, 100, 1.0, ease.Linear)

	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TweenGroup.Update allocated %f times per run, want 0", result)
	}
}
