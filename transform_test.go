package dice

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- computeLocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	o := NewObject("test", "Test")
	assertMatrix(t, "identity", computeLocalTransform(o), IdentityTransform)
}

func TestLocalTransformTranslation(t *testing.T) {
	o := NewObject("test", "Test")
	o.SetPosition(10, 20)
	assertMatrix(t, "translation", computeLocalTransform(o), [6]float64{1, 0, 0, 1, 10, 20})
}

func TestLocalTransformScale(t *testing.T) {
	o := NewObject("test", "Test")
	o.SetScale(2, 3)
	assertMatrix(t, "scale", computeLocalTransform(o), [6]float64{2, 0, 0, 3, 0, 0})
}

func TestLocalTransformRotationDegrees(t *testing.T) {
	o := NewObject("test", "Test")
	o.SetRotation(90)
	// cos(90°)=0, sin(90°)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", computeLocalTransform(o), [6]float64{0, 1, -1, 0, 0, 0})
}

func TestLocalTransformCombined(t *testing.T) {
	o := NewObject("test", "Test")
	o.SetPosition(50, 60)
	o.SetScale(2, 2)
	o.SetRotation(90)
	assertMatrix(t, "combined", computeLocalTransform(o), [6]float64{0, 2, -2, 0, 50, 60})
}

func TestLocalTransformIgnoresOrigin(t *testing.T) {
	o := NewObject("test", "Test")
	o.SetPosition(100, 100)
	o.originX, o.originY = 32, 32
	assertMatrix(t, "local", computeLocalTransform(o), [6]float64{1, 0, 0, 1, 100, 100})
	assertMatrix(t, "sprite", spriteTransform(computeLocalTransform(o), o), [6]float64{1, 0, 0, 1, 68, 68})
}

// --- multiplyAffine / invertAffine ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 1, -1, 3, 5, 7}
	assertMatrix(t, "I*m", multiplyAffine(IdentityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, IdentityTransform), m)
}

func TestMultiplyAffineTranslations(t *testing.T) {
	a := [6]float64{1, 0, 0, 1, 10, 20}
	b := [6]float64{1, 0, 0, 1, 5, 7}
	assertMatrix(t, "a*b", multiplyAffine(a, b), [6]float64{1, 0, 0, 1, 15, 27})
}

func TestMultiplyAffineScaleThenTranslate(t *testing.T) {
	parent := [6]float64{2, 0, 0, 2, 0, 0}
	child := [6]float64{1, 0, 0, 1, 10, 10}
	// The child's translation is scaled by the parent.
	assertMatrix(t, "p*c", multiplyAffine(parent, child), [6]float64{2, 0, 0, 2, 20, 20})
}

func TestInvertAffineRoundTrip(t *testing.T) {
	m := [6]float64{0, 2, -2, 0, 50, 60}
	assertMatrix(t, "m*inv", multiplyAffine(m, invertAffine(m)), IdentityTransform)
	assertMatrix(t, "inv*m", multiplyAffine(invertAffine(m), m), IdentityTransform)
}

func TestInvertAffineSingular(t *testing.T) {
	m := [6]float64{0, 0, 0, 0, 5, 5}
	assertMatrix(t, "singular", invertAffine(m), IdentityTransform)
}

func TestTransformRectRotated(t *testing.T) {
	m := [6]float64{0, 1, -1, 0, 0, 0} // 90°
	got := transformRect(m, Rect{X: 0, Y: 0, Width: 10, Height: 20})
	want := Rect{X: -20, Y: 0, Width: 20, Height: 10}
	assertNear(t, "X", got.X, want.X)
	assertNear(t, "Y", got.Y, want.Y)
	assertNear(t, "Width", got.Width, want.Width)
	assertNear(t, "Height", got.Height, want.Height)
}

// --- Object methods ---

func TestMoveAndRotateAccumulate(t *testing.T) {
	o := NewObject("o", "O")
	o.SetPosition(1, 2)
	o.Move(3, 4)
	o.Move(-1, 1)
	if p := o.Position(); p != (Vec2{3, 7}) {
		t.Errorf("Position = %v, want {3 7}", p)
	}
	o.SetRotation(30)
	o.Rotate(15)
	assertNear(t, "Rotation", o.Rotation, 45)
}

func TestWorldTransformComposesAncestors(t *testing.T) {
	root := NewObject("root", "Root")
	root.SetPosition(100, 100)
	root.SetScale(2, 2)
	mid := NewObject("mid", "Mid")
	mid.SetPosition(10, 0)
	leaf := NewObject("leaf", "Leaf")
	leaf.SetPosition(0, 5)
	root.AddChild(mid)
	mid.AddChild(leaf)

	p := leaf.GlobalPosition()
	assertNear(t, "X", p.X, 120)
	assertNear(t, "Y", p.Y, 110)
}

func TestWorldTransformRotatedParent(t *testing.T) {
	root := NewObject("root", "Root")
	root.SetPosition(50, 50)
	root.SetRotation(90)
	child := NewObject("child", "Child")
	child.SetPosition(10, 0)
	root.AddChild(child)

	p := child.GlobalPosition()
	assertNear(t, "X", p.X, 50)
	assertNear(t, "Y", p.Y, 60)
}

func TestWorldToLocalInverse(t *testing.T) {
	root := NewObject("root", "Root")
	root.SetPosition(30, 40)
	root.SetScale(2, 0.5)
	root.SetRotation(30)
	child := NewObject("child", "Child")
	child.SetPosition(-7, 12)
	root.AddChild(child)

	wx, wy := child.LocalToWorld(3, 4)
	lx, ly := child.WorldToLocal(wx, wy)
	if math.Abs(lx-3) > 1e-6 || math.Abs(ly-4) > 1e-6 {
		t.Errorf("round trip = (%v, %v), want (3, 4)", lx, ly)
	}
}
