package dice

import "math"

// IdentityTransform is the identity affine matrix. Pass it to Draw for roots.
var IdentityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the object's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Scale -> Rotate (degrees) -> Translate(X, Y)
//
// The sprite origin is not part of this matrix; it only offsets the sprite
// itself (see spriteTransform) so children are positioned relative to the
// object's position, not its texture corner.
func computeLocalTransform(o *Object) [6]float64 {
	sin, cos := math.Sincos(o.Rotation * math.Pi / 180)
	sx := o.ScaleX
	sy := o.ScaleY
	return [6]float64{cos * sx, sin * sx, -sin * sy, cos * sy, o.X, o.Y}
}

// spriteTransform shifts a composed object transform by the sprite origin.
func spriteTransform(world [6]float64, o *Object) [6]float64 {
	return multiplyAffine(world, [6]float64{1, 0, 0, 1, -o.originX, -o.originY})
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// transformRect returns the axis-aligned bounding box of r after transform.
func transformRect(m [6]float64, r Rect) Rect {
	x0, y0 := transformPoint(m, r.X, r.Y)
	x1, y1 := transformPoint(m, r.X+r.Width, r.Y)
	x2, y2 := transformPoint(m, r.X+r.Width, r.Y+r.Height)
	x3, y3 := transformPoint(m, r.X, r.Y+r.Height)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Transform property setters ---

// SetPosition sets the object's local X and Y.
func (o *Object) SetPosition(x, y float64) {
	o.X = x
	o.Y = y
}

// Move offsets the object's local position.
func (o *Object) Move(dx, dy float64) {
	o.X += dx
	o.Y += dy
}

// Position returns the object's local position.
func (o *Object) Position() Vec2 {
	return Vec2{o.X, o.Y}
}

// SetScale sets the object's ScaleX and ScaleY.
func (o *Object) SetScale(sx, sy float64) {
	o.ScaleX = sx
	o.ScaleY = sy
}

// SetRotation sets the object's rotation in degrees.
func (o *Object) SetRotation(deg float64) {
	o.Rotation = deg
}

// Rotate adds deg degrees to the object's rotation.
func (o *Object) Rotate(deg float64) {
	o.Rotation += deg
}

// Origin returns the sprite origin set by the last SetTexture call.
func (o *Object) Origin() Vec2 {
	return Vec2{o.originX, o.originY}
}

// --- Coordinate conversion ---

// LocalTransform returns the object's own affine matrix.
func (o *Object) LocalTransform() [6]float64 {
	return computeLocalTransform(o)
}

// WorldTransform composes the local transforms of every ancestor with this
// object's own, root first.
func (o *Object) WorldTransform() [6]float64 {
	m := computeLocalTransform(o)
	for p := o.parent; p != nil && !p.sentinel; p = p.parent {
		m = multiplyAffine(computeLocalTransform(p), m)
	}
	return m
}

// GlobalPosition returns the object's position in world space.
func (o *Object) GlobalPosition() Vec2 {
	x, y := o.LocalToWorld(0, 0)
	return Vec2{x, y}
}

// WorldToLocal converts a world-space point to this object's local space.
func (o *Object) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(o.WorldTransform()), wx, wy)
}

// LocalToWorld converts a local-space point to world space.
func (o *Object) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(o.WorldTransform(), lx, ly)
}
