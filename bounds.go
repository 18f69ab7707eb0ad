package dice

// LocalBounds returns the sprite rectangle in the object's local space: the
// texture size offset by the sprite origin. Objects without a texture have
// an empty rectangle at their origin.
func (o *Object) LocalBounds() Rect {
	if o.texture == nil {
		return Rect{}
	}
	b := o.texture.Bounds()
	return Rect{
		X:      -o.originX,
		Y:      -o.originY,
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	}
}

// GlobalBounds returns the axis-aligned box of the local bounds transformed
// by the full ancestor-composed transform. The box is approximate for rotated
// objects and is meant for hit testing, not physics.
func (o *Object) GlobalBounds() Rect {
	return transformRect(o.WorldTransform(), o.LocalBounds())
}

// Contains reports whether the world-space point lies inside GlobalBounds.
func (o *Object) Contains(x, y float64) bool {
	return o.GlobalBounds().Contains(x, y)
}

// Intersects reports whether the global bounds of o and other overlap.
func (o *Object) Intersects(other Node) bool {
	b := baseOf(other)
	if b == nil {
		return false
	}
	return o.GlobalBounds().Intersects(b.GlobalBounds())
}
