package dice

import "image/color"

// ColorWhite is the default tint (no color modification).
var ColorWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// DefaultName is the display label given to objects built without one.
const DefaultName = "Unnamed"

// Built-in type tags. Type is a free-form string; these are only the tags the
// package itself knows how to construct.
const (
	TypeGeneric = "generic"
	TypeCard    = "Card"
	TypeChip    = "Chip"
)

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The left and top edges are inside, the right and bottom edges are not, so a
// zero-size rectangle contains nothing.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Intersects reports whether r and other overlap with a non-empty area.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height &&
		other.Y < r.Y+r.Height
}

// EventType identifies a kind of table interaction event.
type EventType uint8

const (
	EventPickUp EventType = iota // a draggable object was grabbed by the pointer
	EventDrag                    // the grabbed object moved this frame
	EventDrop                    // the pointer was released
	EventFlip                    // a card was flipped from the table
)

// String returns the event name.
func (e EventType) String() string {
	switch e {
	case EventPickUp:
		return "pickup"
	case EventDrag:
		return "drag"
	case EventDrop:
		return "drop"
	case EventFlip:
		return "flip"
	default:
		return "unknown"
	}
}

// ObjectEvent carries interaction data for an EventSink.
type ObjectEvent struct {
	Type     EventType
	ObjectID string
	X, Y     float64
	// Drag fields (valid for EventDrag and EventDrop)
	StartX, StartY float64
	DeltaX, DeltaY float64
	// FaceUp is the new face state for EventFlip.
	FaceUp bool
}

// EventSink is the interface for optional event forwarding (for example into
// an ECS world). When set on a Table, interaction events are sent to it.
type EventSink interface {
	Emit(event ObjectEvent)
}
