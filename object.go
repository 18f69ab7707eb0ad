package dice

import (
	"encoding/json"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Node is implemented by every scene-graph variant (*Object, *Card, *Chip and
// user types that embed Object). Base exposes the shared object state; the
// codec methods let each variant add its own fields to the document.
type Node interface {
	Base() *Object
	Update(dt float64)
	Draw(r Renderer, parent [6]float64)
	json.Marshaler
	json.Unmarshaler
}

// Object is the fundamental scene graph element: a positioned, drawable,
// taggable entity that may own child nodes.
type Object struct {
	// Identity
	ID          string
	Name        string
	Type        string
	Description string
	tags        []string

	// Transform (local)
	X, Y     float64
	Rotation float64 // degrees
	ScaleX   float64
	ScaleY   float64
	originX  float64
	originY  float64

	// Visual state. The texture is borrowed from an asset store and must
	// outlive the object.
	texture *ebiten.Image
	Color   color.RGBA
	ZOrder  int

	// Hierarchy. parent is a non-owning back reference. sentinel marks the
	// hidden object a Table keeps its roots under.
	parent   *Object
	children []Node
	sentinel bool

	// Flags
	Active    bool
	Visible   bool
	Draggable bool

	properties map[string]any

	// LuaScript is a script path or identifier interpreted by the script
	// runtime; the object only stores and serializes it.
	LuaScript string

	// OnUpdate, when set, runs each frame while the object is active, before
	// its children are updated.
	OnUpdate func(dt float64)
}

// objectDefaults sets the common default field values shared by all constructors.
func objectDefaults(o *Object, id, name string) {
	o.ID = id
	o.Name = name
	o.Type = TypeGeneric
	o.ScaleX = 1
	o.ScaleY = 1
	o.Color = ColorWhite
	o.Active = true
	o.Visible = true
	o.Draggable = true
	o.properties = make(map[string]any)
}

// NewObject creates a generic object with the given id and display name.
func NewObject(id, name string) *Object {
	o := &Object{}
	objectDefaults(o, id, name)
	return o
}

// Base returns the object itself. Embedding types inherit it.
func (o *Object) Base() *Object {
	return o
}

// baseOf returns the Object behind n, or nil for a nil node.
func baseOf(n Node) *Object {
	if n == nil {
		return nil
	}
	return n.Base()
}

// --- Tags ---

// AddTag appends tag unless it is already present.
func (o *Object) AddTag(tag string) {
	if o.HasTag(tag) {
		return
	}
	o.tags = append(o.tags, tag)
	logger.Debug("added tag", zap.String("object", o.ID), zap.String("tag", tag))
}

// RemoveTag removes the first occurrence of tag. No-op if absent.
func (o *Object) RemoveTag(tag string) {
	for i, t := range o.tags {
		if t == tag {
			o.tags = append(o.tags[:i], o.tags[i+1:]...)
			logger.Debug("removed tag", zap.String("object", o.ID), zap.String("tag", tag))
			return
		}
	}
}

// HasTag reports whether tag is present.
func (o *Object) HasTag(tag string) bool {
	for _, t := range o.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tags returns the ordered tag list. The returned slice MUST NOT be mutated.
func (o *Object) Tags() []string {
	return o.tags
}

// --- Visual state ---

// SetTexture binds a borrowed texture and centres the sprite origin on it.
// A nil texture is ignored and the current one stays bound.
func (o *Object) SetTexture(tex *ebiten.Image) {
	if tex == nil {
		return
	}
	o.texture = tex
	b := tex.Bounds()
	o.originX = float64(b.Dx()) / 2
	o.originY = float64(b.Dy()) / 2
	logger.Debug("set texture", zap.String("object", o.ID))
}

// Texture returns the currently displayed texture, or nil.
func (o *Object) Texture() *ebiten.Image {
	return o.texture
}

// SetColor sets the tint color.
func (o *Object) SetColor(c color.RGBA) {
	o.Color = c
}

// MoveUp raises the object one step in z-order.
func (o *Object) MoveUp() {
	o.ZOrder++
}

// MoveDown lowers the object one step in z-order.
func (o *Object) MoveDown() {
	o.ZOrder--
}

// --- Tree manipulation ---

// AddChild appends child to this object's children.
//
// A nil child, a child whose id is already present, or a child that is this
// object or one of its ancestors is rejected with a warning and nothing
// changes. A child that already has another parent is detached from it first.
func (o *Object) AddChild(child Node) {
	c := baseOf(child)
	if c == nil {
		logger.Warn("attempted to add nil child", zap.String("parent", o.ID))
		return
	}
	if o.indexOf(c.ID) >= 0 {
		logger.Warn("child already exists", zap.String("parent", o.ID), zap.String("child", c.ID))
		return
	}
	if isAncestor(c, o) {
		logger.Warn("adding child would create a cycle", zap.String("parent", o.ID), zap.String("child", c.ID))
		return
	}
	if c.parent != nil {
		c.parent.removeChildByPtr(c)
	}
	c.parent = o
	o.children = append(o.children, child)
	logger.Debug("added child", zap.String("parent", o.ID), zap.String("child", c.ID))
}

// RemoveChild detaches the child with the given id and returns it with its
// parent reference cleared. Logs a warning and returns nil if no child has
// that id.
func (o *Object) RemoveChild(id string) Node {
	i := o.indexOf(id)
	if i < 0 {
		logger.Warn("child not found", zap.String("parent", o.ID), zap.String("child", id))
		return nil
	}
	child := o.children[i]
	copy(o.children[i:], o.children[i+1:])
	o.children[len(o.children)-1] = nil
	o.children = o.children[:len(o.children)-1]
	child.Base().parent = nil
	logger.Debug("removed child", zap.String("parent", o.ID), zap.String("child", id))
	return child
}

// RemoveFromParent detaches this object from its parent, or from its table
// if it is a root. No-op if this object has no parent.
func (o *Object) RemoveFromParent() {
	if o.parent == nil {
		return
	}
	o.parent.removeChildByPtr(o)
	o.parent = nil
}

// Child returns the direct child with the given id, or nil.
func (o *Object) Child(id string) Node {
	if i := o.indexOf(id); i >= 0 {
		return o.children[i]
	}
	return nil
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (o *Object) Children() []Node {
	return o.children
}

// NumChildren returns the number of children.
func (o *Object) NumChildren() int {
	return len(o.children)
}

// ChildAt returns the child at the given index.
func (o *Object) ChildAt(index int) Node {
	return o.children[index]
}

// Parent returns the owning object, or nil for a root.
func (o *Object) Parent() *Object {
	if o.parent == nil || o.parent.sentinel {
		return nil
	}
	return o.parent
}

// SortChildrenByZOrder stably reorders the children by ascending ZOrder, so
// higher z-order children are updated and drawn later.
func (o *Object) SortChildrenByZOrder() {
	sort.SliceStable(o.children, func(i, j int) bool {
		return o.children[i].Base().ZOrder < o.children[j].Base().ZOrder
	})
}

// --- Frame dispatch ---

// Update runs OnUpdate and then updates active children in order.
// Inactive objects freeze their whole subtree.
func (o *Object) Update(dt float64) {
	if !o.Active {
		return
	}
	if o.OnUpdate != nil {
		o.OnUpdate(dt)
	}
	for _, child := range o.children {
		if child.Base().Active {
			child.Update(dt)
		}
	}
}

// Draw paints this object with the composed transform and then draws visible
// children on top of it. Invisible objects skip their whole subtree.
func (o *Object) Draw(r Renderer, parent [6]float64) {
	if !o.Visible {
		return
	}
	world := multiplyAffine(parent, computeLocalTransform(o))
	r.DrawSprite(Sprite{
		Object:    o,
		Texture:   o.texture,
		Transform: spriteTransform(world, o),
		Color:     o.Color,
	})
	for _, child := range o.children {
		if child.Base().Visible {
			child.Draw(r, world)
		}
	}
}

// --- Traversal ---

// Walk visits n and its descendants depth-first, parent before children.
// Returning false from fn skips that node's subtree.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Base().children {
		Walk(child, fn)
	}
}

// Find returns the first node in n's subtree (n included) with the given id.
func Find(n Node, id string) Node {
	var found Node
	Walk(n, func(c Node) bool {
		if found != nil {
			return false
		}
		if c.Base().ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// --- Helpers ---

// indexOf returns the index of the child with the given id, or -1.
func (o *Object) indexOf(id string) int {
	for i, c := range o.children {
		if c.Base().ID == id {
			return i
		}
	}
	return -1
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Object) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from o.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (o *Object) removeChildByPtr(child *Object) {
	for i, c := range o.children {
		if c.Base() == child {
			copy(o.children[i:], o.children[i+1:])
			o.children[len(o.children)-1] = nil
			o.children = o.children[:len(o.children)-1]
			return
		}
	}
}
