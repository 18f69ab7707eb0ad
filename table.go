package dice

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Table is the top-level object that owns the root nodes of a game, drives
// their frame updates and draws, tracks pointer drags, and saves or loads the
// whole scene.
type Table struct {
	root     *Object // hidden parent of every root node
	sorted   []Node  // reused buffer for ZOrder-sorted root order
	registry *Registry
	sink     EventSink
	tweens   []*TweenGroup
	drag     dragState
	hitBuf   []Node
}

// dragState tracks the node currently held by the pointer. orphaned is set
// when the held node left the table mid-drag; the press is then ignored until
// the pointer is released.
type dragState struct {
	node           Node
	startX, startY float64
	lastX, lastY   float64
	orphaned       bool
}

// NewTable creates an empty table that loads with DefaultRegistry.
func NewTable() *Table {
	root := NewObject("", "")
	root.sentinel = true
	return &Table{root: root, registry: DefaultRegistry}
}

// SetRegistry sets the registry used by Load.
func (t *Table) SetRegistry(r *Registry) {
	if r == nil {
		r = DefaultRegistry
	}
	t.registry = r
}

// SetEventSink sets the optional event forwarder.
func (t *Table) SetEventSink(sink EventSink) {
	t.sink = sink
}

func (t *Table) emit(e ObjectEvent) {
	if t.sink != nil {
		t.sink.Emit(e)
	}
}

// --- Roots ---

// AddRoot appends a root node. Nil nodes and duplicate ids are rejected with a
// warning. A node that still has a parent is detached from it first.
//
// Roots are owned like children: adding a root to an object with AddChild,
// or calling RemoveFromParent on it, takes it off the table.
func (t *Table) AddRoot(n Node) {
	o := baseOf(n)
	if o == nil {
		logger.Warn("attempted to add nil root")
		return
	}
	if t.root.indexOf(o.ID) >= 0 {
		logger.Warn("root already exists", zap.String("root", o.ID))
		return
	}
	t.root.AddChild(n)
}

// RemoveRoot detaches and returns the root with the given id, or nil.
func (t *Table) RemoveRoot(id string) Node {
	if t.root.indexOf(id) < 0 {
		logger.Warn("root not found", zap.String("root", id))
		return nil
	}
	return t.root.RemoveChild(id)
}

// Root returns the root with the given id, or nil.
func (t *Table) Root(id string) Node {
	return t.root.Child(id)
}

// Roots returns the roots in insertion order. The returned slice MUST NOT be mutated.
func (t *Table) Roots() []Node {
	return t.root.children
}

// Find searches every root's subtree for the given id.
func (t *Table) Find(id string) Node {
	for _, r := range t.root.children {
		if n := Find(r, id); n != nil {
			return n
		}
	}
	return nil
}

// Clear removes every root.
func (t *Table) Clear() {
	for i, r := range t.root.children {
		r.Base().parent = nil
		t.root.children[i] = nil
	}
	t.root.children = t.root.children[:0]
	t.drag = dragState{}
	t.tweens = t.tweens[:0]
}

// owns reports whether o is reachable from the table's roots.
func (t *Table) owns(o *Object) bool {
	for p := o; p != nil; p = p.parent {
		if p == t.root {
			return true
		}
	}
	return false
}

// --- Frame ---

// Animate registers a tween group advanced by Update until it is done.
func (t *Table) Animate(g *TweenGroup) {
	if g == nil {
		return
	}
	t.tweens = append(t.tweens, g)
}

// Update advances running tweens and then updates every root.
func (t *Table) Update(dt float64) {
	live := t.tweens[:0]
	for _, g := range t.tweens {
		g.Update(float32(dt))
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(t.tweens); i++ {
		t.tweens[i] = nil
	}
	t.tweens = live

	for _, r := range t.root.children {
		r.Update(dt)
	}
}

// Draw draws every root, lowest ZOrder first. Roots with equal ZOrder keep
// insertion order.
func (t *Table) Draw(r Renderer) {
	for _, root := range t.sortedRoots() {
		root.Draw(r, IdentityTransform)
	}
}

// sortedRoots rebuilds the ZOrder-sorted root order.
// Uses insertion sort: zero allocations, stable, and optimal for the typical
// case of few roots that are nearly sorted.
func (t *Table) sortedRoots() []Node {
	roots := t.root.children
	n := len(roots)
	if cap(t.sorted) < n {
		t.sorted = make([]Node, n)
	}
	t.sorted = t.sorted[:n]
	copy(t.sorted, roots)
	for i := 1; i < n; i++ {
		key := t.sorted[i]
		j := i - 1
		for j >= 0 && t.sorted[j].Base().ZOrder > key.Base().ZOrder {
			t.sorted[j+1] = t.sorted[j]
			j--
		}
		t.sorted[j+1] = key
	}
	return t.sorted
}

// --- Hit testing ---

// collectVisible walks the tree in painter order, appending every visible
// node. Invisible subtrees are skipped.
func collectVisible(n Node, buf []Node) []Node {
	o := n.Base()
	if !o.Visible {
		return buf
	}
	buf = append(buf, n)
	for _, child := range o.children {
		buf = collectVisible(child, buf)
	}
	return buf
}

// HitTest returns the topmost visible node whose global bounds contain the
// world-space point, or nil.
func (t *Table) HitTest(x, y float64) Node {
	return t.hitTest(x, y, func(Node) bool { return true })
}

func (t *Table) hitTest(x, y float64, accept func(Node) bool) Node {
	t.hitBuf = t.hitBuf[:0]
	for _, root := range t.sortedRoots() {
		t.hitBuf = collectVisible(root, t.hitBuf)
	}
	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(t.hitBuf) - 1; i >= 0; i-- {
		n := t.hitBuf[i]
		if n.Base().Contains(x, y) && accept(n) {
			return n
		}
	}
	return nil
}

// BringToFront gives n a ZOrder above all its siblings (or all roots) and
// re-sorts its parent's children.
func (t *Table) BringToFront(n Node) {
	o := baseOf(n)
	if o == nil {
		return
	}
	var siblings []Node
	if o.parent != nil {
		siblings = o.parent.children
	}
	top := o.ZOrder
	for _, s := range siblings {
		if z := s.Base().ZOrder; s.Base() != o && z >= top {
			top = z + 1
		}
	}
	o.ZOrder = top
	// Roots keep insertion order; Draw sorts them on its own.
	if p := o.Parent(); p != nil {
		p.SortChildrenByZOrder()
	}
}

// --- Pointer input ---

// Pointer feeds one frame of pointer state. Pressing over a draggable node
// picks it up and brings it to the front, moving while pressed drags it, and
// releasing drops it. Events are forwarded to the sink.
func (t *Table) Pointer(x, y float64, pressed bool) {
	if t.drag.node != nil && !t.owns(t.drag.node.Base()) {
		logger.Debug("dragged object left the table", zap.String("object", t.drag.node.Base().ID))
		t.drag = dragState{orphaned: true}
	}
	if t.drag.orphaned {
		if !pressed {
			t.drag = dragState{}
		}
		return
	}
	switch {
	case pressed && t.drag.node == nil:
		hit := t.hitTest(x, y, func(n Node) bool { return n.Base().Draggable })
		if hit == nil {
			return
		}
		t.drag = dragState{node: hit, startX: x, startY: y, lastX: x, lastY: y}
		t.BringToFront(hit)
		t.emit(ObjectEvent{Type: EventPickUp, ObjectID: hit.Base().ID, X: x, Y: y, StartX: x, StartY: y})
	case pressed:
		if x == t.drag.lastX && y == t.drag.lastY {
			return
		}
		o := t.drag.node.Base()
		// Convert both points into the parent's space so nested nodes follow
		// the pointer exactly.
		px, py, lx, ly := t.drag.lastX, t.drag.lastY, x, y
		if p := o.Parent(); p != nil {
			px, py = p.WorldToLocal(px, py)
			lx, ly = p.WorldToLocal(lx, ly)
		}
		o.Move(lx-px, ly-py)
		dx, dy := x-t.drag.lastX, y-t.drag.lastY
		t.drag.lastX, t.drag.lastY = x, y
		t.emit(ObjectEvent{
			Type: EventDrag, ObjectID: o.ID, X: x, Y: y,
			StartX: t.drag.startX, StartY: t.drag.startY, DeltaX: dx, DeltaY: dy,
		})
	case t.drag.node != nil:
		o := t.drag.node.Base()
		t.emit(ObjectEvent{
			Type: EventDrop, ObjectID: o.ID, X: x, Y: y,
			StartX: t.drag.startX, StartY: t.drag.startY,
			DeltaX: x - t.drag.startX, DeltaY: y - t.drag.startY,
		})
		t.drag = dragState{}
	}
}

// Dragging returns the node currently held by the pointer, or nil. A held
// node that has since been removed from the table is not reported.
func (t *Table) Dragging() Node {
	if t.drag.node == nil || !t.owns(t.drag.node.Base()) {
		return nil
	}
	return t.drag.node
}

// FlipAt flips the topmost card under the point. Reports whether a card was
// flipped.
func (t *Table) FlipAt(x, y float64) bool {
	hit := t.hitTest(x, y, func(n Node) bool {
		_, ok := n.(*Card)
		return ok
	})
	if hit == nil {
		return false
	}
	card := hit.(*Card)
	card.Flip()
	t.emit(ObjectEvent{Type: EventFlip, ObjectID: card.ID, X: x, Y: y, FaceUp: card.FaceUp()})
	return true
}

// --- Persistence ---

// Save writes every root, in insertion order, as an indented JSON array.
func (t *Table) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	roots := t.root.children
	if roots == nil {
		roots = []Node{}
	}
	if err := enc.Encode(roots); err != nil {
		return fmt.Errorf("dice: save table: %w", err)
	}
	return nil
}

// Load replaces the table's roots with the trees read from r.
// On error the table is left unchanged.
func (t *Table) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("dice: load table: %w", err)
	}
	nodes, err := t.registry.LoadAll(data)
	if err != nil {
		return err
	}
	t.Clear()
	for _, n := range nodes {
		t.AddRoot(n)
	}
	logger.Info("loaded table", zap.Int("roots", len(t.root.children)))
	return nil
}
