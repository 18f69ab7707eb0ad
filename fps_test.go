package dice

import "testing"

func TestFPSWidget(t *testing.T) {
	w := NewFPSWidget()
	if w.ID != FPSWidgetID || w.Draggable {
		t.Errorf("widget = %q draggable=%v", w.ID, w.Draggable)
	}
	if b := w.GlobalBounds(); b.X != 0 || b.Y != 0 || b.Width != 100 || b.Height != 32 {
		t.Errorf("GlobalBounds = %v, want top-left 100x32", b)
	}

	tbl := NewTable()
	card := NewCard("card", "Card")
	card.ZOrder = 50
	tbl.AddRoot(w)
	tbl.AddRoot(card)
	var last string
	tbl.Draw(RendererFunc(func(s Sprite) { last = s.Object.ID }))
	if last != FPSWidgetID {
		t.Errorf("last drawn = %q, want the widget on top", last)
	}
}
