package ecs

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/dice"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_Emit(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []dice.ObjectEvent
	ObjectEventType.Subscribe(world, func(w donburi.World, e dice.ObjectEvent) {
		received = append(received, e)
	})

	sink.Emit(dice.ObjectEvent{
		Type:     dice.EventPickUp,
		ObjectID: "card-1",
		X:        100,
		Y:        200,
	})
	sink.Emit(dice.ObjectEvent{
		Type:     dice.EventFlip,
		ObjectID: "card-1",
		FaceUp:   true,
	})

	// Events are queued until processed.
	ObjectEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != dice.EventPickUp || e0.ObjectID != "card-1" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.X != 100 || e0.Y != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.X, e0.Y)
	}

	e1 := received[1]
	if e1.Type != dice.EventFlip || !e1.FaceUp {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink dice.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_TableDrag(t *testing.T) {
	world := donburi.NewWorld()
	table := dice.NewTable()
	table.SetEventSink(NewDonburiSink(world))

	chip := dice.NewChip("chip", "Chip")
	chip.SetTexture(ebiten.NewImage(20, 20))
	chip.SetPosition(50, 50)
	table.AddRoot(chip)

	var types []dice.EventType
	ObjectEventType.Subscribe(world, func(w donburi.World, e dice.ObjectEvent) {
		types = append(types, e.Type)
	})

	table.Pointer(50, 50, true)
	table.Pointer(60, 55, true)
	table.Pointer(60, 55, false)
	events.ProcessAllEvents(world)

	want := []dice.EventType{dice.EventPickUp, dice.EventDrag, dice.EventDrop}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	ObjectEventType.Subscribe(world, func(w donburi.World, e dice.ObjectEvent) {
		count1++
	})
	ObjectEventType.Subscribe(world, func(w donburi.World, e dice.ObjectEvent) {
		count2++
	})

	sink.Emit(dice.ObjectEvent{Type: dice.EventDrop})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
