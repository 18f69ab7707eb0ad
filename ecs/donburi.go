// Package ecs provides ECS adapters for dice tables.
package ecs

import (
	"github.com/phanxgames/dice"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ObjectEventType is the Donburi event type for dice table events.
// Subscribe to this in your ECS systems to receive pickup, drag, drop and
// flip events.
var ObjectEventType = events.NewEventType[dice.ObjectEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Table events are published to ObjectEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) dice.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(event dice.ObjectEvent) {
	ObjectEventType.Publish(s.world, event)
}
