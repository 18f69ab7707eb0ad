// Package ecs provides ECS adapters for dice's table event system.
//
// The primary adapter is [NewDonburiSink], which bridges table events
// (pickup, drag, drop, flip) into a [Donburi] world as typed events.
// Subscribe to [ObjectEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	table.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
