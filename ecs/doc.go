// Package ecs provides ECS adapters for cadence.
//
// [EntityOwner] lets a [Donburi] entity own scheduled tasks: the tasks run
// while the entity is valid and not tagged [Inactive], and stop once it is
// removed or tagged.
//
// [NewDonburiSink] bridges scheduler task lifecycle events into the world as
// typed events. Subscribe to [TaskEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	owner := ecs.EntityOwner(world, entity)
//	sch.InvokeDelayedRepeating(owner, fire, 0, 0.25)
//	sch.SetEventSink(ecs.NewDonburiSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
