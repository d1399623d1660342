package ecs

import (
	"github.com/phanxgames/cadence"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Inactive tags an entity whose tasks should stop, without removing it.
var Inactive = donburi.NewTag()

// TaskEventType is the Donburi event type for cadence task lifecycle events.
var TaskEventType = events.NewEventType[cadence.TaskEvent]()

type entityOwner struct {
	world  donburi.World
	entity donburi.Entity
}

// EntityOwner returns an Owner that is active while entity is valid in world
// and does not carry the Inactive tag.
func EntityOwner(world donburi.World, entity donburi.Entity) cadence.Owner {
	return &entityOwner{world: world, entity: entity}
}

func (o *entityOwner) ActiveInHierarchy() bool {
	if o.world == nil || !o.world.Valid(o.entity) {
		return false
	}
	return !o.world.Entry(o.entity).HasComponent(Inactive)
}

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Task events
// are published to TaskEventType and can be consumed with events.Subscribe
// and ProcessEvents.
func NewDonburiSink(world donburi.World) cadence.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event cadence.TaskEvent) {
	TaskEventType.Publish(s.world, event)
}
