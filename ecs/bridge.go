package ecs

import (
	"github.com/pinegrove/garland"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EngineEventType is the Donburi event type for garland engine events.
// Subscribe to this in your ECS systems to react to mode changes, focus and
// hover updates, and photo uploads.
var EngineEventType = events.NewEventType[garland.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Engine
// events are published to EngineEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) garland.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event garland.Event) {
	EngineEventType.Publish(s.world, event)
}
