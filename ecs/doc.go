// Package ecs provides ECS adapters for garland's engine events.
//
// The primary adapter is [NewDonburiSink], which bridges engine events (mode
// changes, focus, hover, photo uploads) into a [Donburi] world as typed
// events. Subscribe to [EngineEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	app.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
