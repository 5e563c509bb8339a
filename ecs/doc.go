// Package ecs provides ECS adapters for austere's lifecycle events.
//
// The primary adapter is [NewDonburiSink], which bridges austere lifecycle
// events (node and scene initialization, destruction and activation) into a
// [Donburi] world as typed events. Subscribe to [LifecycleEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.SetLifecycleSink(sink)
//
// Events are queued by Donburi; call LifecycleEventType.ProcessEvents(world)
// or events.ProcessAllEvents(world) once per frame, e.g. from
// Engine.OnUpdate.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
