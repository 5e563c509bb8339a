// Package ecs provides ECS adapters for austere.
package ecs

import (
	"github.com/phanxgames/austere"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for austere lifecycle events.
// Subscribe to this in your ECS systems to react to nodes and scenes being
// initialized, destroyed, activated or deactivated.
var LifecycleEventType = events.NewEventType[austere.LifecycleEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a LifecycleSink backed by a Donburi world.
// Lifecycle events are published to LifecycleEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) austere.LifecycleSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitLifecycle(event austere.LifecycleEvent) {
	LifecycleEventType.Publish(s.world, event)
}
