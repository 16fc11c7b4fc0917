// Package ecs provides ECS adapters for tinsel.
package ecs

import (
	"github.com/phanxgames/tinsel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for tinsel scene events.
// Subscribe to this in your ECS systems to receive mode, gesture, capture
// phase, and photo events.
var SceneEventType = events.NewEventType[tinsel.SceneEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world. Scene
// events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) tinsel.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event tinsel.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}
