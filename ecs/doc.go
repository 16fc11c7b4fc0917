// Package ecs provides ECS adapters for tinsel's scene event system.
//
// The primary adapter is [NewDonburiStore], which bridges tinsel scene
// events (mode changes, gesture changes, capture phases, photo additions)
// into a [Donburi] world as typed events. Subscribe to [SceneEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
