package ecs_test

import "github.com/plus3/archestore/ecs"

// Common test component types
type Position struct {
	X, Y, Z float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type MeshHandle struct {
	VertexOffset uint64
	IndexOffset  uint64
	VertexCount  uint32
	IndexCount   uint32
}

type Camera struct{}

type FpsCamera struct {
	Yaw, Pitch float32
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

// Never registered or spawned anywhere.
type Unregistered struct {
	Value int
}

type Inventory struct {
	Items []string
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[MeshHandle](registry)
	ecs.RegisterComponent[Camera](registry)
	ecs.RegisterComponent[FpsCamera](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[Inventory](registry)
	return registry
}

func newTestWorld() *ecs.World {
	return ecs.NewWorld(ecs.WithRegistry(newTestRegistry()))
}
