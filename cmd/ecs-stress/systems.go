package main

import (
	"math/rand"

	"github.com/plus3/archestore/ecs"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		Velocity *Velocity `ecs:"readonly"`
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * dt
		item.Position.Y += item.Velocity.DY * dt
		item.Position.Z += item.Velocity.DZ * dt
	}
}

type DecaySystem struct {
	Entities ecs.Query[struct {
		*Health
		Lifetime *Lifetime `ecs:"optional"`
	}]
}

func (s *DecaySystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Values() {
		item.Health.Current--
		if item.Lifetime == nil {
			continue
		}
		item.Lifetime.Remaining -= float32(frame.DeltaTime)
		if item.Lifetime.Remaining <= 0 {
			item.Health.Current = 0
		}
	}
}

// RenderSystem walks drawable entities through the runtime query API, the way
// a renderer resolves access lists it only learns about at startup.
type RenderSystem struct {
	World *ecs.World

	Drawn   int64
	Indices uint64
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	accesses := []ecs.Access{
		ecs.Read[Position](),
		ecs.Read[MeshHandle](),
		ecs.Optional(ecs.Read[Camera]()),
	}
	for _, row := range s.World.Query(accesses...) {
		if row.Has(2) {
			continue
		}
		s.Drawn++
		s.Indices += uint64(ecs.Val[MeshHandle](row, 1).IndexCount)
	}
}

// ReaperSystem despawns dead entities and queues a fresh random entity for
// each, keeping the population stable.
type ReaperSystem struct {
	Entities ecs.Query[struct {
		Id     ecs.EntityId
		Health *Health `ecs:"readonly"`
	}]

	rng       *rand.Rand
	Despawned int64
	Respawned int64
}

func (s *ReaperSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Values() {
		if item.Health.Current > 0 {
			continue
		}
		frame.Commands.Despawn(item.Id)
		frame.Commands.Spawn(randomComponents(s.rng)...)
		s.Despawned++
		s.Respawned++
	}
}
