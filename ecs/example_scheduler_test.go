package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/archestore/ecs"
)

type Transform struct {
	X, Y float32
}

type Speed struct {
	DX, DY float32
}

type Hitpoints struct {
	Current, Max int
}

type PhysicsSystem struct {
	Entities ecs.Query[struct {
		*Transform
		Speed *Speed `ecs:"readonly"`
	}]
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Entities.Values() {
		entity.Transform.X += entity.Speed.DX * float32(frame.DeltaTime)
		entity.Transform.Y += entity.Speed.DY * float32(frame.DeltaTime)
	}
}

type HealingSystem struct {
	Entities  ecs.Query[struct{ *Hitpoints }]
	RegenRate float32
}

func (s *HealingSystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Entities.Values() {
		if entity.Hitpoints.Current < entity.Hitpoints.Max {
			entity.Hitpoints.Current += int(s.RegenRate * float32(frame.DeltaTime))
			if entity.Hitpoints.Current > entity.Hitpoints.Max {
				entity.Hitpoints.Current = entity.Hitpoints.Max
			}
		}
	}
}

// ExampleScheduler demonstrates building a game loop with multiple systems.
// The Scheduler initializes Query and View fields on registration, runs
// systems in registration order and flushes the frame's commands at the end
// of every tick.
func ExampleScheduler() {
	world := ecs.NewWorld()

	world.Spawn(
		Transform{X: 0, Y: 0},
		Speed{DX: 10, DY: 5},
		Hitpoints{Current: 80, Max: 100},
	)
	world.Spawn(
		Transform{X: 100, Y: 100},
		Speed{DX: -5, DY: -5},
		Hitpoints{Current: 50, Max: 100},
	)

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&PhysicsSystem{})
	scheduler.Register(&HealingSystem{RegenRate: 10})

	scheduler.Once(1.0)

	view := ecs.NewView[struct {
		*Transform
		*Hitpoints
	}](world)

	fmt.Println("After one frame:")
	for item := range view.Values() {
		fmt.Printf("Position: (%.0f, %.0f), Health: %d/%d\n",
			item.Transform.X, item.Transform.Y,
			item.Hitpoints.Current, item.Hitpoints.Max)
	}

	// Output:
	// After one frame:
	// Position: (10, 5), Health: 90/100
	// Position: (95, 95), Health: 60/100
}

// ExampleScheduler_Run demonstrates running a continuous loop.
// Run blocks and ticks at a fixed interval until the context is cancelled.
func ExampleScheduler_Run() {
	world := ecs.NewWorld()
	world.Spawn(Transform{X: 0, Y: 0}, Speed{DX: 1, DY: 1})

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&PhysicsSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}

// ExampleScheduler_With touches the world from outside the loop. With takes
// the same lock as a tick, so it is safe while Run is active on another goroutine.
func ExampleScheduler_With() {
	world := ecs.NewWorld()
	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&HealingSystem{RegenRate: 1e6})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		scheduler.Run(ctx, time.Millisecond)
	}()

	var patient ecs.EntityId
	scheduler.With(func(w *ecs.World) {
		patient = w.Spawn(Hitpoints{Current: 1, Max: 100})
	})

	for {
		healed := false
		scheduler.With(func(w *ecs.World) {
			hp, _ := ecs.ReadComponent[Hitpoints](w, patient)
			healed = hp.Current == hp.Max
		})
		if healed {
			break
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done

	fmt.Println("patient healed")
	// Output:
	// patient healed
}
