package main

import (
	"math/rand"
)

type Position struct {
	X, Y, Z float32
}

type Velocity struct {
	DX, DY, DZ float32
}

type Health struct {
	Current, Max int32
}

type MeshHandle struct {
	VertexOffset uint64
	IndexOffset  uint64
	VertexCount  uint32
	IndexCount   uint32
}

type Camera struct {
	Fov float32
}

// Lifetime kills its entity once Remaining reaches zero.
type Lifetime struct {
	Remaining float32
}

// randomComponents always includes Position and Health so every entity is
// eventually reaped, plus a random subset of the rest.
func randomComponents(rng *rand.Rand) []any {
	hp := int32(50 + rng.Intn(150))
	components := []any{
		Position{X: rng.Float32() * 100, Y: rng.Float32() * 100},
		Health{Current: hp, Max: hp},
	}

	if rng.Intn(2) == 0 {
		components = append(components, Velocity{DX: rng.Float32() - 0.5, DY: rng.Float32() - 0.5})
	}
	if rng.Intn(3) == 0 {
		count := uint32(3 * (1 + rng.Intn(64)))
		components = append(components, MeshHandle{
			VertexOffset: uint64(rng.Intn(1 << 20)),
			IndexOffset:  uint64(rng.Intn(1 << 20)),
			VertexCount:  count,
			IndexCount:   count,
		})
	}
	if rng.Intn(50) == 0 {
		components = append(components, Camera{Fov: 60})
	}
	if rng.Intn(4) == 0 {
		components = append(components, Lifetime{Remaining: rng.Float32() * 2})
	}
	return components
}
