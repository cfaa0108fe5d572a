package ecs

import "github.com/rs/zerolog"

type Option func(w *World)

// WithRegistry shares a component registry, typically one filled with
// RegisterComponent calls ahead of time.
func WithRegistry(registry *ComponentRegistry) Option {
	return func(w *World) {
		w.registry = registry
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// WithArchetypeCapacity preallocates rows in every newly created archetype.
func WithArchetypeCapacity(rows int) Option {
	return func(w *World) {
		w.archetypeCapacity = rows
	}
}
