package ecs

import "github.com/rotisserie/eris"

var (
	// ErrEntityNotFound is returned for handles that are stale or were never spawned.
	ErrEntityNotFound = eris.New("entity not found")
	// ErrComponentNotRegistered is returned when a lookup names a type the registry has never seen.
	ErrComponentNotRegistered = eris.New("component type not registered")
	// ErrComponentNotFound is returned when a live entity does not carry the requested component.
	ErrComponentNotFound = eris.New("entity does not have component")
)
