package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type entityLocation struct {
	archetype int
	row       int
}

// World owns every archetype, the component registry, the entity allocator
// and the sparse entity to location index.
//
// A World holds no locks. Callers serialize access to it; Scheduler does so
// with one mutex per tick.
type World struct {
	archetypes []*Archetype
	registry   *ComponentRegistry
	allocator  *EntityAllocator
	locations  *intmap.Map[uint32, entityLocation]
	logger     zerolog.Logger

	archetypeCapacity int
}

// NewWorld creates an empty world.
func NewWorld(opts ...Option) *World {
	w := &World{
		allocator: NewEntityAllocator(),
		locations: intmap.New[uint32, entityLocation](256),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.registry == nil {
		w.registry = NewComponentRegistry()
	}
	return w
}

// Registry returns the world's component registry.
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// Archetypes returns all archetypes in creation order.
func (w *World) Archetypes() []*Archetype {
	return w.archetypes
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.locations.Len()
}

// Spawn creates an entity holding the given components. Components may be
// passed as values or pointers; pointers are dereferenced and copied. Types
// not registered yet are registered on the fly.
//
// The entity is visible to GetComponent and to queries as soon as Spawn returns.
func (w *World) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	indices := make([]int, len(components))
	for i, comp := range components {
		if comp == nil {
			panic("ecs: cannot spawn nil component")
		}
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}
		indices[i] = w.registry.register(compType)
	}

	key := NewArchetypeKey(indices)
	entity := w.allocator.Allocate()
	archetype := w.findOrCreateArchetype(key)
	row := archetype.insert(entity, indices, components)

	w.locations.Put(entity.Index, entityLocation{archetype: archetype.id, row: row})
	return entity
}

// Despawn removes the entity and invalidates its handle. The last row of the
// entity's archetype is moved into the freed row.
func (w *World) Despawn(id EntityId) error {
	loc, ok := w.location(id)
	if !ok {
		return eris.Wrapf(ErrEntityNotFound, "despawn %s", id)
	}

	archetype := w.archetypes[loc.archetype]
	if moved, ok := archetype.swapRemove(loc.row); ok {
		w.locations.Put(moved.Index, loc)
	}

	w.locations.Del(id.Index)
	w.allocator.Deallocate(id)

	w.logger.Debug().
		Stringer("entity", id).
		Int("archetype_id", archetype.id).
		Msg("entity despawned")
	return nil
}

// IsAlive reports whether id refers to a spawned, not yet despawned entity.
func (w *World) IsAlive(id EntityId) bool {
	_, ok := w.location(id)
	return ok
}

// GetComponent returns a pointer to the component of type compType on the
// entity, boxed in an any.
func (w *World) GetComponent(id EntityId, compType reflect.Type) (any, error) {
	index, ok := w.registry.GetIndex(compType)
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotRegistered, "%s", compType)
	}

	loc, ok := w.location(id)
	if !ok {
		return nil, eris.Wrapf(ErrEntityNotFound, "get %s", id)
	}

	col := w.archetypes[loc.archetype].column(index)
	if col == nil {
		return nil, eris.Wrapf(ErrComponentNotFound, "entity %s has no %s", id, compType)
	}
	return col.Get(loc.row), nil
}

// HasComponent checks if an entity has a specific component type.
func (w *World) HasComponent(id EntityId, compType reflect.Type) bool {
	_, err := w.GetComponent(id, compType)
	return err == nil
}

func (w *World) location(id EntityId) (entityLocation, bool) {
	if !w.allocator.IsAlive(id) {
		return entityLocation{}, false
	}
	return w.locations.Get(id.Index)
}

// findOrCreateArchetype scans linearly; the number of distinct component sets
// stays small even when entity counts are large.
func (w *World) findOrCreateArchetype(key ArchetypeKey) *Archetype {
	for _, archetype := range w.archetypes {
		if archetype.key.Equal(key) {
			return archetype
		}
	}

	archetype := NewArchetype(len(w.archetypes), key, w.registry)
	if w.archetypeCapacity > 0 {
		archetype.reserve(w.archetypeCapacity)
	}
	w.archetypes = append(w.archetypes, archetype)

	if e := w.logger.Debug(); e.Enabled() {
		names := make([]string, 0, len(key))
		for _, t := range archetype.Types() {
			names = append(names, t.String())
		}
		e.Int("archetype_id", archetype.id).Strs("components", names).Msg("archetype created")
	}
	return archetype
}

// ComponentReader is implemented by World.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) (any, error)
}

// ReadComponent is the typed form of World.GetComponent.
func ReadComponent[T any](reader ComponentReader, id EntityId) (*T, error) {
	comp, err := reader.GetComponent(id, reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return comp.(*T), nil
}
