package ecs

import "iter"

// Query wraps a View with a cache of matching archetypes for repeated
// iteration, typically as a field of a System. The cache is rebuilt whenever
// the world gains an archetype.
type Query[T any] struct {
	view               *View[T]
	plan               *queryPlan
	cachedArchetypes   []*Archetype
	lastArchetypeCount int
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](w *World) *Query[T] {
	q := &Query[T]{}
	q.Init(w)
	return q
}

// Init initializes or re-initializes the Query with a world.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(w *World) {
	q.view = NewView[T](w)
	q.plan = nil
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
}

func (q *Query[T]) refresh() {
	if q.view == nil {
		panic("ecs: Query used before Init")
	}

	archetypes := q.view.world.archetypes
	if len(archetypes) == q.lastArchetypeCount {
		return
	}
	q.lastArchetypeCount = len(archetypes)

	q.plan = q.view.plan()
	q.cachedArchetypes = q.cachedArchetypes[:0]
	if q.plan.empty {
		return
	}
	for _, archetype := range archetypes {
		if archetype.matches(q.plan) {
			q.cachedArchetypes = append(q.cachedArchetypes, archetype)
		}
	}
}

// Iter returns an iterator over entity IDs and component data.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		q.refresh()
		columns := make([]iColumn, len(q.view.accesses))
		for _, archetype := range q.cachedArchetypes {
			for id, item := range q.view.iterArchetype(archetype, q.plan, columns) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over component data only.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range q.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Count returns the number of matching entities without visiting them.
func (q *Query[T]) Count() int {
	q.refresh()
	total := 0
	for _, archetype := range q.cachedArchetypes {
		total += archetype.Len()
	}
	return total
}

// Archetypes returns the archetypes currently matched by the query.
func (q *Query[T]) Archetypes() []*Archetype {
	q.refresh()
	return q.cachedArchetypes
}
