package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// Access describes one component requested by a query.
type Access struct {
	Type     reflect.Type
	Mutable  bool
	Optional bool
}

// Read requests shared access to T.
func Read[T any]() Access {
	return Access{Type: reflect.TypeFor[T]()}
}

// Write requests exclusive access to T.
func Write[T any]() Access {
	return Access{Type: reflect.TypeFor[T](), Mutable: true}
}

// Optional marks an access as not required for an archetype to match.
func Optional(a Access) Access {
	a.Optional = true
	return a
}

// queryPlan is the resolved form of a list of accesses. indices[i] is -1 for
// optional types that are not registered.
type queryPlan struct {
	accesses []Access
	indices  []int
	// empty is set when a required type was never registered; nothing can match.
	empty bool
}

// newQueryPlan resolves accesses against the registry. Every type may appear
// once: distinct types map to distinct indices, which keeps the columns vended
// for one archetype from aliasing.
func newQueryPlan(registry *ComponentRegistry, accesses []Access) *queryPlan {
	assertDistinct(accesses)

	plan := &queryPlan{
		accesses: accesses,
		indices:  make([]int, len(accesses)),
	}
	for i, access := range accesses {
		index, ok := registry.GetIndex(access.Type)
		if !ok {
			if !access.Optional {
				plan.empty = true
			}
			index = -1
		}
		plan.indices[i] = index
	}
	return plan
}

func assertDistinct(accesses []Access) {
	for i := range accesses {
		for j := i + 1; j < len(accesses); j++ {
			if accesses[i].Type == accesses[j].Type {
				panic("ecs: component type " + accesses[i].Type.String() + " requested twice in one query")
			}
		}
	}
}

// borrow fills dst with the columns requested by plan. It returns false when a
// required column is absent, so the archetype is skipped as a whole.
func (a *Archetype) borrow(plan *queryPlan, dst []iColumn) bool {
	for i, index := range plan.indices {
		col := a.column(index)
		if col == nil && !plan.accesses[i].Optional {
			return false
		}
		dst[i] = col
	}
	return true
}

func (a *Archetype) matches(plan *queryPlan) bool {
	for i, index := range plan.indices {
		if !plan.accesses[i].Optional && !a.HasColumn(index) {
			return false
		}
	}
	return true
}

// Row is one matching entity produced by World.Query. Slot i corresponds to
// the i-th requested access. A Row is only valid until the iteration advances.
type Row struct {
	Entity EntityId

	row     int
	plan    *queryPlan
	columns []iColumn
}

// Has reports whether slot i is present. It is always true for required slots.
func (r Row) Has(i int) bool {
	return r.columns[i] != nil
}

func (r Row) pointer(i int, t reflect.Type) unsafe.Pointer {
	col := r.columns[i]
	if col == nil {
		return nil
	}
	if col.Type() != t {
		panic("ecs: query slot " + r.plan.accesses[i].Type.String() + " accessed as " + t.String())
	}
	return col.Pointer(r.row)
}

// Ref returns a pointer to the component in slot i for in-place mutation.
// The slot must have been requested with Write. Missing optional slots yield nil.
func Ref[T any](r Row, i int) *T {
	if !r.plan.accesses[i].Mutable {
		panic("ecs: query slot " + r.plan.accesses[i].Type.String() + " is read-only")
	}
	return (*T)(r.pointer(i, reflect.TypeFor[T]()))
}

// Val returns a copy of the component in slot i. Missing optional slots yield
// the zero value.
func Val[T any](r Row, i int) T {
	ptr := (*T)(r.pointer(i, reflect.TypeFor[T]()))
	if ptr == nil {
		var zero T
		return zero
	}
	return *ptr
}

// Query iterates every entity holding all required accesses. Archetypes are
// visited in creation order and rows in storage order. Types that were never
// registered produce an empty sequence rather than an error.
//
// The world must not be structurally changed (Spawn, Despawn) while the
// sequence is being ranged over; use Commands for that.
func (w *World) Query(accesses ...Access) iter.Seq2[EntityId, Row] {
	assertDistinct(accesses)

	return func(yield func(EntityId, Row) bool) {
		plan := newQueryPlan(w.registry, accesses)
		if plan.empty {
			return
		}

		columns := make([]iColumn, len(accesses))
		for _, archetype := range w.archetypes {
			if !archetype.borrow(plan, columns) {
				continue
			}

			row := Row{plan: plan, columns: columns}
			for i, entity := range archetype.entities {
				row.Entity = entity
				row.row = i
				if !yield(entity, row) {
					return
				}
			}
		}
	}
}
