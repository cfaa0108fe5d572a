package ecs

import (
	"iter"
	"reflect"
	"strings"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View is a typed query over entities with a specific combination of components.
// T must be a struct whose fields are pointers to component types, embedded or
// named. A field of type EntityId receives the entity being visited.
//
// Named fields accept the `ecs` struct tag with a comma separated list of:
//
//	optional  the component may be missing; the field is nil in that case
//	readonly  the component is only read; recorded as a Read access
//
// Embedded fields are always required but may be readonly.
type View[T any] struct {
	world       *World
	accesses    []Access
	fieldOffset []uintptr
	idOffset    uintptr
	hasId       bool
}

// NewView creates a new view for the given struct type.
func NewView[T any](w *World) *View[T] {
	v := &View[T]{}
	v.Init(w)
	return v
}

// Init binds the view to a world. The Scheduler calls it for *View fields.
func (v *View[T]) Init(w *World) {
	v.world = w
	v.accesses = nil
	v.fieldOffset = nil
	v.hasId = false
	v.parseLayout(reflect.TypeFor[T]())
}

func (v *View[T]) parseLayout(structType reflect.Type) {
	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			if v.hasId {
				panic("ecs: View struct has more than one EntityId field")
			}
			v.hasId = true
			v.idOffset = field.Offset
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: View struct fields must be pointer types or EntityId, got " + field.Type.String())
		}

		access := Access{Type: field.Type.Elem(), Mutable: true}
		if tag := field.Tag.Get("ecs"); tag != "" {
			for _, opt := range strings.Split(tag, ",") {
				switch strings.TrimSpace(opt) {
				case "optional":
					if field.Anonymous {
						panic("ecs: embedded View field " + field.Name + " cannot be optional")
					}
					access.Optional = true
				case "readonly":
					access.Mutable = false
				default:
					panic("invalid ecs tag value: \"" + opt + "\" (supported: \"optional\", \"readonly\")")
				}
			}
		}

		v.accesses = append(v.accesses, access)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	assertDistinct(v.accesses)
}

// Accesses returns the component accesses described by T.
func (v *View[T]) Accesses() []Access {
	return v.accesses
}

func (v *View[T]) plan() *queryPlan {
	return newQueryPlan(v.world.registry, v.accesses)
}

// populate writes the column pointers of row into the struct at resultPtr.
func (v *View[T]) populate(resultPtr unsafe.Pointer, columns []iColumn, entity EntityId, row int) {
	if v.hasId {
		*(*EntityId)(unsafe.Add(resultPtr, v.idOffset)) = entity
	}
	for i, col := range columns {
		fieldPtr := unsafe.Add(resultPtr, v.fieldOffset[i])
		if col == nil {
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = col.Pointer(row)
	}
}

// Fill populates ptr with the components of the given entity.
// Returns false if the entity is dead or missing any required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	loc, ok := v.world.location(id)
	if !ok {
		return false
	}

	plan := v.plan()
	if plan.empty {
		return false
	}

	columns := make([]iColumn, len(v.accesses))
	if !v.world.archetypes[loc.archetype].borrow(plan, columns) {
		return false
	}

	v.populate(unsafe.Pointer(ptr), columns, id, loc.row)
	return true
}

// Get returns a populated view struct for the given entity, or nil if the
// entity doesn't have all the required components.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) iterArchetype(archetype *Archetype, plan *queryPlan, columns []iColumn) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if !archetype.borrow(plan, columns) {
			return
		}

		var result T
		resultPtr := unsafe.Pointer(&result)
		for row, entity := range archetype.entities {
			v.populate(resultPtr, columns, entity, row)
			if !yield(entity, result) {
				return
			}
		}
	}
}

// Iter returns an iterator over all entities that have all the required
// components for this view, in archetype creation order then row order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		plan := v.plan()
		if plan.empty {
			return
		}

		columns := make([]iColumn, len(v.accesses))
		for _, archetype := range v.world.archetypes {
			for id, item := range v.iterArchetype(archetype, plan, columns) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over just the view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates a new entity with the components pointed to by data's fields.
// Nil optional fields are skipped.
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.accesses))
	for i, access := range v.accesses {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))
		if componentPtr == nil {
			if !access.Optional {
				panic("ecs: required component " + access.Type.String() + " is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(access.Type, componentPtr).Interface())
	}

	return v.world.Spawn(components...)
}
