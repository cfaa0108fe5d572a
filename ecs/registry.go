package ecs

import "reflect"

// ComponentRegistry maps component types to stable dense indices and knows how
// to build an empty column for each of them. Indices are never reused or
// removed, so a type keeps its index for the lifetime of the registry.
//
// Lookups scan linearly. Component type counts are small and fixed per build,
// unlike entity counts.
type ComponentRegistry struct {
	types     []reflect.Type
	factories []func() iColumn
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{}
}

// RegisterComponent returns the index of T, registering it on first sight.
// Registering through the type parameter gives T an unboxed column
// implementation, so it is preferred over relying on World.Spawn to discover T.
func RegisterComponent[T any](r *ComponentRegistry) int {
	t := reflect.TypeFor[T]()
	validateComponentType(t)

	if index, ok := r.GetIndex(t); ok {
		// Upgrade a type first discovered at runtime; existing columns keep working.
		r.factories[index] = newGenericColumn[T]
		return index
	}

	r.types = append(r.types, t)
	r.factories = append(r.factories, newGenericColumn[T])
	return len(r.types) - 1
}

// register is the runtime counterpart of RegisterComponent.
func (r *ComponentRegistry) register(t reflect.Type) int {
	if index, ok := r.GetIndex(t); ok {
		return index
	}
	validateComponentType(t)

	r.types = append(r.types, t)
	r.factories = append(r.factories, func() iColumn {
		return newReflectColumn(t)
	})
	return len(r.types) - 1
}

// GetIndex resolves a component type to its index. It returns false if the
// type has never been registered.
func (r *ComponentRegistry) GetIndex(t reflect.Type) (int, bool) {
	for i, typ := range r.types {
		if typ == t {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

// TypeOf returns the component type registered at index.
func (r *ComponentRegistry) TypeOf(index int) reflect.Type {
	return r.types[index]
}

// Types returns the registered component types in registration order.
func (r *ComponentRegistry) Types() []reflect.Type {
	return r.types
}

func (r *ComponentRegistry) createEmptyColumn(index int) iColumn {
	return r.factories[index]()
}

// validateComponentType rejects kinds that are not plain values.
func validateComponentType(t reflect.Type) {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		panic("ecs: components cannot be pointers, maps, channels, functions or interfaces: " + t.String())
	}
}
