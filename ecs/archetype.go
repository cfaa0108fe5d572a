package ecs

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// ArchetypeKey is the sorted set of component indices that defines a table layout.
type ArchetypeKey []int

// NewArchetypeKey returns a sorted copy of indices. Duplicates are a caller bug.
func NewArchetypeKey(indices []int) ArchetypeKey {
	key := slices.Clone(indices)
	slices.Sort(key)
	for i := 1; i < len(key); i++ {
		if key[i] == key[i-1] {
			panic("ecs: duplicate component index " + strconv.Itoa(key[i]) + " in archetype key")
		}
	}
	return ArchetypeKey(key)
}

func (k ArchetypeKey) Equal(other ArchetypeKey) bool {
	return slices.Equal(k, other)
}

func (k ArchetypeKey) Contains(index int) bool {
	_, found := slices.BinarySearch(k, index)
	return found
}

func (k ArchetypeKey) String() string {
	parts := make([]string, len(k))
	for i, index := range k {
		parts[i] = strconv.Itoa(index)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Archetype is a table holding every entity that shares one exact set of
// component types. Columns are indexed by registry index; a slot is nil when
// the archetype does not carry that component. Row r of each column together
// with entities[r] describes one entity.
type Archetype struct {
	id       int
	key      ArchetypeKey
	columns  []iColumn
	entities []EntityId
}

// NewArchetype creates an empty table for key. The column slot array is sized
// to the registry's current length.
func NewArchetype(id int, key ArchetypeKey, registry *ComponentRegistry) *Archetype {
	total := registry.Len()
	a := &Archetype{
		id:      id,
		key:     key,
		columns: make([]iColumn, total),
	}

	for _, index := range key {
		if index < 0 || index >= total {
			panic("ecs: component index " + strconv.Itoa(index) + " out of bounds")
		}
		a.columns[index] = registry.createEmptyColumn(index)
	}

	return a
}

// ID returns the archetype's position in its world's archetype list.
func (a *Archetype) ID() int {
	return a.id
}

func (a *Archetype) Key() ArchetypeKey {
	return a.key
}

// Len returns the number of rows.
func (a *Archetype) Len() int {
	return len(a.entities)
}

// Entities returns the row to entity mapping. The slice must not be modified.
func (a *Archetype) Entities() []EntityId {
	return a.entities
}

// HasColumn reports whether the archetype stores the component at index.
func (a *Archetype) HasColumn(index int) bool {
	return a.column(index) != nil
}

// Types returns the component types of this archetype in key order.
func (a *Archetype) Types() []reflect.Type {
	types := make([]reflect.Type, len(a.key))
	for i, index := range a.key {
		types[i] = a.columns[index].Type()
	}
	return types
}

// column returns nil for indices registered after the archetype was built.
func (a *Archetype) column(index int) iColumn {
	if index < 0 || index >= len(a.columns) {
		return nil
	}
	return a.columns[index]
}

// GetColumn returns the typed column at index. It returns false when the slot
// is empty or holds a different element type. The slice aliases the table, so
// element writes through it are stored in place.
func GetColumn[T any](a *Archetype, index int) ([]T, bool) {
	col := a.column(index)
	if col == nil {
		return nil, false
	}
	return columnSlice[T](col)
}

// insert appends one row. indices must match the archetype key exactly and
// components[i] must be of the type registered at indices[i].
func (a *Archetype) insert(entity EntityId, indices []int, components []any) int {
	row := len(a.entities)
	a.entities = append(a.entities, entity)

	for i, index := range indices {
		a.columns[index].Append(components[i])
	}

	return row
}

// swapRemove deletes row by moving the last row into its place. It reports
// the entity that now occupies row, if any moved.
func (a *Archetype) swapRemove(row int) (EntityId, bool) {
	last := len(a.entities) - 1
	for _, index := range a.key {
		a.columns[index].SwapRemove(row)
	}

	moved := a.entities[last]
	a.entities[row] = moved
	a.entities = a.entities[:last]

	if row == last {
		return EntityId{}, false
	}
	return moved, true
}

func (a *Archetype) reserve(n int) {
	for _, index := range a.key {
		a.columns[index].Reserve(n)
	}
}
