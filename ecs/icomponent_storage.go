package ecs

import (
	"reflect"
	"unsafe"
)

// iColumn is a type-erased, densely packed column of one component type.
// Row r of every column in an archetype belongs to the same entity.
type iColumn interface {
	// Type returns the element type stored in the column.
	Type() reflect.Type
	Len() int
	// Append adds one value, given as T or *T, and returns its row.
	Append(item any) int
	// Get returns a pointer to the element at row as an any holding *T.
	Get(row int) any
	Pointer(row int) unsafe.Pointer
	// SwapRemove overwrites row with the last element and shrinks by one.
	SwapRemove(row int)
	Reserve(n int)
}
