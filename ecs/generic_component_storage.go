package ecs

import (
	"reflect"
	"unsafe"
)

// genericColumn stores components of type T in a single contiguous slice.
type genericColumn[T any] struct {
	data []T
}

func newGenericColumn[T any]() iColumn {
	return &genericColumn[T]{}
}

func (c *genericColumn[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

func (c *genericColumn[T]) Len() int {
	return len(c.data)
}

// Append adds a component to the end of the column and returns its row.
func (c *genericColumn[T]) Append(item any) int {
	var concreteItem T
	if ptr, ok := item.(*T); ok {
		concreteItem = *ptr
	} else if val, ok := item.(T); ok {
		concreteItem = val
	} else {
		panic("ecs: cannot append " + reflect.TypeOf(item).String() + " to column of " + c.Type().String())
	}

	c.data = append(c.data, concreteItem)
	return len(c.data) - 1
}

func (c *genericColumn[T]) Get(row int) any {
	if row < 0 || row >= len(c.data) {
		return nil
	}
	return &c.data[row]
}

func (c *genericColumn[T]) Pointer(row int) unsafe.Pointer {
	return unsafe.Pointer(&c.data[row])
}

func (c *genericColumn[T]) SwapRemove(row int) {
	last := len(c.data) - 1
	c.data[row] = c.data[last]
	var zero T
	c.data[last] = zero
	c.data = c.data[:last]
}

func (c *genericColumn[T]) Reserve(n int) {
	if cap(c.data)-len(c.data) >= n {
		return
	}
	grown := make([]T, len(c.data), len(c.data)+n)
	copy(grown, c.data)
	c.data = grown
}

// reflectColumn backs component types that were first seen through
// World.Spawn rather than RegisterComponent, so no type parameter is available.
type reflectColumn struct {
	typ  reflect.Type
	data reflect.Value
}

func newReflectColumn(typ reflect.Type) iColumn {
	return &reflectColumn{
		typ:  typ,
		data: reflect.MakeSlice(reflect.SliceOf(typ), 0, 0),
	}
}

func (c *reflectColumn) Type() reflect.Type {
	return c.typ
}

func (c *reflectColumn) Len() int {
	return c.data.Len()
}

func (c *reflectColumn) Append(item any) int {
	value := reflect.ValueOf(item)
	if value.Kind() == reflect.Ptr && value.Type().Elem() == c.typ {
		value = value.Elem()
	}
	if value.Type() != c.typ {
		panic("ecs: cannot append " + value.Type().String() + " to column of " + c.typ.String())
	}

	c.data = reflect.Append(c.data, value)
	return c.data.Len() - 1
}

func (c *reflectColumn) Get(row int) any {
	if row < 0 || row >= c.data.Len() {
		return nil
	}
	return c.data.Index(row).Addr().Interface()
}

func (c *reflectColumn) Pointer(row int) unsafe.Pointer {
	return c.data.Index(row).Addr().UnsafePointer()
}

func (c *reflectColumn) SwapRemove(row int) {
	last := c.data.Len() - 1
	if row != last {
		c.data.Index(row).Set(c.data.Index(last))
	}
	c.data.Index(last).SetZero()
	c.data = c.data.Slice(0, last)
}

func (c *reflectColumn) Reserve(n int) {
	if c.data.Cap()-c.data.Len() >= n {
		return
	}
	grown := reflect.MakeSlice(c.data.Type(), c.data.Len(), c.data.Len()+n)
	reflect.Copy(grown, c.data)
	c.data = grown
}

// columnSlice downcasts a column to its typed backing slice.
// The returned slice aliases the column, so writes through it are visible.
func columnSlice[T any](c iColumn) ([]T, bool) {
	switch col := c.(type) {
	case *genericColumn[T]:
		return col.data, true
	case *reflectColumn:
		data, ok := col.data.Interface().([]T)
		return data, ok
	default:
		return nil, false
	}
}
