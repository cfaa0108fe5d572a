package ecs

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type regA struct{ V int }
type regB struct{ S string }
type regC float64

func TestRegisterComponentStableIndex(t *testing.T) {
	r := NewComponentRegistry()

	a := RegisterComponent[regA](r)
	b := RegisterComponent[regB](r)

	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, a, RegisterComponent[regA](r))
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, reflect.TypeFor[regB](), r.TypeOf(b))
	assert.Equal(t, []reflect.Type{reflect.TypeFor[regA](), reflect.TypeFor[regB]()}, r.Types())
}

func TestRegistryGetIndex(t *testing.T) {
	r := NewComponentRegistry()
	RegisterComponent[regA](r)

	index, ok := r.GetIndex(reflect.TypeFor[regA]())
	assert.True(t, ok)
	assert.Equal(t, 0, index)

	_, ok = r.GetIndex(reflect.TypeFor[regB]())
	assert.False(t, ok)
}

func TestRegistryRuntimeRegistration(t *testing.T) {
	r := NewComponentRegistry()

	index := r.register(reflect.TypeFor[regC]())
	assert.Equal(t, index, r.register(reflect.TypeFor[regC]()))

	col := r.createEmptyColumn(index)
	_, isReflect := col.(*reflectColumn)
	assert.True(t, isReflect)

	// Registering through generics later keeps the index and upgrades the factory.
	assert.Equal(t, index, RegisterComponent[regC](r))
	_, isGeneric := r.createEmptyColumn(index).(*genericColumn[regC])
	assert.True(t, isGeneric)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryRejectsReferenceKinds(t *testing.T) {
	r := NewComponentRegistry()

	assert.Panics(t, func() { RegisterComponent[*regA](r) })
	assert.Panics(t, func() { RegisterComponent[map[string]int](r) })
	assert.Panics(t, func() { r.register(reflect.TypeFor[func()]()) })
	assert.Panics(t, func() { r.register(reflect.TypeFor[chan int]()) })
	assert.Equal(t, 0, r.Len())
}

func testColumnBehaviour(t *testing.T, col iColumn) {
	t.Helper()

	assert.Equal(t, reflect.TypeFor[regA](), col.Type())
	assert.Equal(t, 0, col.Append(regA{V: 1}))
	assert.Equal(t, 1, col.Append(&regA{V: 2}))
	assert.Equal(t, 2, col.Append(regA{V: 3}))
	assert.Equal(t, 3, col.Len())

	got, ok := col.Get(1).(*regA)
	require.True(t, ok)
	assert.Equal(t, 2, got.V)
	assert.Nil(t, col.Get(3))

	// Writes through the pointer land in the column.
	(*regA)(col.Pointer(2)).V = 30

	data, ok := columnSlice[regA](col)
	require.True(t, ok)
	assert.Equal(t, []regA{{1}, {2}, {30}}, data)

	_, ok = columnSlice[regB](col)
	assert.False(t, ok)

	col.SwapRemove(0)
	data, _ = columnSlice[regA](col)
	assert.Equal(t, []regA{{30}, {2}}, data)

	col.SwapRemove(1)
	data, _ = columnSlice[regA](col)
	assert.Equal(t, []regA{{30}}, data)

	col.Reserve(64)
	assert.Equal(t, 1, col.Len())

	assert.Panics(t, func() { col.Append(regB{}) })
}

func TestGenericColumn(t *testing.T) {
	testColumnBehaviour(t, newGenericColumn[regA]())
}

func TestReflectColumn(t *testing.T) {
	testColumnBehaviour(t, newReflectColumn(reflect.TypeFor[regA]()))
}
