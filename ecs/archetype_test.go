package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchetypeKey(t *testing.T) {
	key := NewArchetypeKey([]int{4, 1, 3})

	assert.Equal(t, ArchetypeKey{1, 3, 4}, key)
	assert.True(t, key.Equal(NewArchetypeKey([]int{3, 4, 1})))
	assert.False(t, key.Equal(NewArchetypeKey([]int{1, 3})))
	assert.True(t, key.Contains(3))
	assert.False(t, key.Contains(2))
	assert.Equal(t, "[1 3 4]", key.String())

	assert.Panics(t, func() { NewArchetypeKey([]int{1, 2, 1}) })
}

func TestNewArchetypeSizesSlotsToRegistry(t *testing.T) {
	r := NewComponentRegistry()
	a := RegisterComponent[regA](r)
	RegisterComponent[regB](r)
	c := RegisterComponent[regC](r)

	arch := NewArchetype(0, NewArchetypeKey([]int{c, a}), r)

	assert.Len(t, arch.columns, 3)
	assert.True(t, arch.HasColumn(a))
	assert.False(t, arch.HasColumn(1))
	assert.True(t, arch.HasColumn(c))
	assert.False(t, arch.HasColumn(99))
	assert.False(t, arch.HasColumn(-1))
	assert.Equal(t, 0, arch.Len())
}

func TestNewArchetypePanicsOnUnknownIndex(t *testing.T) {
	r := NewComponentRegistry()
	RegisterComponent[regA](r)

	assert.Panics(t, func() { NewArchetype(0, ArchetypeKey{0, 1}, r) })
}

func TestArchetypeInsertAndGetColumn(t *testing.T) {
	r := NewComponentRegistry()
	a := RegisterComponent[regA](r)
	b := RegisterComponent[regB](r)
	arch := NewArchetype(0, NewArchetypeKey([]int{a, b}), r)

	e0 := EntityId{Index: 0}
	e1 := EntityId{Index: 1}
	assert.Equal(t, 0, arch.insert(e0, []int{b, a}, []any{regB{S: "x"}, regA{V: 1}}))
	assert.Equal(t, 1, arch.insert(e1, []int{a, b}, []any{regA{V: 2}, &regB{S: "y"}}))

	as, ok := GetColumn[regA](arch, a)
	require.True(t, ok)
	assert.Equal(t, []regA{{1}, {2}}, as)

	bs, ok := GetColumn[regB](arch, b)
	require.True(t, ok)
	assert.Equal(t, []regB{{"x"}, {"y"}}, bs)
	assert.Equal(t, []EntityId{e0, e1}, arch.Entities())

	// Wrong element type for the slot.
	_, ok = GetColumn[regB](arch, a)
	assert.False(t, ok)

	// Index registered after the archetype was built.
	c := RegisterComponent[regC](r)
	_, ok = GetColumn[regC](arch, c)
	assert.False(t, ok)

	as[0].V = 10
	as, _ = GetColumn[regA](arch, a)
	assert.Equal(t, 10, as[0].V)
}

func TestArchetypeSwapRemove(t *testing.T) {
	r := NewComponentRegistry()
	a := RegisterComponent[regA](r)
	b := RegisterComponent[regB](r)
	arch := NewArchetype(0, NewArchetypeKey([]int{a, b}), r)

	for i := 0; i < 3; i++ {
		arch.insert(EntityId{Index: uint32(i)}, []int{a, b}, []any{regA{V: i}, regB{S: string(rune('a' + i))}})
	}

	moved, ok := arch.swapRemove(0)
	assert.True(t, ok)
	assert.Equal(t, EntityId{Index: 2}, moved)

	as, _ := GetColumn[regA](arch, a)
	bs, _ := GetColumn[regB](arch, b)
	assert.Equal(t, []regA{{2}, {1}}, as)
	assert.Equal(t, []regB{{"c"}, {"b"}}, bs)
	assert.Equal(t, []EntityId{{Index: 2}, {Index: 1}}, arch.Entities())

	_, ok = arch.swapRemove(1)
	assert.False(t, ok, "removing the last row moves nothing")
	assert.Equal(t, 1, arch.Len())
	for _, index := range arch.key {
		assert.Equal(t, arch.Len(), arch.columns[index].Len())
	}
}

func TestArchetypeTypes(t *testing.T) {
	r := NewComponentRegistry()
	b := RegisterComponent[regB](r)
	a := RegisterComponent[regA](r)
	arch := NewArchetype(0, NewArchetypeKey([]int{a, b}), r)

	types := arch.Types()
	require.Len(t, types, 2)
	assert.Equal(t, "ecs.regB", types[0].String())
	assert.Equal(t, "ecs.regA", types[1].String())
}
