package ecs

import "strconv"

// EntityId is a generational handle to an entity.
// Index identifies a slot and Generation disambiguates reuse of that slot.
type EntityId struct {
	Index      uint32
	Generation uint32
}

func (e EntityId) String() string {
	return strconv.FormatUint(uint64(e.Index), 10) + ":" + strconv.FormatUint(uint64(e.Generation), 10)
}

// EntityAllocator issues and recycles generational entity handles.
type EntityAllocator struct {
	generations []uint32
	freeList    []uint32
}

// NewEntityAllocator creates an empty allocator.
func NewEntityAllocator() *EntityAllocator {
	return &EntityAllocator{}
}

// Allocate returns a fresh handle. The most recently freed slot is reused first.
func (a *EntityAllocator) Allocate() EntityId {
	if n := len(a.freeList); n > 0 {
		index := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		return EntityId{Index: index, Generation: a.generations[index]}
	}

	index := uint32(len(a.generations))
	a.generations = append(a.generations, 0)
	return EntityId{Index: index}
}

// Deallocate invalidates every outstanding handle to id's slot and returns the
// slot to the free list. Stale or unknown handles are ignored.
func (a *EntityAllocator) Deallocate(id EntityId) {
	if !a.IsAlive(id) {
		return
	}
	a.generations[id.Index]++
	a.freeList = append(a.freeList, id.Index)
}

// IsAlive reports whether id still refers to its slot's current generation.
func (a *EntityAllocator) IsAlive(id EntityId) bool {
	if int(id.Index) >= len(a.generations) {
		return false
	}
	return a.generations[id.Index] == id.Generation
}

// Len returns the number of live handles.
func (a *EntityAllocator) Len() int {
	return len(a.generations) - len(a.freeList)
}

// Cap returns the number of slots ever allocated.
func (a *EntityAllocator) Cap() int {
	return len(a.generations)
}
