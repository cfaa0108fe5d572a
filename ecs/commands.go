package ecs

// Commands buffers structural changes so they can be applied after every
// query of a frame has finished.
type Commands struct {
	spawns   [][]any
	despawns []EntityId
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return newCommands()
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Despawn queues an entity removal.
func (c *Commands) Despawn(entity EntityId) {
	c.despawns = append(c.despawns, entity)
}

// Defer queues a function to run after all structural changes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.despawns) + len(c.defers)
}

// Flush applies despawns, then spawns, then deferred functions, and resets
// the buffer. It returns the ids of the spawned entities in queue order.
// Despawns of handles that are already gone are skipped.
func (c *Commands) Flush(w *World) []EntityId {
	for _, entity := range c.despawns {
		if err := w.Despawn(entity); err != nil {
			w.logger.Warn().Err(err).Stringer("entity", entity).Msg("skipping queued despawn")
		}
	}

	spawned := make([]EntityId, 0, len(c.spawns))
	for _, components := range c.spawns {
		spawned = append(spawned, w.Spawn(components...))
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	clear(c.defers)
	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	c.defers = c.defers[:0]
	return spawned
}
