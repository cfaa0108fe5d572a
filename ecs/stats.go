package ecs

// WorldStats is a snapshot of a world's storage layout.
type WorldStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	ComponentTypeCount int
	EntitySlotCount    int
	ArchetypeBreakdown []ArchetypeStats
}

type ArchetypeStats struct {
	ID          int
	Components  []string
	EntityCount int
}

// CollectStats gathers statistics about archetypes and entities.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		ArchetypeCount:     len(w.archetypes),
		TotalEntityCount:   w.Len(),
		ComponentTypeCount: w.registry.Len(),
		EntitySlotCount:    w.allocator.Cap(),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(w.archetypes)),
	}

	for _, archetype := range w.archetypes {
		types := archetype.Types()
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:          archetype.id,
			Components:  names,
			EntityCount: archetype.Len(),
		})
	}

	return stats
}
