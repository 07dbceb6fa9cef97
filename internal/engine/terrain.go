package engine

import "github.com/talgya/hexcolony/internal/world"

// terrainCache holds revealed terrain counts between reveals. Any reveal
// marks it dirty; the next production step refreshes it from the map's
// incremental counters.
type terrainCache struct {
	counts world.TerrainCounts
	dirty  bool
}

func (c *terrainCache) markDirty() { c.dirty = true }

func (c *terrainCache) get(m *world.Map) world.TerrainCounts {
	if c.dirty {
		c.counts = m.RevealedCounts()
		c.dirty = false
	}
	return c.counts
}
