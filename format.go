package sward

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// layout pairs a blade arrangement with its stable layout id. Tiles that
// adopt the same layout share the id, which is what makes their rendered
// images cacheable under one key.
type layout struct {
	id     int
	blades []Blade
}

// clone returns a deep copy of the layout. Blade is a value type, so
// copying the slice is enough.
func (l layout) clone() layout {
	blades := make([]Blade, len(l.blades))
	copy(blades, l.blades)
	return layout{id: l.id, blades: blades}
}

// formatCache deduplicates blade layouts across tiles that share the
// same (density, variant-set) signature. Each signature owns a pool of
// up to maxUnique layouts; once full, new tiles adopt a random existing
// layout instead of keeping their own. Entries are never evicted.
type formatCache struct {
	maxUnique int
	rng       *rand.Rand
	pools     map[string][]layout
}

func newFormatCache(maxUnique int, rng *rand.Rand) *formatCache {
	return &formatCache{
		maxUnique: maxUnique,
		rng:       rng,
		pools:     make(map[string][]layout),
	}
}

// formatKey builds the signature for a tile configuration. Variant order
// matters: the signature is the ordered tuple, not the set.
func formatKey(density int, variants []int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(density))
	b.WriteByte(':')
	for i, v := range variants {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// register offers a freshly generated layout under the given signature.
// If the signature's pool is below cap the layout is pooled and
// (layout{}, false) is returned: the caller keeps its own. If the pool
// is full, register returns a deep copy of a uniformly random pooled
// layout and true: the caller must discard its generated layout and
// adopt the returned one, id included. The copy keeps later per-tile
// blade mutation from corrupting the shared template.
func (fc *formatCache) register(key string, l layout) (layout, bool) {
	pool := fc.pools[key]
	if len(pool) >= fc.maxUnique {
		return pool[fc.rng.IntN(len(pool))].clone(), true
	}
	fc.pools[key] = append(pool, l)
	return layout{}, false
}

// uniqueLayouts returns how many distinct layouts exist for a signature.
func (fc *formatCache) uniqueLayouts(key string) int {
	return len(fc.pools[key])
}
