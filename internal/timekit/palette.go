package timekit

import "hash/fnv"

// PaletteIndex maps an identifier to a stable palette slot. Only stability
// matters: the same id always lands on the same index within a palette size,
// so a city keeps its display colour across renders.
func PaletteIndex(id string, paletteSize int) int {
	if paletteSize <= 0 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % uint32(paletteSize))
}
