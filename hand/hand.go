// Package hand implements a player's hand: an ordered container of at
// most six tiles, addressed by 0-based index internally (the HTTP
// session boundary converts to/from 1-based slots).
package hand

import (
	"sort"

	"github.com/samber/lo"

	"github.com/qwirkleio/qwirkle/tile"
)

// Capacity is the maximum number of tiles a hand may hold.
const Capacity = 6

// Hand is an ordered sequence of at most Capacity tiles.
type Hand struct {
	tiles []tile.Tile
}

// New returns an empty hand.
func New() *Hand {
	return &Hand{tiles: make([]tile.Tile, 0, Capacity)}
}

// Add appends tiles up to capacity; any tiles beyond capacity are
// silently dropped.
func (h *Hand) Add(tiles []tile.Tile) {
	room := Capacity - len(h.tiles)
	if room <= 0 {
		return
	}
	if len(tiles) > room {
		tiles = tiles[:room]
	}
	h.tiles = append(h.tiles, tiles...)
}

// Remove removes and returns the tile at index, or false if index is
// out of range.
func (h *Hand) Remove(index int) (tile.Tile, bool) {
	if index < 0 || index >= len(h.tiles) {
		return tile.Tile{}, false
	}
	t := h.tiles[index]
	h.tiles = append(h.tiles[:index], h.tiles[index+1:]...)
	return t, true
}

// RemoveMultiple removes the tiles at the given 0-based indices and
// returns them in the order indices lists them (out-of-range indices
// are skipped). Indices are processed highest-to-lowest
// so earlier removals don't shift later ones.
func (h *Hand) RemoveMultiple(indices []int) []tile.Tile {
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	removedAt := make(map[int]tile.Tile, len(indices))
	for _, idx := range sorted {
		if t, ok := h.Remove(idx); ok {
			removedAt[idx] = t
		}
	}
	out := make([]tile.Tile, 0, len(indices))
	for _, idx := range indices {
		if t, ok := removedAt[idx]; ok {
			out = append(out, t)
		}
	}
	return out
}

// RemoveTile removes the first occurrence of t by value, if present.
func (h *Hand) RemoveTile(t tile.Tile) bool {
	idx := h.IndexOf(t)
	if idx < 0 {
		return false
	}
	_, ok := h.Remove(idx)
	return ok
}

// Refill draws from bag until the hand reaches Capacity or the bag is
// exhausted.
func (h *Hand) Refill(draw func(n int) []tile.Tile) {
	need := Capacity - len(h.tiles)
	if need <= 0 {
		return
	}
	h.Add(draw(need))
}

// Contains reports whether t is present by value.
func (h *Hand) Contains(t tile.Tile) bool {
	return h.IndexOf(t) >= 0
}

// IndexOf returns the first 0-based index of t, or -1.
func (h *Hand) IndexOf(t tile.Tile) int {
	return lo.IndexOf(h.tiles, t)
}

// Size returns the number of tiles currently held.
func (h *Hand) Size() int {
	return len(h.tiles)
}

// TilesUnsafe returns a read-only view of the hand's tiles for hot
// paths. Callers must not mutate the returned slice.
func (h *Hand) TilesUnsafe() []tile.Tile {
	return h.tiles
}

// Clone deep-copies the hand.
func (h *Hand) Clone() *Hand {
	return &Hand{tiles: append([]tile.Tile(nil), h.tiles...)}
}

// CopyFrom overwrites h's contents from other.
func (h *Hand) CopyFrom(other *Hand) {
	h.tiles = append(h.tiles[:0], other.tiles...)
}
