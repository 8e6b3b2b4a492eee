// Package board implements the sparse, unbounded Qwirkle board: a
// mapping from integer (row, col) positions to tiles.
package board

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/qwirkleio/qwirkle/move"
	"github.com/qwirkleio/qwirkle/tile"
)

// Board is a sparse mapping from Position to Tile. It imposes no size
// limit; callers that need a viewport call Bounds and pad themselves.
type Board struct {
	cells map[move.Position]tile.Tile
}

// New returns an empty board.
func New() *Board {
	return &Board{cells: make(map[move.Position]tile.Tile)}
}

// Get returns the tile at p and whether one is present.
func (b *Board) Get(p move.Position) (tile.Tile, bool) {
	t, ok := b.cells[p]
	return t, ok
}

// Set places t at p, overwriting anything there.
func (b *Board) Set(p move.Position, t tile.Tile) {
	b.cells[p] = t
}

// Remove clears p.
func (b *Board) Remove(p move.Position) {
	delete(b.cells, p)
}

// Has reports whether p is occupied.
func (b *Board) Has(p move.Position) bool {
	_, ok := b.cells[p]
	return ok
}

// IsEmpty reports whether the board has no tiles at all.
func (b *Board) IsEmpty() bool {
	return len(b.cells) == 0
}

// Positions returns every occupied position, in no particular order.
func (b *Board) Positions() []move.Position {
	return lo.Keys(b.cells)
}

// HasNeighbor reports whether p has at least one occupied orthogonal
// neighbor.
func (b *Board) HasNeighbor(p move.Position) bool {
	for _, n := range p.Neighbors() {
		if b.Has(n) {
			return true
		}
	}
	return false
}

// Bounds returns the minimum and maximum occupied row/col, or ok=false
// if the board is empty.
func (b *Board) Bounds() (minRow, minCol, maxRow, maxCol int, ok bool) {
	first := true
	for p := range b.cells {
		if first {
			minRow, maxRow = p.Row, p.Row
			minCol, maxCol = p.Col, p.Col
			first = false
			continue
		}
		if p.Row < minRow {
			minRow = p.Row
		}
		if p.Row > maxRow {
			maxRow = p.Row
		}
		if p.Col < minCol {
			minCol = p.Col
		}
		if p.Col > maxCol {
			maxCol = p.Col
		}
	}
	return minRow, minCol, maxRow, maxCol, !first
}

// Clone deep-copies the board.
func (b *Board) Clone() *Board {
	cells := make(map[move.Position]tile.Tile, len(b.cells))
	for p, t := range b.cells {
		cells[p] = t
	}
	return &Board{cells: cells}
}

// CopyFrom overwrites b's contents from other, reusing b's backing
// map where possible to avoid an allocation per simulation step.
func (b *Board) CopyFrom(other *Board) {
	for p := range b.cells {
		if _, ok := other.cells[p]; !ok {
			delete(b.cells, p)
		}
	}
	for p, t := range other.cells {
		b.cells[p] = t
	}
}

// String renders occupied positions sorted row-major, one per line -
// readable in a REPL, not meant as a wire format.
func (b *Board) String() string {
	if b.IsEmpty() {
		return "(empty board)"
	}
	positions := b.Positions()
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Row != positions[j].Row {
			return positions[i].Row < positions[j].Row
		}
		return positions[i].Col < positions[j].Col
	})
	lines := make([]string, len(positions))
	for i, p := range positions {
		t := b.cells[p]
		lines[i] = fmt.Sprintf("(%d,%d) %s", p.Row, p.Col, t)
	}
	return strings.Join(lines, "\n")
}

// CandidatePositions returns every empty position orthogonally
// adjacent to an occupied one, or {(0,0)} if the board is empty.
func (b *Board) CandidatePositions() []move.Position {
	if b.IsEmpty() {
		return []move.Position{{Row: 0, Col: 0}}
	}
	seen := make(map[move.Position]bool)
	var out []move.Position
	for p := range b.cells {
		for _, n := range p.Neighbors() {
			if b.Has(n) || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
