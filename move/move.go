// Package move defines the board-position and placement/move value
// types shared by the rules kernel, game state, and move generator.
package move

import (
	"fmt"

	"github.com/qwirkleio/qwirkle/tile"
)

// Position is an integer board coordinate. The board is unbounded in
// both directions.
type Position struct {
	Row, Col int
}

// Neighbors returns the four orthogonal neighbors, in a fixed order
// (up, down, left, right).
func (p Position) Neighbors() [4]Position {
	return [4]Position{
		{Row: p.Row - 1, Col: p.Col},
		{Row: p.Row + 1, Col: p.Col},
		{Row: p.Row, Col: p.Col - 1},
		{Row: p.Row, Col: p.Col + 1},
	}
}

func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// Placement is one (position, tile) pair proposed as part of a move.
type Placement struct {
	Pos  Position
	Tile tile.Tile
}

// Move is an ordered list of 1..6 placements for a single turn, plus
// its precomputed score. The zero value (no placements, score 0)
// represents no move found.
type Move struct {
	Placements []Placement
	Score      int
}

// NewMove builds a Move from placements and a score, copying the
// placements so the caller's scratch slice can be reused.
func NewMove(placements []Placement, score int) Move {
	return Move{Placements: append([]Placement(nil), placements...), Score: score}
}

// TilesPlayed returns the number of placements in this move.
func (m Move) TilesPlayed() int {
	return len(m.Placements)
}

// IsQwirkle reports whether this move scores at least 12, the least a
// move completing a six-tile line can score. The score alone is
// checked: a move that reaches 12 through several shorter lines also
// reports true.
func (m Move) IsQwirkle() bool {
	return m.Score >= 12
}

func (m Move) String() string {
	s := fmt.Sprintf("<score=%d tiles=%d:", m.Score, len(m.Placements))
	for _, p := range m.Placements {
		s += fmt.Sprintf(" %s@%s", p.Tile.Name(), p.Pos)
	}
	return s + ">"
}
