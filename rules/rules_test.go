package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qwirkleio/qwirkle/board"
	"github.com/qwirkleio/qwirkle/move"
	"github.com/qwirkleio/qwirkle/rules"
	"github.com/qwirkleio/qwirkle/tile"
)

func pos(r, c int) move.Position { return move.Position{Row: r, Col: c} }

func TestCanFormValidLine(t *testing.T) {
	sameColor := []tile.Tile{
		tile.New(tile.Circle, tile.Red),
		tile.New(tile.Square, tile.Red),
		tile.New(tile.Diamond, tile.Red),
	}
	assert.True(t, rules.CanFormValidLine(sameColor))

	mixed := []tile.Tile{
		tile.New(tile.Circle, tile.Red),
		tile.New(tile.Square, tile.Blue),
	}
	assert.False(t, rules.CanFormValidLine(mixed))

	dup := []tile.Tile{
		tile.New(tile.Circle, tile.Red),
		tile.New(tile.Circle, tile.Red),
	}
	assert.False(t, rules.CanFormValidLine(dup))

	seven := make([]tile.Tile, 0, 7)
	for c := tile.Color(0); int(c) < 6; c++ {
		seven = append(seven, tile.New(tile.Circle, c))
	}
	seven = append(seven, tile.New(tile.Square, tile.Red))
	assert.False(t, rules.CanFormValidLine(seven))
}

func TestFirstMoveMustBeOrigin(t *testing.T) {
	b := board.New()
	err := rules.ValidateMove(b, []move.Placement{{Pos: pos(0, 1), Tile: tile.New(tile.Circle, tile.Red)}})
	assert.ErrorIs(t, err, rules.ErrNotFirstMoveOrigin)

	err = rules.ValidateMove(b, []move.Placement{{Pos: pos(0, 0), Tile: tile.New(tile.Circle, tile.Red)}})
	assert.NoError(t, err)
}

func TestScenario1SingleTileAtOrigin(t *testing.T) {
	b := board.New()
	placements := []move.Placement{{Pos: pos(0, 0), Tile: tile.New(tile.Circle, tile.Red)}}
	assert.NoError(t, rules.ValidateMove(b, placements))

	for _, p := range placements {
		b.Set(p.Pos, p.Tile)
	}
	assert.Equal(t, 1, rules.Score(b, placements))
}

func TestScenario2ThreeTileLine(t *testing.T) {
	b := board.New()
	b.Set(pos(0, 0), tile.New(tile.Circle, tile.Red))
	b.Set(pos(0, 1), tile.New(tile.Square, tile.Red))

	placements := []move.Placement{{Pos: pos(0, 2), Tile: tile.New(tile.Diamond, tile.Red)}}
	assert.NoError(t, rules.ValidateMove(b, placements))

	b.Set(pos(0, 2), tile.New(tile.Diamond, tile.Red))
	assert.Equal(t, 3, rules.Score(b, placements))
}

func TestScenario3Qwirkle(t *testing.T) {
	b := board.New()
	shapes := []tile.Shape{tile.Circle, tile.Square, tile.Diamond, tile.Clover, tile.Star}
	for i, s := range shapes {
		b.Set(pos(0, i), tile.New(s, tile.Red))
	}
	placements := []move.Placement{{Pos: pos(0, 5), Tile: tile.New(tile.Starburst, tile.Red)}}
	assert.NoError(t, rules.ValidateMove(b, placements))

	b.Set(pos(0, 5), tile.New(tile.Starburst, tile.Red))
	assert.Equal(t, 12, rules.Score(b, placements))
}

func TestSevenTileLineRejected(t *testing.T) {
	b := board.New()
	colors := []tile.Color{tile.Red, tile.Orange, tile.Yellow, tile.Green, tile.Blue, tile.Purple}
	for i, c := range colors {
		b.Set(pos(0, i), tile.New(tile.Circle, c))
	}
	// seventh tile would need a seventh color; reuse Red to also fail on duplicate.
	err := rules.ValidateMove(b, []move.Placement{{Pos: pos(0, 6), Tile: tile.New(tile.Circle, tile.Red)}})
	assert.ErrorIs(t, err, rules.ErrInvalidLine)
}

func TestOccupiedCellRejected(t *testing.T) {
	b := board.New()
	b.Set(pos(0, 0), tile.New(tile.Circle, tile.Red))
	err := rules.ValidateMove(b, []move.Placement{{Pos: pos(0, 0), Tile: tile.New(tile.Square, tile.Red)}})
	assert.ErrorIs(t, err, rules.ErrOccupied)
}

func TestMultiTileGapRejected(t *testing.T) {
	b := board.New()
	b.Set(pos(0, 0), tile.New(tile.Circle, tile.Red))
	placements := []move.Placement{
		{Pos: pos(0, 1), Tile: tile.New(tile.Square, tile.Red)},
		{Pos: pos(0, 3), Tile: tile.New(tile.Diamond, tile.Red)},
	}
	err := rules.ValidateMove(b, placements)
	assert.ErrorIs(t, err, rules.ErrGap)
}

func TestMultiTileNonCollinearRejected(t *testing.T) {
	b := board.New()
	b.Set(pos(0, 0), tile.New(tile.Circle, tile.Red))
	placements := []move.Placement{
		{Pos: pos(0, 1), Tile: tile.New(tile.Square, tile.Red)},
		{Pos: pos(1, 2), Tile: tile.New(tile.Diamond, tile.Red)},
	}
	err := rules.ValidateMove(b, placements)
	assert.ErrorIs(t, err, rules.ErrNotCollinear)
}

func TestBoardUnmodifiedAfterValidation(t *testing.T) {
	b := board.New()
	b.Set(pos(0, 0), tile.New(tile.Circle, tile.Red))
	placements := []move.Placement{{Pos: pos(0, 1), Tile: tile.New(tile.Square, tile.Red)}}
	assert.NoError(t, rules.ValidateMove(b, placements))
	assert.False(t, b.Has(pos(0, 1)))
}

func TestExtractLineAgreesWithBuf(t *testing.T) {
	b := board.New()
	b.Set(pos(0, 0), tile.New(tile.Circle, tile.Red))
	b.Set(pos(0, 1), tile.New(tile.Square, tile.Red))
	b.Set(pos(0, 2), tile.New(tile.Diamond, tile.Red))

	var buf rules.LineBuffer
	rules.ExtractLineBuf(b, pos(0, 1), rules.Horizontal, &buf)
	slice := rules.ExtractLine(b, pos(0, 1), rules.Horizontal)

	assert.Equal(t, buf.N, len(slice))
	for i := 0; i < buf.N; i++ {
		assert.Equal(t, buf.Tiles[i], slice[i])
	}
}

func TestEmptyLineAtUnoccupiedCenter(t *testing.T) {
	b := board.New()
	b.Set(pos(0, 0), tile.New(tile.Circle, tile.Red))
	line := rules.ExtractLine(b, pos(5, 5), rules.Horizontal)
	assert.Nil(t, line)
}
