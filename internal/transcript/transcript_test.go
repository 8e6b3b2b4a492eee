package transcript_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwirkleio/qwirkle/game"
	"github.com/qwirkleio/qwirkle/internal/transcript"
	"github.com/qwirkleio/qwirkle/move"
	"github.com/qwirkleio/qwirkle/tile"
)

func TestWriteThenReadRoundTrips(t *testing.T) {
	history := []game.MoveRecord{
		{
			Player: 0,
			Placements: []move.Placement{
				{Pos: move.Position{Row: 0, Col: 0}, Tile: tile.New(tile.Circle, tile.Red)},
				{Pos: move.Position{Row: 0, Col: 1}, Tile: tile.New(tile.Square, tile.Red)},
			},
			Score: 2,
		},
		{Player: 1, Swap: true, SwapCount: 3},
		{
			Player: 0,
			Placements: []move.Placement{
				{Pos: move.Position{Row: -1, Col: 0}, Tile: tile.New(tile.Starburst, tile.Purple)},
			},
			Score: 1,
		},
	}

	var sb strings.Builder
	require.NoError(t, transcript.Write(&sb, history))

	got, err := transcript.Read(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, history, got)
}

func TestReadRejectsMalformedLine(t *testing.T) {
	_, err := transcript.Read(strings.NewReader("this is not a transcript line"))
	assert.ErrorIs(t, err, transcript.ErrMalformedLine)
}

func TestReadSkipsBlankLines(t *testing.T) {
	input := ">0: (0,0)CIR +1\n\n>1: swap 2\n"
	got, err := transcript.Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
