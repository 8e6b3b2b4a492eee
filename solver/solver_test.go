package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qwirkleio/qwirkle/move"
	"github.com/qwirkleio/qwirkle/solver"
	"github.com/qwirkleio/qwirkle/tile"
)

func moveWithScore(score int) move.Move {
	return move.Move{
		Placements: []move.Placement{{Pos: move.Position{Row: 0, Col: 0}, Tile: tile.New(tile.Circle, tile.Red)}},
		Score:      score,
	}
}

func TestGreedyPicksHighestScore(t *testing.T) {
	moves := []move.Move{moveWithScore(9), moveWithScore(3), moveWithScore(1)}
	g := solver.NewGreedy()
	picked, ok := g.SelectMove(nil, moves)
	assert.True(t, ok)
	assert.Equal(t, moves[0], picked)
	assert.Equal(t, "greedy", g.Name())
}

func TestGreedyNoMoves(t *testing.T) {
	g := solver.NewGreedy()
	_, ok := g.SelectMove(nil, nil)
	assert.False(t, ok)
}

func TestRandomIsDeterministicForFixedSeed(t *testing.T) {
	moves := []move.Move{moveWithScore(1), moveWithScore(2), moveWithScore(3), moveWithScore(4)}
	a := solver.NewRandom(7)
	b := solver.NewRandom(7)

	for i := 0; i < 10; i++ {
		ma, _ := a.SelectMove(nil, moves)
		mb, _ := b.SelectMove(nil, moves)
		assert.Equal(t, ma, mb)
	}
}

func TestRandomNoMoves(t *testing.T) {
	r := solver.NewRandom(1)
	_, ok := r.SelectMove(nil, nil)
	assert.False(t, ok)
}

func TestWeightedFavorsHigherScoresOverManySamples(t *testing.T) {
	low := moveWithScore(0)
	high := moveWithScore(50)
	moves := []move.Move{low, high}

	w := solver.NewWeighted(11, 0.5)
	highCount := 0
	const trials = 500
	for i := 0; i < trials; i++ {
		picked, ok := w.SelectMove(nil, moves)
		assert.True(t, ok)
		if picked.Score == high.Score {
			highCount++
		}
	}
	assert.Greater(t, highCount, trials/2)
}

func TestWeightedNoMoves(t *testing.T) {
	w := solver.NewWeighted(1, 1.0)
	_, ok := w.SelectMove(nil, nil)
	assert.False(t, ok)
}

func TestWeightedDefaultsTemperatureWhenNonPositive(t *testing.T) {
	moves := []move.Move{moveWithScore(1)}
	w := solver.NewWeighted(1, 0)
	picked, ok := w.SelectMove(nil, moves)
	assert.True(t, ok)
	assert.Equal(t, moves[0], picked)
}

func TestSolverByNameDefaultsToGreedy(t *testing.T) {
	s := solver.SolverByName("nonsense", 1)
	assert.Equal(t, "greedy", s.Name())
}

func TestSolverByNameBuildsRandomAndWeighted(t *testing.T) {
	assert.Equal(t, "random", solver.SolverByName("random", 1).Name())
	assert.Equal(t, "weighted", solver.SolverByName("weighted", 1).Name())
}

func TestScriptedFallsBackToGreedyOnBadScript(t *testing.T) {
	s := solver.NewScripted("this is not valid lua {{{")
	defer s.Close()
	moves := []move.Move{moveWithScore(1), moveWithScore(9)}
	picked, ok := s.SelectMove(nil, moves)
	assert.True(t, ok)
	assert.Equal(t, moves[0], picked)
}

func TestScriptedUsesScoreMoveFunction(t *testing.T) {
	s := solver.NewScripted(`
		function score_move(score, tiles_played, row, col)
			return -score
		end
	`)
	defer s.Close()
	moves := []move.Move{moveWithScore(1), moveWithScore(9)}
	picked, ok := s.SelectMove(nil, moves)
	assert.True(t, ok)
	assert.Equal(t, moves[0].Score, picked.Score)
}
