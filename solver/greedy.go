package solver

import (
	"github.com/qwirkleio/qwirkle/game"
	"github.com/qwirkleio/qwirkle/move"
)

// Greedy always returns the highest-scoring move. It is stateless and
// safe to share across goroutines, which is what lets the Monte Carlo
// estimator's worker pool use a single instance.
type Greedy struct{}

// NewGreedy returns the stateless greedy solver.
func NewGreedy() *Greedy { return &Greedy{} }

func (g *Greedy) Name() string { return "greedy" }

// SelectMove returns moves[0], relying on the generator's contract
// that moves are pre-sorted by score descending.
func (g *Greedy) SelectMove(_ *game.GameState, moves []move.Move) (move.Move, bool) {
	if len(moves) == 0 {
		return move.Move{}, false
	}
	return moves[0], true
}
