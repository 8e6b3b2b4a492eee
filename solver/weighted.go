package solver

import (
	"math"
	"math/rand"

	"github.com/qwirkleio/qwirkle/game"
	"github.com/qwirkleio/qwirkle/move"
)

// Weighted samples a move with probability proportional to
// (score+1)^(1/T). Low temperatures sharpen toward the greedy choice;
// high temperatures flatten toward uniform.
type Weighted struct {
	rng         *rand.Rand
	temperature float64
}

// NewWeighted builds a score-weighted random solver. A temperature of 0
// or less is replaced by 1.0; callers that want the uniform-random limit
// should use Random instead of driving temperature to infinity.
func NewWeighted(seed int64, temperature float64) *Weighted {
	if temperature <= 0 {
		temperature = 1.0
	}
	return &Weighted{rng: rand.New(rand.NewSource(seed)), temperature: temperature}
}

func (w *Weighted) Name() string { return "weighted" }

func (w *Weighted) SelectMove(_ *game.GameState, moves []move.Move) (move.Move, bool) {
	if len(moves) == 0 {
		return move.Move{}, false
	}

	weights := make([]float64, len(moves))
	var total float64
	exponent := 1.0 / w.temperature
	for i, m := range moves {
		weights[i] = math.Pow(float64(m.Score+1), exponent)
		total += weights[i]
	}

	target := w.rng.Float64() * total
	var cumulative float64
	for i, wt := range weights {
		cumulative += wt
		if target <= cumulative {
			return moves[i], true
		}
	}
	// Floating-point rounding can leave target fractionally above the
	// final cumulative weight; fall back to the last move.
	return moves[len(moves)-1], true
}
