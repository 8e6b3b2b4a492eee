package solver

import (
	"math/rand"

	"github.com/qwirkleio/qwirkle/game"
	"github.com/qwirkleio/qwirkle/move"
)

// Random picks uniformly among the candidate moves using its own
// seeded generator.
type Random struct {
	rng *rand.Rand
}

// NewRandom builds a uniform-random solver seeded with seed. Every seed,
// 0 included, is used as given, so a fixed seed reproduces its picks.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string { return "random" }

func (r *Random) SelectMove(_ *game.GameState, moves []move.Move) (move.Move, bool) {
	if len(moves) == 0 {
		return move.Move{}, false
	}
	return moves[r.rng.Intn(len(moves))], true
}
