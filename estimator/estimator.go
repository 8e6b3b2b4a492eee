// Package estimator computes a Monte Carlo estimate of each player's
// win probability from a live game state, by playing out many
// independent greedy-vs-greedy simulations in parallel.
package estimator

import (
	"context"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/qwirkleio/qwirkle/game"
	"github.com/qwirkleio/qwirkle/movegen"
	"github.com/qwirkleio/qwirkle/solver"
)

// DefaultSimulations is the playout count used when a caller doesn't
// specify one.
const DefaultSimulations = 400

// MaxTurnsPerPlayout bounds a single playout so a pathological
// no-moves deadlock (both hands stuck, bag still nonempty) cannot
// hang the estimator; such a playout is scored as a tie.
const MaxTurnsPerPlayout = 100

// perSimBytes is a rough working-set estimate for one playout
// (cloned board/bag/hands), used only to cap worker count on very
// memory-constrained hosts.
const perSimBytes = 1 << 16

// Result is the outcome of a batch of playouts.
type Result struct {
	WinProb0   float64
	WinProb1   float64
	TieProb    float64
	N          int
	Confidence float64
}

// Estimator computes a win-probability Result from a game state.
type Estimator interface {
	Estimate(ctx context.Context, state *game.GameState) (Result, error)
}

// Parallel is the local Monte Carlo estimator: it fans playouts out
// across a worker pool sized from GOMAXPROCS and available memory.
type Parallel struct {
	simulations int
}

// NewParallel builds a Parallel estimator that runs n playouts per
// Estimate call. n <= 0 selects DefaultSimulations.
func NewParallel(n int) *Parallel {
	if n <= 0 {
		n = DefaultSimulations
	}
	return &Parallel{simulations: n}
}

func workerCount(simulations int) int {
	workers := runtime.GOMAXPROCS(0)
	if budget := memory.FreeMemory(); budget > 0 {
		if byMemory := int(budget / perSimBytes); byMemory < workers {
			workers = byMemory
		}
	}
	if workers < 1 {
		workers = 1
	}
	if workers > simulations {
		workers = simulations
	}
	return workers
}

// Estimate runs p.simulations independent greedy-vs-greedy playouts
// from state and reports the fraction won by each player.
func (p *Parallel) Estimate(ctx context.Context, state *game.GameState) (Result, error) {
	if winner, ok := state.Winner(); ok {
		res := Result{N: 1, Confidence: 1.0}
		switch winner {
		case 0:
			res.WinProb0 = 1.0
		case 1:
			res.WinProb1 = 1.0
		default:
			res.TieProb = 1.0
		}
		return res, nil
	}

	n := p.simulations
	workers := workerCount(n)

	var wins0, wins1, ties atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	greedy := solver.NewGreedy()

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for simIndex := range jobs {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				switch playout(state, int64(simIndex), greedy) {
				case 0:
					wins0.Add(1)
				case 1:
					wins1.Add(1)
				default:
					ties.Add(1)
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	total := float64(n)
	result := Result{
		WinProb0:   float64(wins0.Load()) / total,
		WinProb1:   float64(wins1.Load()) / total,
		TieProb:    float64(ties.Load()) / total,
		N:          n,
		Confidence: confidence(n),
	}
	log.Debug().
		Float64("p0", result.WinProb0).
		Float64("p1", result.WinProb1).
		Float64("tie", result.TieProb).
		Int("n", n).
		Msg("estimate complete")
	return result, nil
}

// confidence is 1 - 0.5/n, capped at 0.99 (the cap applies from n = 50
// on).
func confidence(n int) float64 {
	return math.Min(1-0.5/float64(n), 0.99)
}

// playout clones state for an independent simulation reseeded from
// seed+simIndex+1 (never +0, which would reuse the live game's own
// seed), then alternates greedy moves (the best of GenerateAllMoves,
// with GenerateFastMove as a fallback) - falling back to a swap of the
// first hand slot, and to ending the game outright if even that isn't
// possible, in which case the higher score wins - until the game ends
// or MaxTurnsPerPlayout is hit. Returns the winner (0 or 1), or -1 for
// a tie or a playout still unresolved at the turn cap.
func playout(state *game.GameState, simIndex int64, greedy *solver.Greedy) int {
	sim := state.CloneForSimulation()
	sim.ReseedBag(state.Seed() + simIndex + 1)

	for turn := 0; turn < MaxTurnsPerPlayout && !sim.IsOver(); turn++ {
		hand := sim.CurrentHand().TilesUnsafe()
		moves := movegen.GenerateAllMoves(sim.Board(), hand)
		if len(moves) > 0 {
			chosen, _ := greedy.SelectMove(sim, moves)
			sim.PlayTilesPrevalidated(chosen.Placements, chosen.Score)
			continue
		}
		if m, ok := movegen.GenerateFastMove(sim.Board(), hand); ok {
			sim.PlayTilesPrevalidated(m.Placements, m.Score)
			continue
		}
		if !sim.SwapTiles([]int{0}) {
			scores := sim.Scores()
			switch {
			case scores[0] > scores[1]:
				return 0
			case scores[1] > scores[0]:
				return 1
			}
			return -1
		}
	}

	if player, ok := sim.Winner(); ok {
		return player
	}
	return -1
}
