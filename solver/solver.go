// Package solver implements the move-selection strategies used by AI
// players and the Monte Carlo estimator's playout loop.
package solver

import (
	"github.com/qwirkleio/qwirkle/game"
	"github.com/qwirkleio/qwirkle/move"
)

// Solver selects one move from a (already score-sorted) candidate
// list, or reports none available.
type Solver interface {
	SelectMove(state *game.GameState, moves []move.Move) (move.Move, bool)
	Name() string
}

// SolverByName maps a strategy name to a Solver instance, defaulting
// to Greedy for unknown names. seed configures any randomized solver.
func SolverByName(name string, seed int64) Solver {
	switch name {
	case "random":
		return NewRandom(seed)
	case "weighted":
		return NewWeighted(seed, 1.0)
	case "scripted":
		// A scripted solver requires Lua source; callers that have one
		// should use SolverByNameWithScript. Falling back to greedy
		// here matches §7's "never surfaced as a hard failure" recovery
		// policy for an unconfigured scripted strategy.
		return NewGreedy()
	default:
		return NewGreedy()
	}
}

// SolverByNameWithScript behaves like SolverByName, except that
// name == "scripted" with non-empty scriptSource builds a Scripted
// solver running that Lua source instead of falling back to greedy.
func SolverByNameWithScript(name string, seed int64, scriptSource string) Solver {
	if name == "scripted" && scriptSource != "" {
		return NewScripted(scriptSource)
	}
	return SolverByName(name, seed)
}
