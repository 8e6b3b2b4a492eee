// Package session implements the HTTP+JSON façade over a game: a
// registry of independently-locked live games plus handlers for the
// play/swap/hint/win-probability operations exposed at the boundary.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/qwirkleio/qwirkle/game"
	"github.com/qwirkleio/qwirkle/solver"
)

// entry is one live game plus the AI configuration chosen at
// creation and the lock guarding every operation on it, per §5's
// "single mutex per GameState" model.
type entry struct {
	mu         sync.RWMutex
	state      *game.GameState
	vsAI       bool
	aiVsAI     bool
	aiStrategy string
	aiSolver   solver.Solver
	lastMove   [][2]int
}

// Registry is the process-wide table of live games, guarded by its
// own reader/writer lock for lookups independent of any single
// game's lock.
type Registry struct {
	mu    sync.RWMutex
	games map[string]*entry
}

// NewRegistry builds an empty session registry.
func NewRegistry() *Registry {
	return &Registry{games: make(map[string]*entry)}
}

func (r *Registry) create(e *entry) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.games[id] = e
	r.mu.Unlock()
	return id
}

func (r *Registry) lookup(id string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.games[id]
	return e, ok
}
