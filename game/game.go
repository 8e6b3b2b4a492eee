// Package game implements turn orchestration over the rules kernel:
// applying plays and swaps, detecting game end, and keeping move
// history. A GameState owns its board, bag, and hands exclusively.
package game

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/qwirkleio/qwirkle/bag"
	"github.com/qwirkleio/qwirkle/board"
	"github.com/qwirkleio/qwirkle/hand"
	"github.com/qwirkleio/qwirkle/move"
	"github.com/qwirkleio/qwirkle/rules"
)

// NumPlayers is fixed at two; §1 explicitly scopes out >=3-player
// variants.
const NumPlayers = 2

// EmptyHandBonus is credited to a player who empties their hand when
// the game ends.
const EmptyHandBonus = 6

// ErrGameOver is returned by PlayTiles once the game has ended.
var ErrGameOver = errors.New("game is over")

// MoveRecord is a single, append-only turn history entry.
type MoveRecord struct {
	Player     int
	Placements []move.Placement
	Score      int
	Swap       bool
	SwapCount  int
}

// GameState holds the board, bag, hands, scores, and history for one
// two-player game.
type GameState struct {
	board   *board.Board
	bag     *bag.Bag
	hands   [NumPlayers]*hand.Hand
	scores  [NumPlayers]int
	current int
	over    bool
	winner  int // meaningful only when over: -1 tie, 0 or 1 otherwise
	seed    int64
	history []MoveRecord
}

// NewGame constructs a fresh game: a shuffled bag (seed 0 derives one
// from the current time) and two six-tile hands dealt from it.
func NewGame(seed int64) *GameState {
	b := bag.New(seed)
	g := &GameState{
		board: board.New(),
		bag:   b,
		seed:  b.Seed(),
	}
	for i := range g.hands {
		g.hands[i] = hand.New()
		g.hands[i].Refill(g.bag.Draw)
	}
	log.Debug().Int64("seed", g.seed).Msg("new game started")
	return g
}

func (g *GameState) Board() *board.Board { return g.board }
func (g *GameState) Bag() *bag.Bag       { return g.bag }
func (g *GameState) Seed() int64         { return g.seed }

// CurrentPlayer returns the index (0 or 1) of the player on turn.
func (g *GameState) CurrentPlayer() int { return g.current }

// OtherPlayer returns the index of the player not on turn.
func (g *GameState) OtherPlayer() int { return 1 - g.current }

// CurrentHand returns the hand of the player on turn.
func (g *GameState) CurrentHand() *hand.Hand { return g.hands[g.current] }

// Hand returns the hand belonging to player (0 or 1).
func (g *GameState) Hand(player int) *hand.Hand { return g.hands[player] }

// Scores returns both players' scores.
func (g *GameState) Scores() [NumPlayers]int { return g.scores }

// IsOver reports whether the game has ended.
func (g *GameState) IsOver() bool { return g.over }

// Winner returns the winning player (0 or 1), or -1 for a tie, along
// with whether the game is actually over - the value is meaningless
// when ok is false, matching §9's guidance against overloading a
// sentinel on a still-live channel.
func (g *GameState) Winner() (player int, ok bool) {
	return g.winner, g.over
}

// History returns the append-only move history.
func (g *GameState) History() []MoveRecord { return g.history }

// PlayTiles validates and applies a move for the current player,
// returning its score. On failure the game state is left unchanged.
func (g *GameState) PlayTiles(placements []move.Placement) (int, error) {
	if g.over {
		return 0, ErrGameOver
	}
	if err := rules.ValidateMove(g.board, placements); err != nil {
		return 0, err
	}
	score := g.apply(placements)
	return score, nil
}

// PlayTilesPrevalidated applies a move already known to be valid
// (produced by the move generator), skipping rules.ValidateMove. Used
// by the Monte Carlo estimator's playout loop.
func (g *GameState) PlayTilesPrevalidated(placements []move.Placement, score int) {
	for _, p := range placements {
		g.board.Set(p.Pos, p.Tile)
	}
	g.creditAndAdvance(placements, score)
}

// apply places, scores, and credits a move whose placements are
// already known valid against g.board.
func (g *GameState) apply(placements []move.Placement) int {
	for _, p := range placements {
		g.board.Set(p.Pos, p.Tile)
	}
	score := rules.Score(g.board, placements)
	g.creditAndAdvance(placements, score)
	return score
}

func (g *GameState) creditAndAdvance(placements []move.Placement, score int) {
	g.scores[g.current] += score

	h := g.hands[g.current]
	for _, p := range placements {
		h.RemoveTile(p.Tile)
	}
	h.Refill(g.bag.Draw)

	g.history = append(g.history, MoveRecord{
		Player:     g.current,
		Placements: append([]move.Placement(nil), placements...),
		Score:      score,
	})

	g.checkGameOver()
	if !g.over {
		g.current = g.OtherPlayer()
	}
}

// SwapTiles swaps the tiles at the given 0-based hand indices back
// into the bag for fresh ones, returning whether the swap succeeded.
func (g *GameState) SwapTiles(indices []int) bool {
	if g.over || len(indices) == 0 {
		return false
	}
	if len(indices) > g.bag.Remaining() {
		return false
	}
	h := g.hands[g.current]
	for _, idx := range indices {
		if idx < 0 || idx >= h.Size() {
			return false
		}
	}

	removed := h.RemoveMultiple(indices)
	h.Refill(g.bag.Draw)
	g.bag.Return(removed)

	g.history = append(g.history, MoveRecord{
		Player:    g.current,
		Swap:      true,
		SwapCount: len(indices),
	})
	g.current = g.OtherPlayer()
	return true
}

func (g *GameState) checkGameOver() {
	if !g.bag.IsEmpty() {
		return
	}
	emptied := false
	for i := range g.hands {
		if g.hands[i].Size() == 0 {
			g.scores[i] += EmptyHandBonus
			emptied = true
		}
	}
	if !emptied {
		return
	}
	g.over = true
	switch {
	case g.scores[0] > g.scores[1]:
		g.winner = 0
	case g.scores[1] > g.scores[0]:
		g.winner = 1
	default:
		g.winner = -1
	}
}

// ReseedBag replaces the game's bag with a clone reseeded from seed,
// keeping its current contents. Used by the Monte Carlo estimator so
// each playout draws from an independent, reproducible generator.
func (g *GameState) ReseedBag(seed int64) {
	g.bag = g.bag.Clone(seed)
	g.seed = seed
}

// CloneForSimulation deep-copies board, bag, hands, scores, and turn
// state, omitting history - the lightweight clone used by the
// estimator, where history bookkeeping would be wasted work.
func (g *GameState) CloneForSimulation() *GameState {
	c := &GameState{
		board:   g.board.Clone(),
		bag:     g.bag.Clone(g.bag.Seed()),
		current: g.current,
		over:    g.over,
		winner:  g.winner,
		seed:    g.seed,
	}
	for i := range g.hands {
		c.hands[i] = g.hands[i].Clone()
	}
	c.scores = g.scores
	return c
}

// Clone deep-copies the full game state, including history.
func (g *GameState) Clone() *GameState {
	c := g.CloneForSimulation()
	c.history = append([]MoveRecord(nil), g.history...)
	return c
}
