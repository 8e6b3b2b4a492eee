package solver

import (
	"math"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/qwirkleio/qwirkle/game"
	"github.com/qwirkleio/qwirkle/move"
)

// Scripted ranks moves by calling a user-supplied Lua function
// `score_move(score, tiles_played, row, col) -> number` once per
// candidate, then picks the highest-ranked. This lets a script prefer
// things the built-in strategies can't express, like board-center
// bias or avoiding a particular color.
type Scripted struct {
	state    *lua.LState
	fallback *Greedy
}

// NewScripted loads script from source text. If the script fails to
// load or does not define score_move, Scripted falls back to greedy
// behavior for every call rather than erroring the whole game.
func NewScripted(source string) *Scripted {
	s := &Scripted{fallback: NewGreedy()}
	L := lua.NewState()
	if err := L.DoString(source); err != nil {
		log.Warn().Err(err).Msg("scripted solver: script load failed, falling back to greedy")
		L.Close()
		return s
	}
	s.state = L
	return s
}

func (s *Scripted) Name() string { return "scripted" }

// Close releases the embedded Lua interpreter. Callers that construct
// one-off Scripted solvers per game should defer Close.
func (s *Scripted) Close() {
	if s.state != nil {
		s.state.Close()
	}
}

func (s *Scripted) SelectMove(state *game.GameState, moves []move.Move) (move.Move, bool) {
	if len(moves) == 0 {
		return move.Move{}, false
	}
	if s.state == nil {
		return s.fallback.SelectMove(state, moves)
	}

	fn := s.state.GetGlobal("score_move")
	if fn.Type() != lua.LTFunction {
		return s.fallback.SelectMove(state, moves)
	}

	best := moves[0]
	bestScore := -math.MaxFloat64
	found := false
	for _, m := range moves {
		row, col := 0, 0
		if len(m.Placements) > 0 {
			row, col = m.Placements[0].Pos.Row, m.Placements[0].Pos.Col
		}
		if err := s.state.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
			lua.LNumber(m.Score), lua.LNumber(m.TilesPlayed()), lua.LNumber(row), lua.LNumber(col),
		); err != nil {
			log.Warn().Err(err).Msg("scripted solver: call failed, skipping candidate")
			continue
		}
		ret := s.state.Get(-1)
		s.state.Pop(1)
		num, ok := ret.(lua.LNumber)
		if !ok {
			continue
		}
		if !found || float64(num) > bestScore {
			bestScore = float64(num)
			best = m
			found = true
		}
	}
	if !found {
		return s.fallback.SelectMove(state, moves)
	}
	return best, true
}
