package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/qwirkleio/qwirkle/estimator"
	"github.com/qwirkleio/qwirkle/game"
	"github.com/qwirkleio/qwirkle/hand"
	"github.com/qwirkleio/qwirkle/internal/notify"
	"github.com/qwirkleio/qwirkle/internal/transcript"
	"github.com/qwirkleio/qwirkle/move"
	"github.com/qwirkleio/qwirkle/movegen"
	"github.com/qwirkleio/qwirkle/solver"
)

// humanPlayer is the convention used throughout the façade: in a
// vs-AI game, player 0 is always the human and player 1 the AI. The
// state JSON's single "hand" field reports player 0's hand.
const humanPlayer = 0

// Server wires the registry, the default estimator, and an optional
// notification bus into the HTTP handlers described in §6.
type Server struct {
	registry  *Registry
	estimator estimator.Estimator
	bus       *notify.Bus

	defaultStrategy string
	scriptSource    string
}

// NewServer builds a Server. bus may be nil to disable notifications.
// New games default to the greedy strategy until SetDefaultStrategy
// is called.
func NewServer(est estimator.Estimator, bus *notify.Bus) *Server {
	return &Server{registry: NewRegistry(), estimator: est, bus: bus, defaultStrategy: "greedy"}
}

// SetDefaultStrategy configures the AI strategy new games use when a
// request omits ai_strategy, per cfg.SolverStrategy/cfg.ScriptPath.
// scriptSource is the loaded Lua source used when name is "scripted";
// it is ignored otherwise.
func (s *Server) SetDefaultStrategy(name, scriptSource string) {
	if name != "" {
		s.defaultStrategy = name
	}
	s.scriptSource = scriptSource
}

// solverFor builds the Solver for strategy name, threading the
// server's configured Lua source through for "scripted".
func (s *Server) solverFor(name string, seed int64) solver.Solver {
	return solver.SolverByNameWithScript(name, seed, s.scriptSource)
}

// Mux builds the *http.ServeMux routing every endpoint in §6.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/game/new", s.handleNewGame)
	mux.HandleFunc("GET /api/game/{id}", s.handleGetGame)
	mux.HandleFunc("POST /api/game/{id}/play", s.handlePlay)
	mux.HandleFunc("POST /api/game/{id}/swap", s.handleSwap)
	mux.HandleFunc("GET /api/game/{id}/hint", s.handleHint)
	mux.HandleFunc("POST /api/game/{id}/ai-step", s.handleAIStep)
	mux.HandleFunc("GET /api/game/{id}/win-probability", s.handleWinProbability)
	mux.HandleFunc("GET /api/game/{id}/transcript", s.handleTranscript)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("session: failed encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.AIStrategy == "" {
		req.AIStrategy = s.defaultStrategy
	}

	e := &entry{
		state:      game.NewGame(req.Seed),
		vsAI:       req.VsAI,
		aiVsAI:     req.AIVsAI,
		aiStrategy: req.AIStrategy,
		aiSolver:   s.solverFor(req.AIStrategy, req.Seed),
	}
	id := s.registry.create(e)

	e.mu.RLock()
	resp := buildStateResponse(id, e)
	e.mu.RUnlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e, ok := s.registry.lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game id")
		return
	}
	e.mu.RLock()
	resp := buildStateResponse(id, e)
	e.mu.RUnlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e, ok := s.registry.lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game id")
		return
	}

	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.IsOver() {
		writeJSON(w, http.StatusOK, errorResponse{Success: false, Message: "game is over"})
		return
	}

	placements, err := toPlacements(e.state, req.Placements)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	player := e.state.CurrentPlayer()
	score, err := e.state.PlayTiles(placements)
	if err != nil {
		writeJSON(w, http.StatusOK, errorResponse{Success: false, Message: "Invalid move"})
		return
	}
	e.lastMove = positionsOf(placements)
	s.notifyMove(r, id, player, false, 0, score)

	s.maybeStepAI(r, id, e)

	writeJSON(w, http.StatusOK, buildStateResponse(id, e))
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e, ok := s.registry.lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game id")
		return
	}

	var req swapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.IsOver() {
		writeJSON(w, http.StatusOK, errorResponse{Success: false, Message: "game is over"})
		return
	}

	indices := make([]int, len(req.Indices))
	for i, idx := range req.Indices {
		indices[i] = idx - 1
	}

	player := e.state.CurrentPlayer()
	if !e.state.SwapTiles(indices) {
		writeJSON(w, http.StatusOK, errorResponse{Success: false, Message: "Cannot swap tiles"})
		return
	}
	e.lastMove = nil
	s.notifyMove(r, id, player, true, len(indices), 0)

	s.maybeStepAI(r, id, e)

	writeJSON(w, http.StatusOK, buildStateResponse(id, e))
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e, ok := s.registry.lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game id")
		return
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.state.IsOver() {
		writeJSON(w, http.StatusOK, hintResponse{Success: false, Message: "game is over"})
		return
	}

	hand := e.state.CurrentHand()
	moves := movegen.GenerateAllMoves(e.state.Board(), hand.TilesUnsafe())
	if len(moves) == 0 {
		writeJSON(w, http.StatusOK, hintResponse{Success: false, Message: "no legal move"})
		return
	}
	best := moves[0]
	writeJSON(w, http.StatusOK, hintResponse{
		Success:    true,
		Placements: toPlacementJSON(hand, best),
		Score:      best.Score,
	})
}

func (s *Server) handleAIStep(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e, ok := s.registry.lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game id")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.IsOver() {
		writeJSON(w, http.StatusOK, errorResponse{Success: false, Message: "game is over"})
		return
	}
	s.stepAI(r, id, e)
	writeJSON(w, http.StatusOK, buildStateResponse(id, e))
}

func (s *Server) handleWinProbability(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e, ok := s.registry.lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game id")
		return
	}

	e.mu.RLock()
	snapshot := e.state.Clone()
	e.mu.RUnlock()

	res, err := s.estimator.Estimate(r.Context(), snapshot)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, winProbabilityResponse{
		Success:    true,
		P0Prob:     res.WinProb0,
		P1Prob:     res.WinProb1,
		TieProb:    res.TieProb,
		N:          res.N,
		Confidence: res.Confidence,
	})
}

// handleTranscript renders the game's move history as the line-oriented
// transcript format from internal/transcript, for exporting/archiving
// a finished or in-progress game.
func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e, ok := s.registry.lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game id")
		return
	}

	e.mu.RLock()
	history := e.state.History()
	e.mu.RUnlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := transcript.Write(w, history); err != nil {
		log.Error().Err(err).Str("game_id", id).Msg("session: failed writing transcript")
	}
}

// maybeStepAI runs exactly one AI move when the game is in vs-AI mode
// and it is now the AI's (non-human) turn, per §6's "if successful
// and mode is human-vs-AI and the AI now has the turn" rule.
func (s *Server) maybeStepAI(r *http.Request, id string, e *entry) {
	if !e.vsAI || e.state.IsOver() || e.state.CurrentPlayer() == humanPlayer {
		return
	}
	s.stepAI(r, id, e)
}

// stepAI plays exactly one AI move for whichever player currently has
// the turn, falling back to swapping slot 0 when no legal move exists
// per §7's "never surfaced as an error" recovery.
func (s *Server) stepAI(r *http.Request, id string, e *entry) {
	if e.state.IsOver() {
		return
	}
	player := e.state.CurrentPlayer()
	hand := e.state.CurrentHand()
	moves := movegen.GenerateAllMoves(e.state.Board(), hand.TilesUnsafe())
	if chosen, ok := e.aiSolver.SelectMove(e.state, moves); ok {
		e.state.PlayTilesPrevalidated(chosen.Placements, chosen.Score)
		e.lastMove = positionsOf(chosen.Placements)
		s.notifyMove(r, id, player, false, 0, chosen.Score)
		return
	}
	if hand.Size() > 0 && e.state.SwapTiles([]int{0}) {
		e.lastMove = nil
		s.notifyMove(r, id, player, true, 1, 0)
	}
}

func (s *Server) notifyMove(r *http.Request, id string, player int, swap bool, swapCount, score int) {
	if s.bus == nil {
		return
	}
	event := notify.MoveEvent{GameID: id, Player: player, Swap: swap, SwapCount: swapCount, Score: score}
	if err := s.bus.Publish(r.Context(), id, event); err != nil {
		log.Warn().Err(err).Str("game_id", id).Msg("session: move notification failed")
	}
}

func toPlacements(state *game.GameState, in []placementJSON) ([]move.Placement, error) {
	hand := state.CurrentHand()
	tiles := hand.TilesUnsafe()
	out := make([]move.Placement, len(in))
	for i, p := range in {
		slot := p.TileIndex - 1
		if slot < 0 || slot >= len(tiles) {
			return nil, fmt.Errorf("invalid slot index %d", p.TileIndex)
		}
		out[i] = move.Placement{Pos: move.Position{Row: p.Row, Col: p.Col}, Tile: tiles[slot]}
	}
	return out, nil
}

// toPlacementJSON reports each placement's hand slot as a 1-based
// index, matched by tile value against the hand the move was drawn
// from.
func toPlacementJSON(hand *hand.Hand, m move.Move) []placementJSON {
	out := make([]placementJSON, len(m.Placements))
	for i, p := range m.Placements {
		out[i] = placementJSON{Row: p.Pos.Row, Col: p.Pos.Col, TileIndex: hand.IndexOf(p.Tile) + 1}
	}
	return out
}

func positionsOf(placements []move.Placement) [][2]int {
	out := make([][2]int, len(placements))
	for i, p := range placements {
		out[i] = [2]int{p.Pos.Row, p.Pos.Col}
	}
	return out
}

func buildStateResponse(id string, e *entry) stateResponse {
	b := e.state.Board()
	boardJSON := make(map[string]tileJSON)
	for _, pos := range b.Positions() {
		t, _ := b.Get(pos)
		boardJSON[fmt.Sprintf("%d,%d", pos.Row, pos.Col)] = tileToJSON(t)
	}

	handTiles := e.state.Hand(humanPlayer).TilesUnsafe()
	handJSON := make([]tileJSON, len(handTiles))
	for i, t := range handTiles {
		handJSON[i] = tileToJSON(t)
	}

	scores := e.state.Scores()
	var winner *int
	if w, ok := e.state.Winner(); ok {
		winner = &w
	}

	return stateResponse{
		Success:           true,
		GameID:            id,
		Board:             boardJSON,
		Hand:              handJSON,
		CurrentPlayer:     e.state.CurrentPlayer(),
		Scores:            scores,
		BagRemaining:      e.state.Bag().Remaining(),
		GameOver:          e.state.IsOver(),
		Winner:            winner,
		LastMovePositions: e.lastMove,
	}
}
