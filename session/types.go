package session

import "github.com/qwirkleio/qwirkle/tile"

// tileJSON is the wire shape of a Tile: two small integers, matching
// §6's "shape 0..5 / color 0..5" encoding.
type tileJSON struct {
	Shape int `json:"shape"`
	Color int `json:"color"`
}

func tileToJSON(t tile.Tile) tileJSON {
	return tileJSON{Shape: int(t.Shape), Color: int(t.Color)}
}

// newGameRequest is the POST /api/game/new body.
type newGameRequest struct {
	VsAI       bool   `json:"vs_ai"`
	AIStrategy string `json:"ai_strategy"`
	AIVsAI     bool   `json:"ai_vs_ai"`
	Seed       int64  `json:"seed"`
}

// placementJSON carries a 1-based hand slot per §6's boundary convention.
type placementJSON struct {
	Row       int `json:"row"`
	Col       int `json:"col"`
	TileIndex int `json:"tile_index"`
}

type playRequest struct {
	Placements []placementJSON `json:"placements"`
}

type swapRequest struct {
	Indices []int `json:"indices"` // 1-based
}

// stateResponse is the State JSON described in §6, returned from
// every endpoint that reports game state.
type stateResponse struct {
	Success            bool                `json:"success"`
	Message            string              `json:"message,omitempty"`
	GameID             string              `json:"game_id"`
	Board              map[string]tileJSON `json:"board"`
	Hand               []tileJSON          `json:"hand"`
	CurrentPlayer      int                 `json:"current_player"`
	Scores             [2]int              `json:"scores"`
	BagRemaining       int                 `json:"bag_remaining"`
	GameOver           bool                `json:"game_over"`
	Winner             *int                `json:"winner"`
	LastMovePositions  [][2]int            `json:"last_move_positions"`
}

type hintResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Placements []placementJSON `json:"placements,omitempty"`
	Score      int             `json:"score,omitempty"`
}

type winProbabilityResponse struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message,omitempty"`
	P0Prob     float64 `json:"p0_prob"`
	P1Prob     float64 `json:"p1_prob"`
	TieProb    float64 `json:"tie_prob"`
	N          int     `json:"n_simulations"`
	Confidence float64 `json:"confidence"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
