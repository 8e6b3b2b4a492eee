// Command wasm exposes the engine to a browser UI via syscall/js: a
// single local GameState, driven by JSON-in/JSON-out callbacks
// registered on a global object, the way a client-side board renderer
// expects to call into compiled Go.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/qwirkleio/qwirkle/game"
	"github.com/qwirkleio/qwirkle/move"
	"github.com/qwirkleio/qwirkle/movegen"
	"github.com/qwirkleio/qwirkle/tile"
)

var current *game.GameState

var errCannotSwap = errors.New("cannot swap tiles")

type wasmTile struct {
	Shape int `json:"shape"`
	Color int `json:"color"`
}

type wasmPlacement struct {
	Row  int      `json:"row"`
	Col  int      `json:"col"`
	Tile wasmTile `json:"tile"`
}

type wasmState struct {
	Success       bool                `json:"success"`
	Board         map[string]wasmTile `json:"board"`
	Hand          []wasmTile          `json:"hand"`
	CurrentPlayer int                 `json:"current_player"`
	Scores        [2]int              `json:"scores"`
	GameOver      bool                `json:"game_over"`
	Winner        *int                `json:"winner"`
}

func tileFromWasm(t wasmTile) tile.Tile {
	return tile.New(tile.Shape(t.Shape), tile.Color(t.Color))
}

func stateJSON() string {
	b := current.Board()
	boardOut := make(map[string]wasmTile)
	for _, pos := range b.Positions() {
		t, _ := b.Get(pos)
		boardOut[fmt.Sprintf("%d,%d", pos.Row, pos.Col)] = wasmTile{Shape: int(t.Shape), Color: int(t.Color)}
	}
	handTiles := current.CurrentHand().TilesUnsafe()
	handOut := make([]wasmTile, len(handTiles))
	for i, t := range handTiles {
		handOut[i] = wasmTile{Shape: int(t.Shape), Color: int(t.Color)}
	}
	var winner *int
	if w, ok := current.Winner(); ok {
		winner = &w
	}
	out, _ := json.Marshal(wasmState{
		Success:       true,
		Board:         boardOut,
		Hand:          handOut,
		CurrentPlayer: current.CurrentPlayer(),
		Scores:        current.Scores(),
		GameOver:      current.IsOver(),
		Winner:        winner,
	})
	return string(out)
}

func errorJSON(err error) string {
	out, _ := json.Marshal(map[string]any{"success": false, "message": err.Error()})
	return string(out)
}

func newGame(this js.Value, args []js.Value) interface{} {
	seed := int64(0)
	if len(args) > 0 {
		seed = int64(args[0].Float())
	}
	current = game.NewGame(seed)
	return stateJSON()
}

func getState(this js.Value, args []js.Value) interface{} {
	return stateJSON()
}

func playTiles(this js.Value, args []js.Value) interface{} {
	var in []wasmPlacement
	if err := json.Unmarshal([]byte(args[0].String()), &in); err != nil {
		return errorJSON(err)
	}
	placements := make([]move.Placement, len(in))
	for i, p := range in {
		placements[i] = move.Placement{
			Pos:  move.Position{Row: p.Row, Col: p.Col},
			Tile: tileFromWasm(p.Tile),
		}
	}
	if _, err := current.PlayTiles(placements); err != nil {
		return errorJSON(err)
	}
	return stateJSON()
}

func swapTiles(this js.Value, args []js.Value) interface{} {
	var indices []int
	if err := json.Unmarshal([]byte(args[0].String()), &indices); err != nil {
		return errorJSON(err)
	}
	if !current.SwapTiles(indices) {
		return errorJSON(errCannotSwap)
	}
	return stateJSON()
}

func hint(this js.Value, args []js.Value) interface{} {
	moves := movegen.GenerateAllMoves(current.Board(), current.CurrentHand().TilesUnsafe())
	if len(moves) == 0 {
		out, _ := json.Marshal(map[string]any{"success": false})
		return string(out)
	}
	out, _ := json.Marshal(map[string]any{"success": true, "score": moves[0].Score})
	return string(out)
}

func registerCallbacks() {
	js.Global().Get("qwirkleEngine").Invoke(map[string]interface{}{
		"newGame":   js.FuncOf(newGame),
		"getState":  js.FuncOf(getState),
		"playTiles": js.FuncOf(playTiles),
		"swapTiles": js.FuncOf(swapTiles),
		"hint":      js.FuncOf(hint),
	})
}

func main() {
	current = game.NewGame(0)
	registerCallbacks()
	select {}
}
