package session_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwirkleio/qwirkle/estimator"
	"github.com/qwirkleio/qwirkle/session"
)

func newTestServer() (*httptest.Server, func()) {
	srv := session.NewServer(estimator.NewParallel(5), nil)
	ts := httptest.NewServer(srv.Mux())
	return ts, ts.Close
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthEndpoint(t *testing.T) {
	ts, closeFn := newTestServer()
	defer closeFn()

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewGameThenGet(t *testing.T) {
	ts, closeFn := newTestServer()
	defer closeFn()

	resp := postJSON(t, ts.URL+"/api/game/new", map[string]any{"seed": 42})
	var created map[string]any
	decode(t, resp, &created)
	require.True(t, created["success"].(bool))
	id := created["game_id"].(string)
	assert.NotEmpty(t, id)
	assert.Len(t, created["hand"].([]any), 6)

	getResp, err := http.Get(ts.URL + "/api/game/" + id)
	require.NoError(t, err)
	var got map[string]any
	decode(t, getResp, &got)
	assert.Equal(t, id, got["game_id"])
}

func TestGetUnknownGameReturns404(t *testing.T) {
	ts, closeFn := newTestServer()
	defer closeFn()

	resp, err := http.Get(ts.URL + "/api/game/does-not-exist")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlayFirstTileAtOrigin(t *testing.T) {
	ts, closeFn := newTestServer()
	defer closeFn()

	newResp := postJSON(t, ts.URL+"/api/game/new", map[string]any{"seed": 42})
	var created map[string]any
	decode(t, newResp, &created)
	id := created["game_id"].(string)

	playResp := postJSON(t, ts.URL+"/api/game/"+id+"/play", map[string]any{
		"placements": []map[string]any{{"row": 0, "col": 0, "tile_index": 1}},
	})
	var played map[string]any
	decode(t, playResp, &played)
	assert.True(t, played["success"].(bool))
	assert.Equal(t, float64(1), played["scores"].([]any)[0])
}

func TestPlayInvalidPlacementReportsInvalidMove(t *testing.T) {
	ts, closeFn := newTestServer()
	defer closeFn()

	newResp := postJSON(t, ts.URL+"/api/game/new", map[string]any{"seed": 42})
	var created map[string]any
	decode(t, newResp, &created)
	id := created["game_id"].(string)

	playResp := postJSON(t, ts.URL+"/api/game/"+id+"/play", map[string]any{
		"placements": []map[string]any{{"row": 5, "col": 5, "tile_index": 1}},
	})
	var played map[string]any
	decode(t, playResp, &played)
	assert.False(t, played["success"].(bool))
	assert.Equal(t, "Invalid move", played["message"])
}

func TestSwapWithNoIndicesFails(t *testing.T) {
	ts, closeFn := newTestServer()
	defer closeFn()

	newResp := postJSON(t, ts.URL+"/api/game/new", map[string]any{"seed": 1})
	var created map[string]any
	decode(t, newResp, &created)
	id := created["game_id"].(string)

	swapResp := postJSON(t, ts.URL+"/api/game/"+id+"/swap", map[string]any{"indices": []int{}})
	var result map[string]any
	decode(t, swapResp, &result)
	assert.False(t, result["success"].(bool))
	assert.Equal(t, "Cannot swap tiles", result["message"])
}

func TestHintReturnsOriginMoveOnEmptyBoard(t *testing.T) {
	ts, closeFn := newTestServer()
	defer closeFn()

	newResp := postJSON(t, ts.URL+"/api/game/new", map[string]any{"seed": 1})
	var created map[string]any
	decode(t, newResp, &created)
	id := created["game_id"].(string)

	hintResp, err := http.Get(ts.URL + "/api/game/" + id + "/hint")
	require.NoError(t, err)
	var hint map[string]any
	decode(t, hintResp, &hint)
	assert.True(t, hint["success"].(bool))
	placements := hint["placements"].([]any)
	require.Len(t, placements, 3)
	first := placements[0].(map[string]any)
	assert.Equal(t, float64(0), first["row"])
	assert.Equal(t, float64(0), first["col"])
}

func TestWinProbabilitySumsToOne(t *testing.T) {
	ts, closeFn := newTestServer()
	defer closeFn()

	newResp := postJSON(t, ts.URL+"/api/game/new", map[string]any{"seed": 9})
	var created map[string]any
	decode(t, newResp, &created)
	id := created["game_id"].(string)

	wpResp, err := http.Get(ts.URL + "/api/game/" + id + "/win-probability")
	require.NoError(t, err)
	var wp map[string]any
	decode(t, wpResp, &wp)
	assert.True(t, wp["success"].(bool))
	total := wp["p0_prob"].(float64) + wp["p1_prob"].(float64) + wp["tie_prob"].(float64)
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestAIStepAdvancesVsAIGame(t *testing.T) {
	ts, closeFn := newTestServer()
	defer closeFn()

	newResp := postJSON(t, ts.URL+"/api/game/new", map[string]any{"seed": 5, "vs_ai": true, "ai_strategy": "greedy"})
	var created map[string]any
	decode(t, newResp, &created)
	id := created["game_id"].(string)

	stepResp := postJSON(t, ts.URL+"/api/game/"+id+"/ai-step", map[string]any{})
	var stepped map[string]any
	decode(t, stepResp, &stepped)
	assert.True(t, stepped["success"].(bool))
}
