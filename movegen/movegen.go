// Package movegen enumerates every valid move available to the
// current player, plus a fast single-tile-only variant used by the
// Monte Carlo estimator's playout loop.
package movegen

import (
	"math/bits"
	"sort"

	"github.com/qwirkleio/qwirkle/board"
	"github.com/qwirkleio/qwirkle/move"
	"github.com/qwirkleio/qwirkle/rules"
	"github.com/qwirkleio/qwirkle/tile"
)

// qwirkleScore is the minimum score a move scoring a completed
// six-tile line can have (6 for the line + the 6-point bonus).
const qwirkleScore = 12

// GenerateAllMoves enumerates every valid move for handTiles against
// b, sorted by score descending. Subsets of the hand are enumerated
// from larger to smaller (larger subsets tend to score higher,
// improving early-termination headroom); each subset is pre-filtered
// with CanFormValidLine before any placement is attempted, and
// enumeration stops once a Qwirkle (score >= 12) has been found.
// A multi-tile move is tried only as a run of empty cells that starts at
// a candidate position and extends right or down; runs that start at a
// non-candidate cell, or that span tiles already on the board, are not
// generated.
func GenerateAllMoves(b *board.Board, handTiles []tile.Tile) []move.Move {
	n := len(handTiles)
	if n == 0 {
		return nil
	}
	candidates := b.CandidatePositions()

	masksBySize := make([][]int, n+1)
	for mask := 1; mask < (1 << n); mask++ {
		size := bits.OnesCount(uint(mask))
		masksBySize[size] = append(masksBySize[size], mask)
	}

	var moves []move.Move
	qwirkleFound := false

outer:
	for size := n; size >= 1; size-- {
		for _, mask := range masksBySize[size] {
			subset := subsetTiles(handTiles, mask)
			if !rules.CanFormValidLine(subset) {
				continue
			}
			var found bool
			if size == 1 {
				moves, found = generateSingleTileMoves(b, subset[0], candidates, moves)
			} else {
				moves, found = generateMultiTileMoves(b, subset, candidates, moves)
			}
			if found {
				qwirkleFound = true
				break outer
			}
		}
	}
	_ = qwirkleFound

	sort.Slice(moves, func(i, j int) bool { return moves[i].Score > moves[j].Score })
	return moves
}

// GenerateFastMove enumerates only single-tile placements: every
// (tile, candidate position) pair, validated with the single-tile
// fast path. It is O(hand x candidates), with no subset enumeration
// and no permutations. The estimator's playout loop calls it only when
// GenerateAllMoves returns no move.
func GenerateFastMove(b *board.Board, handTiles []tile.Tile) (move.Move, bool) {
	candidates := b.CandidatePositions()
	var best move.Move
	found := false
	for _, t := range handTiles {
		for _, c := range candidates {
			if !rules.ValidSinglePlacement(b, c, t) {
				continue
			}
			placements := []move.Placement{{Pos: c, Tile: t}}
			b.Set(c, t)
			score := rules.Score(b, placements)
			b.Remove(c)
			if !found || score > best.Score {
				best = move.NewMove(placements, score)
				found = true
			}
		}
	}
	return best, found
}

func subsetTiles(handTiles []tile.Tile, mask int) []tile.Tile {
	out := make([]tile.Tile, 0, bits.OnesCount(uint(mask)))
	for i, t := range handTiles {
		if mask&(1<<i) != 0 {
			out = append(out, t)
		}
	}
	return out
}

// generateSingleTileMoves returns moves appended to moves and whether
// any move found scored a Qwirkle.
func generateSingleTileMoves(b *board.Board, t tile.Tile, candidates []move.Position, moves []move.Move) ([]move.Move, bool) {
	qwirkle := false
	for _, c := range candidates {
		if !rules.ValidSinglePlacement(b, c, t) {
			continue
		}
		placements := []move.Placement{{Pos: c, Tile: t}}
		b.Set(c, t)
		score := rules.Score(b, placements)
		b.Remove(c)
		moves = append(moves, move.NewMove(placements, score))
		if score >= qwirkleScore {
			qwirkle = true
		}
	}
	return moves, qwirkle
}

// generateMultiTileMoves tries every deduplicated permutation of
// subset as a horizontal or vertical run starting at each candidate
// position, skipping immediately if any target cell is occupied.
func generateMultiTileMoves(b *board.Board, subset []tile.Tile, candidates []move.Position, moves []move.Move) ([]move.Move, bool) {
	qwirkle := false
	perms := uniquePermutations(subset)
	m := len(subset)

	for _, c := range candidates {
		for _, axis := range [2]rules.Axis{rules.Horizontal, rules.Vertical} {
			for _, perm := range perms {
				placements := make([]move.Placement, m)
				occupied := false
				for i := 0; i < m; i++ {
					var p move.Position
					if axis == rules.Horizontal {
						p = move.Position{Row: c.Row, Col: c.Col + i}
					} else {
						p = move.Position{Row: c.Row + i, Col: c.Col}
					}
					if b.Has(p) {
						occupied = true
						break
					}
					placements[i] = move.Placement{Pos: p, Tile: perm[i]}
				}
				if occupied {
					continue
				}
				if err := rules.ValidateMove(b, placements); err != nil {
					continue
				}
				for _, p := range placements {
					b.Set(p.Pos, p.Tile)
				}
				score := rules.Score(b, placements)
				for _, p := range placements {
					b.Remove(p.Pos)
				}
				moves = append(moves, move.NewMove(placements, score))
				if score >= qwirkleScore {
					qwirkle = true
				}
			}
		}
	}
	return moves, qwirkle
}

// uniquePermutations returns every distinct permutation of tiles,
// collapsing equal permutations (common with duplicate tile values in
// a hand) via a base-36 positional hash over dense tile indices.
func uniquePermutations(tiles []tile.Tile) [][]tile.Tile {
	n := len(tiles)
	used := make([]bool, n)
	cur := make([]tile.Tile, 0, n)
	seen := make(map[int64]bool)
	var result [][]tile.Tile

	var rec func()
	rec = func() {
		if len(cur) == n {
			var key int64
			mul := int64(1)
			for _, t := range cur {
				key += int64(t.Index()) * mul
				mul *= 36
			}
			if !seen[key] {
				seen[key] = true
				result = append(result, append([]tile.Tile(nil), cur...))
			}
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, tiles[i])
			rec()
			cur = cur[:len(cur)-1]
			used[i] = false
		}
	}
	rec()
	return result
}
