// Package bag implements the 108-tile Qwirkle bag: a shuffled
// multiset with a seeded, reproducible pseudo-random generator.
package bag

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/qwirkleio/qwirkle/tile"
)

// CopiesPerTile is the number of copies of each of the 36 unique
// tiles that make up a full bag.
const CopiesPerTile = 3

// Size is the total number of tiles in a full bag (36 * 3).
const Size = tile.NumTiles * CopiesPerTile

// Bag is a shuffled multiset of tiles together with the seeded
// generator that produced (and will continue to produce) its order.
//
// A Bag is owned exclusively by the GameState it belongs to and is
// never shared across goroutines; clones reseed their own generator
// explicitly (see Clone).
type Bag struct {
	tiles []tile.Tile
	seed  int64
	rng   *rand.Rand
}

// New builds a full 108-tile bag and Fisher-Yates shuffles it with a
// generator seeded from seed. A seed of 0 derives one from the current
// time, matching the teacher's "seed 0 means use a time-derived seed"
// convention (see mechanics.go's crypto-seeded init).
func New(seed int64) *Bag {
	if seed == 0 {
		seed = deriveSeed()
	}
	b := &Bag{
		tiles: make([]tile.Tile, 0, Size),
		seed:  seed,
		rng:   rand.New(rand.NewSource(seed)),
	}
	for idx := 0; idx < tile.NumTiles; idx++ {
		t := tile.FromIndex(idx)
		for c := 0; c < CopiesPerTile; c++ {
			b.tiles = append(b.tiles, t)
		}
	}
	b.shuffle()
	log.Debug().Int64("seed", seed).Int("size", len(b.tiles)).Msg("bag initialized")
	return b
}

func (b *Bag) shuffle() {
	b.rng.Shuffle(len(b.tiles), func(i, j int) {
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	})
}

// Seed returns the seed this bag's generator was constructed with.
// Used by the Monte Carlo estimator to derive independent per-playout
// seeds as seed + simIndex + 1.
func (b *Bag) Seed() int64 {
	return b.seed
}

// Draw removes and returns the first min(n, Remaining()) tiles.
func (b *Bag) Draw(n int) []tile.Tile {
	if n > len(b.tiles) {
		n = len(b.tiles)
	}
	drawn := append([]tile.Tile(nil), b.tiles[:n]...)
	b.tiles = b.tiles[n:]
	return drawn
}

// Return appends tiles back to the bag and fully reshuffles, making
// the returned tiles' positions untraceable.
func (b *Bag) Return(tiles []tile.Tile) {
	if len(tiles) == 0 {
		return
	}
	b.tiles = append(b.tiles, tiles...)
	b.shuffle()
}

// Remaining returns the number of tiles still in the bag.
func (b *Bag) Remaining() int {
	return len(b.tiles)
}

// IsEmpty reports whether the bag has no tiles left.
func (b *Bag) IsEmpty() bool {
	return len(b.tiles) == 0
}

// Clone duplicates the bag's contents but reseeds the generator with
// newSeed, matching the estimator's requirement that each simulated
// playout runs against an independent, reproducible generator.
func (b *Bag) Clone(newSeed int64) *Bag {
	return &Bag{
		tiles: append([]tile.Tile(nil), b.tiles...),
		seed:  newSeed,
		rng:   rand.New(rand.NewSource(newSeed)),
	}
}

// CopyFrom overwrites b's contents and seed bookkeeping from other,
// without touching other. Used by in-place state restores where
// allocating a fresh Bag would defeat the purpose.
func (b *Bag) CopyFrom(other *Bag) {
	b.tiles = append(b.tiles[:0], other.tiles...)
	b.seed = other.seed
}

func (b *Bag) String() string {
	return fmt.Sprintf("Bag{remaining=%d seed=%d}", len(b.tiles), b.seed)
}

func deriveSeed() int64 {
	return time.Now().UnixNano()
}
