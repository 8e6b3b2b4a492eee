package bag

import (
	"testing"

	"github.com/matryer/is"

	"github.com/qwirkleio/qwirkle/tile"
)

func TestNewBagHasFullMultiset(t *testing.T) {
	is := is.New(t)
	b := New(42)
	is.Equal(b.Remaining(), Size)

	counts := make(map[int]int)
	for _, tl := range b.tiles {
		counts[tl.Index()]++
	}
	is.Equal(len(counts), tile.NumTiles)
	for idx := 0; idx < tile.NumTiles; idx++ {
		is.Equal(counts[idx], CopiesPerTile)
	}
}

func TestDraw(t *testing.T) {
	is := is.New(t)
	b := New(42)

	drawn := b.Draw(6)
	is.Equal(len(drawn), 6)
	is.Equal(b.Remaining(), Size-6)
}

func TestDrawMoreThanRemaining(t *testing.T) {
	is := is.New(t)
	b := New(1)
	b.Draw(Size - 2)
	is.Equal(b.Remaining(), 2)

	drawn := b.Draw(7)
	is.Equal(len(drawn), 2)
	is.True(b.IsEmpty())

	drawn = b.Draw(7)
	is.Equal(len(drawn), 0)
}

func TestReturnReshufflesAndConserves(t *testing.T) {
	is := is.New(t)
	b := New(7)
	drawn := b.Draw(10)
	is.Equal(b.Remaining(), Size-10)

	b.Return(drawn)
	is.Equal(b.Remaining(), Size)

	counts := make(map[int]int)
	for _, tl := range b.tiles {
		counts[tl.Index()]++
	}
	for idx := 0; idx < tile.NumTiles; idx++ {
		is.Equal(counts[idx], CopiesPerTile)
	}
}

func TestDeterministicForFixedSeed(t *testing.T) {
	is := is.New(t)
	a := New(1234)
	b := New(1234)

	da := a.Draw(20)
	db := b.Draw(20)
	is.Equal(da, db)

	a.Return(da[:5])
	b.Return(db[:5])
	is.Equal(a.Draw(50), b.Draw(50))
}

func TestCloneReseeds(t *testing.T) {
	is := is.New(t)
	orig := New(1)
	orig.Draw(30)

	c1 := orig.Clone(100)
	c2 := orig.Clone(200)

	is.Equal(c1.Remaining(), orig.Remaining())
	is.Equal(c2.Remaining(), orig.Remaining())
	is.Equal(c1.Seed(), int64(100))
	is.Equal(c2.Seed(), int64(200))
	is.True(c1.Draw(Size) != nil)
}

func TestZeroSeedIsTimeDerived(t *testing.T) {
	is := is.New(t)
	a := New(0)
	is.True(a.Seed() != 0)
}
