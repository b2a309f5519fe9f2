package card

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCards(t *testing.T, names ...string) []*Card {
	t.Helper()
	require.NoError(t, InitLibrary())

	cards := make([]*Card, 0, len(names))
	for _, name := range names {
		cards = append(cards, MustGet(name))
	}
	return cards
}

func pileNames(p *Pile) []string {
	names := make([]string, 0, p.Size())
	for _, c := range p.Snapshot() {
		names = append(names, c.Name)
	}
	return names
}

func TestPileDrawTopFollowsOrder(t *testing.T) {
	cards := testCards(t, "Copper", "Estate", "Village")

	var p Pile
	for _, c := range cards {
		p.Add(c)
	}

	for _, want := range []string{"Copper", "Estate", "Village"} {
		got, err := p.DrawTop()
		require.NoError(t, err)
		assert.Equal(t, want, got.Name)
	}
	assert.Equal(t, 0, p.Size())
}

func TestPileDrawTopEmptyFails(t *testing.T) {
	var p Pile
	_, err := p.DrawTop()
	assert.Error(t, err)
}

func TestPileSizeNilSafe(t *testing.T) {
	var p *Pile
	assert.Equal(t, 0, p.Size())
}

func TestPileShuffleIsDeterministicBySeed(t *testing.T) {
	cards := testCards(t, "Copper", "Silver", "Gold", "Estate", "Duchy", "Province", "Curse")

	var a, b Pile
	for _, c := range cards {
		a.Add(c)
		b.Add(c)
	}

	a.Shuffle(rand.New(rand.NewPCG(42, 42)))
	b.Shuffle(rand.New(rand.NewPCG(42, 42)))

	assert.Equal(t, pileNames(&a), pileNames(&b))
}

func TestPileShuffleConservesCards(t *testing.T) {
	cards := testCards(t, "Copper", "Silver", "Gold", "Estate", "Duchy")

	var p Pile
	for _, c := range cards {
		p.Add(c)
	}

	p.Shuffle(rand.New(rand.NewPCG(7, 7)))

	assert.Equal(t, len(cards), p.Size())
	assert.ElementsMatch(t, []string{"Copper", "Silver", "Gold", "Estate", "Duchy"}, pileNames(&p))
}

func TestPileAddAllMovesAndEmptiesSource(t *testing.T) {
	cards := testCards(t, "Copper", "Estate")

	var dst, src Pile
	dst.Add(cards[0])
	src.Add(cards[1])
	src.Add(cards[1])

	dst.AddAll(&src)

	assert.Equal(t, 0, src.Size())
	assert.Equal(t, []string{"Copper", "Estate", "Estate"}, pileNames(&dst))
}

func TestPileSnapshotCopiesContainer(t *testing.T) {
	cards := testCards(t, "Copper", "Estate")

	var p Pile
	p.Add(cards[0])
	p.Add(cards[1])

	snap := p.Snapshot()
	_, err := p.DrawTop()
	require.NoError(t, err)

	// O snapshot não encolhe junto com a pilha.
	assert.Len(t, snap, 2)
	assert.Equal(t, "Copper", snap[0].Name)
}
