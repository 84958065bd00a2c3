package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func makeCards(n int) []*Card {
	u := NewUnit("Owner", Stats{MaxHP: 10})
	for i := 0; i < n; i++ {
		u.AddCard(CardSpec{Name: "c", Kind: Attack, Cost: 1})
	}
	return u.Cards()
}

func TestDeckDraw(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	t.Run("reshuffles discard when draw pile runs out", func(t *testing.T) {
		d := NewDeck(makeCards(5))
		first, _ := d.Draw(3, rng)
		require.NoError(t, d.Discard(first))
		rest, _ := d.Draw(2, rng)
		require.NoError(t, d.Discard(rest))
		require.Equal(t, 0, d.DrawSize())
		require.Equal(t, 5, d.DiscardSize())

		drawn, reshuffled := d.Draw(5, rng)

		require.True(t, reshuffled)
		require.Len(t, drawn, 5)
		require.Equal(t, 5, d.HandSize())
		require.Equal(t, 0, d.DrawSize())
		require.Equal(t, 0, d.DiscardSize())
		require.True(t, d.Conserved())
	})

	t.Run("partial draw from draw pile then discard", func(t *testing.T) {
		d := NewDeck(makeCards(5))
		first, _ := d.Draw(3, rng)
		require.NoError(t, d.Discard(first))

		drawn, reshuffled := d.Draw(5, rng)

		require.True(t, reshuffled)
		require.Len(t, drawn, 5, "2 from draw pile plus 3 reshuffled")
		require.True(t, d.Conserved())
	})

	t.Run("stops early when both piles are empty", func(t *testing.T) {
		d := NewDeck(makeCards(3))

		drawn, reshuffled := d.Draw(5, rng)

		require.False(t, reshuffled)
		require.Len(t, drawn, 3)
		require.Equal(t, 3, d.HandSize())
		require.True(t, d.Conserved())
	})

	t.Run("ids are unique and stable", func(t *testing.T) {
		d := NewDeck(makeCards(4))
		seen := map[int]bool{}
		for _, c := range d.DrawPile() {
			require.False(t, seen[c.ID])
			seen[c.ID] = true
		}
		require.Len(t, seen, 4)
	})
}

func TestDeckDiscard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d := NewDeck(makeCards(4))
	drawn, _ := d.Draw(2, rng)

	require.NoError(t, d.Discard(drawn[:1]))
	require.False(t, d.InHand(drawn[0]))
	require.True(t, d.InHand(drawn[1]))
	require.Error(t, d.Discard(drawn[:1]), "A discarded card is no longer in hand")
	require.True(t, d.Conserved())
}

func TestDeckShuffleIsDeterministic(t *testing.T) {
	cards := makeCards(10)
	a := NewDeck(cards)
	a.Shuffle(rand.New(rand.NewSource(42)))
	orderA := a.DrawPile()

	b := NewDeck(cards)
	b.Shuffle(rand.New(rand.NewSource(42)))

	require.Equal(t, orderA, b.DrawPile(), "Same seed should give the same order")
}
