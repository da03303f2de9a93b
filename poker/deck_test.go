package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreshDeckCanonicalOrder(t *testing.T) {
	cards := FreshDeck(1)
	require.Len(t, cards, DeckSize)

	assert.Equal(t, "2s", cards[0].String())
	assert.Equal(t, "2h", cards[1].String())
	assert.Equal(t, "2d", cards[2].String())
	assert.Equal(t, "2c", cards[3].String())
	assert.Equal(t, "3s", cards[4].String())
	assert.Equal(t, "Ac", cards[51].String())

	seen := make(map[Card]bool)
	for _, c := range cards {
		seen[c] = true
	}
	assert.Len(t, seen, DeckSize)
}

func TestShuffleDeterminism(t *testing.T) {
	d1 := NewDeck(12345, 1).Draw(DeckSize)
	d2 := NewDeck(12345, 1).Draw(DeckSize)
	assert.Equal(t, d1, d2)

	d3 := NewDeck(54321, 1).Draw(DeckSize)
	assert.NotEqual(t, d1, d3)
}

func TestShuffleIsPermutation(t *testing.T) {
	for _, numDecks := range []int{1, 2} {
		cards := NewDeck(99, numDecks).Draw(numDecks * DeckSize)
		counts := make(map[Card]int)
		for _, c := range cards {
			counts[c]++
		}
		assert.Len(t, counts, DeckSize)
		for _, n := range counts {
			assert.Equal(t, numDecks, n)
		}
	}
}

func TestDraw(t *testing.T) {
	deck := NewDeck(7, 1)
	first := deck.Draw(2)
	assert.Len(t, first, 2)
	assert.Equal(t, 50, deck.Remaining())

	rest := deck.Draw(50)
	assert.True(t, deck.Empty())
	for _, c := range first {
		assert.NotContains(t, rest, c)
	}
}
