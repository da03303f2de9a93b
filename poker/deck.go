package poker

import (
	"fmt"
	"math/rand"
)

// DeckSize is the number of cards in a single deck.
const DeckSize = 52

// FreshDeck returns numDecks concatenated 52-card decks in the canonical
// rank-major, suit-minor order. The canonical order is what a shuffle seed is
// applied against, so it must never change.
func FreshDeck(numDecks int) []Card {
	if numDecks < 1 {
		numDecks = 1
	}
	cards := make([]Card, 0, numDecks*DeckSize)
	for d := 0; d < numDecks; d++ {
		for _, rank := range strRanks {
			for _, suit := range strSuits {
				cards = append(cards, NewCard(string(rank)+string(suit)))
			}
		}
	}
	return cards
}

// Deck is an ordered sequence of cards remaining to be dealt.
type Deck struct {
	cards []Card
}

// NewDeck shuffles numDecks fresh decks using a Fisher-Yates shuffle driven
// by the given seed. The same seed always yields the byte-identical order,
// which lets board cards be re-derived later without persisting the deck.
func NewDeck(seed int64, numDecks int) *Deck {
	cards := FreshDeck(numDecks)
	randGen := rand.New(rand.NewSource(seed))
	for i := len(cards) - 1; i > 0; i-- {
		j := randGen.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return &Deck{cards: cards}
}

// NewDeckNoShuffle returns numDecks fresh decks in canonical order.
func NewDeckNoShuffle(numDecks int) *Deck {
	return &Deck{cards: FreshDeck(numDecks)}
}

// Draw removes and returns the top n cards.
func (deck *Deck) Draw(n int) []Card {
	if n > len(deck.cards) {
		panic(fmt.Sprintf("Deck.Draw(%d) with only %d cards remaining", n, len(deck.cards)))
	}
	cards := make([]Card, n)
	copy(cards, deck.cards[:n])
	deck.cards = deck.cards[n:]
	return cards
}

func (deck *Deck) Remaining() int {
	return len(deck.cards)
}

func (deck *Deck) Empty() bool {
	return len(deck.cards) == 0
}

// GetBytes returns the remaining cards in the compact byte form.
func (deck *Deck) GetBytes() []uint8 {
	return CardsToByteCards(deck.cards)
}

func (deck *Deck) PrettyPrint() string {
	return CardsToString(deck.cards)
}
