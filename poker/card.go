package poker

import (
	"fmt"
	"strings"
)

// Card packs a playing card into an int32 the way the lookup-table evaluator
// wants it: bits 16-28 hold a one-hot rank, bits 12-15 the suit, bits 8-11
// the rank index, and the low byte the rank's prime number.
type Card int32

var (
	intRanks [13]int32
	strRanks = "23456789TJQKA"
	strSuits = "shdc"
	primes   = []int32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}
)

var (
	charRankToIntRank = map[uint8]int32{}
	charSuitToIntSuit = map[uint8]int32{
		's': 1, // spades
		'h': 2, // hearts
		'd': 4, // diamonds
		'c': 8, // clubs
	}
	intSuitToCharSuit = "xshxdxxxc"
)

func init() {
	for i := 0; i < 13; i++ {
		intRanks[i] = int32(i)
	}

	for i := range strRanks {
		charRankToIntRank[strRanks[i]] = intRanks[i]
	}
}

// NewCard builds a card from its two-symbol form, e.g. "As", "Td", "2c".
func NewCard(s string) Card {
	rankInt := charRankToIntRank[s[0]]
	suitInt := charSuitToIntSuit[s[1]]
	rankPrime := primes[rankInt]

	bitRank := int32(1) << uint32(rankInt) << 16
	suit := suitInt << 12
	rank := rankInt << 8

	return Card(bitRank | suit | rank | rankPrime)
}

// NewCardFromByte builds a card from the compact byte form used when storing
// decks and hands: high 4 bits rank index, low 4 bits suit.
func NewCardFromByte(cardByte uint8) Card {
	rankInt := int32(cardByte >> 4)
	suitInt := int32(cardByte & 0xF)
	rankPrime := primes[rankInt]

	bitRank := int32(1) << uint32(rankInt) << 16
	suit := suitInt << 12
	rank := rankInt << 8

	return Card(bitRank | suit | rank | rankPrime)
}

func (c Card) String() string {
	return string(strRanks[c.Rank()]) + string(intSuitToCharSuit[c.Suit()])
}

func (c *Card) MarshalJSON() ([]byte, error) {
	return []byte("\"" + c.String() + "\""), nil
}

func (c *Card) UnmarshalJSON(b []byte) error {
	*c = NewCard(string(b[1:3]))
	return nil
}

func (c Card) Rank() int32 {
	return (int32(c) >> 8) & 0xF
}

func (c Card) Suit() int32 {
	return (int32(c) >> 12) & 0xF
}

func (c Card) BitRank() int32 {
	return (int32(c) >> 16) & 0x1FFF
}

func (c Card) Prime() int32 {
	return int32(c) & 0x3F
}

func (c Card) GetByte() uint8 {
	return uint8((c.Rank() << 4) | c.Suit())
}

// FromByteCards converts a stored byte hand back to cards.
func FromByteCards(byteCards []byte) []Card {
	cards := make([]Card, len(byteCards))
	for i, b := range byteCards {
		cards[i] = NewCardFromByte(b)
	}
	return cards
}

// CardsToByteCards converts cards to the compact byte form.
func CardsToByteCards(cards []Card) []byte {
	byteCards := make([]byte, len(cards))
	for i, c := range cards {
		byteCards[i] = c.GetByte()
	}
	return byteCards
}

func CardsToString(cards []Card) string {
	var b strings.Builder
	b.Grow(4 * len(cards))
	fmt.Fprintf(&b, "[")
	for _, c := range cards {
		fmt.Fprintf(&b, " %s ", c.String())
	}
	fmt.Fprintf(&b, "]")
	return b.String()
}

func primeProductFromHand(cards []Card) int32 {
	product := int32(1)
	for _, card := range cards {
		product *= int32(card) & 0xFF
	}
	return product
}

func primeProductFromRankBits(rankBits int32) int32 {
	product := int32(1)
	for _, i := range intRanks {
		if rankBits&(1<<uint(i)) != 0 {
			product *= primes[i]
		}
	}
	return product
}
