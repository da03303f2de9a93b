package poker

import (
	"fmt"
	"math/bits"
)

var table *lookupTable

func init() {
	table = newLookupTable()
}

// RankClass maps a hand rank to its class (StraightFlush .. HighCard).
func RankClass(rank int32) int32 {
	targets := [...]int32{
		MaxStraightFlush,
		MaxFourOfAKind,
		MaxFullHouse,
		MaxFlush,
		MaxStraight,
		MaxThreeOfAKind,
		MaxTwoPair,
		MaxPair,
		MaxHighCard,
	}

	if rank < 0 {
		panic(fmt.Sprintf("rank %d is less than zero", rank))
	}

	for _, target := range targets {
		if rank <= target {
			return maxToRankClass[target]
		}
	}

	panic(fmt.Sprintf("rank %d is unknown", rank))
}

func RankString(rank int32) string {
	return rankClassToString[RankClass(rank)]
}

// Evaluate scores 5, 6 or 7 cards and returns the best rank along with the
// 5-card combination that achieved it. Lower rank is better.
func Evaluate(cards []Card) (int32, []Card) {
	switch len(cards) {
	case 5:
		return five(cards...)
	case 6:
		return six(cards...)
	case 7:
		return seven(cards...)
	default:
		panic("Only support 5, 6 and 7 cards.")
	}
}

// A second deck can put identical copies of a card into one combination.
// Such a combo cannot make a flush (a repeated rank in one suit is only
// possible through an identical copy), so it scores by its rank multiset.
// Five copies of one rank outranks everything; the table has no slot above
// a royal flush, so it shares rank 1.
const fiveOfAKindRank int32 = 1

func five(cards ...Card) (int32, []Card) {
	handOR := (cards[0] | cards[1] | cards[2] | cards[3] | cards[4]) >> 16
	distinctRanks := bits.OnesCount32(uint32(handOR))
	if distinctRanks == 5 && cards[0]&cards[1]&cards[2]&cards[3]&cards[4]&0xF000 != 0 {
		prime := primeProductFromRankBits(int32(handOR))
		return table.flushLookup[prime], cards
	}
	if distinctRanks == 1 {
		return fiveOfAKindRank, cards
	}

	prime := primeProductFromHand(cards)
	return table.unsuitedLookup[prime], cards
}

func six(cards ...Card) (int32, []Card) {
	var minimum int32 = MaxHighCard
	targets := make([]Card, len(cards))
	bestCards := make([]Card, 5)
	for i := 0; i < len(cards); i++ {
		copy(targets, cards)
		targets := append(targets[:i], targets[i+1:]...)

		score, evaluatedCards := five(targets...)
		if score < minimum {
			minimum = score
			copy(bestCards, evaluatedCards)
		}
	}
	return minimum, bestCards
}

func seven(cards ...Card) (int32, []Card) {
	var minimum int32 = MaxHighCard
	targets := make([]Card, len(cards))
	bestCards := make([]Card, 5)
	for i := 0; i < len(cards); i++ {
		copy(targets, cards)
		targets := append(targets[:i], targets[i+1:]...)

		score, evaluatedCards := six(targets...)
		if score < minimum {
			minimum = score
			copy(bestCards, evaluatedCards)
		}
	}
	return minimum, bestCards
}

// ExactResult is the outcome of an exact-subset evaluation.
type ExactResult struct {
	Rank      int32
	BestCards []Card
}

// EvaluateExact finds the best 5-card hand using exactly numHole of the hole
// cards plus 5-numHole community cards. PLO uses numHole=2 against 4 hole
// cards (the 60-combination search); the 321 partition boards use the whole
// committed subset, so numHole equals its size.
func EvaluateExact(holeCards []Card, communityCards []Card, numHole int) ExactResult {
	minimum := int32(MaxHighCard)
	bestCards := make([]Card, 5)

	holeCombos := Combinations(holeCards, numHole)
	if numHole == len(holeCards) {
		holeCombos = [][]Card{holeCards}
	}
	boardCombos := Combinations(communityCards, 5-numHole)

	for _, holeCombo := range holeCombos {
		for _, boardCombo := range boardCombos {
			cards := make([]Card, 0, 5)
			cards = append(cards, holeCombo...)
			cards = append(cards, boardCombo...)
			score, _ := five(cards...)
			if score < minimum {
				minimum = score
				copy(bestCards, cards)
			}
		}
	}

	return ExactResult{
		Rank:      minimum,
		BestCards: bestCards,
	}
}

// EvaluateOmaha scores 4 hole cards against a 5-card board under the PLO
// rule: exactly 2 hole cards and exactly 3 board cards.
func EvaluateOmaha(playerCards []Card, boardCards []Card) ExactResult {
	return EvaluateExact(playerCards, boardCards, 2)
}
