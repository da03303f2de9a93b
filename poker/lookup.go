package poker

// Hand ranks are 1 (royal flush) through 7462 (worst high card); lower is
// better and equal rank means a true tie.
const (
	MaxStraightFlush = 10
	MaxFourOfAKind   = 166
	MaxFullHouse     = 322
	MaxFlush         = 1599
	MaxStraight      = 1609
	MaxThreeOfAKind  = 2467
	MaxTwoPair       = 3325
	MaxPair          = 6185
	MaxHighCard      = 7462

	StraightFlush = 1
	FourOfAKind   = 2
	FullHouse     = 3
	Flush         = 4
	Straight      = 5
	ThreeOfAKind  = 6
	TwoPair       = 7
	Pair          = 8
	HighCard      = 9
)

var maxToRankClass = map[int32]int32{
	MaxStraightFlush: StraightFlush,
	MaxFourOfAKind:   FourOfAKind,
	MaxFullHouse:     FullHouse,
	MaxFlush:         Flush,
	MaxStraight:      Straight,
	MaxThreeOfAKind:  ThreeOfAKind,
	MaxTwoPair:       TwoPair,
	MaxPair:          Pair,
	MaxHighCard:      HighCard,
}

var rankClassToString = map[int32]string{
	StraightFlush: "Straight Flush",
	FourOfAKind:   "Four of a Kind",
	FullHouse:     "Full House",
	Flush:         "Flush",
	Straight:      "Straight",
	ThreeOfAKind:  "Three of a Kind",
	TwoPair:       "Two Pair",
	Pair:          "Pair",
	HighCard:      "High Card",
}

// lookupTable maps the prime product of a 5-card hand to its rank. Flush
// hands are looked up by the product of their rank primes in flushLookup;
// everything else goes through unsuitedLookup.
type lookupTable struct {
	flushLookup    map[int32]int32
	unsuitedLookup map[int32]int32
}

func newLookupTable() *lookupTable {
	table := &lookupTable{
		flushLookup:    map[int32]int32{},
		unsuitedLookup: map[int32]int32{},
	}
	table.flushes()
	table.multiples()
	return table
}

func (table *lookupTable) flushes() {
	// straight flushes in rank order
	straightFlushes := []int32{
		7936, // 0b1111100000000 royal flush
		3968, // 0b111110000000
		1984, // 0b11111000000
		992,  // 0b1111100000
		496,  // 0b111110000
		248,  // 0b11111000
		124,  // 0b1111100
		62,   // 0b111110
		31,   // 0b11111
		4111, // 0b1000000001111 5 high
	}

	// all other 5-high-bit rank patterns are plain flushes (and, unsuited,
	// plain high-card hands)
	var flushes []int32
	var flush int32 = 31 // 0b11111

	for i := 0; i < 1277+len(straightFlushes)-1; i++ {
		flush = nextBitPermutation(flush)

		isSF := false
		for _, sf := range straightFlushes {
			if flush^sf == 0 {
				isSF = true
				break
			}
		}
		if !isSF {
			flushes = append(flushes, flush)
		}
	}

	// generated worst-to-best; rank assignment needs best first
	for i, j := 0, len(flushes)-1; i < j; i, j = i+1, j-1 {
		flushes[i], flushes[j] = flushes[j], flushes[i]
	}

	var rank int32 = 1
	for _, sf := range straightFlushes {
		table.flushLookup[primeProductFromRankBits(sf)] = rank
		rank++
	}

	rank = MaxFullHouse + 1
	for _, f := range flushes {
		table.flushLookup[primeProductFromRankBits(f)] = rank
		rank++
	}

	// the same rank patterns, unsuited, are straights and high cards
	rank = MaxFlush + 1
	for _, s := range straightFlushes {
		table.unsuitedLookup[primeProductFromRankBits(s)] = rank
		rank++
	}

	rank = MaxPair + 1
	for _, h := range flushes {
		table.unsuitedLookup[primeProductFromRankBits(h)] = rank
		rank++
	}
}

func (table *lookupTable) multiples() {
	backwardRanks := make([]int32, len(intRanks))
	for i := range intRanks {
		backwardRanks[13-i-1] = intRanks[i]
	}

	ranksWithout := func(removed ...int32) []int32 {
		kept := make([]int32, 0, len(backwardRanks))
		for _, r := range backwardRanks {
			skip := false
			for _, rm := range removed {
				if r == rm {
					skip = true
					break
				}
			}
			if !skip {
				kept = append(kept, r)
			}
		}
		return kept
	}

	// four of a kind
	var rank int32 = MaxStraightFlush + 1
	for _, quad := range backwardRanks {
		for _, kicker := range ranksWithout(quad) {
			product := primes[quad] * primes[quad] * primes[quad] * primes[quad] * primes[kicker]
			table.unsuitedLookup[product] = rank
			rank++
		}
	}

	// full house
	rank = MaxFourOfAKind + 1
	for _, trips := range backwardRanks {
		for _, pair := range ranksWithout(trips) {
			product := primes[trips] * primes[trips] * primes[trips] * primes[pair] * primes[pair]
			table.unsuitedLookup[product] = rank
			rank++
		}
	}

	// three of a kind
	rank = MaxStraight + 1
	for _, trips := range backwardRanks {
		kickers := ranksWithout(trips)
		for i := 0; i < len(kickers)-1; i++ {
			for j := i + 1; j < len(kickers); j++ {
				k1, k2 := kickers[i], kickers[j]
				product := primes[trips] * primes[trips] * primes[trips] * primes[k1] * primes[k2]
				table.unsuitedLookup[product] = rank
				rank++
			}
		}
	}

	// two pair
	rank = MaxThreeOfAKind + 1
	for i := 0; i < len(backwardRanks)-1; i++ {
		for j := i + 1; j < len(backwardRanks); j++ {
			pair1, pair2 := backwardRanks[i], backwardRanks[j]
			for _, kicker := range ranksWithout(pair1, pair2) {
				product := primes[pair1] * primes[pair1] * primes[pair2] * primes[pair2] * primes[kicker]
				table.unsuitedLookup[product] = rank
				rank++
			}
		}
	}

	// pair
	rank = MaxTwoPair + 1
	for _, pair := range backwardRanks {
		kickers := ranksWithout(pair)
		for i := 0; i < len(kickers)-2; i++ {
			for j := i + 1; j < len(kickers)-1; j++ {
				for k := j + 1; k < len(kickers); k++ {
					k1, k2, k3 := kickers[i], kickers[j], kickers[k]
					product := primes[pair] * primes[pair] * primes[k1] * primes[k2] * primes[k3]
					table.unsuitedLookup[product] = rank
					rank++
				}
			}
		}
	}
}

// nextBitPermutation computes the lexicographically next permutation of the
// set bits. Algorithm from
// https://graphics.stanford.edu/~seander/bithacks.html#NextBitPermutation.
func nextBitPermutation(bits int32) int32 {
	t := (bits | (bits - 1)) + 1
	return t | ((((t & -t) / (bits & -bits)) >> 1) - 1)
}
