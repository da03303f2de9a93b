package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayoutDoubleBoardOddChip(t *testing.T) {
	pots := []*SidePot{{Pot: 101, Seats: []uint32{1, 2}}}
	payouts := EndOfHandPayout(pots, []uint32{1}, []uint32{2})

	// the odd chip lands on the board-2 half
	assert.Equal(t, int64(50), payouts[1])
	assert.Equal(t, int64(51), payouts[2])
}

func TestPayoutSingleBoardRecombines(t *testing.T) {
	pots := []*SidePot{{Pot: 101, Seats: []uint32{1, 2, 3}}}
	payouts := EndOfHandPayout(pots, []uint32{1}, []uint32{1})
	assert.Equal(t, map[uint32]int64{1: 101}, payouts)
}

func TestPayoutRemainderLowestSeatFirst(t *testing.T) {
	pots := []*SidePot{{Pot: 101, Seats: []uint32{2, 5}}}
	payouts := EndOfHandPayout(pots, []uint32{2, 5}, []uint32{2, 5})

	// halves are 50 and 51; the odd chip of the 51 half goes to seat 2
	assert.Equal(t, int64(51), payouts[2])
	assert.Equal(t, int64(50), payouts[5])
}

func TestPayoutFallbackToOtherBoard(t *testing.T) {
	pots := []*SidePot{{Pot: 100, Seats: []uint32{1, 2}}}

	// board-1 winner is not eligible for this pot, its half falls back to
	// the board-2 winner
	payouts := EndOfHandPayout(pots, []uint32{3}, []uint32{2})
	assert.Equal(t, map[uint32]int64{2: 100}, payouts)
}

func TestPayoutFallbackToEligibleSeats(t *testing.T) {
	pots := []*SidePot{{Pot: 101, Seats: []uint32{1, 2}}}

	// neither board's winner is eligible, the pot splits among its seats
	payouts := EndOfHandPayout(pots, []uint32{3}, []uint32{3})
	assert.Equal(t, int64(51), payouts[1])
	assert.Equal(t, int64(50), payouts[2])
}

func TestPayout321ThirdsWithRemainder(t *testing.T) {
	pots := []*SidePot{{Pot: 100, Seats: []uint32{1, 2}}}
	payouts := EndOfHandPayout321(pots, []uint32{1}, []uint32{2}, []uint32{2})

	// 100/3 = 33 per board, the remainder 1 rides on the board-3 share
	assert.Equal(t, int64(33), payouts[1])
	assert.Equal(t, int64(67), payouts[2])
}

func TestPayout321AcrossSidePots(t *testing.T) {
	pots := []*SidePot{
		{Pot: 90, Seats: []uint32{1, 2, 3}},
		{Pot: 30, Seats: []uint32{2, 3}},
	}
	payouts := EndOfHandPayout321(pots, []uint32{1}, []uint32{1}, []uint32{2})

	// main pot: seat 1 takes boards 1+2 (60), seat 2 takes board 3 (30);
	// side pot: seat 1 is ineligible, each 10 share falls to the seats
	total := int64(0)
	for _, amount := range payouts {
		total += amount
	}
	assert.Equal(t, int64(120), total)
	assert.Equal(t, int64(60), payouts[1])
}

func TestPayoutAccumulatesAcrossPots(t *testing.T) {
	pots := []*SidePot{
		{Pot: 60, Seats: []uint32{1, 2, 3}},
		{Pot: 40, Seats: []uint32{2, 3}},
	}
	payouts := EndOfHandPayout(pots, []uint32{2}, []uint32{2})
	assert.Equal(t, map[uint32]int64{2: 100}, payouts)
}
