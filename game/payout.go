package game

import (
	"sort"

	"cardroom.com/server/poker"
)

// EndOfHandPayout distributes side pots for single- and double-board hands.
// Each pot is halved between the two boards' winners, with the odd chip going
// to the board-2 half. For a single-board hand pass the same winner list for
// both boards; the halves recombine and no chip is lost.
//
// If a board's winners are not eligible for a particular pot (differing
// all-in levels), that half falls back to the other board's eligible winners,
// and if neither board's winners qualify, it is split among every seat
// eligible for the pot.
func EndOfHandPayout(pots []*SidePot, board1Winners []uint32, board2Winners []uint32) map[uint32]int64 {
	payouts := make(map[uint32]int64)
	for _, pot := range pots {
		half1 := pot.Pot / 2
		half2 := pot.Pot - half1 // odd chip lands on the board-2 half
		awardShare(payouts, half1, board1Winners, board2Winners, pot.Seats)
		awardShare(payouts, half2, board2Winners, board1Winners, pot.Seats)
	}
	return payouts
}

// EndOfHandPayout321 distributes side pots across the three boards of a 321
// hand. Each pot is divided by three, with the division remainder added
// entirely to the board-3 share; each share then splits evenly among that
// board's winners eligible for the pot, with the same fallback rules as the
// double-board payout.
func EndOfHandPayout321(pots []*SidePot, board1Winners, board2Winners, board3Winners []uint32) map[uint32]int64 {
	payouts := make(map[uint32]int64)
	for _, pot := range pots {
		share := pot.Pot / 3
		lastShare := share + pot.Pot%3
		awardShare(payouts, share, board1Winners, nil, pot.Seats)
		awardShare(payouts, share, board2Winners, nil, pot.Seats)
		awardShare(payouts, lastShare, board3Winners, nil, pot.Seats)
	}
	return payouts
}

// EndOfHandPayout321Partitions is the raw-input form of the 321 payout: it
// takes the committed partitions and the full board card sets, determines the
// per-board winners internally, and then distributes the pots.
func EndOfHandPayout321Partitions(pots []*SidePot, partitions map[uint32]*Partition, boards [][]poker.Card) map[uint32]int64 {
	seats := make([]uint32, 0, len(partitions))
	for seatNo := range partitions {
		seats = append(seats, seatNo)
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i] < seats[j] })

	winners := Winners321(partitions, boards, seats)
	return EndOfHandPayout321(pots, winners[0], winners[1], winners[2])
}

// awardShare splits amount among the winners that are eligible for the pot.
// When none of them qualify it falls back to the other board's winners, then
// to every eligible seat. Remainder chips are handed out one each starting
// from the lowest seat number.
func awardShare(payouts map[uint32]int64, amount int64, winners []uint32, otherWinners []uint32, eligibleSeats []uint32) {
	if amount == 0 {
		return
	}

	recipients := intersectSeats(winners, eligibleSeats)
	if len(recipients) == 0 {
		recipients = intersectSeats(otherWinners, eligibleSeats)
	}
	if len(recipients) == 0 {
		recipients = append([]uint32(nil), eligibleSeats...)
	}
	if len(recipients) == 0 {
		return
	}

	sort.Slice(recipients, func(i, j int) bool { return recipients[i] < recipients[j] })

	each := amount / int64(len(recipients))
	remainder := amount % int64(len(recipients))
	for i, seatNo := range recipients {
		payout := each
		if int64(i) < remainder {
			payout++
		}
		payouts[seatNo] += payout
	}
}

func intersectSeats(seats []uint32, eligibleSeats []uint32) []uint32 {
	out := make([]uint32, 0, len(seats))
	for _, seatNo := range seats {
		if containsSeat(eligibleSeats, seatNo) {
			out = append(out, seatNo)
		}
	}
	return out
}
