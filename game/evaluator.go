package game

import (
	"sort"

	"cardroom.com/server/poker"
)

// EvaluatedSeat is one seat's best hand on a board.
type EvaluatedSeat struct {
	SeatNo    uint32
	Rank      int32
	BestCards []poker.Card
}

// WinnersSingleBoard finds the winning seats under the hold'em rule: best
// five cards out of the seat's hole cards plus the board. Seats with equal
// best rank tie; an empty seat set yields no winners.
func WinnersSingleBoard(holeCards map[uint32][]poker.Card, board []poker.Card, seats []uint32) []uint32 {
	results := make([]EvaluatedSeat, 0, len(seats))
	for _, seatNo := range seats {
		hole, ok := holeCards[seatNo]
		if !ok {
			continue
		}
		cards := make([]poker.Card, 0, len(hole)+len(board))
		cards = append(cards, hole...)
		cards = append(cards, board...)
		rank, best := poker.Evaluate(cards)
		results = append(results, EvaluatedSeat{SeatNo: seatNo, Rank: rank, BestCards: best})
	}
	return bestSeats(results)
}

// WinnersExact finds the winning seats under the exact-subset rule: exactly
// numHole of the seat's hole cards plus the rest from the board. PLO boards
// use numHole=2.
func WinnersExact(holeCards map[uint32][]poker.Card, board []poker.Card, seats []uint32, numHole int) []uint32 {
	results := make([]EvaluatedSeat, 0, len(seats))
	for _, seatNo := range seats {
		hole, ok := holeCards[seatNo]
		if !ok {
			continue
		}
		exact := poker.EvaluateExact(hole, board, numHole)
		results = append(results, EvaluatedSeat{SeatNo: seatNo, Rank: exact.Rank, BestCards: exact.BestCards})
	}
	return bestSeats(results)
}

// Winners321 finds the winning seats per board for a 321 hand. Each board is
// scored with the seat's full committed subset for that board plus community
// cards to complete the five: three committed and two community on board 1,
// two and three on board 2, one and four on board 3. Boards are independent;
// a seat can scoop all three or win none.
func Winners321(partitions map[uint32]*Partition, boards [][]poker.Card, seats []uint32) [3][]uint32 {
	var winners [3][]uint32
	for board := 0; board < 3; board++ {
		results := make([]EvaluatedSeat, 0, len(seats))
		for _, seatNo := range seats {
			part, ok := partitions[seatNo]
			if !ok {
				continue
			}
			committed := part.Subset(board)
			exact := poker.EvaluateExact(committed, boards[board], len(committed))
			results = append(results, EvaluatedSeat{SeatNo: seatNo, Rank: exact.Rank, BestCards: exact.BestCards})
		}
		winners[board] = bestSeats(results)
	}
	return winners
}

// bestSeats returns the seats sharing the best (lowest) rank, sorted by seat.
func bestSeats(results []EvaluatedSeat) []uint32 {
	if len(results) == 0 {
		return nil
	}
	best := results[0].Rank
	for _, r := range results[1:] {
		if r.Rank < best {
			best = r.Rank
		}
	}
	seats := make([]uint32, 0, 2)
	for _, r := range results {
		if r.Rank == best {
			seats = append(seats, r.SeatNo)
		}
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i] < seats[j] })
	return seats
}
