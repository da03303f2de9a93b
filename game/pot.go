package game

import (
	"sort"
)

// CalculateSidePots layers the hand's committed chips into eligibility-scoped
// pots. Folded, spectating and sitting-out seats are excluded; the remaining
// seats are walked in ascending order of total investment and each strictly
// higher tier opens one pot of (tier - previous tier) chips per seat still at
// or above the tier. Pots come out in ascending tier order, so the
// eligible-seat set strictly shrinks from one pot to the next, and the pot
// amounts sum to the eligible seats' total investment.
func CalculateSidePots(players []*Player) []*SidePot {
	eligible := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.Folded || p.Spectating || p.SittingOut {
			continue
		}
		if p.TotalInvested <= 0 {
			continue
		}
		eligible = append(eligible, p)
	}

	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].TotalInvested != eligible[j].TotalInvested {
			return eligible[i].TotalInvested < eligible[j].TotalInvested
		}
		return eligible[i].SeatNo < eligible[j].SeatNo
	})

	pots := make([]*SidePot, 0, 2)
	prevTier := int64(0)
	for i, p := range eligible {
		tier := p.TotalInvested
		if tier == prevTier {
			continue
		}

		atOrAbove := eligible[i:]
		seats := make([]uint32, 0, len(atOrAbove))
		for _, e := range atOrAbove {
			seats = append(seats, e.SeatNo)
		}
		sort.Slice(seats, func(a, b int) bool { return seats[a] < seats[b] })

		pots = append(pots, &SidePot{
			Pot:   (tier - prevTier) * int64(len(atOrAbove)),
			Seats: seats,
		})
		prevTier = tier
	}

	return pots
}

func totalOfPots(pots []*SidePot) int64 {
	total := int64(0)
	for _, pot := range pots {
		total += pot.Pot
	}
	return total
}
