package game

// BlindPosting reports the outcome of posting blinds for a new hand.
type BlindPosting struct {
	Players     []*Player
	SBSeat      uint32
	BBSeat      uint32
	CurrentBet  int64 // the table bet after posting
	TotalPosted int64
}

// PostBlinds finds the first two seats clockwise after the button that can
// play a hand and posts the small and big blind from them. In a heads-up game
// the button itself posts the small blind. A short stack posts all it has and
// is all-in for that amount rather than the nominal blind. Seat numbers may
// be sparse; the walk wraps using maxSeats.
func PostBlinds(players []*Player, buttonSeat uint32, maxSeats uint32, smallBlind int64, bigBlind int64) (*BlindPosting, error) {
	updated := clonePlayers(players)
	bySeat := playersBySeat(updated)

	activeCount := 0
	for _, p := range updated {
		if p.InHand() {
			activeCount++
		}
	}
	if activeCount < 2 {
		return nil, NotEnoughPlayersError{Eligible: activeCount}
	}

	canPost := func(p *Player) bool { return p.InHand() }

	var sbSeat, bbSeat uint32
	if activeCount == 2 {
		// heads up: the button posts the small blind
		if p, ok := bySeat[buttonSeat]; ok && canPost(p) {
			sbSeat = buttonSeat
		} else {
			sbSeat = nextOccupiedSeat(bySeat, maxSeats, buttonSeat, canPost)
		}
		bbSeat = nextOccupiedSeat(bySeat, maxSeats, sbSeat, canPost)
	} else {
		sbSeat = nextOccupiedSeat(bySeat, maxSeats, buttonSeat, canPost)
		bbSeat = nextOccupiedSeat(bySeat, maxSeats, sbSeat, canPost)
	}

	sbPosted := postForced(bySeat[sbSeat], smallBlind)
	bbPosted := postForced(bySeat[bbSeat], bigBlind)

	currentBet := bbPosted
	if sbPosted > currentBet {
		currentBet = sbPosted
	}

	return &BlindPosting{
		Players:     updated,
		SBSeat:      sbSeat,
		BBSeat:      bbSeat,
		CurrentBet:  currentBet,
		TotalPosted: sbPosted + bbPosted,
	}, nil
}

// postForced moves a forced stake from the player's stack to their street
// bet, capped at the stack. Posting always clears a stale folded flag.
func postForced(p *Player, amount int64) int64 {
	if amount > p.Stack {
		amount = p.Stack
	}
	p.Stack -= amount
	p.CurrentBet += amount
	p.TotalInvested += amount
	p.Folded = false
	if p.Stack == 0 {
		p.AllIn = true
	}
	return amount
}
