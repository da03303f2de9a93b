package game

import (
	"sort"

	"github.com/rs/zerolog/log"

	"cardroom.com/server/poker"
)

var dealLogger = log.With().Str("logger_name", "game::deal").Logger()

// A 321 hand needs 6 hole cards per seat plus three 5-card boards. One deck
// runs out beyond 6 seats (7*6+15 > 52), so a second deck is shuffled in.
const threeTwoOneTwoDeckThreshold = 6

// cards revealed per board when the hand is dealt
const initialBoardReveal = 3

// DealResult is everything produced by dealing one hand. Hand and Players
// are the public snapshot; Boards, HoleCards and Seed must only ever go to
// the restricted store.
type DealResult struct {
	Hand       *HandState
	Players    []*Player
	Boards     [][]poker.Card          // full boards, hidden cards included
	HoleCards  map[uint32][]poker.Card // restricted
	Seed       int64                   // restricted
	TwoDecks   bool
	ButtonSeat uint32
	SBSeat     uint32
	BBSeat     uint32
}

// DealHand deals a fresh hand for the room: advances the button, collects
// blinds or antes, shuffles with the given seed, deals hole cards and the
// initial board reveal, and computes the acting order. The config and player
// snapshots are not mutated; the caller persists the result and the new
// button position.
func DealHand(config *RoomConfig, players []*Player, seed int64) (*DealResult, error) {
	updated := clonePlayers(players)
	bySeat := playersBySeat(updated)

	eligibleSeats := make([]uint32, 0, len(updated))
	for _, p := range updated {
		// a new hand clears per-hand carryover
		p.Folded = false
		p.AllIn = false
		p.CurrentBet = 0
		p.TotalInvested = 0
		if p.InHand() {
			eligibleSeats = append(eligibleSeats, p.SeatNo)
		}
	}
	sort.Slice(eligibleSeats, func(i, j int) bool { return eligibleSeats[i] < eligibleSeats[j] })

	if len(eligibleSeats) < 2 {
		return nil, NotEnoughPlayersError{Eligible: len(eligibleSeats)}
	}

	inHand := func(p *Player) bool { return p.InHand() }
	buttonSeat := config.ButtonSeat
	if buttonSeat == 0 {
		buttonSeat = eligibleSeats[0]
	} else {
		buttonSeat = nextOccupiedSeat(bySeat, config.MaxSeats, buttonSeat, inHand)
	}

	handNum := config.HandNum + 1
	hand := &HandState{
		GameCode:   config.GameCode,
		HandNum:    handNum,
		GameType:   config.GameType,
		MaxSeats:   config.MaxSeats,
		ButtonSeat: buttonSeat,
		Phase:      HandStatus_DEALING,
		Pots:       make([]*SidePot, 0),
		ActionLog:  make([]*ActionRecord, 0),
	}

	var sbSeat, bbSeat uint32
	if config.GameType.BombPot() {
		// every eligible seat antes; a short stack antes all it has
		total := int64(0)
		for _, seatNo := range eligibleSeats {
			p := bySeat[seatNo]
			posted := postForced(p, config.Ante)
			total += posted
			hand.ActionLog = append(hand.ActionLog, &ActionRecord{
				SeatNo: seatNo, Action: ACTION_ANTE, Amount: posted,
				Street: HandStatus_DEALING, Stack: p.Stack,
			})
		}
		hand.PotSize = total
		hand.CurrentBet = config.Ante
		hand.BigBlind = config.Ante
		hand.MinRaise = config.Ante
		hand.Phase = HandStatus_FLOP
	} else {
		posting, err := PostBlinds(updated, buttonSeat, config.MaxSeats, config.SmallBlind, config.BigBlind)
		if err != nil {
			return nil, err
		}
		updated = posting.Players
		bySeat = playersBySeat(updated)
		sbSeat, bbSeat = posting.SBSeat, posting.BBSeat
		hand.SBSeat = sbSeat
		hand.BBSeat = bbSeat
		hand.PotSize = posting.TotalPosted
		hand.CurrentBet = posting.CurrentBet
		hand.BigBlind = config.BigBlind
		hand.MinRaise = config.BigBlind
		hand.Phase = HandStatus_PREFLOP
		hand.ActionLog = append(hand.ActionLog,
			&ActionRecord{SeatNo: sbSeat, Action: ACTION_SB, Amount: bySeat[sbSeat].TotalInvested,
				Street: HandStatus_DEALING, Stack: bySeat[sbSeat].Stack},
			&ActionRecord{SeatNo: bbSeat, Action: ACTION_BB, Amount: bySeat[bbSeat].TotalInvested,
				Street: HandStatus_DEALING, Stack: bySeat[bbSeat].Stack},
		)
	}

	numDecks := 1
	if config.GameType == GameType_THREE_TWO_ONE && len(eligibleSeats) > threeTwoOneTwoDeckThreshold {
		numDecks = 2
	}
	deck := poker.NewDeck(seed, numDecks)

	holeCards := dealHoleCards(deck, bySeat, config.MaxSeats, buttonSeat,
		config.GameType.NumHoleCards(), eligibleSeats)

	numBoards := config.GameType.NumBoards()
	boards := make([][]poker.Card, numBoards)
	for i := 0; i < numBoards; i++ {
		boards[i] = deck.Draw(5)
	}

	hand.Boards = make([][]poker.Card, numBoards)
	for i, board := range boards {
		hand.Boards[i] = append([]poker.Card(nil), board[:initialBoardReveal]...)
	}
	hand.TwoDecks = numDecks == 2

	hand.SeatsToAct = actingOrder(bySeat, config.MaxSeats, buttonSeat)
	hand.SeatsActed = make([]uint32, 0, len(eligibleSeats))
	if len(hand.SeatsToAct) > 0 {
		hand.CurrentActor = hand.SeatsToAct[0]
	}

	if config.GameType == GameType_THREE_TWO_ONE {
		hand.Partitions = make(map[uint32]*Partition)
	}

	// everyone may already be all-in from the forced stakes
	if noMoreBetting(hand, updated) {
		fastForwardReveal(hand, boards, nonFoldedSeats(updated))
	}

	dealLogger.Info().
		Str("game", config.GameCode).
		Uint32("hand", handNum).
		Str("type", config.GameType.String()).
		Uint32("button", buttonSeat).
		Int("players", len(eligibleSeats)).
		Msg("Hand dealt")

	return &DealResult{
		Hand:       hand,
		Players:    updated,
		Boards:     boards,
		HoleCards:  holeCards,
		Seed:       seed,
		TwoDecks:   numDecks == 2,
		ButtonSeat: buttonSeat,
		SBSeat:     sbSeat,
		BBSeat:     bbSeat,
	}, nil
}

// dealHoleCards hands out cards one at a time clockwise starting after the
// button, the way a live dealer pitches them.
func dealHoleCards(deck *poker.Deck, bySeat map[uint32]*Player, maxSeats uint32,
	buttonSeat uint32, numCards int, eligibleSeats []uint32) map[uint32][]poker.Card {

	holeCards := make(map[uint32][]poker.Card, len(eligibleSeats))
	inHand := func(p *Player) bool { return p.InHand() || p.AllIn }
	for round := 0; round < numCards; round++ {
		seatNo := buttonSeat
		for i := 0; i < len(eligibleSeats); i++ {
			seatNo = nextOccupiedSeat(bySeat, maxSeats, seatNo, inHand)
			holeCards[seatNo] = append(holeCards[seatNo], deck.Draw(1)[0])
		}
	}
	return holeCards
}

// noMoreBetting reports whether at most one seat can still make betting
// decisions, and that seat owes nothing to the current bet. Once true, the
// remaining board cards can be revealed at once.
func noMoreBetting(hand *HandState, players []*Player) bool {
	var lone *Player
	for _, p := range players {
		if !p.CanAct() {
			continue
		}
		if lone != nil {
			return false
		}
		lone = p
	}
	if lone == nil {
		return true
	}
	return lone.CurrentBet >= hand.CurrentBet
}

// fastForwardReveal opens every board completely and jumps the hand past the
// betting streets: to the partition phase for 321, straight to showdown
// otherwise. Callers resolve a showdown phase with ResolveShowdown.
func fastForwardReveal(hand *HandState, fullBoards [][]poker.Card, nonFolded []uint32) {
	for i, board := range fullBoards {
		hand.Boards[i] = append([]poker.Card(nil), board...)
	}
	hand.SeatsToAct = nil
	hand.SeatsActed = nil
	hand.CurrentActor = 0
	if hand.GameType == GameType_THREE_TWO_ONE {
		hand.Phase = HandStatus_PARTITION
		hand.PartitionPending = pendingPartitionSeats(hand, nonFolded)
	} else {
		hand.Phase = HandStatus_SHOWDOWN
	}
}
