package game

import (
	"cardroom.com/server/poker"
)

// GameType selects the variant dealt at the table.
type GameType int32

const (
	GameType_HOLDEM GameType = iota + 1
	GameType_INDIAN
	GameType_PLO_BOMB_POT
	GameType_THREE_TWO_ONE
)

func (g GameType) String() string {
	switch g {
	case GameType_HOLDEM:
		return "HOLDEM"
	case GameType_INDIAN:
		return "INDIAN"
	case GameType_PLO_BOMB_POT:
		return "PLO_BOMB_POT"
	case GameType_THREE_TWO_ONE:
		return "THREE_TWO_ONE"
	}
	return "UNKNOWN"
}

// NumHoleCards is how many hole cards each seat is dealt.
func (g GameType) NumHoleCards() int {
	switch g {
	case GameType_PLO_BOMB_POT:
		return 4
	case GameType_THREE_TWO_ONE:
		return 6
	default:
		return 2
	}
}

// NumBoards is how many community boards the variant runs.
func (g GameType) NumBoards() int {
	switch g {
	case GameType_PLO_BOMB_POT:
		return 2
	case GameType_THREE_TWO_ONE:
		return 3
	default:
		return 1
	}
}

// BombPot reports whether the variant collects an ante from every seat and
// starts the betting at the flop instead of posting blinds.
func (g GameType) BombPot() bool {
	return g == GameType_PLO_BOMB_POT || g == GameType_THREE_TWO_ONE
}

// HandStatus is the phase of a hand.
type HandStatus int32

const (
	HandStatus_WAITING HandStatus = iota
	HandStatus_DEALING
	HandStatus_PREFLOP
	HandStatus_FLOP
	HandStatus_TURN
	HandStatus_RIVER
	HandStatus_PARTITION
	HandStatus_SHOWDOWN
	HandStatus_COMPLETE
)

func (s HandStatus) String() string {
	switch s {
	case HandStatus_WAITING:
		return "WAITING"
	case HandStatus_DEALING:
		return "DEALING"
	case HandStatus_PREFLOP:
		return "PREFLOP"
	case HandStatus_FLOP:
		return "FLOP"
	case HandStatus_TURN:
		return "TURN"
	case HandStatus_RIVER:
		return "RIVER"
	case HandStatus_PARTITION:
		return "PARTITION"
	case HandStatus_SHOWDOWN:
		return "SHOWDOWN"
	case HandStatus_COMPLETE:
		return "COMPLETE"
	}
	return "UNKNOWN"
}

// ACTION is a player action submitted to the state machine, plus the forced
// postings recorded in the action log.
type ACTION int32

const (
	ACTION_FOLD ACTION = iota + 1
	ACTION_CHECK
	ACTION_CALL
	ACTION_BET
	ACTION_RAISE
	ACTION_ALLIN
	ACTION_PARTITION
	ACTION_SB
	ACTION_BB
	ACTION_ANTE
)

func (a ACTION) String() string {
	switch a {
	case ACTION_FOLD:
		return "FOLD"
	case ACTION_CHECK:
		return "CHECK"
	case ACTION_CALL:
		return "CALL"
	case ACTION_BET:
		return "BET"
	case ACTION_RAISE:
		return "RAISE"
	case ACTION_ALLIN:
		return "ALLIN"
	case ACTION_PARTITION:
		return "PARTITION"
	case ACTION_SB:
		return "SB"
	case ACTION_BB:
		return "BB"
	case ACTION_ANTE:
		return "ANTE"
	}
	return "UNKNOWN"
}

// ParseACTION maps the wire form of an action back to its value.
func ParseACTION(s string) ACTION {
	for _, a := range []ACTION{ACTION_FOLD, ACTION_CHECK, ACTION_CALL, ACTION_BET,
		ACTION_RAISE, ACTION_ALLIN, ACTION_PARTITION, ACTION_SB, ACTION_BB, ACTION_ANTE} {
		if a.String() == s {
			return a
		}
	}
	return 0
}

// RoomConfig is the per-room configuration a hand is dealt under. The engine
// never mutates it; button rotation and hand numbering are reported back on
// the deal result for the caller to persist.
type RoomConfig struct {
	GameCode   string   `json:"gameCode"`
	GameType   GameType `json:"gameType"`
	MaxSeats   uint32   `json:"maxSeats"`
	SmallBlind int64    `json:"smallBlind"`
	BigBlind   int64    `json:"bigBlind"`
	Ante       int64    `json:"ante"`
	ButtonSeat uint32   `json:"buttonSeat"` // 0 before the first hand
	HandNum    uint32   `json:"handNum"`    // last dealt hand number
}

// Player is the engine's snapshot of one seat. Engine calls are
// copy-in/copy-out: the caller's snapshot is never mutated in place.
type Player struct {
	SeatNo        uint32 `json:"seatNo"`
	PlayerID      uint64 `json:"playerId"`
	Name          string `json:"name"`
	Stack         int64  `json:"stack"`
	CurrentBet    int64  `json:"currentBet"`    // committed this street
	TotalInvested int64  `json:"totalInvested"` // committed this hand
	Folded        bool   `json:"folded"`
	AllIn         bool   `json:"allIn"`
	SittingOut    bool   `json:"sittingOut"`
	Spectating    bool   `json:"spectating"`
}

// InHand reports whether the seat can be dealt into a new hand.
func (p *Player) InHand() bool {
	return !p.Spectating && !p.SittingOut && p.Stack > 0
}

// CanAct reports whether the seat still has betting decisions in this hand.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn && !p.Spectating && !p.SittingOut
}

func (p *Player) clone() *Player {
	c := *p
	return &c
}

// SidePot is one eligibility-scoped chip layer. Pot amounts across all side
// pots sum to the chips layered into them.
type SidePot struct {
	Pot   int64    `json:"pot"`
	Seats []uint32 `json:"seats"`
}

func (s *SidePot) hasSeat(seatNo uint32) bool {
	for _, seat := range s.Seats {
		if seat == seatNo {
			return true
		}
	}
	return false
}

// Partition is a seat's committed split of its six hole cards across the
// three boards of a 321 hand: three cards to board 1, two to board 2, one to
// board 3. Committed during the partition phase, revealed together at
// showdown.
type Partition struct {
	Three []poker.Card `json:"three"`
	Two   []poker.Card `json:"two"`
	One   []poker.Card `json:"one"`
}

// Subset returns the committed cards bound to the given board index (0..2).
func (p *Partition) Subset(board int) []poker.Card {
	switch board {
	case 0:
		return p.Three
	case 1:
		return p.Two
	case 2:
		return p.One
	}
	return nil
}

// ActionRecord is one entry in the chronological hand log.
type ActionRecord struct {
	SeatNo uint32     `json:"seatNo"`
	Action ACTION     `json:"action"`
	Amount int64      `json:"amount"`
	Street HandStatus `json:"street"`
	Stack  int64      `json:"stack"` // stack after the action
}

// HandState is the public state of one hand. It holds only the revealed
// prefix of each board; the full boards, hole cards and deck seed live in the
// restricted record.
type HandState struct {
	GameCode         string                `json:"gameCode"`
	HandNum          uint32                `json:"handNum"`
	GameType         GameType              `json:"gameType"`
	MaxSeats         uint32                `json:"maxSeats"`
	ButtonSeat       uint32                `json:"buttonSeat"`
	SBSeat           uint32                `json:"sbSeat"`
	BBSeat           uint32                `json:"bbSeat"`
	BigBlind         int64                 `json:"bigBlind"` // the ante for bomb pots
	Phase            HandStatus            `json:"phase"`
	PotSize          int64                 `json:"potSize"`
	CurrentBet       int64                 `json:"currentBet"`
	MinRaise         int64                 `json:"minRaise"` // minimum legal raise increment
	LastAggressor    uint32                `json:"lastAggressor"`
	LastRaise        int64                 `json:"lastRaise"` // size of the last full raise
	CurrentActor     uint32                `json:"currentActor"`
	SeatsToAct       []uint32              `json:"seatsToAct"`
	SeatsActed       []uint32              `json:"seatsActed"`
	Boards           [][]poker.Card        `json:"boards"` // revealed prefixes
	TwoDecks         bool                  `json:"twoDecks"`
	Partitions       map[uint32]*Partition `json:"partitions,omitempty"`
	PartitionPending []uint32              `json:"partitionPending,omitempty"`
	Pots             []*SidePot            `json:"pots"`
	ActionLog        []*ActionRecord       `json:"actionLog"`
	CompletedAt      int64                 `json:"completedAt,omitempty"` // unix seconds
}

// Clone deep-copies the hand state.
func (h *HandState) Clone() *HandState {
	c := *h
	c.SeatsToAct = append([]uint32(nil), h.SeatsToAct...)
	c.SeatsActed = append([]uint32(nil), h.SeatsActed...)
	c.PartitionPending = append([]uint32(nil), h.PartitionPending...)
	c.Boards = make([][]poker.Card, len(h.Boards))
	for i, board := range h.Boards {
		c.Boards[i] = append([]poker.Card(nil), board...)
	}
	if h.Partitions != nil {
		c.Partitions = make(map[uint32]*Partition, len(h.Partitions))
		for seatNo, part := range h.Partitions {
			p := &Partition{
				Three: append([]poker.Card(nil), part.Three...),
				Two:   append([]poker.Card(nil), part.Two...),
				One:   append([]poker.Card(nil), part.One...),
			}
			c.Partitions[seatNo] = p
		}
	}
	c.Pots = make([]*SidePot, len(h.Pots))
	for i, pot := range h.Pots {
		c.Pots[i] = &SidePot{Pot: pot.Pot, Seats: append([]uint32(nil), pot.Seats...)}
	}
	c.ActionLog = make([]*ActionRecord, len(h.ActionLog))
	for i, rec := range h.ActionLog {
		r := *rec
		c.ActionLog[i] = &r
	}
	return &c
}

func clonePlayers(players []*Player) []*Player {
	cloned := make([]*Player, len(players))
	for i, p := range players {
		cloned[i] = p.clone()
	}
	return cloned
}

func playersBySeat(players []*Player) map[uint32]*Player {
	bySeat := make(map[uint32]*Player, len(players))
	for _, p := range players {
		bySeat[p.SeatNo] = p
	}
	return bySeat
}

// nextOccupiedSeat walks clockwise from the given seat, wrapping at maxSeats,
// and returns the first seat for which keep returns true. Seats may be
// sparse. Returns 0 when no seat qualifies.
func nextOccupiedSeat(bySeat map[uint32]*Player, maxSeats uint32, from uint32, keep func(*Player) bool) uint32 {
	seatNo := from
	for i := uint32(1); i <= maxSeats; i++ {
		seatNo++
		if seatNo > maxSeats {
			seatNo = 1
		}
		if p, ok := bySeat[seatNo]; ok && keep(p) {
			return seatNo
		}
	}
	return 0
}

// actingOrder lists the seats that can act, clockwise starting from the seat
// after the given one.
func actingOrder(bySeat map[uint32]*Player, maxSeats uint32, after uint32) []uint32 {
	order := make([]uint32, 0, len(bySeat))
	seatNo := after
	for i := uint32(1); i <= maxSeats; i++ {
		seatNo++
		if seatNo > maxSeats {
			seatNo = 1
		}
		if p, ok := bySeat[seatNo]; ok && p.CanAct() {
			order = append(order, seatNo)
		}
	}
	return order
}

func removeSeat(seats []uint32, seatNo uint32) []uint32 {
	for i, s := range seats {
		if s == seatNo {
			return append(seats[:i], seats[i+1:]...)
		}
	}
	return seats
}

func containsSeat(seats []uint32, seatNo uint32) bool {
	for _, s := range seats {
		if s == seatNo {
			return true
		}
	}
	return false
}
