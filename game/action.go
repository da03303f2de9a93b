package game

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"cardroom.com/server/poker"
)

var actionLogger = log.With().Str("logger_name", "game::action").Logger()

// ActionInput is one player action submitted to the state machine.
type ActionInput struct {
	SeatNo    uint32     `json:"seatNo"`
	Action    ACTION     `json:"action"`
	Amount    int64      `json:"amount"`
	Partition *Partition `json:"partition,omitempty"`
}

// ActionResult reports the outcome of applying one action. Errors come back
// as data with the prior snapshots echoed unmodified, so the caller can show
// the message without losing state.
type ActionResult struct {
	Hand          *HandState       `json:"hand"`
	Players       []*Player        `json:"players"`
	Error         string           `json:"error,omitempty"`
	HandCompleted bool             `json:"handCompleted"`
	AutoWinners   []uint32         `json:"autoWinners,omitempty"`
	PotAwarded    int64            `json:"potAwarded,omitempty"`
	BoardWinners  [][]uint32       `json:"boardWinners,omitempty"`
	Payouts       map[uint32]int64 `json:"payouts,omitempty"`
}

// handRun is the working set for one ApplyAction call: cloned snapshots plus
// the restricted inputs.
type handRun struct {
	hand      *HandState
	players   []*Player
	bySeat    map[uint32]*Player
	boards    [][]poker.Card
	holeCards map[uint32][]poker.Card
	result    *ActionResult
}

// ApplyAction validates and applies a single player action against the hand:
// betting actions during the betting streets, partition submissions during
// the 321 partition phase. It is a pure function; the given snapshots are
// never mutated. A call on a completed hand is a no-op that reports the
// completion.
func ApplyAction(hand *HandState, players []*Player, boards [][]poker.Card,
	holeCards map[uint32][]poker.Card, input ActionInput) *ActionResult {

	if hand.Phase == HandStatus_COMPLETE {
		return &ActionResult{Hand: hand, Players: players, HandCompleted: true}
	}

	run := &handRun{
		hand:      hand.Clone(),
		players:   clonePlayers(players),
		boards:    boards,
		holeCards: holeCards,
		result:    &ActionResult{},
	}
	run.bySeat = playersBySeat(run.players)

	if err := run.apply(input); err != nil {
		actionLogger.Debug().
			Str("game", hand.GameCode).
			Uint32("hand", hand.HandNum).
			Uint32("seat", input.SeatNo).
			Str("action", input.Action.String()).
			Err(err).
			Msg("Action rejected")
		return &ActionResult{Hand: hand, Players: players, Error: err.Error()}
	}

	run.result.Hand = run.hand
	run.result.Players = run.players
	return run.result
}

// ResolveShowdown completes a hand whose betting is already over (a deal that
// left nobody able to act parks the hand in the showdown phase). Like
// ApplyAction it is copy-in/copy-out.
func ResolveShowdown(hand *HandState, players []*Player, boards [][]poker.Card,
	holeCards map[uint32][]poker.Card) *ActionResult {

	if hand.Phase == HandStatus_COMPLETE {
		return &ActionResult{Hand: hand, Players: players, HandCompleted: true}
	}

	run := &handRun{
		hand:      hand.Clone(),
		players:   clonePlayers(players),
		boards:    boards,
		holeCards: holeCards,
		result:    &ActionResult{},
	}
	run.bySeat = playersBySeat(run.players)
	run.resolveShowdown()
	run.result.Hand = run.hand
	run.result.Players = run.players
	return run.result
}

func (r *handRun) apply(input ActionInput) error {
	h := r.hand

	p, ok := r.bySeat[input.SeatNo]
	if !ok {
		return NotYourTurnError{SeatNo: input.SeatNo}
	}
	if p.Spectating || p.SittingOut {
		return InvalidActionError{Msg: "Seat is not in the hand"}
	}

	if h.Phase == HandStatus_PARTITION {
		return r.applyPartition(p, input)
	}
	if input.Action == ACTION_PARTITION {
		return InvalidActionError{Msg: "Partitions can only be submitted in the partition phase"}
	}
	if h.Phase == HandStatus_SHOWDOWN {
		// betting ended at the deal (everyone all-in); any action resolves it
		r.resolveShowdown()
		return nil
	}

	if input.SeatNo != h.CurrentActor {
		return NotYourTurnError{SeatNo: input.SeatNo}
	}

	switch input.Action {
	case ACTION_FOLD:
		return r.fold(p)

	case ACTION_CHECK:
		if h.CurrentBet > p.CurrentBet {
			return InvalidActionError{Msg: "Cannot check, there is a bet to call"}
		}
		r.log(p, ACTION_CHECK, 0)
		r.seatDone(p)

	case ACTION_CALL:
		if h.CurrentBet == 0 {
			return InvalidActionError{Msg: "No bet to call"}
		}
		target := h.CurrentBet
		if target-p.CurrentBet >= p.Stack {
			target = p.CurrentBet + p.Stack
		}
		r.commit(p, target)
		if p.AllIn {
			r.log(p, ACTION_ALLIN, target)
		} else {
			r.log(p, ACTION_CALL, target)
		}
		r.seatDone(p)

	case ACTION_BET:
		if h.CurrentBet != 0 {
			return InvalidActionError{Msg: "Cannot bet over an existing bet, raise instead"}
		}
		if input.Amount <= 0 {
			return InvalidActionError{Msg: "Bet must be a positive amount"}
		}
		if max := r.potLimitMax(p); input.Amount > max {
			return InvalidActionError{Msg: fmt.Sprintf("Bet %d exceeds the pot limit of %d", input.Amount, max)}
		}
		r.betOrRaise(p, input.Amount, ACTION_BET)

	case ACTION_RAISE:
		if h.CurrentBet == 0 {
			return InvalidActionError{Msg: "No bet to raise"}
		}
		if input.Amount <= h.CurrentBet {
			return InvalidActionError{Msg: "Raise must exceed the current bet"}
		}
		allInAmount := p.CurrentBet + p.Stack
		if minLegal := h.CurrentBet + h.MinRaise; input.Amount < minLegal && input.Amount < allInAmount {
			return InvalidActionError{Msg: fmt.Sprintf("Raise to %d is below the minimum of %d", input.Amount, minLegal)}
		}
		if max := r.potLimitMax(p); input.Amount > max {
			return InvalidActionError{Msg: fmt.Sprintf("Raise %d exceeds the pot limit of %d", input.Amount, max)}
		}
		r.betOrRaise(p, input.Amount, ACTION_RAISE)

	case ACTION_ALLIN:
		r.betOrRaise(p, p.CurrentBet+p.Stack, ACTION_ALLIN)

	default:
		return InvalidActionError{Msg: fmt.Sprintf("Unknown action %d", input.Action)}
	}

	return nil
}

func (r *handRun) fold(p *Player) error {
	h := r.hand
	p.Folded = true
	h.SeatsToAct = removeSeat(h.SeatsToAct, p.SeatNo)
	h.SeatsActed = removeSeat(h.SeatsActed, p.SeatNo)
	r.log(p, ACTION_FOLD, 0)

	live := nonFoldedSeats(r.players)
	if len(live) == 1 {
		r.completeOnFold(live[0])
		return nil
	}
	r.afterAction()
	return nil
}

// commit moves chips from the player's stack so that their street bet reaches
// target, tracking the hand investment and the pot.
func (r *handRun) commit(p *Player, target int64) {
	diff := target - p.CurrentBet
	if diff <= 0 {
		return
	}
	p.Stack -= diff
	p.CurrentBet = target
	p.TotalInvested += diff
	r.hand.PotSize += diff
	if p.Stack == 0 {
		p.AllIn = true
	}
}

// betOrRaise puts target chips in front of the player. An amount beyond the
// stack is silently capped to an all-in. A full raise (at least the minimum
// increment over the table bet) reopens the street to everyone else who can
// act; a short all-in does not.
func (r *handRun) betOrRaise(p *Player, target int64, action ACTION) {
	h := r.hand

	if allInAmount := p.CurrentBet + p.Stack; target >= allInAmount {
		target = allInAmount
	}

	if target <= h.CurrentBet {
		// an all-in that cannot even match the bet: call for less
		r.commit(p, target)
		r.log(p, ACTION_ALLIN, target)
		r.seatDone(p)
		return
	}

	raiseSize := target - h.CurrentBet
	fullRaise := raiseSize >= h.MinRaise
	r.commit(p, target)
	h.CurrentBet = target

	logged := action
	if p.AllIn {
		logged = ACTION_ALLIN
	}
	r.log(p, logged, target)

	if fullRaise {
		h.LastRaise = raiseSize
		if raiseSize > h.MinRaise {
			h.MinRaise = raiseSize
		}
		h.LastAggressor = p.SeatNo
		// everyone else still in gets to respond
		toAct := actingOrder(r.bySeat, h.MaxSeats, p.SeatNo)
		h.SeatsToAct = removeSeat(toAct, p.SeatNo)
		h.SeatsActed = []uint32{p.SeatNo}
		r.afterAction()
		return
	}

	// short all-in: the table bet moved, but seats that already acted this
	// street are not reopened
	r.seatDone(p)
}

// seatDone moves the acting seat from the to-act queue to the acted set and
// hands the turn to the next seat in the queue.
func (r *handRun) seatDone(p *Player) {
	h := r.hand
	h.SeatsToAct = removeSeat(h.SeatsToAct, p.SeatNo)
	if !containsSeat(h.SeatsActed, p.SeatNo) {
		h.SeatsActed = append(h.SeatsActed, p.SeatNo)
	}
	r.afterAction()
}

func (r *handRun) afterAction() {
	h := r.hand
	if len(h.SeatsToAct) == 0 {
		r.settleStreet()
		return
	}
	h.CurrentActor = h.SeatsToAct[0]
}

// settleStreet closes the betting round: street bets sweep into the pot
// layers, the raise trackers reset, and the hand advances one street, or
// fast-forwards to the end when no further betting is possible.
func (r *handRun) settleStreet() {
	h := r.hand
	for _, p := range r.players {
		p.CurrentBet = 0
	}
	h.CurrentBet = 0
	h.LastRaise = 0
	h.MinRaise = h.BigBlind
	h.LastAggressor = 0
	h.SeatsActed = nil
	h.SeatsToAct = nil
	h.CurrentActor = 0
	h.Pots = CalculateSidePots(r.players)

	if noMoreBetting(h, r.players) {
		fastForwardReveal(h, r.boards, nonFoldedSeats(r.players))
		if h.Phase == HandStatus_PARTITION && len(h.PartitionPending) > 0 {
			return
		}
		r.resolveShowdown()
		return
	}

	switch h.Phase {
	case HandStatus_PREFLOP:
		// the flop was revealed at the deal
		h.Phase = HandStatus_FLOP
	case HandStatus_FLOP:
		h.Phase = HandStatus_TURN
		r.revealBoards(4)
	case HandStatus_TURN:
		h.Phase = HandStatus_RIVER
		r.revealBoards(5)
	case HandStatus_RIVER:
		if h.GameType == GameType_THREE_TWO_ONE {
			h.Phase = HandStatus_PARTITION
			h.PartitionPending = pendingPartitionSeats(h, nonFoldedSeats(r.players))
			if len(h.PartitionPending) == 0 {
				r.resolveShowdown()
			}
			return
		}
		r.resolveShowdown()
		return
	}

	h.SeatsToAct = actingOrder(r.bySeat, h.MaxSeats, h.ButtonSeat)
	h.CurrentActor = h.SeatsToAct[0]
}

func (r *handRun) revealBoards(upTo int) {
	for i, board := range r.boards {
		n := upTo
		if n > len(board) {
			n = len(board)
		}
		r.hand.Boards[i] = append([]poker.Card(nil), board[:n]...)
	}
}

// completeOnFold ends the hand when a fold leaves a single seat standing. The
// whole pot goes to that seat with no board reveal or showdown.
func (r *handRun) completeOnFold(winner uint32) {
	h := r.hand
	for _, p := range r.players {
		p.CurrentBet = 0
	}
	h.CurrentBet = 0
	h.LastRaise = 0
	h.LastAggressor = 0
	h.SeatsToAct = nil
	h.SeatsActed = nil
	h.CurrentActor = 0
	h.Pots = []*SidePot{{Pot: h.PotSize, Seats: []uint32{winner}}}
	r.bySeat[winner].Stack += h.PotSize
	h.Phase = HandStatus_COMPLETE

	r.result.HandCompleted = true
	r.result.AutoWinners = []uint32{winner}
	r.result.PotAwarded = h.PotSize
	r.result.Payouts = map[uint32]int64{winner: h.PotSize}
}

// applyPartition records a seat's 3/2/1 hole-card split during the partition
// phase. Once every pending seat has submitted, the partitions are revealed
// together and the hand goes to showdown.
func (r *handRun) applyPartition(p *Player, input ActionInput) error {
	h := r.hand
	if input.Action != ACTION_PARTITION {
		return InvalidActionError{Msg: "Only partition submissions are accepted in the partition phase"}
	}
	if !containsSeat(h.PartitionPending, p.SeatNo) {
		if _, ok := h.Partitions[p.SeatNo]; ok {
			return InvalidActionError{Msg: "Partition already submitted"}
		}
		return InvalidActionError{Msg: "Seat has no partition to submit"}
	}
	if err := validatePartition(input.Partition, r.holeCards[p.SeatNo]); err != nil {
		return err
	}

	h.Partitions[p.SeatNo] = &Partition{
		Three: append([]poker.Card(nil), input.Partition.Three...),
		Two:   append([]poker.Card(nil), input.Partition.Two...),
		One:   append([]poker.Card(nil), input.Partition.One...),
	}
	h.PartitionPending = removeSeat(h.PartitionPending, p.SeatNo)
	r.log(p, ACTION_PARTITION, 0)

	if len(h.PartitionPending) == 0 {
		r.resolveShowdown()
	}
	return nil
}

// validatePartition checks the 3/2/1 subset sizes and that the submitted
// cards are exactly a split of the seat's six hole cards. Hole cards can
// repeat when two decks are in play, so this is a multiset comparison.
func validatePartition(part *Partition, holeCards []poker.Card) error {
	if part == nil {
		return InvalidActionError{Msg: "Partition is missing"}
	}
	if len(part.Three) != 3 || len(part.Two) != 2 || len(part.One) != 1 {
		return InvalidActionError{Msg: "Partition must split the hole cards into subsets of 3, 2 and 1"}
	}

	counts := make(map[poker.Card]int, len(holeCards))
	for _, c := range holeCards {
		counts[c]++
	}
	all := make([]poker.Card, 0, 6)
	all = append(all, part.Three...)
	all = append(all, part.Two...)
	all = append(all, part.One...)
	for _, c := range all {
		counts[c]--
		if counts[c] < 0 {
			return InvalidActionError{Msg: fmt.Sprintf("Partition card %s is not among the dealt hole cards", c.String())}
		}
	}
	return nil
}

// resolveShowdown determines the winners per board, distributes the side
// pots, and completes the hand.
func (r *handRun) resolveShowdown() {
	h := r.hand
	for _, p := range r.players {
		p.CurrentBet = 0
	}
	h.CurrentBet = 0
	h.CurrentActor = 0
	h.SeatsToAct = nil

	h.Pots = CalculateSidePots(r.players)
	// folded seats' chips are not layered into side pots; they stay in the
	// hand by topping up the widest (first) pot
	if diff := h.PotSize - totalOfPots(h.Pots); diff > 0 && len(h.Pots) > 0 {
		h.Pots[0].Pot += diff
	}

	live := nonFoldedSeats(r.players)

	var boardWinners [][]uint32
	var payouts map[uint32]int64
	switch h.GameType {
	case GameType_PLO_BOMB_POT:
		w1 := WinnersExact(r.holeCards, r.boards[0], live, 2)
		w2 := WinnersExact(r.holeCards, r.boards[1], live, 2)
		boardWinners = [][]uint32{w1, w2}
		payouts = EndOfHandPayout(h.Pots, w1, w2)
	case GameType_THREE_TWO_ONE:
		committed := make([]uint32, 0, len(live))
		for _, seatNo := range live {
			if _, ok := h.Partitions[seatNo]; ok {
				committed = append(committed, seatNo)
			}
		}
		w := Winners321(h.Partitions, r.boards, committed)
		boardWinners = [][]uint32{w[0], w[1], w[2]}
		payouts = EndOfHandPayout321(h.Pots, w[0], w[1], w[2])
	default:
		w := WinnersSingleBoard(r.holeCards, r.boards[0], live)
		boardWinners = [][]uint32{w}
		payouts = EndOfHandPayout(h.Pots, w, w)
	}

	r.revealBoards(5)
	for seatNo, amount := range payouts {
		r.bySeat[seatNo].Stack += amount
	}
	h.Phase = HandStatus_COMPLETE

	total := int64(0)
	for _, amount := range payouts {
		total += amount
	}
	r.result.HandCompleted = true
	r.result.BoardWinners = boardWinners
	r.result.Payouts = payouts
	r.result.PotAwarded = total
}

func (r *handRun) log(p *Player, action ACTION, amount int64) {
	r.hand.ActionLog = append(r.hand.ActionLog, &ActionRecord{
		SeatNo: p.SeatNo,
		Action: action,
		Amount: amount,
		Street: r.hand.Phase,
		Stack:  p.Stack,
	})
}

// potLimitMax is the largest total wager the seat may put in front of itself
// under pot-limit sizing: the pot plus the table bet plus the call amount.
func (r *handRun) potLimitMax(p *Player) int64 {
	h := r.hand
	toCall := h.CurrentBet - p.CurrentBet
	if toCall < 0 {
		toCall = 0
	}
	return h.PotSize + h.CurrentBet + toCall
}

func nonFoldedSeats(players []*Player) []uint32 {
	seats := make([]uint32, 0, len(players))
	for _, p := range players {
		if p.Folded || p.Spectating || p.SittingOut {
			continue
		}
		if p.TotalInvested == 0 && p.Stack == 0 {
			// never dealt in
			continue
		}
		seats = append(seats, p.SeatNo)
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i] < seats[j] })
	return seats
}

// pendingPartitionSeats lists the non-folded seats that still owe a partition
// submission.
func pendingPartitionSeats(hand *HandState, nonFolded []uint32) []uint32 {
	pending := make([]uint32, 0, len(nonFolded))
	for _, seatNo := range nonFolded {
		if _, ok := hand.Partitions[seatNo]; !ok {
			pending = append(pending, seatNo)
		}
	}
	return pending
}
