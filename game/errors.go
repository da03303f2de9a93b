package game

import "fmt"

// NotYourTurnError is returned when a seat acts out of turn or does not exist
// in the hand. The hand state is left untouched.
type NotYourTurnError struct {
	SeatNo uint32
}

func (e NotYourTurnError) Error() string {
	return "Not your turn"
}

// InvalidActionError is a betting-rule violation: illegal amount, check over
// a bet, raise with no bet, and so on. The hand state is left untouched.
type InvalidActionError struct {
	Msg string
}

func (e InvalidActionError) Error() string {
	return e.Msg
}

// NotEnoughPlayersError is returned by DealHand when fewer than two seats are
// eligible for a hand.
type NotEnoughPlayersError struct {
	Eligible int
}

func (e NotEnoughPlayersError) Error() string {
	return fmt.Sprintf("Cannot deal a hand with %d eligible players", e.Eligible)
}
