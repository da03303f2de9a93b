package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostBlindsThreeHanded(t *testing.T) {
	players := []*Player{
		{SeatNo: 1, Stack: 100},
		{SeatNo: 2, Stack: 100},
		{SeatNo: 3, Stack: 100},
	}
	posting, err := PostBlinds(players, 1, 4, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, uint32(2), posting.SBSeat)
	assert.Equal(t, uint32(3), posting.BBSeat)
	assert.Equal(t, int64(2), posting.CurrentBet)
	assert.Equal(t, int64(3), posting.TotalPosted)

	bySeat := playersBySeat(posting.Players)
	assert.Equal(t, int64(99), bySeat[2].Stack)
	assert.Equal(t, int64(1), bySeat[2].CurrentBet)
	assert.Equal(t, int64(98), bySeat[3].Stack)
	assert.Equal(t, int64(2), bySeat[3].CurrentBet)

	// the input snapshot is untouched
	assert.Equal(t, int64(100), players[1].Stack)
}

func TestPostBlindsHeadsUpButtonPostsSmall(t *testing.T) {
	players := []*Player{
		{SeatNo: 3, Stack: 50},
		{SeatNo: 6, Stack: 50},
	}
	posting, err := PostBlinds(players, 3, 9, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, uint32(3), posting.SBSeat)
	assert.Equal(t, uint32(6), posting.BBSeat)
}

func TestPostBlindsShortStackAllIn(t *testing.T) {
	players := []*Player{
		{SeatNo: 1, Stack: 100},
		{SeatNo: 2, Stack: 100},
		{SeatNo: 3, Stack: 1},
	}
	posting, err := PostBlinds(players, 1, 4, 1, 2)
	require.NoError(t, err)

	bySeat := playersBySeat(posting.Players)
	bb := bySeat[3]
	assert.Equal(t, int64(0), bb.Stack)
	assert.Equal(t, int64(1), bb.CurrentBet)
	assert.True(t, bb.AllIn)

	// the table bet reflects the larger actual posting
	assert.Equal(t, int64(1), posting.CurrentBet)
	assert.Equal(t, int64(2), posting.TotalPosted)
}

func TestPostBlindsSkipsIneligibleSeats(t *testing.T) {
	players := []*Player{
		{SeatNo: 1, Stack: 100},
		{SeatNo: 2, Stack: 100, SittingOut: true},
		{SeatNo: 3, Stack: 0},
		{SeatNo: 4, Stack: 100},
		{SeatNo: 5, Stack: 100},
	}
	posting, err := PostBlinds(players, 1, 6, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, uint32(4), posting.SBSeat)
	assert.Equal(t, uint32(5), posting.BBSeat)
}

func TestPostBlindsNotEnoughPlayers(t *testing.T) {
	players := []*Player{
		{SeatNo: 1, Stack: 100},
		{SeatNo: 2, Stack: 0},
	}
	_, err := PostBlinds(players, 1, 4, 1, 2)
	require.Error(t, err)
	assert.IsType(t, NotEnoughPlayersError{}, err)
}
