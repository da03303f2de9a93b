package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	messages []*HandMessage
}

func (r *recordingBroadcaster) Publish(gameCode string, message *HandMessage) error {
	r.messages = append(r.messages, message)
	return nil
}

func newTestManager() (*Manager, *recordingBroadcaster) {
	broadcaster := &recordingBroadcaster{}
	return NewManager(NewMemoryHandStateTracker(), broadcaster), broadcaster
}

func TestManagerNewHand(t *testing.T) {
	manager, broadcaster := newTestManager()

	record, err := manager.NewHand(holdemConfig(), threePlayers(100))
	require.NoError(t, err)

	assert.Equal(t, HandStatus_PREFLOP, record.Hand.Phase)
	assert.Equal(t, uint32(1), record.Hand.HandNum)
	require.Len(t, broadcaster.messages, 1)
	assert.Equal(t, MessageNewHand, broadcaster.messages[0].Type)

	// the public record never includes full boards or hole cards
	assert.Len(t, record.Hand.Boards[0], 3)

	loaded, err := manager.CurrentHand("test-game")
	require.NoError(t, err)
	assert.Equal(t, record.Hand.HandNum, loaded.Hand.HandNum)
}

func TestManagerRejectsDealOverRunningHand(t *testing.T) {
	manager, _ := newTestManager()

	_, err := manager.NewHand(holdemConfig(), threePlayers(100))
	require.NoError(t, err)

	_, err = manager.NewHand(holdemConfig(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still running")
}

func TestManagerActionFlow(t *testing.T) {
	manager, broadcaster := newTestManager()

	record, err := manager.NewHand(holdemConfig(), threePlayers(100))
	require.NoError(t, err)
	actor := record.Hand.CurrentActor

	result, err := manager.HandleAction("test-game", "act-1",
		ActionInput{SeatNo: actor, Action: ACTION_CALL})
	require.NoError(t, err)
	require.Empty(t, result.Error)
	assert.NotEqual(t, actor, result.Hand.CurrentActor)
	require.Len(t, broadcaster.messages, 2)
	assert.Equal(t, MessageAction, broadcaster.messages[1].Type)

	// a redelivered action id returns the cached result without advancing
	dup, err := manager.HandleAction("test-game", "act-1",
		ActionInput{SeatNo: actor, Action: ACTION_CALL})
	require.NoError(t, err)
	assert.Equal(t, result, dup)
	assert.Len(t, broadcaster.messages, 2)

	loaded, err := manager.CurrentHand("test-game")
	require.NoError(t, err)
	assert.Equal(t, result.Hand.CurrentActor, loaded.Hand.CurrentActor)
}

func TestManagerRejectedActionNotCached(t *testing.T) {
	manager, _ := newTestManager()

	record, err := manager.NewHand(holdemConfig(), threePlayers(100))
	require.NoError(t, err)
	actor := record.Hand.CurrentActor

	bad, err := manager.HandleAction("test-game", "act-1",
		ActionInput{SeatNo: actor + 10, Action: ACTION_FOLD})
	require.NoError(t, err)
	assert.NotEmpty(t, bad.Error)

	// the same id can retry with corrected input
	good, err := manager.HandleAction("test-game", "act-1",
		ActionInput{SeatNo: actor, Action: ACTION_FOLD})
	require.NoError(t, err)
	assert.Empty(t, good.Error)
}

func TestManagerButtonAndStacksCarryOver(t *testing.T) {
	manager, _ := newTestManager()

	first, err := manager.NewHand(holdemConfig(), threePlayers(100))
	require.NoError(t, err)
	completeByFolds(t, manager, first)

	second, err := manager.NewHand(holdemConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), second.Hand.HandNum)
	assert.Equal(t, uint32(2), second.Hand.ButtonSeat)

	// stacks reflect the previous hand's result plus the new blinds
	total := int64(0)
	for _, p := range second.Players {
		total += p.Stack
	}
	assert.Equal(t, int64(300)-second.Hand.PotSize, total)
}

func TestManagerCompletedAtStamp(t *testing.T) {
	manager, _ := newTestManager()

	record, err := manager.NewHand(holdemConfig(), threePlayers(100))
	require.NoError(t, err)
	final := completeByFolds(t, manager, record)

	assert.True(t, final.HandCompleted)
	assert.NotZero(t, final.Hand.CompletedAt)
}

func TestManagerCleanUpCompletedHands(t *testing.T) {
	manager, _ := newTestManager()

	record, err := manager.NewHand(holdemConfig(), threePlayers(100))
	require.NoError(t, err)
	completeByFolds(t, manager, record)

	// a freshly completed hand is inside the retention window
	removed, err := manager.CleanUpCompletedHands(time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)

	// age the record past the window
	stored, err := manager.CurrentHand("test-game")
	require.NoError(t, err)
	stored.Hand.CompletedAt = time.Now().Add(-2 * time.Hour).Unix()

	removed, err = manager.CleanUpCompletedHands(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = manager.CurrentHand("test-game")
	assert.Error(t, err)
}

// completeByFolds folds every acting seat until the hand completes and
// returns the final result.
func completeByFolds(t *testing.T, manager *Manager, record *HandRecord) *ActionResult {
	t.Helper()
	hand := record.Hand
	var final *ActionResult
	for hand.Phase != HandStatus_COMPLETE {
		require.NotZero(t, hand.CurrentActor)
		result, err := manager.HandleAction(record.Config.GameCode, "",
			ActionInput{SeatNo: hand.CurrentActor, Action: ACTION_FOLD})
		require.NoError(t, err)
		require.Empty(t, result.Error)
		hand = result.Hand
		final = result
	}
	return final
}
