package game

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"cardroom.com/server/util/random"
)

var managerLogger = log.With().Str("logger_name", "game::manager").Logger()

// HandMessage is what gets fanned out to the room's subscribers after every
// state change. It carries only the public snapshots.
type HandMessage struct {
	Type     string        `json:"type"`
	GameCode string        `json:"gameCode"`
	HandNum  uint32        `json:"handNum"`
	Hand     *HandState    `json:"hand"`
	Players  []*Player     `json:"players"`
	Result   *ActionResult `json:"result,omitempty"`
}

const (
	MessageNewHand = "NEW_HAND"
	MessageAction  = "ACTION"
)

// Broadcaster fans a hand message out to the game's subscribers.
type Broadcaster interface {
	Publish(gameCode string, message *HandMessage) error
}

// Manager drives games end to end: it deals hands, routes player actions into
// the engine, persists the resulting snapshots, and broadcasts every change.
// All mutation for a game happens under that game's lock, so concurrent
// requests for the same game are serialized while different games proceed in
// parallel.
type Manager struct {
	persist     PersistHandState
	broadcaster Broadcaster

	lockMu    sync.Mutex
	gameLocks map[string]*sync.Mutex

	resultMu    sync.Mutex
	seenResults map[string]map[string]*ActionResult
}

func NewManager(persist PersistHandState, broadcaster Broadcaster) *Manager {
	return &Manager{
		persist:     persist,
		broadcaster: broadcaster,
		gameLocks:   make(map[string]*sync.Mutex),
		seenResults: make(map[string]map[string]*ActionResult),
	}
}

func (m *Manager) gameLock(gameCode string) *sync.Mutex {
	m.lockMu.Lock()
	defer m.lockMu.Unlock()
	l, ok := m.gameLocks[gameCode]
	if !ok {
		l = &sync.Mutex{}
		m.gameLocks[gameCode] = l
	}
	return l
}

// NewHand deals the next hand for the game. The button position and hand
// number carry over from the stored record when one exists; passing nil
// players reuses the previous hand's seats with their updated stacks. A deal
// that leaves nobody able to act runs straight through to completion here.
func (m *Manager) NewHand(config *RoomConfig, players []*Player) (*HandRecord, error) {
	l := m.gameLock(config.GameCode)
	l.Lock()
	defer l.Unlock()

	prev, err := m.persist.Load(config.GameCode)
	if err == nil && prev.Hand != nil && prev.Hand.Phase != HandStatus_COMPLETE {
		return nil, errors.Errorf("Hand %d of game %s is still running",
			prev.Hand.HandNum, config.GameCode)
	}
	if prev != nil && prev.Config != nil {
		config.ButtonSeat = prev.Config.ButtonSeat
		config.HandNum = prev.Config.HandNum
		if players == nil {
			players = prev.Players
		}
	}
	if players == nil {
		return nil, errors.Errorf("Game %s has no seated players", config.GameCode)
	}

	seed := random.NewSeed()
	result, err := DealHand(config, players, seed)
	if err != nil {
		return nil, err
	}

	hand := result.Hand
	updated := result.Players
	if hand.Phase == HandStatus_SHOWDOWN {
		// everyone went all-in on the forced stakes
		resolved := ResolveShowdown(hand, updated, result.Boards, result.HoleCards)
		hand = resolved.Hand
		updated = resolved.Players
	}
	if hand.Phase == HandStatus_COMPLETE {
		hand.CompletedAt = time.Now().Unix()
	}

	nextConfig := *config
	nextConfig.ButtonSeat = result.ButtonSeat
	nextConfig.HandNum = hand.HandNum

	record := &HandRecord{Config: &nextConfig, Hand: hand, Players: updated}
	if err := m.persist.Save(config.GameCode, record); err != nil {
		return nil, err
	}
	restricted := &RestrictedRecord{
		Boards:    result.Boards,
		HoleCards: result.HoleCards,
		Seed:      result.Seed,
		TwoDecks:  result.TwoDecks,
	}
	if err := m.persist.SaveRestricted(config.GameCode, restricted); err != nil {
		return nil, err
	}

	m.clearSeenResults(config.GameCode)
	m.broadcast(config.GameCode, &HandMessage{
		Type:     MessageNewHand,
		GameCode: config.GameCode,
		HandNum:  hand.HandNum,
		Hand:     hand,
		Players:  updated,
	})

	managerLogger.Info().
		Str("game", config.GameCode).
		Uint32("hand", hand.HandNum).
		Str("phase", hand.Phase.String()).
		Msg("New hand started")
	return record, nil
}

// HandleAction applies one player action to the game's current hand. The
// actionID makes retries idempotent: a repeated ID returns the result of the
// first delivery without touching the hand.
func (m *Manager) HandleAction(gameCode string, actionID string, input ActionInput) (*ActionResult, error) {
	l := m.gameLock(gameCode)
	l.Lock()
	defer l.Unlock()

	if actionID != "" {
		if cached, ok := m.seenResult(gameCode, actionID); ok {
			managerLogger.Debug().
				Str("game", gameCode).
				Str("actionID", actionID).
				Msg("Duplicate action delivery, returning cached result")
			return cached, nil
		}
	}

	record, err := m.persist.Load(gameCode)
	if err != nil {
		return nil, err
	}
	if record.Hand == nil {
		return nil, errors.Errorf("Game %s has no hand in progress", gameCode)
	}
	restricted, err := m.persist.LoadRestricted(gameCode)
	if err != nil {
		return nil, err
	}

	result := ApplyAction(record.Hand, record.Players, restricted.Boards, restricted.HoleCards, input)
	if result.Error != "" {
		// rejected actions change nothing and are not cached, a retry with
		// corrected input should go through
		return result, nil
	}

	if result.HandCompleted && result.Hand.CompletedAt == 0 {
		result.Hand.CompletedAt = time.Now().Unix()
	}
	record.Hand = result.Hand
	record.Players = result.Players
	if err := m.persist.Save(gameCode, record); err != nil {
		return nil, err
	}

	if actionID != "" {
		m.cacheResult(gameCode, actionID, result)
	}
	m.broadcast(gameCode, &HandMessage{
		Type:     MessageAction,
		GameCode: gameCode,
		HandNum:  result.Hand.HandNum,
		Hand:     result.Hand,
		Players:  result.Players,
		Result:   result,
	})
	return result, nil
}

// CurrentHand returns the public record for the game.
func (m *Manager) CurrentHand(gameCode string) (*HandRecord, error) {
	return m.persist.Load(gameCode)
}

// CleanUpCompletedHands removes games whose hand completed longer ago than
// the retention window and returns how many were removed.
func (m *Manager) CleanUpCompletedHands(retention time.Duration) (int, error) {
	cutoff := time.Now().Add(-retention).Unix()
	gameCodes, err := m.persist.CompletedBefore(cutoff)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, gameCode := range gameCodes {
		l := m.gameLock(gameCode)
		l.Lock()
		err := m.persist.Remove(gameCode)
		if err == nil {
			m.clearSeenResults(gameCode)
			removed++
		}
		l.Unlock()
		if err != nil {
			managerLogger.Error().Err(err).
				Str("game", gameCode).
				Msg("Failed to remove completed hand")
		}
	}
	if removed > 0 {
		managerLogger.Info().Int("removed", removed).Msg("Cleaned up completed hands")
	}
	return removed, nil
}

// RunCleanup sweeps completed hands on the given interval until the context
// is cancelled.
func (m *Manager) RunCleanup(ctx context.Context, interval time.Duration, retention time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.CleanUpCompletedHands(retention); err != nil {
				managerLogger.Error().Err(err).Msg("Cleanup sweep failed")
			}
		}
	}
}

func (m *Manager) seenResult(gameCode string, actionID string) (*ActionResult, bool) {
	m.resultMu.Lock()
	defer m.resultMu.Unlock()
	byID, ok := m.seenResults[gameCode]
	if !ok {
		return nil, false
	}
	result, ok := byID[actionID]
	return result, ok
}

func (m *Manager) cacheResult(gameCode string, actionID string, result *ActionResult) {
	m.resultMu.Lock()
	defer m.resultMu.Unlock()
	byID, ok := m.seenResults[gameCode]
	if !ok {
		byID = make(map[string]*ActionResult)
		m.seenResults[gameCode] = byID
	}
	byID[actionID] = result
}

func (m *Manager) clearSeenResults(gameCode string) {
	m.resultMu.Lock()
	defer m.resultMu.Unlock()
	delete(m.seenResults, gameCode)
}

func (m *Manager) broadcast(gameCode string, message *HandMessage) {
	if m.broadcaster == nil {
		return
	}
	if err := m.broadcaster.Publish(gameCode, message); err != nil {
		managerLogger.Error().Err(err).
			Str("game", gameCode).
			Msg("Failed to broadcast hand message")
	}
}
