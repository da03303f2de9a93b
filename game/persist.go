package game

import (
	"cardroom.com/server/poker"
)

// HandRecord is the public state persisted per game code: the room
// configuration, the current hand, and the player snapshots.
type HandRecord struct {
	Config  *RoomConfig `json:"config"`
	Hand    *HandState  `json:"hand"`
	Players []*Player   `json:"players"`
}

// RestrictedRecord holds the secrets of the current hand. It is stored apart
// from the public record and must never be sent to clients while the hand is
// running: the full boards, every seat's hole cards, and the shuffle seed.
type RestrictedRecord struct {
	Boards    [][]poker.Card          `json:"boards"`
	HoleCards map[uint32][]poker.Card `json:"holeCards"`
	Seed      int64                   `json:"seed"`
	TwoDecks  bool                    `json:"twoDecks"`
}

// PersistHandState stores and retrieves hand state keyed by game code. Public
// and restricted records are saved and loaded separately so the transport
// layer can hand out the public record without touching the secrets.
type PersistHandState interface {
	Save(gameCode string, record *HandRecord) error
	Load(gameCode string) (*HandRecord, error)
	SaveRestricted(gameCode string, record *RestrictedRecord) error
	LoadRestricted(gameCode string) (*RestrictedRecord, error)
	Remove(gameCode string) error

	// CompletedBefore lists game codes whose hand completed before the
	// given unix time, for the retention sweep.
	CompletedBefore(cutoff int64) ([]string, error)
}
