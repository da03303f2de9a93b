package nats

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	natsgo "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"cardroom.com/server/game"
)

var natsLogger = log.With().Str("logger_name", "nats::fanout").Logger()

var messageJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// HandSubject is the per-game subject clients subscribe to for hand updates.
func HandSubject(gameCode string) string {
	return fmt.Sprintf("hand.%s", gameCode)
}

// HandBroadcaster publishes hand messages to the game's NATS subject.
type HandBroadcaster struct {
	nc *natsgo.Conn
}

func NewHandBroadcaster(natsURL string) (*HandBroadcaster, error) {
	nc, err := natsgo.Connect(natsURL)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to connect to NATS at %s", natsURL)
	}
	natsLogger.Info().Str("url", natsURL).Msg("Connected to NATS")
	return &HandBroadcaster{nc: nc}, nil
}

func (b *HandBroadcaster) Publish(gameCode string, message *game.HandMessage) error {
	data, err := messageJSON.Marshal(message)
	if err != nil {
		return errors.Wrap(err, "Failed to marshal hand message")
	}
	if err := b.nc.Publish(HandSubject(gameCode), data); err != nil {
		return errors.Wrapf(err, "Failed to publish to %s", HandSubject(gameCode))
	}
	return nil
}

func (b *HandBroadcaster) Close() {
	b.nc.Close()
}
