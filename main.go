package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"cardroom.com/server/game"
	"cardroom.com/server/nats"
	"cardroom.com/server/rest"
	"cardroom.com/server/util"
)

var mainLogger = log.With().Str("logger_name", "main::main").Logger()

func main() {
	persist, err := getPersist()
	if err != nil {
		mainLogger.Error().Err(err).Msg("Failed to set up the hand state store")
		os.Exit(1)
	}

	broadcaster, err := nats.NewHandBroadcaster(util.Env.GetNatsURL())
	if err != nil {
		mainLogger.Error().Err(err).Msg("Failed to connect to NATS")
		os.Exit(1)
	}
	defer broadcaster.Close()

	manager := game.NewManager(persist, broadcaster)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go manager.RunCleanup(ctx,
		time.Duration(util.Env.GetCleanupIntervalMin())*time.Minute,
		time.Duration(util.Env.GetHandRetentionMin())*time.Minute)

	server := rest.NewServer(manager)
	if err := server.Run(util.Env.GetGameServerPort()); err != nil {
		mainLogger.Error().Err(err).Msg("REST server exited")
		os.Exit(1)
	}
}

func getPersist() (game.PersistHandState, error) {
	method := util.Env.GetPersistMethod()
	switch method {
	case "redis":
		addr := fmt.Sprintf("%s:%d", util.Env.GetRedisHost(), util.Env.GetRedisPort())
		return game.NewRedisHandStateTracker(addr, util.Env.GetRedisPW(), util.Env.GetRedisDB()), nil
	case "memory":
		return game.NewMemoryHandStateTracker(), nil
	default:
		return nil, fmt.Errorf("Unsupported persist method %s", method)
	}
}
