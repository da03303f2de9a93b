package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type cardroomEnvironment struct {
	PersistMethod      string
	RedisHost          string
	RedisPort          string
	RedisPW            string
	RedisDB            string
	NatsURL            string
	GameServerPort     string
	HandRetentionMin   string
	CleanupIntervalMin string
}

// Env is a helper object for accessing environment variables.
var Env = &cardroomEnvironment{
	PersistMethod:      "PERSIST_METHOD",
	RedisHost:          "REDIS_HOST",
	RedisPort:          "REDIS_PORT",
	RedisPW:            "REDIS_PW",
	RedisDB:            "REDIS_DB",
	NatsURL:            "NATS_URL",
	GameServerPort:     "GAME_SERVER_PORT",
	HandRetentionMin:   "HAND_RETENTION_MIN",
	CleanupIntervalMin: "CLEANUP_INTERVAL_MIN",
}

func (c *cardroomEnvironment) GetPersistMethod() string {
	method := os.Getenv(c.PersistMethod)
	if method == "" {
		return "memory"
	}
	return method
}

func (c *cardroomEnvironment) GetRedisHost() string {
	host := os.Getenv(c.RedisHost)
	if host == "" {
		msg := fmt.Sprintf("%s is not defined", c.RedisHost)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return host
}

func (c *cardroomEnvironment) GetRedisPort() int {
	portStr := os.Getenv(c.RedisPort)
	if portStr == "" {
		msg := fmt.Sprintf("%s is not defined", c.RedisPort)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (c *cardroomEnvironment) GetRedisPW() string {
	return os.Getenv(c.RedisPW)
}

func (c *cardroomEnvironment) GetRedisDB() int {
	dbStr := os.Getenv(c.RedisDB)
	if dbStr == "" {
		return 0
	}
	dbNum, err := strconv.Atoi(dbStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis db %s", dbStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return dbNum
}

func (c *cardroomEnvironment) GetNatsURL() string {
	url := os.Getenv(c.NatsURL)
	if url == "" {
		return "nats://localhost:4222"
	}
	return url
}

func (c *cardroomEnvironment) GetGameServerPort() int {
	portStr := os.Getenv(c.GameServerPort)
	if portStr == "" {
		return 8080
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid game server port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

// GetHandRetentionMin is how long a completed hand stays in the store before
// the cleanup sweep removes it.
func (c *cardroomEnvironment) GetHandRetentionMin() int {
	minStr := os.Getenv(c.HandRetentionMin)
	if minStr == "" {
		return 60
	}
	minNum, err := strconv.Atoi(minStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid hand retention minutes %s", minStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return minNum
}

func (c *cardroomEnvironment) GetCleanupIntervalMin() int {
	minStr := os.Getenv(c.CleanupIntervalMin)
	if minStr == "" {
		return 5
	}
	minNum, err := strconv.Atoi(minStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid cleanup interval minutes %s", minStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return minNum
}
