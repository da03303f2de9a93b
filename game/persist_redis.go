package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var redisJSON = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	handKeyPrefix       = "hand:"
	restrictedKeyPrefix = "restricted:"
)

// RedisHandStateTracker stores hand state in Redis so a game can survive a
// server restart and be served by any node.
type RedisHandStateTracker struct {
	rdclient *redis.Client
}

func NewRedisHandStateTracker(redisURL string, redisPW string, redisDB int) *RedisHandStateTracker {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisHandStateTracker{rdclient: rdclient}
}

func (r *RedisHandStateTracker) Save(gameCode string, record *HandRecord) error {
	return r.save(handKeyPrefix+gameCode, record)
}

func (r *RedisHandStateTracker) Load(gameCode string) (*HandRecord, error) {
	var record HandRecord
	if err := r.load(handKeyPrefix+gameCode, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *RedisHandStateTracker) SaveRestricted(gameCode string, record *RestrictedRecord) error {
	return r.save(restrictedKeyPrefix+gameCode, record)
}

func (r *RedisHandStateTracker) LoadRestricted(gameCode string) (*RestrictedRecord, error) {
	var record RestrictedRecord
	if err := r.load(restrictedKeyPrefix+gameCode, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *RedisHandStateTracker) Remove(gameCode string) error {
	err := r.rdclient.Del(context.Background(),
		handKeyPrefix+gameCode, restrictedKeyPrefix+gameCode).Err()
	if err != nil {
		return errors.Wrapf(err, "Failed to remove hand state for game %s", gameCode)
	}
	return nil
}

func (r *RedisHandStateTracker) CompletedBefore(cutoff int64) ([]string, error) {
	ctx := context.Background()
	gameCodes := make([]string, 0)
	iter := r.rdclient.Scan(ctx, 0, handKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		var record HandRecord
		if err := r.load(key, &record); err != nil {
			continue
		}
		if record.Hand == nil || record.Hand.Phase != HandStatus_COMPLETE {
			continue
		}
		if record.Hand.CompletedAt != 0 && record.Hand.CompletedAt < cutoff {
			gameCodes = append(gameCodes, strings.TrimPrefix(key, handKeyPrefix))
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "Failed to scan hand state keys")
	}
	return gameCodes, nil
}

func (r *RedisHandStateTracker) save(key string, value interface{}) error {
	data, err := redisJSON.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "Failed to marshal %s", key)
	}
	if err := r.rdclient.Set(context.Background(), key, data, 0).Err(); err != nil {
		return errors.Wrapf(err, "Failed to save %s", key)
	}
	return nil
}

func (r *RedisHandStateTracker) load(key string, value interface{}) error {
	data, err := r.rdclient.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return fmt.Errorf("%s is not found", key)
	} else if err != nil {
		return errors.Wrapf(err, "Failed to load %s", key)
	}
	if err := redisJSON.Unmarshal([]byte(data), value); err != nil {
		return errors.Wrapf(err, "Failed to unmarshal %s", key)
	}
	return nil
}
