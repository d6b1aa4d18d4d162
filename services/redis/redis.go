package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	redis_models "Mafia/models/redis"
	redis_utils "Mafia/services/redis/utils"
	"Mafia/utils/logger"

	"github.com/redis/go-redis/v9"
)

// RedisClient keeps the live statistics counters in a single hash.
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance. Addr is either a
// redis:// URL or a plain host:port.
func NewRedisClient(Addr string, DB int) (*RedisClient, error) {
	var client *redis.Client
	if strings.HasPrefix(Addr, "redis://") || strings.HasPrefix(Addr, "rediss://") {
		logger.Info("[STATS] Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			return nil, fmt.Errorf("error parsing Redis URL: %v", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return NewRedisClientFrom(client), nil
}

// NewRedisClientFrom wraps an existing client.
func NewRedisClientFrom(client *redis.Client) *RedisClient {
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// IncrRoomsCreated counts one more room.
func (rc *RedisClient) IncrRoomsCreated() error {
	err := rc.client.HIncrBy(rc.ctx, redis_utils.FormatStatsKey(), redis_utils.FieldRoomsCreated, 1).Err()
	if err != nil {
		return fmt.Errorf("error counting room: %v", err)
	}
	return nil
}

// IncrGamesStarted counts one more game and the players it was dealt to.
func (rc *RedisClient) IncrGamesStarted(players int) error {
	key := redis_utils.FormatStatsKey()
	pipe := rc.client.Pipeline()
	pipe.HIncrBy(rc.ctx, key, redis_utils.FieldGamesStarted, 1)
	pipe.HIncrBy(rc.ctx, key, redis_utils.FieldPlayersDealt, int64(players))

	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error counting game start: %v", err)
	}
	return nil
}

// RecordGameEnded counts a finished game and its winning faction.
func (rc *RedisClient) RecordGameEnded(winner string) error {
	key := redis_utils.FormatStatsKey()
	pipe := rc.client.Pipeline()
	pipe.HIncrBy(rc.ctx, key, redis_utils.FieldGamesFinished, 1)
	pipe.HIncrBy(rc.ctx, key, redis_utils.FormatWinsField(winner), 1)

	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error counting game end: %v", err)
	}
	return nil
}

// GetStats reads every counter. Missing counters are zero.
func (rc *RedisClient) GetStats() (*redis_models.Stats, error) {
	fields, err := rc.client.HGetAll(rc.ctx, redis_utils.FormatStatsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting stats: %v", err)
	}

	stats := &redis_models.Stats{Wins: make(map[string]int64)}
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("error parsing stats field %s: %v", field, err)
		}
		switch field {
		case redis_utils.FieldRoomsCreated:
			stats.RoomsCreated = n
		case redis_utils.FieldGamesStarted:
			stats.GamesStarted = n
		case redis_utils.FieldGamesFinished:
			stats.GamesFinished = n
		case redis_utils.FieldPlayersDealt:
			stats.PlayersDealt = n
		default:
			if faction, ok := redis_utils.ParseWinsField(field); ok {
				stats.Wins[faction] = n
			}
		}
	}
	return stats, nil
}
