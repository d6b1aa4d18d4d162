package config

import (
	"fmt"

	"Mafia/services/redis"
	"Mafia/utils/logger"
)

// Connect to Redis
func Connect_redis(redisUri string) (*redis.RedisClient, error) {
	redisClient, err := redis.InitRedis(redisUri, 0)
	if err != nil {
		return nil, fmt.Errorf("error connecting to Redis: %w", err)
	}
	logger.Info("Redis connection established")
	return redisClient, nil
}
