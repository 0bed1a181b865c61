package database

import (
	"context"
	"fmt"
	"time"

	"healthcare-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisMaxRetries = 5
	redisRetryDelay = 2 * time.Second
)

// InitRedis connects to Redis, retrying a few times while the server
// comes up.
func InitRedis(ctx context.Context, config utils.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Network:  "tcp",
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	var err error
	for i := 0; i < redisMaxRetries; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			return client, nil
		}

		log.Warn("Failed to connect to Redis",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", redisMaxRetries),
			zap.Error(err))

		select {
		case <-ctx.Done():
			client.Close()
			return nil, ctx.Err()
		case <-time.After(redisRetryDelay):
		}
	}

	client.Close()
	return nil, fmt.Errorf("connect redis %s: %w", config.Addr, err)
}
