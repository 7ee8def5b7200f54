package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"marketplace-api/internal/config"
)

// OpenRedis builds the client backing the request rate limiter and
// confirms the server is reachable before the app takes traffic.
func OpenRedis(conf config.RedisConf, logger *zap.SugaredLogger) (*redis.Client, error) {
	dialTimeout := time.Duration(conf.DialTimeoutSec) * time.Second
	rdb := redis.NewClient(&redis.Options{
		Addr:        conf.Addr,
		Password:    conf.Password,
		DB:          conf.DB,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Infow("redis ready", "addr", conf.Addr)
	return rdb, nil
}
