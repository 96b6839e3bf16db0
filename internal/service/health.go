package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Health struct {
	DB    *bun.DB
	Redis *redis.Client
	NATS  *nats.Conn
}

func NewHealth(db *bun.DB, redisClient *redis.Client, natsConn *nats.Conn) *Health {
	return &Health{
		DB:    db,
		Redis: redisClient,
		NATS:  natsConn,
	}
}

// Ping checks every infrastructure dependency within a bounded time.
func (s *Health) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if err := s.DB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	if err := s.Redis.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "failed to ping redis")
	}
	if !s.NATS.IsConnected() {
		return errors.New("nats connection is not established")
	}
	return nil
}
