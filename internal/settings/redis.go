package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisStore keeps the settings in a Redis key. It is used when the
// settings are shared between several backend instances.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to the Redis server at url, e.g.
// redis://localhost:6379/0, and verifies the connection.
func NewRedisStore(url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Debug().Str("addr", opt.Addr).Int("db", opt.DB).Msg("Settings store")

	return &RedisStore{
		client: client,
		key:    "expense-tracker:settings:" + key,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context) (Budget, error) {
	value, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return Defaults(), nil
	} else if err != nil {
		return Budget{}, general(err)
	}

	return decode(value)
}

func (s *RedisStore) Put(ctx context.Context, b Budget) error {
	value, err := encode(b)
	if err != nil {
		return err
	}

	return general(s.client.Set(ctx, s.key, value, 0).Err())
}

func (s *RedisStore) Reset(ctx context.Context) (Budget, error) {
	err := s.client.Del(ctx, s.key).Err()
	if err != nil {
		return Budget{}, general(err)
	}

	return Defaults(), nil
}

// Close closes the connection to the server.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
