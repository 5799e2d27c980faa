package leads

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore pushes leads as JSON onto a capped list.
type RedisStore struct {
	client *redis.Client
	key    string
	max    int64
}

// NewRedisStore connects lazily to addr; the first command dials.
func NewRedisStore(addr, password string, db int, key string, max int64) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreWithClient(rdb, key, max)
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, key string, max int64) *RedisStore {
	if key == "" {
		key = "crown:leads"
	}
	if max <= 0 {
		max = 1000
	}
	return &RedisStore{client: client, key: key, max: max}
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Save(ctx context.Context, lead Lead) error {
	raw, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("encode lead: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, raw)
	pipe.LTrim(ctx, s.key, 0, s.max-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save lead: %w", err)
	}
	return nil
}

func (s *RedisStore) Recent(ctx context.Context, limit int) ([]Lead, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	vals, err := s.client.LRange(ctx, s.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redis recent leads: %w", err)
	}
	out := make([]Lead, 0, len(vals))
	for _, v := range vals {
		var l Lead
		if err := json.Unmarshal([]byte(v), &l); err != nil {
			return nil, fmt.Errorf("decode lead: %w", err)
		}
		out = append(out, l)
	}
	return out, nil
}

// Close releases the connection pool.
func (s *RedisStore) Close() error { return s.client.Close() }
