package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// WatermarkStore keeps per-campaign per-recipient "last sent" markers as
// expiring keys. A live key means the recipient is inside the cooldown
// window.
type WatermarkStore struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewWatermarkStore(rdb *redis.Client, log zerolog.Logger) *WatermarkStore {
	return &WatermarkStore{
		rdb: rdb,
		log: log.With().Str("component", "watermark_store").Logger(),
	}
}

func (s *WatermarkStore) Seen(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, fmt.Errorf("empty watermark key")
	}
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *WatermarkStore) MarkSent(ctx context.Context, key string, ttl time.Duration) error {
	if key == "" {
		return fmt.Errorf("empty watermark key")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return s.rdb.Set(ctx, key, "1", ttl).Err()
}
