package campaign

import (
	"context"
	"time"
)

// NoopWatermarks disables send dedup. Wired when redis is not configured:
// every run treats every recipient as unseen.
type NoopWatermarks struct{}

func (NoopWatermarks) Seen(ctx context.Context, key string) (bool, error) { return false, nil }

func (NoopWatermarks) MarkSent(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}
