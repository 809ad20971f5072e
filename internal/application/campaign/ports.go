package campaign

import (
	"context"
	"time"

	"github.com/shopsignal/engagement/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// WatermarkStore remembers who a campaign already mailed inside the cooldown
// window. Keys expire so a user who stays in a segment is re-notified once
// per cooldown, not once per run.
type WatermarkStore interface {
	Seen(ctx context.Context, key string) (bool, error)
	MarkSent(ctx context.Context, key string, ttl time.Duration) error
}

// Dispatcher renders and sends one campaign email per audience entry.
type Dispatcher interface {
	SendAbandonedCart(ctx context.Context, e domain.AudienceEntry) error
	SendFrequentViewer(ctx context.Context, e domain.AudienceEntry) error
	SendPurchaseConfirmation(ctx context.Context, e domain.AudienceEntry) error
	ProviderName() string
}

// AudienceFunc resolves a campaign's audience at run time.
type AudienceFunc func(ctx context.Context) ([]domain.AudienceEntry, error)

// SendFunc dispatches to one recipient.
type SendFunc func(ctx context.Context, e domain.AudienceEntry) error

// Job binds a campaign name to its audience query and dispatch call.
type Job struct {
	Name     string
	Audience AudienceFunc
	Send     SendFunc
}
