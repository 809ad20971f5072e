package segment

import (
	"context"

	"github.com/shopsignal/engagement/internal/domain"
)

// SegmentRepo runs the read-only audience queries against the activity store
// joined with the collaborator-owned user and product tables.
type SegmentRepo interface {
	// AbandonedCart returns one entry per (user, product) tuple with a cart
	// add and no recorded purchase of that product.
	AbandonedCart(ctx context.Context) ([]domain.AudienceEntry, error)

	// FrequentViewers returns tuples whose view counter strictly exceeds
	// threshold.
	FrequentViewers(ctx context.Context, threshold int) ([]domain.AudienceEntry, error)

	// RecentPurchasers returns one entry per recorded (user, product)
	// purchase.
	RecentPurchasers(ctx context.Context) ([]domain.AudienceEntry, error)

	// PurchaseEntry enriches a single (user, product) pair for the
	// synchronous order-created confirmation path.
	PurchaseEntry(ctx context.Context, userID, productID string) (*domain.AudienceEntry, error)
}
