// Package segment derives campaign audiences from the activity store.
package segment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shopsignal/engagement/internal/domain"
)

type Resolver struct {
	repo SegmentRepo

	viewThreshold int
	defaultImage  string

	log zerolog.Logger
}

func NewResolver(repo SegmentRepo, viewThreshold int, defaultImage string, log zerolog.Logger) *Resolver {
	return &Resolver{
		repo:          repo,
		viewThreshold: viewThreshold,
		defaultImage:  defaultImage,
		log:           log.With().Str("component", "segment_resolver").Logger(),
	}
}

// AbandonedCart resolves users who added a product to their cart and never
// bought it, evaluated as of now.
func (r *Resolver) AbandonedCart(ctx context.Context) ([]domain.AudienceEntry, error) {
	entries, err := r.repo.AbandonedCart(ctx)
	if err != nil {
		return nil, err
	}
	return r.normalize(entries), nil
}

// FrequentViewers resolves (user, product) pairs viewed strictly more than
// the configured threshold.
func (r *Resolver) FrequentViewers(ctx context.Context) ([]domain.AudienceEntry, error) {
	entries, err := r.repo.FrequentViewers(ctx, r.viewThreshold)
	if err != nil {
		return nil, err
	}
	return r.normalize(entries), nil
}

// RecentPurchasers resolves recorded purchases for confirmation messaging.
func (r *Resolver) RecentPurchasers(ctx context.Context) ([]domain.AudienceEntry, error) {
	entries, err := r.repo.RecentPurchasers(ctx)
	if err != nil {
		return nil, err
	}
	return r.normalize(entries), nil
}

// PurchaseEntry enriches one (user, product) pair for the order-created
// confirmation send.
func (r *Resolver) PurchaseEntry(ctx context.Context, userID, productID string) (*domain.AudienceEntry, error) {
	entry, err := r.repo.PurchaseEntry(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if entry.Email == "" {
		return nil, domain.ErrNotFound("purchaser has no resolvable email")
	}
	entry.FillDefaults(r.defaultImage)
	return entry, nil
}

// normalize drops entries that cannot be mailed and fills product defaults.
// A single unresolvable row never aborts the segment.
func (r *Resolver) normalize(entries []domain.AudienceEntry) []domain.AudienceEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.Email == "" {
			r.log.Warn().Str("user_id", e.UserID).Str("product_id", e.ProductID).
				Msg("skipping audience entry without resolvable email")
			continue
		}
		e.FillDefaults(r.defaultImage)
		out = append(out, e)
	}
	return out
}
