package campaign

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shopsignal/engagement/internal/application/activity"
	"github.com/shopsignal/engagement/internal/domain"
)

// EntryLookup enriches one (user, product) pair for confirmation mail.
type EntryLookup interface {
	PurchaseEntry(ctx context.Context, userID, productID string) (*domain.AudienceEntry, error)
}

// Confirmer handles the order-created hook: it records the buy action and
// synchronously dispatches a purchase-confirmation email, outside the
// scheduled sweep.
type Confirmer struct {
	recorder *activity.Service
	lookup   EntryLookup
	runner   *Runner
	send     SendFunc

	log zerolog.Logger
}

func NewConfirmer(recorder *activity.Service, lookup EntryLookup, runner *Runner, send SendFunc, log zerolog.Logger) *Confirmer {
	return &Confirmer{
		recorder: recorder,
		lookup:   lookup,
		runner:   runner,
		send:     send,
		log:      log.With().Str("component", "purchase_confirmer").Logger(),
	}
}

// OrderCreated records the purchase and sends the confirmation. A failed or
// skipped send is not an error for the caller: the order event was absorbed,
// and the daily purchase-confirmation sweep covers stragglers.
func (c *Confirmer) OrderCreated(ctx context.Context, userID, productID string) (*domain.ActivityRecord, error) {
	res, err := c.recorder.Record(ctx, activity.RecordCmd{
		UserID:         userID,
		ProductID:      productID,
		Action:         string(domain.ActionBuy),
		IsLoggedInUser: true,
	})
	if err != nil {
		return nil, err
	}

	entry, err := c.lookup.PurchaseEntry(ctx, userID, productID)
	if err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Str("product_id", productID).
			Msg("purchase recorded but confirmation entry could not be resolved")
		return res.Record, nil
	}

	c.runner.Dispatch(ctx, domain.CampaignPurchaseConfirm, *entry, c.send)
	return res.Record, nil
}
