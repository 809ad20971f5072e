package activity

import (
	"context"
	"time"

	"github.com/shopsignal/engagement/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// ActivityRepo is the persistence port for the activity store. Upsert must be
// atomic per (user, product, action) tuple: concurrent writers for the same
// tuple may not lose increments.
type ActivityRepo interface {
	// Upsert inserts rec as the tuple's first row, or folds its counter
	// values into the existing row, and returns the stored state.
	Upsert(ctx context.Context, rec *domain.ActivityRecord) (*domain.ActivityRecord, error)

	// ListLeads returns all activity rows joined with user and product
	// attributes for the reporting read. Rows whose user can no longer be
	// resolved are omitted.
	ListLeads(ctx context.Context) ([]domain.LeadRecord, error)

	// ListLeadRows returns the per-row counter sums the scoring engine
	// aggregates, restricted to authenticated activity.
	ListLeadRows(ctx context.Context) ([]domain.LeadRow, error)
}
