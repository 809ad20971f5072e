package postgres

import (
	"context"
	"database/sql"

	"github.com/shopsignal/engagement/internal/domain"
)

// SegmentRepo runs the audience queries. Read-only; the user and product
// tables belong to the CRUD collaborators.
type SegmentRepo struct {
	db *sql.DB
}

func NewSegmentRepo(db *sql.DB) *SegmentRepo { return &SegmentRepo{db: db} }

func (r *SegmentRepo) AbandonedCart(ctx context.Context) ([]domain.AudienceEntry, error) {
	rows, err := r.db.QueryContext(ctx, abandonedCartSQL)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	return scanEntries(rows, false)
}

func (r *SegmentRepo) FrequentViewers(ctx context.Context, threshold int) ([]domain.AudienceEntry, error) {
	rows, err := r.db.QueryContext(ctx, frequentViewersSQL, threshold)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	return scanEntries(rows, true)
}

func (r *SegmentRepo) RecentPurchasers(ctx context.Context) ([]domain.AudienceEntry, error) {
	rows, err := r.db.QueryContext(ctx, recentPurchasersSQL)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	return scanEntries(rows, false)
}

func (r *SegmentRepo) PurchaseEntry(ctx context.Context, userID, productID string) (*domain.AudienceEntry, error) {
	row := r.db.QueryRowContext(ctx, purchaseEntrySQL, userID, productID)

	var e domain.AudienceEntry
	err := row.Scan(
		&e.UserID, &e.Username, &e.Email,
		&e.ProductID, &e.ProductName, &e.ProductImage,
		&e.ProductPrice, &e.ProductDescription,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("user or product not found")
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &e, nil
}

func scanEntries(rows *sql.Rows, withViewCount bool) ([]domain.AudienceEntry, error) {
	var out []domain.AudienceEntry
	for rows.Next() {
		var e domain.AudienceEntry
		dest := []any{
			&e.UserID, &e.Username, &e.Email,
			&e.ProductID, &e.ProductName, &e.ProductImage,
			&e.ProductPrice, &e.ProductDescription,
		}
		if withViewCount {
			dest = append(dest, &e.ViewCount)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
