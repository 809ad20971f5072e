package postgres

import (
	"context"
	"database/sql"

	"github.com/shopsignal/engagement/internal/domain"
)

// ActivityRepo is the postgres-backed activity store.
type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{db: db} }

// Upsert inserts rec as the tuple's first row or folds its counters into the
// existing one. The ON CONFLICT increment runs inside the statement, so
// concurrent callers for the same tuple serialize in the store.
func (r *ActivityRepo) Upsert(ctx context.Context, rec *domain.ActivityRecord) (*domain.ActivityRecord, error) {
	row := r.db.QueryRowContext(ctx, upsertActivitySQL,
		rec.ID, rec.UserID, rec.ProductID, string(rec.Action), rec.IsLoggedInUser,
		rec.Views, rec.Purchases, rec.CartAdds, rec.CreatedAt, rec.UpdatedAt,
	)

	var out domain.ActivityRecord
	var action string
	err := row.Scan(
		&out.ID, &out.UserID, &out.ProductID, &action, &out.IsLoggedInUser,
		&out.Views, &out.Purchases, &out.CartAdds, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr(err)
	}
	out.Action = domain.Action(action)
	return &out, nil
}

// ListLeads joins every activity row with user and product attributes for
// the reporting read. The inner join on users drops rows whose user is gone.
func (r *ActivityRepo) ListLeads(ctx context.Context) ([]domain.LeadRecord, error) {
	rows, err := r.db.QueryContext(ctx, listLeadsSQL)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var out []domain.LeadRecord
	for rows.Next() {
		var lr domain.LeadRecord
		var action string
		if err := rows.Scan(
			&lr.ID, &lr.UserID, &lr.ProductID, &action, &lr.IsLoggedInUser,
			&lr.Views, &lr.Purchases, &lr.CartAdds, &lr.CreatedAt, &lr.UpdatedAt,
			&lr.Username, &lr.Email,
			&lr.ProductName, &lr.ProductPrice, &lr.ProductCategory,
		); err != nil {
			return nil, err
		}
		lr.Action = domain.Action(action)
		out = append(out, lr)
	}
	return out, rows.Err()
}

// ListLeadRows returns the counter sums scoring aggregates over.
func (r *ActivityRepo) ListLeadRows(ctx context.Context) ([]domain.LeadRow, error) {
	rows, err := r.db.QueryContext(ctx, listLeadRowsSQL)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var out []domain.LeadRow
	for rows.Next() {
		var lr domain.LeadRow
		if err := rows.Scan(&lr.UserID, &lr.Username, &lr.Email, &lr.Views, &lr.Purchases, &lr.CartAdds); err != nil {
			return nil, err
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

func storeErr(err error) error {
	if err == sql.ErrConnDone || err == sql.ErrTxDone {
		return domain.ErrUnavailable("activity store unreachable")
	}
	return err
}
