package domain

import "sort"

// Engagement weights. Purchases signal more intent than cart adds, which
// signal more than views. These multipliers are load-bearing for downstream
// dashboards and must not drift.
const (
	WeightBuy     = 3
	WeightCartAdd = 2
	WeightView    = 1
)

// LeadRecord is one activity row enriched with the user and product
// attributes the reporting dashboard consumes. The dashboard does its own
// client-side ranking over these.
type LeadRecord struct {
	ActivityRecord

	Username string
	Email    string

	ProductName     string
	ProductPrice    float64
	ProductCategory string
}

// LeadRow is one activity row reduced to what scoring needs, already joined
// with user identity by the read path.
type LeadRow struct {
	UserID   string
	Username string
	Email    string

	Views     int64
	Purchases int64
	CartAdds  int64
}

// LeadAggregate is the per-user engagement summary. Derived, never persisted.
type LeadAggregate struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	Buys         int64 `json:"buys"`
	Views        int64 `json:"views"`
	CartAdds     int64 `json:"cart_adds"`
	TotalActions int64 `json:"total_actions"`

	WeightedScore int64 `json:"weighted_score"`
}

// ComputeLeaderboard groups activity rows by user, sums counters across
// products, scores each user, and returns the users ordered by descending
// weighted score. The sort is stable: ties keep the order in which a user
// first appeared in the input, so a fixed input always yields the same
// output.
func ComputeLeaderboard(rows []LeadRow) []LeadAggregate {
	byUser := make(map[string]*LeadAggregate, len(rows))
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		agg, ok := byUser[row.UserID]
		if !ok {
			agg = &LeadAggregate{
				UserID:   row.UserID,
				Username: row.Username,
				Email:    row.Email,
			}
			byUser[row.UserID] = agg
			order = append(order, row.UserID)
		}
		agg.Buys += row.Purchases
		agg.Views += row.Views
		agg.CartAdds += row.CartAdds
	}

	out := make([]LeadAggregate, 0, len(order))
	for _, id := range order {
		agg := byUser[id]
		agg.TotalActions = agg.Buys + agg.Views + agg.CartAdds
		agg.WeightedScore = WeightBuy*agg.Buys + WeightCartAdd*agg.CartAdds + WeightView*agg.Views
		out = append(out, *agg)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeightedScore > out[j].WeightedScore
	})
	return out
}
