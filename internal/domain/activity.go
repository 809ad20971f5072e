package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ActivityRecord is one row per distinct (user, product, action) tuple.
// Repeated events for the same tuple mutate the counters on the existing row;
// counters never decrease.
type ActivityRecord struct {
	ID        string
	UserID    string
	ProductID string // empty for account_created
	Action    Action

	IsLoggedInUser bool

	Views     int64
	Purchases int64
	CartAdds  int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewActivityRecord builds the initial row for a tuple's first event, with the
// single counter selected by the action set to 1.
func NewActivityRecord(userID, productID string, action Action, loggedIn bool, now time.Time) (*ActivityRecord, error) {
	userID = strings.TrimSpace(userID)
	productID = strings.TrimSpace(productID)

	if !action.Valid() {
		return nil, ErrInvalidAction(string(action))
	}
	if userID == "" {
		return nil, ErrValidation("user_id is required")
	}
	if productID == "" && action.RequiresProduct() {
		return nil, ErrValidationMeta("product_id is required", map[string]string{
			"action": string(action),
		})
	}

	r := &ActivityRecord{
		ID:             uuid.NewString(),
		UserID:         userID,
		ProductID:      productID,
		Action:         action,
		IsLoggedInUser: loggedIn,
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}
	r.bump()
	return r, nil
}

// bump increments the counter that corresponds to the row's action. Counters
// for other actions are left untouched.
func (r *ActivityRecord) bump() {
	switch r.Action {
	case ActionViewed:
		r.Views++
	case ActionBuy:
		r.Purchases++
	case ActionAddedToCart:
		r.CartAdds++
	case ActionAccountCreated:
		// account creation carries no counter; the row itself is the signal
	}
}

// Apply records one more occurrence of the row's action.
func (r *ActivityRecord) Apply(now time.Time) {
	r.bump()
	r.UpdatedAt = now.UTC()
}
