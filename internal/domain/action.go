package domain

// Action is the closed set of trackable behaviors.
type Action string

const (
	ActionViewed         Action = "viewed"
	ActionAddedToCart    Action = "added_to_cart"
	ActionBuy            Action = "buy"
	ActionAccountCreated Action = "account_created"
)

func (a Action) Valid() bool {
	switch a {
	case ActionViewed, ActionAddedToCart, ActionBuy, ActionAccountCreated:
		return true
	}
	return false
}

// RequiresProduct reports whether the action only makes sense against a product.
// account_created is the one user-level action.
func (a Action) RequiresProduct() bool {
	return a != ActionAccountCreated
}

// ParseAction validates a raw action string from the wire.
func ParseAction(raw string) (Action, error) {
	a := Action(raw)
	if !a.Valid() {
		return "", ErrInvalidAction(raw)
	}
	return a, nil
}
