package dto

import "time"

// EventReq is the inbound activity event payload.
type EventReq struct {
	UserID         string `json:"user_id"`
	ProductID      string `json:"product_id"`
	Action         string `json:"action"`
	IsLoggedInUser bool   `json:"is_loggedin_user"`
}

// ActivityResp is the stable API shape of one activity row.
type ActivityResp struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id,omitempty"`
	Action    string `json:"action"`

	IsLoggedInUser bool `json:"is_loggedin_user"`

	Views     int64 `json:"views"`
	Purchases int64 `json:"purchases"`
	CartAdds  int64 `json:"cart_adds"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventResp carries the upserted row, or the minted identity when the event
// came from an anonymous visitor and nothing was stored.
type EventResp struct {
	AnonymousUserID string        `json:"anonymous_user_id,omitempty"`
	Record          *ActivityResp `json:"record,omitempty"`
}

// LeadResp is one activity row joined with user and product attributes.
type LeadResp struct {
	ActivityResp

	Username string `json:"username"`
	Email    string `json:"email"`

	ProductName     string  `json:"product_name,omitempty"`
	ProductPrice    float64 `json:"product_price,omitempty"`
	ProductCategory string  `json:"product_category,omitempty"`
}

// OrderHookReq is the synchronous order-created hook payload.
type OrderHookReq struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}
