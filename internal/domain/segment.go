package domain

// Campaign names double as watermark key prefixes and metric labels.
const (
	CampaignAbandonedCart   = "abandoned_cart"
	CampaignFrequentViewer  = "frequent_viewer"
	CampaignPurchaseConfirm = "purchase_confirm"
)

// AudienceEntry is one (user, product) pair selected by a segment query,
// carrying the denormalized attributes templating needs. Derived per campaign
// run, never persisted.
type AudienceEntry struct {
	UserID   string
	Username string
	Email    string

	ProductID          string
	ProductName        string
	ProductImage       string
	ProductPrice       float64
	ProductDescription string

	// ViewCount is only populated by the frequent-viewer derivation.
	ViewCount int64
}

const (
	defaultProductName        = "Your Selected Product"
	defaultProductDescription = "This product is a great fit for what you've been looking at."
)

// FillDefaults substitutes safe values for missing product attributes so a
// sparse catalog row degrades the email, not the whole segment.
func (e *AudienceEntry) FillDefaults(defaultImage string) {
	if e.ProductName == "" {
		e.ProductName = defaultProductName
	}
	if e.ProductDescription == "" {
		e.ProductDescription = defaultProductDescription
	}
	if e.ProductImage == "" {
		e.ProductImage = defaultImage
	}
}
